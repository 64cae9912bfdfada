package state

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
)

// Pending is the per-player pending-resolution slots. At most one of
// the gate fields (everything except LevelUpRewards, which queues) is
// non-nil at any time; ActiveGate reports the open gate by a fixed
// priority and does not check the invariant.
type Pending struct {
	Discard           *PendingDiscard
	DiscardForAttack  *PendingDiscardForAttack
	DiscardForCrystal *PendingDiscardForCrystal
	Choice            *PendingChoice
	GladeWound        *PendingGladeWound
	DeepMine          *PendingDeepMine
	CrystalJoyReclaim *PendingCrystalJoyReclaim
	BookOfWisdom      *PendingBookOfWisdom
	Meditation        *PendingMeditation
	TacticDecision    *PendingTacticDecision
	LevelUpRewards    []PendingLevelUp
	// Rest is set between DECLARE_REST and COMPLETE_REST.
	Rest *PendingRest
}

// GateKind names an open gate for valid-actions mode selection.
type GateKind string

const (
	GateNone              GateKind = ""
	GateDiscard           GateKind = "discard"
	GateDiscardForAttack  GateKind = "discard-for-attack"
	GateDiscardForCrystal GateKind = "discard-for-crystal"
	GateChoice            GateKind = "choice"
	GateGladeWound        GateKind = "glade-wound"
	GateDeepMine          GateKind = "deep-mine"
	GateCrystalJoy        GateKind = "crystal-joy-reclaim"
	GateBookOfWisdom      GateKind = "book-of-wisdom"
	GateMeditation        GateKind = "meditation"
	GateTacticDecision    GateKind = "tactic-decision"
	GateLevelUp           GateKind = "level-up"
	GateRest              GateKind = "rest"
)

// ActiveGate returns the open gate, if any. Level-up rewards gate only
// when no other gate is open; rest completion is the lowest priority.
func (p Pending) ActiveGate() GateKind {
	switch {
	case p.GladeWound != nil:
		return GateGladeWound
	case p.DeepMine != nil:
		return GateDeepMine
	case p.Discard != nil:
		return GateDiscard
	case p.DiscardForAttack != nil:
		return GateDiscardForAttack
	case p.DiscardForCrystal != nil:
		return GateDiscardForCrystal
	case p.CrystalJoyReclaim != nil:
		return GateCrystalJoy
	case p.BookOfWisdom != nil:
		return GateBookOfWisdom
	case p.Meditation != nil:
		return GateMeditation
	case p.TacticDecision != nil:
		return GateTacticDecision
	case p.Choice != nil:
		return GateChoice
	case len(p.LevelUpRewards) > 0:
		return GateLevelUp
	case p.Rest != nil:
		return GateRest
	}
	return GateNone
}

// HasExclusiveGate reports whether one of the mutually-exclusive gates
// (the §3 invariant set) is open.
func (p Pending) HasExclusiveGate() bool {
	g := p.ActiveGate()
	return g != GateNone && g != GateLevelUp && g != GateRest
}

// PendingDiscard is an open DiscardCost gate. Remaining carries the
// deferred tail of the enclosing Compound.
type PendingDiscard struct {
	Count        int
	Optional     bool
	FilterWounds bool
	ColorMatters bool
	Then         effect.Effect
	ThenByColor  map[mana.Color]effect.Effect
	AllowNoColor bool
	SourceCardID string
	Remaining    []effect.Effect
}

// PendingDiscardForAttack is a discard-for-attack gate: each discarded
// card converts to attack.
type PendingDiscardForAttack struct {
	PerCardAmount int
	Element       effect.Element
	CombatType    effect.CombatType
	MaxCards      int
	SourceCardID  string
	Remaining     []effect.Effect
}

// PendingDiscardForCrystal is a discard-one-for-a-crystal gate.
type PendingDiscardForCrystal struct {
	SourceCardID string
	Remaining    []effect.Effect
}

// PendingChoice is an open Choice gate.
type PendingChoice struct {
	Options      []effect.ChoiceOption
	SourceCardID string
	Remaining    []effect.Effect
}

// PendingGladeWound is the Magical Glade end-of-turn offer to throw
// away one wound from hand or discard.
type PendingGladeWound struct{}

// PendingDeepMine is the end-of-turn deep-mine crystal color pick.
type PendingDeepMine struct {
	Colors []mana.Color
}

// PendingCrystalJoyReclaim is the Crystal Joy end-of-turn reclaim
// offer.
type PendingCrystalJoyReclaim struct {
	CardID string
}

// PendingBookOfWisdom is the Book of Wisdom advanced-action swap gate.
type PendingBookOfWisdom struct {
	SourceCardID string
}

// PendingMeditation is the Meditation deck-stacking gate.
type PendingMeditation struct {
	DrawnCardIDs []string
	Powered      bool
}

// PendingTacticDecision is an immediate follow-up a selected tactic
// requires (Mana Steal die pick, Planning confirmation, ...).
type PendingTacticDecision struct {
	TacticRef *core.Ref
}

// PendingLevelUp is one queued even-level reward pick.
type PendingLevelUp struct {
	Level        int
	SkillOptions []*core.Ref
	// The advanced-action option is not stored here; the pick takes it
	// from the offer row current at pick time.
}

// PendingRest is the declared-rest gate awaiting COMPLETE_REST.
type PendingRest struct {
	// SlowRecovery is true when the hand is all wounds (discard one
	// wound only); false is a standard rest (discard one non-wound plus
	// any number of wounds).
	SlowRecovery bool
}
