// Package action defines the closed set of player intents the engine
// accepts. An Action is pure data submitted by a client; the validate
// package decides legality and the command package executes it. Like the
// effect algebra, the set is a marker-interface sum type so dispatch
// switches are exhaustive.
package action

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/tools/spatial"
)

// Action is the closed sum of player intents.
type Action interface {
	isAction()
	// Name returns the wire tag for the action, used in INVALID_ACTION
	// diagnostics and transcripts.
	Name() string
}

// ManaPayment describes how a powered card play or other mana cost is
// paid: exactly one of the fields is set.
type ManaPayment struct {
	DieID       string     // spend a source die
	Crystal     mana.Color // spend one crystal of this color
	PureToken   mana.Color // spend one pure-mana token of this color
}

// SidewaysAs is what a sideways-played card counts as.
type SidewaysAs string

const (
	SidewaysMove      SidewaysAs = "move"
	SidewaysInfluence SidewaysAs = "influence"
	SidewaysAttack    SidewaysAs = "attack"
	SidewaysBlock     SidewaysAs = "block"
)

// DamageTarget identifies who absorbs an unblocked attack's damage.
type DamageTarget struct {
	Hero           bool
	UnitInstanceID string // set when Hero is false
}

type SelectTactic struct {
	TacticRef *core.Ref
}

type Move struct {
	To spatial.CubeCoordinate
}

type Explore struct {
	// SlotCoord is the expansion slot the new tile fills.
	SlotCoord spatial.CubeCoordinate
}

type PlayCard struct {
	CardID  string
	Powered bool
	Mana    *ManaPayment // required iff Powered
}

type PlayCardSideways struct {
	CardID string
	As     SidewaysAs
}

type ResolveChoice struct {
	ChoiceIndex int
}

type ResolveDiscard struct {
	CardIDs []string
}

type ResolveDiscardForAttack struct {
	CardIDs []string
}

type ResolveDiscardForCrystal struct {
	CardID string
}

type ResolveDeepMine struct {
	Color mana.Color
}

type ResolveGladeWound struct {
	DiscardCardIDs []string
}

type ResolveCrystalJoyReclaim struct{}

type ResolveBookOfWisdom struct {
	CardID string
}

type ResolveMeditation struct {
	SelectedCardIDs []string
	PlaceOnTop      bool
}

type ChooseLevelUpRewards struct {
	Level            int
	SkillChoice      *core.Ref
	AdvancedActionID string
}

type EnterCombat struct {
	// EnemyInstanceIDs optionally narrows the provoked enemies to a
	// subset of the player's hex garrison; empty means the hex's full set.
	EnemyInstanceIDs []string
}

type EndCombatPhase struct {
	// AcceptRetreat confirms withdrawing from the attack phase with
	// enemies still alive, forfeiting conquest.
	AcceptRetreat bool
}

type DeclareBlock struct {
	EnemyInstanceID string
	AttackIndex     int
	// MoveSpent is move points spent against a cumbersome enemy,
	// reducing its attack before swift doubling.
	MoveSpent int
}

type DeclareAttack struct {
	TargetEnemyIDs []string
	CombatType     effect.CombatType
}

type AssignDamage struct {
	EnemyInstanceID string
	Target          DamageTarget
}

type RecruitUnit struct {
	UnitRef *core.Ref
}

type ActivateUnit struct {
	InstanceID   string
	AbilityIndex int
}

type UseSkill struct {
	SkillRef *core.Ref
}

type ReturnInteractiveSkill struct {
	SkillRef *core.Ref
}

type DeclareRest struct{}

type CompleteRest struct {
	DiscardCardIDs []string
}

type ProposeCooperativeAssault struct {
	CityColor string
	InviteeID string
}

type RespondToCooperativeProposal struct {
	Accept bool
}

type CancelCooperativeProposal struct{}

type EndTurn struct{}

type Undo struct{}

type AnnounceEndOfRound struct{}

func (SelectTactic) isAction()                 {}
func (Move) isAction()                         {}
func (Explore) isAction()                      {}
func (PlayCard) isAction()                     {}
func (PlayCardSideways) isAction()             {}
func (ResolveChoice) isAction()                {}
func (ResolveDiscard) isAction()               {}
func (ResolveDiscardForAttack) isAction()      {}
func (ResolveDiscardForCrystal) isAction()     {}
func (ResolveDeepMine) isAction()              {}
func (ResolveGladeWound) isAction()            {}
func (ResolveCrystalJoyReclaim) isAction()     {}
func (ResolveBookOfWisdom) isAction()          {}
func (ResolveMeditation) isAction()            {}
func (ChooseLevelUpRewards) isAction()         {}
func (EnterCombat) isAction()                  {}
func (EndCombatPhase) isAction()               {}
func (DeclareBlock) isAction()                 {}
func (DeclareAttack) isAction()                {}
func (AssignDamage) isAction()                 {}
func (RecruitUnit) isAction()                  {}
func (ActivateUnit) isAction()                 {}
func (UseSkill) isAction()                     {}
func (ReturnInteractiveSkill) isAction()       {}
func (DeclareRest) isAction()                  {}
func (CompleteRest) isAction()                 {}
func (ProposeCooperativeAssault) isAction()    {}
func (RespondToCooperativeProposal) isAction() {}
func (CancelCooperativeProposal) isAction()    {}
func (EndTurn) isAction()                      {}
func (Undo) isAction()                         {}
func (AnnounceEndOfRound) isAction()           {}

func (SelectTactic) Name() string                 { return "SELECT_TACTIC" }
func (Move) Name() string                         { return "MOVE" }
func (Explore) Name() string                      { return "EXPLORE" }
func (PlayCard) Name() string                     { return "PLAY_CARD" }
func (PlayCardSideways) Name() string             { return "PLAY_CARD_SIDEWAYS" }
func (ResolveChoice) Name() string                { return "RESOLVE_CHOICE" }
func (ResolveDiscard) Name() string               { return "RESOLVE_DISCARD" }
func (ResolveDiscardForAttack) Name() string      { return "RESOLVE_DISCARD_FOR_ATTACK" }
func (ResolveDiscardForCrystal) Name() string     { return "RESOLVE_DISCARD_FOR_CRYSTAL" }
func (ResolveDeepMine) Name() string              { return "RESOLVE_DEEP_MINE" }
func (ResolveGladeWound) Name() string            { return "RESOLVE_GLADE_WOUND" }
func (ResolveCrystalJoyReclaim) Name() string     { return "RESOLVE_CRYSTAL_JOY_RECLAIM" }
func (ResolveBookOfWisdom) Name() string          { return "RESOLVE_BOOK_OF_WISDOM" }
func (ResolveMeditation) Name() string            { return "RESOLVE_MEDITATION" }
func (ChooseLevelUpRewards) Name() string         { return "CHOOSE_LEVEL_UP_REWARDS" }
func (EnterCombat) Name() string                  { return "ENTER_COMBAT" }
func (EndCombatPhase) Name() string               { return "END_COMBAT_PHASE" }
func (DeclareBlock) Name() string                 { return "DECLARE_BLOCK" }
func (DeclareAttack) Name() string                { return "DECLARE_ATTACK" }
func (AssignDamage) Name() string                 { return "ASSIGN_DAMAGE" }
func (RecruitUnit) Name() string                  { return "RECRUIT_UNIT" }
func (ActivateUnit) Name() string                 { return "ACTIVATE_UNIT" }
func (UseSkill) Name() string                     { return "USE_SKILL" }
func (ReturnInteractiveSkill) Name() string       { return "RETURN_INTERACTIVE_SKILL" }
func (DeclareRest) Name() string                  { return "DECLARE_REST" }
func (CompleteRest) Name() string                 { return "COMPLETE_REST" }
func (ProposeCooperativeAssault) Name() string    { return "PROPOSE_COOPERATIVE_ASSAULT" }
func (RespondToCooperativeProposal) Name() string { return "RESPOND_TO_COOPERATIVE_PROPOSAL" }
func (CancelCooperativeProposal) Name() string    { return "CANCEL_COOPERATIVE_PROPOSAL" }
func (EndTurn) Name() string                      { return "END_TURN" }
func (Undo) Name() string                         { return "UNDO" }
func (AnnounceEndOfRound) Name() string           { return "ANNOUNCE_END_OF_ROUND" }
