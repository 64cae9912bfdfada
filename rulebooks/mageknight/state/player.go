package state

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
)

// CardInstance is one physical card copy a player owns: a stable
// per-copy ID plus its catalog reference. Two copies of the same card
// are distinct instances.
type CardInstance struct {
	ID  string
	Ref *core.Ref
}

// UnitState is a unit instance's readiness.
type UnitState string

const (
	UnitReady   UnitState = "ready"
	UnitSpent   UnitState = "spent"
	UnitWoundedState UnitState = "wounded"
)

// UnitInstance is one recruited unit.
type UnitInstance struct {
	InstanceID string
	Ref        *core.Ref
	State      UnitState
	Wounded    bool
	Level      int
}

// PureManaToken is a transient mana unit that expires at end of turn.
type PureManaToken struct {
	Color  mana.Color
	Source effect.ManaSource
}

// Accumulator is the per-player transient combat totals. Zero outside
// combat. Buckets are maps keyed by combat type and element; totals walk
// the canonical ElementOrder and CombatTypeOrder slices, so sums never
// depend on map iteration order.
type Accumulator struct {
	Attack map[effect.CombatType]map[effect.Element]int
	Block  map[effect.Element]int
}

// ElementOrder is the canonical iteration order over elements.
var ElementOrder = []effect.Element{
	effect.ElementPhysical, effect.ElementFire, effect.ElementIce, effect.ElementColdFire,
}

// CombatTypeOrder is the canonical iteration order over combat types.
var CombatTypeOrder = []effect.CombatType{
	effect.CombatMelee, effect.CombatRanged, effect.CombatSiege, effect.CombatSwift,
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() Accumulator {
	a := Accumulator{
		Attack: make(map[effect.CombatType]map[effect.Element]int, len(CombatTypeOrder)),
		Block:  make(map[effect.Element]int, len(ElementOrder)),
	}
	for _, ct := range CombatTypeOrder {
		a.Attack[ct] = make(map[effect.Element]int, len(ElementOrder))
	}
	return a
}

// AddAttack adds to an attack bucket. Amounts never drive a bucket
// negative.
func (a Accumulator) AddAttack(ct effect.CombatType, el effect.Element, amount int) Accumulator {
	next := a.clone()
	v := next.Attack[ct][el] + amount
	if v < 0 {
		v = 0
	}
	next.Attack[ct][el] = v
	return next
}

// AddBlock adds to a block bucket, clamped at zero.
func (a Accumulator) AddBlock(el effect.Element, amount int) Accumulator {
	next := a.clone()
	v := next.Block[el] + amount
	if v < 0 {
		v = 0
	}
	next.Block[el] = v
	return next
}

// AttackTotal sums attack across the given combat types.
func (a Accumulator) AttackTotal(types ...effect.CombatType) int {
	total := 0
	for _, ct := range types {
		for _, el := range ElementOrder {
			total += a.Attack[ct][el]
		}
	}
	return total
}

// AttackOfElement sums one element's attack across the given types.
func (a Accumulator) AttackOfElement(el effect.Element, types ...effect.CombatType) int {
	total := 0
	for _, ct := range types {
		total += a.Attack[ct][el]
	}
	return total
}

// BlockTotal sums all block.
func (a Accumulator) BlockTotal() int {
	total := 0
	for _, el := range ElementOrder {
		total += a.Block[el]
	}
	return total
}

// BlockOfElement returns one element's block.
func (a Accumulator) BlockOfElement(el effect.Element) int {
	return a.Block[el]
}

func (a Accumulator) clone() Accumulator {
	next := NewAccumulator()
	for _, ct := range CombatTypeOrder {
		for _, el := range ElementOrder {
			next.Attack[ct][el] = a.Attack[ct][el]
		}
	}
	for _, el := range ElementOrder {
		next.Block[el] = a.Block[el]
	}
	return next
}

// TacticState is the per-tactic persistent subfields that survive the
// per-turn reset for round-persistent tactics.
type TacticState struct {
	StoredManaDieID       string // Mana Steal's stored die
	ManaStealUsedThisTurn bool
	ManaSearchUsedThisTurn bool
	PlanningActive        bool
	SparingPowerStash     []CardInstance
}

// SkillCooldowns tracks once-per-turn and until-next-turn skill usage.
type SkillCooldowns struct {
	UsedThisTurn       []*core.Ref
	ActiveUntilNextTurn []*core.Ref
}

// SkillFlipState tracks flipped (used-this-round) interactive skills.
type SkillFlipState struct {
	FlippedSkills []*core.Ref
}

// Player is one hero's complete state.
type Player struct {
	ID   string
	Hero *core.Ref

	MovePoints      int
	InfluencePoints int
	Fame            int
	Reputation      int
	Crystals        map[mana.Color]int
	PureMana        []PureManaToken
	Armor           int
	HandLimit       int
	CommandTokens   int
	Level           int

	RemainingHeroSkills []*core.Ref
	Skills              []*core.Ref

	Hand                []CardInstance
	Deck                []CardInstance
	Discard             []CardInstance
	PlayArea            []CardInstance
	RemovedCards        []CardInstance
	TimeBendingSetAside []CardInstance

	CombatAccumulator Accumulator

	HasMovedThisTurn        bool
	HasTakenActionThisTurn  bool
	HasCombattedThisTurn    bool
	PlayedCardFromHandThisTurn bool
	HasPlunderedThisTurn    bool
	HasRecruitedUnitThisTurn bool
	IsResting               bool
	UsedManaFromSource      bool
	// GladeOfferedThisTurn / MineOfferedThisTurn stop the end-of-turn
	// site checks from re-offering after their gate resolves.
	GladeOfferedThisTurn bool
	MineOfferedThisTurn  bool

	UsedDieIDs                []string
	ManaDrawDieIDs            []string
	ManaUsedThisTurn          []mana.Color
	SpellColorsCastThisTurn   []mana.Color
	EnemiesDefeatedThisTurn   []string
	UnitsRecruitedThisInteraction []string
	UnitsHealedThisTurn       []string
	WoundsReceivedThisTurn    int
	SpentCrystalsThisTurn     []mana.Color

	Pending Pending

	SelectedTactic          *core.Ref
	TacticFlipped           bool
	BeforeTurnTacticPending bool
	TacticState             TacticState

	SkillCooldowns SkillCooldowns
	SkillFlipState SkillFlipState

	Units []UnitInstance

	Position   HexKey
	KnockedOut bool
}

// CrystalCount returns the crystal count for a color (0 for wilds).
func (p *Player) CrystalCount(c mana.Color) int {
	return p.Crystals[c]
}

// HandCard finds a card instance in hand by its instance ID.
func (p *Player) HandCard(id string) (CardInstance, bool) {
	for _, c := range p.Hand {
		if c.ID == id {
			return c, true
		}
	}
	return CardInstance{}, false
}

// UnitByInstanceID finds a recruited unit by instance ID.
func (p *Player) UnitByInstanceID(id string) (UnitInstance, bool) {
	for _, u := range p.Units {
		if u.InstanceID == id {
			return u, true
		}
	}
	return UnitInstance{}, false
}

// SpellsCastOfColor counts spells of a color cast this turn, for the
// ring-artifact fame bonus.
func (p *Player) SpellsCastOfColor(c mana.Color) int {
	n := 0
	for _, cast := range p.SpellColorsCastThisTurn {
		if cast == c {
			n++
		}
	}
	return n
}
