// Package effect defines the closed effect algebra of the rules engine.
// Every card, skill, site reward, token effect, and modifier-triggered
// action is a value of the Effect sum type declared here. This package is
// pure data: the recursive resolver that reduces an Effect against a
// GameState lives in the resolve package, keeping the algebra free of any
// state dependency so the catalog can describe card content with it.
package effect

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
)

// Element is the elemental type an attack, block, or resistance carries.
type Element string

const (
	ElementPhysical Element = "physical"
	ElementFire     Element = "fire"
	ElementIce      Element = "ice"
	ElementColdFire Element = "coldfire"
)

// CombatType is the combat mode an attack contributes to.
type CombatType string

const (
	CombatMelee  CombatType = "melee"
	CombatRanged CombatType = "ranged"
	CombatSiege  CombatType = "siege"
	CombatSwift  CombatType = "swift"
)

// ManaSource tags where a gained pure-mana token came from, for event
// reporting and ring-artifact bookkeeping.
type ManaSource string

const (
	ManaFromCard  ManaSource = "card"
	ManaFromSkill ManaSource = "skill"
	ManaFromSite  ManaSource = "site"
	ManaFromDie   ManaSource = "die"
	ManaOverflow  ManaSource = "crystal-overflow"
)

// Effect is the closed sum type. Each variant is a struct implementing
// the unexported marker, so a type switch over Effect is exhaustive by
// construction and adding a variant is a compile-time change everywhere.
type Effect interface {
	isEffect()
}

// GainMove adds to the acting player's move points.
type GainMove struct {
	Amount int
}

// GainInfluence adds to the acting player's influence points.
type GainInfluence struct {
	Amount int
}

// GainAttack adds to the combat accumulator's attack total and the
// matching per-element bucket. Only valid in the matching combat phase.
type GainAttack struct {
	Amount     int
	Element    Element
	CombatType CombatType
}

// GainBlock adds to the combat accumulator's block total and bucket.
type GainBlock struct {
	Amount  int
	Element Element
}

// GainHealing heals wounds, hand first, then discard. Healing beyond
// wounds is wasted.
type GainHealing struct {
	Amount int
}

// GainMana appends a pure-mana token that expires at end of turn.
type GainMana struct {
	Color  mana.Color
	Source ManaSource
}

// GainCrystal increments crystals up to the cap; overflow becomes
// pure-mana tokens for the current turn.
type GainCrystal struct {
	Color  mana.Color
	Amount int
}

// DrawCards moves up to Count cards from deck to hand. No mid-round
// reshuffle.
type DrawCards struct {
	Count int
}

// GainFame adds fame, triggering level-up bookkeeping downstream.
type GainFame struct {
	Amount int
}

// GainReputation shifts reputation (may be negative).
type GainReputation struct {
	Amount int
}

// ApplyModifier inserts a modifier into the active store. The Spec's
// Duration/Scope are authoritative; CreatedByPlayerID and ID are stamped
// by the resolver.
type ApplyModifier struct {
	Spec modifier.Modifier
}

// Conditional evaluates Predicate against current state and recurses
// into Then or Else (Else may be nil for no-op).
type Conditional struct {
	Predicate Predicate
	Then      Effect
	Else      Effect
}

// Choice suspends resolution with a pendingChoice gate listing Options.
type Choice struct {
	Options []ChoiceOption
}

// ChoiceOption is one selectable branch of a Choice.
type ChoiceOption struct {
	Label  string
	Effect Effect
}

// Compound folds Effects strictly left to right. A suspension inside
// defers all later effects onto the pending record.
type Compound struct {
	Effects []Effect
}

// ScalingBasis is the closed set of per-X multipliers Scaling supports.
type ScalingBasis string

const (
	PerEnemyDefeated ScalingBasis = "per-enemy-defeated"
	PerSpellCast     ScalingBasis = "per-spell-cast"
	PerWoundInHand   ScalingBasis = "per-wound-in-hand"
	PerUnitOwned     ScalingBasis = "per-unit-owned"
)

// Scaling resolves Base with its numeric amount multiplied by the
// current count of Basis.
type Scaling struct {
	Base  Effect
	Basis ScalingBasis
}

// DiscardCost suspends with a pendingDiscard gate. On resolution, Then
// (or the color-keyed ThenByColor entry when ColorMatters) resolves once
// per discarded card or once total, per Count semantics.
type DiscardCost struct {
	Count        int
	Optional     bool
	FilterWounds bool // true: wounds may not be chosen
	ColorMatters bool
	Then         Effect
	ThenByColor  map[mana.Color]Effect
	AllowNoColor bool // artifact/colorless cards legal when ColorMatters
}

// ShapeshiftTarget is the closed set of effect types a shapeshift can
// retype between.
type ShapeshiftTarget string

const (
	ShapeshiftToMove   ShapeshiftTarget = "move"
	ShapeshiftToAttack ShapeshiftTarget = "attack"
	ShapeshiftToBlock  ShapeshiftTarget = "block"
)

// ShapeshiftResolve records a mutation retyping one effect of a staged
// card (move/attack/block), preserving element where the target type
// carries one. It never changes the card's mana color or cost.
type ShapeshiftResolve struct {
	TargetCardID string
	TargetType   ShapeshiftTarget
	Element      Element // preserved element; ElementPhysical when none
	ChoiceIndex  int     // which effect leaf of the staged card, -1 for sole leaf
}

// ResolveCombatEnemyTarget applies Template's modifier scoped to a
// chosen enemy instance. Used by dueling-style skills.
type ResolveCombatEnemyTarget struct {
	EnemyInstanceID string
	Template        modifier.Modifier
}

// TerrainBasedBlock resolves a block amount from the player's current
// hex terrain.
type TerrainBasedBlock struct{}

// DestroyCard removes the source card from the game permanently
// (to removedCards, never reshuffled).
type DestroyCard struct{}

// ThrowAwayCard moves the source card to removedCards at end of
// resolution instead of the play area.
type ThrowAwayCard struct{}

// SetAside moves the source card to the player's set-aside zone
// (time-bending style effects).
type SetAside struct{}

// ReturnToDeckPosition puts the source card back on the deck.
type ReturnToDeckPosition struct {
	Top bool // false: bottom
}

// ReadyUnit readies one spent unit of level at most MaxLevel; with more
// than one candidate it suspends as a choice.
type ReadyUnit struct {
	MaxLevel int
}

// ReadySpecificUnit readies one unit by instance ID. Synthesized by the
// resolver as the options of a ReadyUnit choice; cards never carry it
// directly.
type ReadySpecificUnit struct {
	InstanceID string
}

func (GainMove) isEffect()                 {}
func (GainInfluence) isEffect()            {}
func (GainAttack) isEffect()               {}
func (GainBlock) isEffect()                {}
func (GainHealing) isEffect()              {}
func (GainMana) isEffect()                 {}
func (GainCrystal) isEffect()              {}
func (DrawCards) isEffect()                {}
func (GainFame) isEffect()                 {}
func (GainReputation) isEffect()           {}
func (ApplyModifier) isEffect()            {}
func (Conditional) isEffect()              {}
func (Choice) isEffect()                   {}
func (Compound) isEffect()                 {}
func (Scaling) isEffect()                  {}
func (DiscardCost) isEffect()              {}
func (ShapeshiftResolve) isEffect()        {}
func (ResolveCombatEnemyTarget) isEffect() {}
func (TerrainBasedBlock) isEffect()        {}
func (DestroyCard) isEffect()              {}
func (ThrowAwayCard) isEffect()            {}
func (SetAside) isEffect()                 {}
func (ReturnToDeckPosition) isEffect()     {}
func (ReadyUnit) isEffect()                {}
func (ReadySpecificUnit) isEffect()        {}

// Predicate is the closed condition set Conditional can test. Like
// Effect, it is pure data evaluated by the resolver.
type Predicate interface {
	isPredicate()
}

// InCombat holds when a combat is active for the acting player.
type InCombat struct{}

// InCombatPhase holds in one specific combat phase. Phase values are
// the combat package's phase tags, carried as a string here to keep the
// algebra dependency-free.
type InCombatPhase struct {
	Phase string
}

// IsDay holds during day rounds.
type IsDay struct{}

// IsNight holds during night rounds.
type IsNight struct{}

// HasWounds holds when the acting player has at least one wound in hand.
type HasWounds struct{}

// EnemiesDefeatedAtLeast holds when the acting player defeated at least
// N enemies this turn.
type EnemiesDefeatedAtLeast struct {
	N int
}

// OnFortifiedSite holds when the acting player's hex hosts a fortified
// site.
type OnFortifiedSite struct{}

func (InCombat) isPredicate()               {}
func (InCombatPhase) isPredicate()          {}
func (IsDay) isPredicate()                  {}
func (IsNight) isPredicate()                {}
func (HasWounds) isPredicate()              {}
func (EnemiesDefeatedAtLeast) isPredicate() {}
func (OnFortifiedSite) isPredicate()        {}
