// Package modifier implements the scoped, duration-bounded active
// modifier store of §4.2. A Modifier is plain immutable data; the store
// is an ordered, insertion-order-preserving slice type rather than a
// live subscription registry, grounded on the teacher's events.Modifier
// shape (Source/Type/Value) but reworked into a closed, typed Spec field
// instead of an `any` Value so every modifier kind is a compile-time
// case, per §9 "effect algebra as tagged variants".
package modifier

// Duration is the closed set of lifetimes a Modifier can have (§4.2).
type Duration string

const (
	DurationTurn          Duration = "turn"
	DurationCombat        Duration = "combat"
	DurationRound         Duration = "round"
	DurationUntilNextTurn Duration = "until-next-turn"
	DurationPermanent     Duration = "permanent"
	DurationUntilEvent    Duration = "until-event"
)

// Scope identifies what a Modifier applies to.
type ScopeKind string

const (
	ScopeSelf         ScopeKind = "self"
	ScopeTargetPlayer ScopeKind = "target-player"
	ScopeTargetEnemy  ScopeKind = "target-enemy"
	ScopeGlobal       ScopeKind = "global"
)

// Scope pairs a ScopeKind with the target identity it needs, if any.
type Scope struct {
	Kind     ScopeKind
	PlayerID string // set when Kind == ScopeTargetPlayer
	EnemyID  string // set when Kind == ScopeTargetEnemy (enemy instance id)
}

// SourceKind identifies what created a Modifier.
type SourceKind string

const (
	SourceCard  SourceKind = "card"
	SourceSkill SourceKind = "skill"
	SourceUnit  SourceKind = "unit"
	SourceSite  SourceKind = "site"
)

// Source records provenance for display and for skill-specific lookups
// (e.g. Ring artifact fame bonus needs "which Endless-Mana modifiers did
// I create").
type Source struct {
	Kind     SourceKind
	RefValue string // card id / skill id / unit instance id / hex key
	PlayerID string // for SourceSkill, the skill owner
}

// Kind is the closed set of modifier behaviors (§4.2 "Modifier kinds").
// New kinds are added here, never represented as free-form strings, so
// every consumer switch is exhaustive.
type Kind string

const (
	KindEndlessMana              Kind = "endless-mana"
	KindManaClaimSustained       Kind = "mana-claim-sustained"
	KindManaCurse                Kind = "mana-curse"
	KindDuelingTarget            Kind = "dueling-target"
	KindShapeshiftActive         Kind = "shapeshift-active"
	KindHandLimitBonus           Kind = "hand-limit-bonus"
	KindAttackBonus              Kind = "attack-bonus"
	KindEnemyArmorReduction      Kind = "enemy-armor-reduction"
	KindPreventEnemyAttack       Kind = "prevent-enemy-attack"
	KindSwiftReflexesReducedAtk  Kind = "swift-reflexes-reduced-attack"
	KindInfluenceToBlockConvert  Kind = "influence-to-block-conversion"
	KindDiscountedPurchase       Kind = "discounted-purchase"
)

// Modifier is a single scoped, duration-bounded active effect on future
// resolution or validity (§4.2).
type Modifier struct {
	ID                string // mechanics/identifier-style instance id
	Kind              Kind
	Duration          Duration
	UntilEvent        string // event type name, set when Duration == DurationUntilEvent
	Scope             Scope
	Source            Source
	CreatedByPlayerID string
	Description       string

	// Kind-specific payload. Only the field matching Kind is meaningful;
	// zero values elsewhere.
	Colors        []string // EndlessMana: colors it grants (black + ring color)
	Amount        int      // AttackBonus / EnemyArmorReduction / DiscountedPurchase magnitude
	ClaimedDieID  string    // ManaClaimSustained / ManaCurse: the die this modifier tracks
	TargetElement string    // AttackBonus / EnemyArmorReduction element restriction, "" = any
	ShapeshiftCardID string // ShapeshiftActive: the staged card being retyped
	ShapeshiftTarget string // ShapeshiftActive: "move" / "attack" / "block"
}

// Store is the ordered, insertion-order-preserving list of active
// modifiers. Modifiers are evaluated in insertion order (§4.2 invariant);
// Store is a plain value type so GameState can carry and copy it like
// any other immutable field.
type Store struct {
	items []Modifier
}

// NewStore builds a Store from a starting slice (nil/empty is fine).
func NewStore(items []Modifier) Store {
	cp := make([]Modifier, len(items))
	copy(cp, items)
	return Store{items: cp}
}

// All returns the modifiers in insertion order. The returned slice is a
// copy; callers must not mutate it in place.
func (s Store) All() []Modifier {
	cp := make([]Modifier, len(s.items))
	copy(cp, s.items)
	return cp
}

// Len reports how many modifiers are active.
func (s Store) Len() int {
	return len(s.items)
}

// Add returns a new Store with m appended, preserving insertion order.
func (s Store) Add(m Modifier) Store {
	next := make([]Modifier, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, m)
	return Store{items: next}
}

// Remove returns a new Store with the modifier at the given id removed.
// Removing an absent id is a no-op (matches §4.2 "removal emits no
// events unless the modifier's effect explicitly does so" — callers
// that need an event check presence first via the bool return).
func (s Store) Remove(id string) (Store, bool) {
	next := make([]Modifier, 0, len(s.items))
	removed := false
	for _, m := range s.items {
		if m.ID == id {
			removed = true
			continue
		}
		next = append(next, m)
	}
	return Store{items: next}, removed
}

// FilterOut returns a new Store keeping only modifiers for which keep
// returns true, and the slice of modifiers that were dropped (for event
// emission by callers that need it).
func (s Store) FilterOut(keep func(Modifier) bool) (Store, []Modifier) {
	next := make([]Modifier, 0, len(s.items))
	var dropped []Modifier
	for _, m := range s.items {
		if keep(m) {
			next = append(next, m)
		} else {
			dropped = append(dropped, m)
		}
	}
	return Store{items: next}, dropped
}

// ExpireForTurnEnd drops every DurationTurn modifier created by
// endingPlayerID. DurationUntilNextTurn modifiers are left in place;
// ExpireUntilNextTurnFor drops those when their owner's next turn
// starts.
func (s Store) ExpireForTurnEnd(endingPlayerID string) (Store, []Modifier) {
	return s.FilterOut(func(m Modifier) bool {
		if m.Duration == DurationTurn && m.CreatedByPlayerID == endingPlayerID {
			return false
		}
		return true
	})
}

// ExpireUntilNextTurnFor drops DurationUntilNextTurn modifiers owned by
// playerID, called when that player's next turn starts.
func (s Store) ExpireUntilNextTurnFor(playerID string) (Store, []Modifier) {
	return s.FilterOut(func(m Modifier) bool {
		if m.Duration == DurationUntilNextTurn && m.CreatedByPlayerID == playerID {
			return false
		}
		return true
	})
}

// ExpireForCombatEnd drops every DurationCombat modifier (§3 "CombatState
// destroyed on combat end... duration=combat modifiers reset").
func (s Store) ExpireForCombatEnd() (Store, []Modifier) {
	return s.FilterOut(func(m Modifier) bool { return m.Duration != DurationCombat })
}

// ExpireForRoundEnd drops every DurationRound modifier (§4.7 round end).
func (s Store) ExpireForRoundEnd() (Store, []Modifier) {
	return s.FilterOut(func(m Modifier) bool { return m.Duration != DurationRound })
}

// ExpireForEvent drops every DurationUntilEvent modifier whose
// UntilEvent matches eventType.
func (s Store) ExpireForEvent(eventType string) (Store, []Modifier) {
	return s.FilterOut(func(m Modifier) bool {
		return !(m.Duration == DurationUntilEvent && m.UntilEvent == eventType)
	})
}

// ForPlayer returns the modifiers that apply to playerID: every global
// modifier, the self-scoped modifiers playerID created, and target-player
// modifiers naming playerID.
func (s Store) ForPlayer(playerID string) []Modifier {
	var out []Modifier
	for _, m := range s.items {
		switch m.Scope.Kind {
		case ScopeGlobal:
			out = append(out, m)
		case ScopeSelf:
			if m.CreatedByPlayerID == playerID {
				out = append(out, m)
			}
		case ScopeTargetPlayer:
			if m.Scope.PlayerID == playerID {
				out = append(out, m)
			}
		}
	}
	return out
}

// ForEnemy returns modifiers scoped to a specific enemy instance, plus
// global modifiers.
func (s Store) ForEnemy(enemyInstanceID string) []Modifier {
	var out []Modifier
	for _, m := range s.items {
		switch m.Scope.Kind {
		case ScopeGlobal:
			out = append(out, m)
		case ScopeTargetEnemy:
			if m.Scope.EnemyID == enemyInstanceID {
				out = append(out, m)
			}
		}
	}
	return out
}

// OfKind filters a modifier slice (typically the result of ForPlayer/
// ForEnemy) down to one kind, preserving order.
func OfKind(mods []Modifier, k Kind) []Modifier {
	var out []Modifier
	for _, m := range mods {
		if m.Kind == k {
			out = append(out, m)
		}
	}
	return out
}
