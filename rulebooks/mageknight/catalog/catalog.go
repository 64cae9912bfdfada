// Package catalog declares the read-only data-table interfaces the engine
// consumes for card, enemy, tile, skill, tactic, site, and hero content.
// Per the engine's scope, the catalog's actual content is an external data
// set (a card database, a scenario pack) — this package only specifies the
// shape the engine needs, grounded on the teacher's registry-lookup
// pattern (core.Ref as key, typed struct as value) rather than any one
// concrete data source.
package catalog

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
)

// ManaColor is an alias for mana.Color, kept so catalog consumers do not
// need a second import for the common case of describing a card's color.
type ManaColor = mana.Color

// CombatType aliases effect.CombatType; the algebra owns the tag set,
// the catalog reuses it to describe enemies and abilities.
type CombatType = effect.CombatType

const (
	CombatMelee  = effect.CombatMelee
	CombatRanged = effect.CombatRanged
	CombatSiege  = effect.CombatSiege
	CombatSwift  = effect.CombatSwift
)

// Card is the catalog's description of a playable card: its identity,
// color (mana/sideways color), and the effect trees for each of its play
// modes.
type Card struct {
	Ref   *core.Ref
	Name  string
	Color ManaColor
	// IsWound marks the card as a non-playable wound; wounds cannot be
	// played, only discarded/healed.
	IsWound bool
	// IsSpell marks spell cards, tracked per color for the ring
	// artifacts' end-of-turn fame.
	IsSpell bool
	// IsArtifact marks artifacts; their powered play typically destroys
	// the card.
	IsArtifact bool
	// Basic is the effect resolved when played unpowered.
	Basic effect.Effect
	// Powered is the effect resolved when played powered (requires one
	// mana of Color, or Gold/Black per time-of-day wild rules).
	Powered effect.Effect
}

// EnemyAbility is a closed tag set for the abilities §4.3 describes.
type EnemyAbility string

const (
	AbilityFortified     EnemyAbility = "fortified"
	AbilityUnfortified   EnemyAbility = "unfortified"
	AbilitySwift         EnemyAbility = "swift"
	AbilityBrutal        EnemyAbility = "brutal"
	AbilityPoison        EnemyAbility = "poison"
	AbilityParalyze      EnemyAbility = "paralyze"
	AbilitySummon        EnemyAbility = "summon"
	AbilityCumbersome    EnemyAbility = "cumbersome"
	AbilityAssassination EnemyAbility = "assassination"
	AbilityArcaneImmune  EnemyAbility = "arcane-immunity"
)

// Element aliases effect.Element for enemy attack/resistance typing.
type Element = effect.Element

const (
	ElementPhysical = effect.ElementPhysical
	ElementFire     = effect.ElementFire
	ElementIce      = effect.ElementIce
	ElementColdFire = effect.ElementColdFire
)

// Enemy is the catalog's description of an enemy definition. Instances
// (state.EnemyInstance) reference this by Ref and carry only the mutable
// per-combat disposition.
type Enemy struct {
	Ref            *core.Ref
	Name           string
	Color          string // the draw-pile color this enemy belongs to
	Armor          int
	Attack         int
	AttackElement  Element
	Resistances    []Element
	Abilities      []EnemyAbility
	SummonColor    string // draw-pile color used by AbilitySummon
	FameOnDefeat   int
	CumbersomeCost int // move points per point of attack reduction
}

// HasAbility reports whether the enemy definition carries the given
// ability tag.
func (e *Enemy) HasAbility(a EnemyAbility) bool {
	for _, have := range e.Abilities {
		if have == a {
			return true
		}
	}
	return false
}

// ResistsElement reports whether the enemy halves damage of the given
// element.
func (e *Enemy) ResistsElement(el Element) bool {
	for _, have := range e.Resistances {
		if have == el {
			return true
		}
	}
	return false
}

// SiteKind is a closed tag for map site types.
type SiteKind string

const (
	SiteKeep       SiteKind = "keep"
	SiteMonastery  SiteKind = "monastery"
	SiteCity       SiteKind = "city"
	SiteDungeon    SiteKind = "dungeon"
	SiteTomb       SiteKind = "tomb"
	SiteMonsterDen SiteKind = "monster-den"
	SiteSpawning   SiteKind = "spawning-grounds"
	SiteMageTower  SiteKind = "mage-tower"
	SiteMagicGlade SiteKind = "magical-glade"
	SiteMine       SiteKind = "mine"
	SiteVillage    SiteKind = "village"
)

// Tile is the catalog's description of a map tile: its site layout and
// whether it belongs to the countryside or core deck.
type Tile struct {
	Ref        *core.Ref
	IsCore     bool
	Sites      []SiteKind
	Fortified  bool
	CityColor  string
}

// Skill is the catalog's description of a hero skill: identity, owning
// hero, and optional behavior hooks. Heterogeneous skill behavior is
// modeled by optional fields dispatched by kind, not by per-skill types
// (§9 "dynamic dispatch via capability variants").
type Skill struct {
	Ref          *core.Ref
	HeroRef      *core.Ref
	Name         string
	IsCenter     bool // center-interactive: claimed once, returned after use
	OncePerTurn  bool
	OnActivate   effect.Effect // nil for passive skills
	PassiveMod   bool          // true if the skill installs a permanent modifier on grant
}

// Tactic is the catalog's description of a tactic card.
type Tactic struct {
	Ref           *core.Ref
	Name          string
	TurnOrder     int // ascending sort key used to compute turn order
	DayOnly       bool
	NightOnly     bool
	OnSelect      effect.Effect // nil if no immediate effect
	RequiresDecision bool
}

// Hero is the catalog's description of a playable hero.
type Hero struct {
	Ref          *core.Ref
	Name         string
	StartingHand int
	HandLimit    int
	Armor        int
	// StartingDeck is the hero's 16-card starting deck in catalog
	// order; the engine shuffles it at game start.
	StartingDeck []*core.Ref
	// Skills is the hero's full skill pool, drawn from on even levels.
	Skills []*core.Ref
}

// Unit is the catalog's description of a recruitable unit.
type Unit struct {
	Ref    *core.Ref
	Name   string
	Level  int
	Armor  int
	Cost   int
	Color  string
	Abilities effect.Effect
}

// Tables is the full set of read-only lookups the engine needs. A
// concrete implementation (a JSON-backed store, an in-memory test
// fixture) only needs to satisfy these accessors; the engine never
// assumes anything about how entries got there.
type Tables interface {
	Card(ref *core.Ref) (*Card, bool)
	Enemy(ref *core.Ref) (*Enemy, bool)
	Tile(ref *core.Ref) (*Tile, bool)
	Skill(ref *core.Ref) (*Skill, bool)
	Tactic(ref *core.Ref) (*Tactic, bool)
	Hero(ref *core.Ref) (*Hero, bool)
	Unit(ref *core.Ref) (*Unit, bool)

	// AllTactics lists every tactic available for a time of day, used to
	// seed GameState.availableTactics.
	AllTactics(isDay bool) []*core.Ref

	// EnemiesByColor lists every enemy token of a draw-pile color, in
	// catalog order; the engine shuffles them into the piles at setup.
	EnemiesByColor(color string) []*core.Ref
}
