// Package state holds the immutable game-state model: GameState and all
// of its substructures. Nothing in this package mutates a received
// value; transitions clone, edit the private clone, and return it. The
// clone discipline lives in clone.go so the rest of the engine can treat
// GameState as a value.
//
// Cross-references follow the flat-arena rule: players, hexes, dice,
// enemy instances, unit instances, and modifiers are addressed by stable
// string IDs and looked up, never held by pointer across structures.
package state

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
)

// TimeOfDay is day or night.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// RoundPhase is the coarse round lifecycle position.
type RoundPhase string

const (
	PhaseTacticsSelection RoundPhase = "tactics-selection"
	PhasePlayerTurns      RoundPhase = "player-turns"
	PhaseRoundEnd         RoundPhase = "round-end"
)

// ScenarioConfig is the static scenario parameters chosen at game
// creation. The deck lists are read-only composition data; the engine
// shuffles copies of them into the live state at setup.
type ScenarioConfig struct {
	Name       string
	Rounds     int
	SoloDummy  bool
	CityLevels map[string]int

	CountrysideTiles    []*core.Ref
	CoreTiles           []*core.Ref
	AdvancedActionDeck  []*core.Ref
	SpellDeck           []*core.Ref
	UnitDeck            []*core.Ref
	ArtifactDeck        []*core.Ref
}

// City is one revealed city's shared conquest state.
type City struct {
	Color     string
	Garrison  []string // enemy instance IDs still defending
	Conquered bool
}

// TokenPile is a face-down draw pile with its discard, for enemy and
// ruins tokens.
type TokenPile struct {
	Draw    []*core.Ref
	Discard []*core.Ref
}

// EnemyPile pairs an enemy-token color with its pile. GameState keeps
// these in a slice, not a map, so iteration order is fixed by
// construction order.
type EnemyPile struct {
	Color string
	Pile  TokenPile
}

// CoopAssault is a pending joint city-assault proposal.
type CoopAssault struct {
	ProposerID string
	InviteeID  string
	CityColor  string
	Accepted   bool
}

// SourceOpeningCenter is the skill-in-center state for Source Opening:
// while present, other players may use one extra source die, and the
// owner is granted a crystal of that die's color at their turn end.
type SourceOpeningCenter struct {
	SkillRef   *core.Ref
	OwnerID    string
	ExtraDieID string
}

// SourceDie is one die in the shared source pool.
type SourceDie struct {
	ID       string
	Color    mana.Color
	TakenBy  string // player ID, "" when untaken
	Depleted bool
}

// Source is the shared dice pool.
type Source struct {
	Dice []SourceDie
}

// DieByID finds a die by ID.
func (s Source) DieByID(id string) (SourceDie, bool) {
	for _, d := range s.Dice {
		if d.ID == id {
			return d, true
		}
	}
	return SourceDie{}, false
}

// Offers is the three revealed card rows plus the skill offers.
type Offers struct {
	AdvancedActions []*core.Ref
	Spells          []*core.Ref
	Units           []*core.Ref
	CommonSkills    []*core.Ref
}

// Decks is the face-down piles behind the offers.
type Decks struct {
	AdvancedActions []*core.Ref
	Spells          []*core.Ref
	Units           []*core.Ref
	Artifacts       []*core.Ref
}

// GameState is the root of the immutable state tree. One value lives
// for exactly one transition; successors are computed purely.
type GameState struct {
	RNG rng.State

	Players            []Player
	TurnOrder          []string
	CurrentPlayerIndex int
	RoundNumber        int
	TimeOfDay          TimeOfDay
	RoundPhase         RoundPhase

	TacticsSelectionOrder []string
	CurrentTacticSelector string
	AvailableTactics      []*core.Ref

	Map    Map
	Source Source
	Offers Offers
	Decks  Decks

	EnemyTokens []EnemyPile
	RuinsTokens TokenPile
	Cities      []City

	ActiveModifiers modifier.Store
	Combat          *CombatState

	Scenario             ScenarioConfig
	ScenarioEndTriggered bool
	FinalTurnsRemaining  int
	EndOfRoundAnnouncedBy string

	PendingCoopAssault  *CoopAssault
	SourceOpeningCenter *SourceOpeningCenter

	// Dummy is the solo scenario's deterministic opponent; nil in
	// multiplayer games.
	Dummy *DummyState
}

// PlayerByID returns a pointer into Players for in-clone edits, or nil.
// Callers outside a transition must treat the result as read-only.
func (g *GameState) PlayerByID(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil outside
// player-turns.
func (g *GameState) CurrentPlayer() *Player {
	if g.RoundPhase != PhasePlayerTurns {
		return nil
	}
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.TurnOrder) {
		return nil
	}
	return g.PlayerByID(g.TurnOrder[g.CurrentPlayerIndex])
}

// IsDay reports the time of day as a bool for the mana wild-color rules.
func (g *GameState) IsDay() bool {
	return g.TimeOfDay == Day
}

// EnemyPileByColor returns the index of the pile for a color, or -1.
func (g *GameState) EnemyPileByColor(color string) int {
	for i := range g.EnemyTokens {
		if g.EnemyTokens[i].Color == color {
			return i
		}
	}
	return -1
}
