package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/content"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/refs"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/validate"
	"github.com/mage-knight-digital/MageKnight-sub011/tools/spatial"
)

func baseState() state.GameState {
	origin := state.KeyOf(spatial.CubeCoordinate{X: 0, Y: 0, Z: 0})
	return state.GameState{
		RoundPhase: state.PhasePlayerTurns,
		TimeOfDay:  state.Day,
		TurnOrder:  []string{"player-1", "player-2"},
		Players: []state.Player{
			{ID: "player-1", Crystals: map[mana.Color]int{}, HandLimit: 5, Position: origin},
			{ID: "player-2", Crystals: map[mana.Color]int{}, HandLimit: 5, Position: origin},
		},
		Map: state.Map{Hexes: []state.Hex{
			{Key: origin, Terrain: state.TerrainPlains},
			{Key: state.KeyOf(spatial.CubeCoordinate{X: 1, Y: 0, Z: -1}), Terrain: state.TerrainPlains},
			{Key: state.KeyOf(spatial.CubeCoordinate{X: 0, Y: 1, Z: -1}), Terrain: state.TerrainLake},
		}},
	}
}

func check(g *state.GameState, playerID string, a action.Action) *validate.Context {
	return &validate.Context{
		State:    g,
		Tables:   content.Tables(),
		PlayerID: playerID,
		Action:   a,
	}
}

func TestCheck_PlayerNotFound(t *testing.T) {
	g := baseState()
	err := validate.Check(check(&g, "ghost", action.EndTurn{}))
	require.Error(t, err)
	assert.Equal(t, validate.CodePlayerNotFound, err.Code)
}

func TestCheck_NotYourTurn(t *testing.T) {
	g := baseState()
	err := validate.Check(check(&g, "player-2", action.EndTurn{}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeNotYourTurn, err.Code)
}

func TestCheck_MoveValidation(t *testing.T) {
	g := baseState()
	g.Players[0].MovePoints = 1
	err := validate.Check(check(&g, "player-1", action.Move{To: spatial.CubeCoordinate{X: 1, Y: 0, Z: -1}}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeInsufficientMovePoints, err.Code)

	g.Players[0].MovePoints = 2
	assert.Nil(t, validate.Check(check(&g, "player-1", action.Move{To: spatial.CubeCoordinate{X: 1, Y: 0, Z: -1}})))

	err = validate.Check(check(&g, "player-1", action.Move{To: spatial.CubeCoordinate{X: 2, Y: -1, Z: -1}}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeTargetNotAdjacent, err.Code)

	g.Players[0].MovePoints = 10
	err = validate.Check(check(&g, "player-1", action.Move{To: spatial.CubeCoordinate{X: 0, Y: 1, Z: -1}}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeTerrainImpassable, err.Code)
}

func TestCheck_PendingGateBlocksOtherActions(t *testing.T) {
	g := baseState()
	g.Players[0].Pending.Choice = &state.PendingChoice{}

	err := validate.Check(check(&g, "player-1", action.EndTurn{}))
	require.Error(t, err)
	assert.Equal(t, validate.CodePendingResolution, err.Code)

	// And resolving a gate that is not open fails the other way.
	g.Players[0].Pending.Choice = nil
	err = validate.Check(check(&g, "player-1", action.ResolveChoice{ChoiceIndex: 0}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeNoPendingResolution, err.Code)
}

func TestCheck_WoundNotPlayable(t *testing.T) {
	g := baseState()
	g.Players[0].Hand = []state.CardInstance{{ID: "w1", Ref: refs.Card("wound")}}

	err := validate.Check(check(&g, "player-1", action.PlayCardSideways{CardID: "w1", As: action.SidewaysMove}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeWoundNotPlayable, err.Code)

	err = validate.Check(check(&g, "player-1", action.PlayCard{CardID: "missing"}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeCardNotInHand, err.Code)
}

func TestCheck_TacticSelection(t *testing.T) {
	g := baseState()
	g.RoundPhase = state.PhaseTacticsSelection
	g.CurrentTacticSelector = "player-1"
	g.AvailableTactics = content.Tables().AllTactics(true)

	assert.Nil(t, validate.Check(check(&g, "player-1", action.SelectTactic{TacticRef: refs.Tactic("early_bird")})))

	err := validate.Check(check(&g, "player-2", action.SelectTactic{TacticRef: refs.Tactic("early_bird")}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeNotYourTacticPick, err.Code)

	err = validate.Check(check(&g, "player-1", action.SelectTactic{TacticRef: refs.Tactic("sparing_power")}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeTacticNotAvailable, err.Code, "night tactic during day is unavailable")
}

func TestCheck_AnnounceEndOfRound(t *testing.T) {
	g := baseState()
	g.Players[0].Deck = []state.CardInstance{{ID: "m1", Ref: refs.Card("march")}}
	err := validate.Check(check(&g, "player-1", action.AnnounceEndOfRound{}))
	require.Error(t, err, "deck must be empty to announce")

	g.Players[0].Deck = nil
	assert.Nil(t, validate.Check(check(&g, "player-1", action.AnnounceEndOfRound{})))

	g.EndOfRoundAnnouncedBy = "player-2"
	err = validate.Check(check(&g, "player-1", action.AnnounceEndOfRound{}))
	require.Error(t, err)
	assert.Equal(t, validate.CodeEndOfRoundAnnounced, err.Code)
}
