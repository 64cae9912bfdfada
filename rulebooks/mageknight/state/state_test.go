package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/refs"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
	"github.com/mage-knight-digital/MageKnight-sub011/tools/spatial"
)

func TestHexKey_RoundTrip(t *testing.T) {
	coord := spatial.CubeCoordinate{X: 4, Y: -3, Z: -1}
	key := state.KeyOf(coord)
	back, err := key.Coord()
	require.NoError(t, err)
	assert.Equal(t, coord, back)
}

func TestAreAdjacent(t *testing.T) {
	origin := state.KeyOf(spatial.CubeCoordinate{X: 0, Y: 0, Z: 0})
	assert.True(t, state.AreAdjacent(origin, state.KeyOf(spatial.CubeCoordinate{X: 1, Y: 0, Z: -1})))
	assert.False(t, state.AreAdjacent(origin, state.KeyOf(spatial.CubeCoordinate{X: 2, Y: -1, Z: -1})))
}

func TestAccumulator(t *testing.T) {
	acc := state.NewAccumulator()
	acc = acc.AddAttack(effect.CombatMelee, effect.ElementPhysical, 3)
	acc = acc.AddAttack(effect.CombatRanged, effect.ElementFire, 2)
	acc = acc.AddBlock(effect.ElementIce, 4)

	assert.Equal(t, 3, acc.AttackTotal(effect.CombatMelee))
	assert.Equal(t, 5, acc.AttackTotal(effect.CombatMelee, effect.CombatRanged))
	assert.Equal(t, 2, acc.AttackOfElement(effect.ElementFire, effect.CombatRanged))
	assert.Equal(t, 4, acc.BlockTotal())
	assert.Equal(t, 4, acc.BlockOfElement(effect.ElementIce))

	// Negative adds clamp at zero.
	acc = acc.AddBlock(effect.ElementIce, -10)
	assert.Equal(t, 0, acc.BlockOfElement(effect.ElementIce))
}

func TestPending_ActiveGatePriority(t *testing.T) {
	var p state.Pending
	assert.Equal(t, state.GateNone, p.ActiveGate())

	p.Choice = &state.PendingChoice{}
	assert.Equal(t, state.GateChoice, p.ActiveGate())

	// Site gates outrank a choice.
	p.GladeWound = &state.PendingGladeWound{}
	assert.Equal(t, state.GateGladeWound, p.ActiveGate())

	p = state.Pending{LevelUpRewards: []state.PendingLevelUp{{Level: 2}}}
	assert.Equal(t, state.GateLevelUp, p.ActiveGate())
	assert.False(t, p.HasExclusiveGate())

	p.Discard = &state.PendingDiscard{Count: 1}
	assert.True(t, p.HasExclusiveGate())
}

func TestClone_Independence(t *testing.T) {
	g := state.GameState{
		Players: []state.Player{{
			ID:       "player-1",
			Crystals: map[mana.Color]int{mana.Red: 2},
			Hand: []state.CardInstance{
				{ID: "march-player-1-0", Ref: refs.Card("march")},
			},
		}},
		Source: state.Source{Dice: []state.SourceDie{{ID: "die-1", Color: mana.Red}}},
		Map: state.Map{Hexes: []state.Hex{{
			Key:     state.KeyOf(spatial.CubeCoordinate{X: 0, Y: 0, Z: 0}),
			Terrain: state.TerrainPlains,
			Site:    &state.SiteState{Kind: "keep", Garrison: []string{"enemy-1"}},
		}}},
	}

	clone := g.Clone()
	clone.Players[0].Crystals[mana.Red] = 0
	clone.Players[0].Hand[0].ID = "changed"
	clone.Source.Dice[0].TakenBy = "player-1"
	clone.Map.Hexes[0].Site.Garrison[0] = "changed"

	assert.Equal(t, 2, g.Players[0].Crystals[mana.Red])
	assert.Equal(t, "march-player-1-0", g.Players[0].Hand[0].ID)
	assert.Empty(t, g.Source.Dice[0].TakenBy)
	assert.Equal(t, "enemy-1", g.Map.Hexes[0].Site.Garrison[0])
}

func TestCombatState_Queries(t *testing.T) {
	c := &state.CombatState{
		PlayerID: "player-1",
		Phase:    state.CombatBlock,
		Enemies: []state.EnemyInstance{
			{InstanceID: "e1", Blocked: []bool{true}},
			{InstanceID: "e2", IsDefeated: true},
		},
	}
	assert.Len(t, c.AliveEnemies(), 1)
	assert.False(t, c.AllDefeated())
	assert.True(t, c.EnemyByInstanceID("e1").IsBlockedAt(0))
	assert.Nil(t, c.EnemyByInstanceID("missing"))

	c.Enemies[0].IsDefeated = true
	assert.True(t, c.AllDefeated())
}

func TestNextCombatPhase(t *testing.T) {
	order := []state.CombatPhase{
		state.CombatEnter, state.CombatRangedSiege, state.CombatBlock,
		state.CombatAssignDamage, state.CombatAttack, state.CombatResolution,
	}
	for i := 0; i < len(order)-1; i++ {
		next, ok := state.NextCombatPhase(order[i])
		require.True(t, ok)
		assert.Equal(t, order[i+1], next)
	}
	_, ok := state.NextCombatPhase(state.CombatResolution)
	assert.False(t, ok)
}

func TestDummyState_DominantColor(t *testing.T) {
	d := &state.DummyState{Crystals: map[mana.Color]int{mana.Blue: 1, mana.Green: 3}}
	assert.Equal(t, mana.Green, d.DominantColor())

	empty := &state.DummyState{Crystals: map[mana.Color]int{}}
	assert.Equal(t, mana.Color(""), empty.DominantColor())
}
