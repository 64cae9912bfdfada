package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/content"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/refs"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/resolve"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

func testState() state.GameState {
	return state.GameState{
		RNG:        rng.State{Seed: 7},
		RoundPhase: state.PhasePlayerTurns,
		TimeOfDay:  state.Day,
		TurnOrder:  []string{"player-1"},
		Players: []state.Player{{
			ID:        "player-1",
			Crystals:  map[mana.Color]int{},
			HandLimit: 5,
			Level:     1,
		}},
	}
}

func card(id, instance string) state.CardInstance {
	return state.CardInstance{ID: instance, Ref: refs.Card(id)}
}

func TestApply_GainMoveAndInfluence(t *testing.T) {
	tables := content.Tables()
	g := testState()

	res, err := resolve.Apply(g, tables, "player-1", "", effect.Compound{Effects: []effect.Effect{
		effect.GainMove{Amount: 2},
		effect.GainInfluence{Amount: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, resolve.StatusResolved, res.Status)
	assert.Equal(t, 2, res.State.Players[0].MovePoints)
	assert.Equal(t, 3, res.State.Players[0].InfluencePoints)

	// The input state is untouched.
	assert.Zero(t, g.Players[0].MovePoints)
}

func TestApply_CrystalOverflowBecomesToken(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.Players[0].Crystals[mana.Red] = 2

	res, err := resolve.Apply(g, tables, "player-1", "", effect.GainCrystal{Color: mana.Red, Amount: 3})
	require.NoError(t, err)

	p := res.State.Players[0]
	assert.Equal(t, mana.MaxCrystals, p.Crystals[mana.Red])
	require.Len(t, p.PureMana, 2)
	assert.Equal(t, mana.Red, p.PureMana[0].Color)
}

func TestApply_HealingHandFirstThenDiscard(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.Players[0].Hand = []state.CardInstance{card("wound", "w1"), card("march", "m1")}
	g.Players[0].Discard = []state.CardInstance{card("wound", "w2")}

	res, err := resolve.Apply(g, tables, "player-1", "", effect.GainHealing{Amount: 3})
	require.NoError(t, err)

	p := res.State.Players[0]
	assert.Len(t, p.Hand, 1)
	assert.Empty(t, p.Discard)
	assert.Len(t, p.RemovedCards, 2)

	healed := 0
	for _, e := range res.Events {
		if e.Kind == event.WoundHealed {
			healed++
		}
	}
	assert.Equal(t, 2, healed, "healing beyond wounds is wasted")
}

func TestApply_DrawStopsAtEmptyDeck(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.Players[0].Deck = []state.CardInstance{card("march", "m1")}

	res, err := resolve.Apply(g, tables, "player-1", "", effect.DrawCards{Count: 3})
	require.NoError(t, err)
	assert.Len(t, res.State.Players[0].Hand, 1)
	assert.Empty(t, res.State.Players[0].Deck)
}

func TestApply_ConditionalUsesTimeOfDay(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.TimeOfDay = state.Night

	res, err := resolve.Apply(g, tables, "player-1", "", effect.Conditional{
		Predicate: effect.IsDay{},
		Then:      effect.GainMove{Amount: 5},
		Else:      effect.GainMove{Amount: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.State.Players[0].MovePoints)
}

func TestApply_ChoiceSuspendsAndResumes(t *testing.T) {
	tables := content.Tables()
	g := testState()

	choice := effect.Choice{Options: []effect.ChoiceOption{
		{Label: "move", Effect: effect.GainMove{Amount: 2}},
		{Label: "influence", Effect: effect.GainInfluence{Amount: 2}},
	}}
	res, err := resolve.Apply(g, tables, "player-1", "", effect.Compound{Effects: []effect.Effect{
		choice,
		effect.GainMove{Amount: 1}, // deferred until the choice resolves
	}})
	require.NoError(t, err)
	assert.Equal(t, resolve.StatusRequiresChoice, res.Status)
	require.NotNil(t, res.State.Players[0].Pending.Choice)
	assert.Len(t, res.State.Players[0].Pending.Choice.Remaining, 1)
	assert.Zero(t, res.State.Players[0].MovePoints)

	resumed, err := resolve.ResumeChoice(res.State, tables, "player-1", 1)
	require.NoError(t, err)
	assert.Equal(t, resolve.StatusResolved, resumed.Status)
	p := resumed.State.Players[0]
	assert.Equal(t, 2, p.InfluencePoints)
	assert.Equal(t, 1, p.MovePoints, "deferred tail resolves after the choice")
	assert.Nil(t, p.Pending.Choice)
}

func TestApply_ChoiceAutoResolvesSoleOption(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.Players[0].Deck = []state.CardInstance{card("march", "m1")}

	// Healing is unresolvable with no wounds, so draw is the sole live
	// option and it cannot suspend: auto-resolve.
	res, err := resolve.Apply(g, tables, "player-1", "", effect.Choice{Options: []effect.ChoiceOption{
		{Label: "heal", Effect: effect.GainHealing{Amount: 1}},
		{Label: "draw", Effect: effect.DrawCards{Count: 1}},
	}})
	require.NoError(t, err)
	assert.Equal(t, resolve.StatusResolved, res.Status)
	assert.Len(t, res.State.Players[0].Hand, 1)
	assert.Nil(t, res.State.Players[0].Pending.Choice)
}

func TestApply_DiscardCostFlow(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.Players[0].Hand = []state.CardInstance{
		card("druidic_staff", "staff1"),
		card("crystallize", "c1"),
		card("wound", "w1"),
	}

	staff, ok := tables.Card(refs.Card("druidic_staff"))
	require.True(t, ok)

	res, err := resolve.Apply(g, tables, "player-1", "staff1", staff.Basic)
	require.NoError(t, err)
	assert.Equal(t, resolve.StatusRequiresDiscard, res.Status)
	require.NotNil(t, res.State.Players[0].Pending.Discard)

	// Resolving with the crystallize card triggers the crystal color
	// choice.
	after, err := resolve.ResumeDiscard(res.State, tables, "player-1", []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, resolve.StatusRequiresChoice, after.Status)
	require.NotNil(t, after.State.Players[0].Pending.Choice)
	assert.Len(t, after.State.Players[0].Pending.Choice.Options, 4)

	// Option 0 grants two red crystals.
	final, err := resolve.ResumeChoice(after.State, tables, "player-1", 0)
	require.NoError(t, err)
	assert.Equal(t, resolve.StatusResolved, final.Status)
	assert.GreaterOrEqual(t, final.State.Players[0].Crystals[mana.Red], 2)
	assert.Nil(t, final.State.Players[0].Pending.Choice)
}

func TestResumeDiscard_RejectsWoundForFilteredCost(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.Players[0].Hand = []state.CardInstance{card("wound", "w1"), card("march", "m1")}
	g.Players[0].Pending.Discard = &state.PendingDiscard{
		Count:        1,
		FilterWounds: true,
		Then:         effect.GainMove{Amount: 1},
	}

	_, err := resolve.ResumeDiscard(g, tables, "player-1", []string{"w1"})
	assert.Error(t, err)
}

func TestApply_ScalingPerWound(t *testing.T) {
	tables := content.Tables()
	g := testState()
	g.Combat = &state.CombatState{PlayerID: "player-1", Phase: state.CombatAttack}
	g.Players[0].Hand = []state.CardInstance{card("wound", "w1"), card("wound", "w2")}

	res, err := resolve.Apply(g, tables, "player-1", "", effect.Scaling{
		Base:  effect.GainAttack{Amount: 2, Element: effect.ElementPhysical, CombatType: effect.CombatMelee},
		Basis: effect.PerWoundInHand,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.State.Players[0].CombatAccumulator.AttackTotal(effect.CombatMelee))
}

func TestApply_FameTriggersLevelUp(t *testing.T) {
	tables := content.Tables()
	g := testState()

	res, err := resolve.Apply(g, tables, "player-1", "", effect.GainFame{Amount: 3})
	require.NoError(t, err)
	p := res.State.Players[0]
	assert.Equal(t, 2, p.Level)
	require.Len(t, p.Pending.LevelUpRewards, 1)
	assert.Equal(t, 2, p.Pending.LevelUpRewards[0].Level)
}

func TestLevelForFame(t *testing.T) {
	assert.Equal(t, 1, resolve.LevelForFame(0))
	assert.Equal(t, 2, resolve.LevelForFame(3))
	assert.Equal(t, 3, resolve.LevelForFame(8))
	assert.Equal(t, 4, resolve.LevelForFame(20))
	assert.Equal(t, 5, resolve.LevelForFame(21))
}

func TestCanResolve_CombatGating(t *testing.T) {
	tables := content.Tables()
	g := testState()

	attack := effect.GainAttack{Amount: 2, Element: effect.ElementPhysical, CombatType: effect.CombatMelee}
	assert.False(t, resolve.CanResolve(&g, tables, "player-1", attack))

	g.Combat = &state.CombatState{PlayerID: "player-1", Phase: state.CombatAttack}
	assert.True(t, resolve.CanResolve(&g, tables, "player-1", attack))

	g.Combat.Phase = state.CombatRangedSiege
	assert.False(t, resolve.CanResolve(&g, tables, "player-1", attack))
	ranged := effect.GainAttack{Amount: 2, Element: effect.ElementPhysical, CombatType: effect.CombatRanged}
	assert.True(t, resolve.CanResolve(&g, tables, "player-1", ranged))

	assert.False(t, resolve.CanResolve(&g, tables, "player-1", effect.GainMove{Amount: 2}),
		"move is irrelevant during combat")
}

func TestContainsSuspension(t *testing.T) {
	assert.True(t, resolve.ContainsSuspension(effect.DiscardCost{Count: 1}))
	assert.True(t, resolve.ContainsSuspension(effect.Compound{Effects: []effect.Effect{
		effect.GainMove{Amount: 1},
		effect.Choice{},
	}}))
	assert.False(t, resolve.ContainsSuspension(effect.GainMove{Amount: 1}))
}
