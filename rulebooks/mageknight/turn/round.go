package turn

import (
	"sort"

	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// endRound closes the round: dice reroll, round-modifier expiry,
// time-of-day flip, player deck reshuffle, dummy reshuffle and replan,
// and the next tactics phase.
func endRound(g *state.GameState, tables catalog.Tables) ([]event.Event, error) {
	evts := []event.Event{event.New(event.RoundEnded, "").With("round", g.RoundNumber)}
	roller := rng.FromState(g.RNG)

	// Flip day/night first so the reroll applies the new depletion rule.
	if g.TimeOfDay == state.Day {
		g.TimeOfDay = state.Night
	} else {
		g.TimeOfDay = state.Day
	}
	evts = append(evts, event.New(event.TimeOfDayChanged, "").With("timeOfDay", string(g.TimeOfDay)))

	// Reroll every untaken, unclaimed die.
	claimed := map[string]bool{}
	for _, m := range g.ActiveModifiers.All() {
		if m.Kind == modifier.KindManaClaimSustained && m.ClaimedDieID != "" {
			claimed[m.ClaimedDieID] = true
		}
	}
	for i := range g.Players {
		if id := g.Players[i].TacticState.StoredManaDieID; id != "" {
			claimed[id] = true
		}
	}
	for i := range g.Source.Dice {
		die := &g.Source.Dice[i]
		if die.TakenBy != "" || claimed[die.ID] {
			continue
		}
		roll, err := roller.Roll(len(dieFaces))
		if err != nil {
			return nil, err
		}
		die.Color = dieFaces[roll-1]
		die.Depleted = !mana.IsDieUsable(mana.Die{Color: die.Color}, g.IsDay())
	}
	evts = append(evts, event.New(event.ManaSourceReset, ""))

	g.ActiveModifiers, _ = g.ActiveModifiers.ExpireForRoundEnd()
	g.EndOfRoundAnnouncedBy = ""
	g.RoundNumber++

	// Every player reshuffles everything they own back into the deck
	// and draws a fresh hand.
	for i := range g.Players {
		p := &g.Players[i]
		all := append(append(append([]state.CardInstance{}, p.Deck...), p.Discard...), p.Hand...)
		all = append(all, p.PlayArea...)
		roller.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })
		p.Deck = all
		p.Hand = nil
		p.Discard = nil
		p.PlayArea = nil
		p.SelectedTactic = nil
		p.TacticFlipped = false
		p.TacticState = state.TacticState{}
		p.SkillFlipState = state.SkillFlipState{}
		for len(p.Hand) < p.HandLimit && len(p.Deck) > 0 {
			p.Hand = append(p.Hand, p.Deck[0])
			p.Deck = p.Deck[1:]
		}
	}

	// Dummy: combine and reshuffle, then recompute the plan.
	if g.Dummy != nil {
		all := append(append([]state.CardInstance{}, g.Dummy.Deck...), g.Dummy.Discard...)
		roller.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })
		g.Dummy.Deck = all
		g.Dummy.Discard = nil
		g.Dummy.SelectedTactic = nil
		g.Dummy.Plan = ComputeDummyPlan(tables, g.Dummy)
		g.Dummy.NextTurnIndex = 0
	}
	g.RNG = roller.ToState()

	// Scenario round cap ends the game instead of opening a new round.
	if g.Scenario.Rounds > 0 && g.RoundNumber > g.Scenario.Rounds {
		evts = append(evts, event.New(event.GameEnded, ""))
		g.RoundPhase = state.PhaseRoundEnd
		return evts, nil
	}

	evts = append(evts, startTacticsPhase(g, tables)...)
	return evts, nil
}

// startTacticsPhase opens the next round's tactic selection: the offer
// is refreshed for the time of day and players pick in ascending fame
// order.
func startTacticsPhase(g *state.GameState, tables catalog.Tables) []event.Event {
	g.RoundPhase = state.PhaseTacticsSelection
	g.AvailableTactics = tables.AllTactics(g.IsDay())

	order := make([]string, 0, len(g.Players))
	for i := range g.Players {
		order = append(order, g.Players[i].ID)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return g.PlayerByID(order[a]).Fame < g.PlayerByID(order[b]).Fame
	})
	g.TacticsSelectionOrder = order
	g.CurrentTacticSelector = order[0]

	return []event.Event{event.New(event.RoundStarted, "").
		With("round", g.RoundNumber).With("timeOfDay", string(g.TimeOfDay))}
}

func holdsWound(tables catalog.Tables, p *state.Player) bool {
	for _, c := range append(append([]state.CardInstance{}, p.Hand...), p.Discard...) {
		if def, ok := tables.Card(c.Ref); ok && def.IsWound {
			return true
		}
	}
	return false
}
