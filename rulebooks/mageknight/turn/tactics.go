// Package turn implements the turn and round lifecycle: tactics
// selection and turn ordering, the end-of-turn flow, round end and
// time-of-day transitions, and the solo dummy player. Functions follow
// the engine-wide transition shape: GameState in, cloned GameState plus
// events out.
package turn

import (
	"sort"

	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/resolve"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// SelectTactic applies one player's tactic pick, runs any immediate
// tactic effect, advances the selector, and closes the tactics phase
// when the last pick (including the dummy's) lands.
func SelectTactic(g state.GameState, tables catalog.Tables, playerID string, tacticRef *core.Ref) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event

	def, ok := tables.Tactic(tacticRef)
	if !ok {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "turn: unknown tactic %s", tacticRef)
	}
	p := next.PlayerByID(playerID)
	p.SelectedTactic = tacticRef
	p.TacticFlipped = false
	next.AvailableTactics = removeRef(next.AvailableTactics, tacticRef)
	evts = append(evts, event.New(event.TacticSelected, playerID).With("tactic", tacticRef.String()))

	if def.RequiresDecision {
		// Tactic decisions resolve through the standard choice gate so
		// the closed action set covers them: Mana Steal style tactics
		// pick one usable source die to claim for the round.
		opts := dieClaimOptions(&next, tacticRef)
		if len(opts) > 0 {
			p.Pending.Choice = &state.PendingChoice{Options: opts}
			evts = append(evts, event.New(event.ChoiceRequired, playerID).
				With("tactic", tacticRef.String()))
		}
	}
	if def.OnSelect != nil {
		res, err := resolve.Apply(next, tables, playerID, "", def.OnSelect)
		if err != nil {
			return g, nil, err
		}
		next = res.State
		evts = append(evts, res.Events...)
	}

	// Advance to the next selector in tactics order.
	advanced := false
	for i, id := range next.TacticsSelectionOrder {
		if id == playerID && i+1 < len(next.TacticsSelectionOrder) {
			next.CurrentTacticSelector = next.TacticsSelectionOrder[i+1]
			advanced = true
			break
		}
	}
	if !advanced {
		next.CurrentTacticSelector = ""
		if next.Dummy != nil {
			devts, err := dummyPickTactic(&next, tables)
			if err != nil {
				return g, nil, err
			}
			evts = append(evts, devts...)
		}
		cevts := closeTacticsPhase(&next, tables)
		evts = append(evts, cevts...)
	}
	return next, evts, nil
}

// dummyPickTactic draws the dummy's tactic uniformly from what remains.
func dummyPickTactic(g *state.GameState, tables catalog.Tables) ([]event.Event, error) {
	if len(g.AvailableTactics) == 0 {
		return nil, nil
	}
	roller := rng.FromState(g.RNG)
	roll, err := roller.Roll(len(g.AvailableTactics))
	if err != nil {
		return nil, rpgerr.Wrap(err, "turn: dummy tactic draw")
	}
	g.RNG = roller.ToState()
	pick := g.AvailableTactics[roll-1]
	g.Dummy.SelectedTactic = pick
	g.AvailableTactics = removeRef(g.AvailableTactics, pick)
	_ = tables
	return []event.Event{event.New(event.DummyTacticSelected, "").With("tactic", pick.String())}, nil
}

// closeTacticsPhase computes the round's turn order from the selected
// tactics' turn-order numbers ascending and opens player turns.
func closeTacticsPhase(g *state.GameState, tables catalog.Tables) []event.Event {
	type pick struct {
		playerID string
		order    int
	}
	picks := make([]pick, 0, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		def, ok := tables.Tactic(p.SelectedTactic)
		if !ok {
			continue
		}
		picks = append(picks, pick{playerID: p.ID, order: def.TurnOrder})
	}
	sort.Slice(picks, func(i, j int) bool { return picks[i].order < picks[j].order })

	g.TurnOrder = g.TurnOrder[:0]
	for _, pk := range picks {
		g.TurnOrder = append(g.TurnOrder, pk.playerID)
	}
	g.RoundPhase = state.PhasePlayerTurns
	g.CurrentPlayerIndex = 0

	evts := []event.Event{event.New(event.TacticsPhaseEnded, "")}
	if len(g.TurnOrder) > 0 {
		evts = append(evts, event.New(event.TurnStarted, g.TurnOrder[0]).
			With("round", g.RoundNumber))
	}
	return evts
}

// dieClaimOptions builds one choice option per usable source die,
// claiming it for the selecting player for the rest of the round.
func dieClaimOptions(g *state.GameState, tacticRef *core.Ref) []effect.ChoiceOption {
	var opts []effect.ChoiceOption
	for _, die := range g.Source.Dice {
		if die.TakenBy != "" {
			continue
		}
		if !mana.IsDieUsable(mana.Die{Color: die.Color, Depleted: die.Depleted}, g.IsDay()) {
			continue
		}
		opts = append(opts, effect.ChoiceOption{
			Label: "claim " + string(die.Color) + " die",
			Effect: effect.ApplyModifier{Spec: modifier.Modifier{
				Kind:         modifier.KindManaClaimSustained,
				Duration:     modifier.DurationRound,
				ClaimedDieID: die.ID,
				Source:       modifier.Source{Kind: modifier.SourceCard, RefValue: tacticRef.Value},
				Description:  "tactic claims a source die",
			}},
		})
	}
	return opts
}

func removeRef(refs []*core.Ref, target *core.Ref) []*core.Ref {
	out := refs[:0]
	for _, r := range refs {
		if r.String() != target.String() {
			out = append(out, r)
		}
	}
	return out
}
