package turn

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// CrystalJoyCardID is the catalog index of the Crystal Joy card, whose
// end-of-turn reclaim offer is a scheduled site-check peer.
const CrystalJoyCardID = "crystal_joy"

// EndTurn runs the end-of-turn flow of the active player. When a
// scheduled site check installs a gate, the flow suspends: the returned
// completed flag is false, the gate must be resolved, and END_TURN
// reissued.
func EndTurn(g state.GameState, tables catalog.Tables, playerID string) (state.GameState, []event.Event, bool, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)

	// Step 1: scheduled site checks may suspend the whole flow.
	if gateEvts, suspended := runSiteChecks(&next, tables, p); suspended {
		return next, append(evts, gateEvts...), false, nil
	}

	// Step 2: play area empties into the discard.
	for _, c := range p.PlayArea {
		p.Discard = append(p.Discard, c)
		evts = append(evts, event.New(event.CardDiscarded, p.ID).With("card", c.ID).With("from", "play-area"))
	}
	p.PlayArea = nil

	// Step 3: draw back up. No mid-round reshuffle.
	limit := EndTurnDrawLimit(&next, p)
	for len(p.Hand) < limit && len(p.Deck) > 0 {
		card := p.Deck[0]
		p.Deck = p.Deck[1:]
		p.Hand = append(p.Hand, card)
		evts = append(evts, event.New(event.CardDrawn, p.ID).With("card", card.ID))
	}

	// Step 4: dice management.
	evts = append(evts, returnDice(&next, p)...)

	// Step 5: ring-artifact fame for spells of each ring's color.
	ringFame := 0
	for _, m := range modifier.OfKind(next.ActiveModifiers.ForPlayer(p.ID), modifier.KindEndlessMana) {
		if m.CreatedByPlayerID != p.ID {
			continue
		}
		for _, col := range m.Colors {
			c := mana.Color(col)
			if mana.IsBasic(c) {
				ringFame += p.SpellsCastOfColor(c)
			}
		}
	}
	if ringFame > 0 {
		p.Fame += ringFame
		evts = append(evts, event.New(event.FameGained, p.ID).
			With("amount", ringFame).With("source", "ring"))
	}

	// Step 6: Source Opening grants its owner a crystal when another
	// player spent the extra die this turn.
	if so := next.SourceOpeningCenter; so != nil && so.OwnerID != p.ID {
		for _, used := range p.UsedDieIDs {
			if used != so.ExtraDieID {
				continue
			}
			if die, ok := next.Source.DieByID(so.ExtraDieID); ok && mana.IsBasic(die.Color) {
				if owner := next.PlayerByID(so.OwnerID); owner != nil {
					count, _ := mana.AddCrystal(owner.Crystals[die.Color], 1)
					owner.Crystals[die.Color] = count
					evts = append(evts, event.New(event.CrystalGained, so.OwnerID).
						With("color", string(die.Color)).With("source", "source-opening"))
				}
			}
		}
	}

	// Steps 7-8: per-turn reset. Level-up reward gates block END_TURN at
	// the validator layer, so by here the queue is empty.
	evts = append(evts, resetPerTurn(&next, p)...)
	evts = append(evts, event.New(event.TurnEnded, p.ID))

	// Solo: the dummy takes its scripted turn after the human's.
	if next.Dummy != nil {
		evts = append(evts, playDummyTurn(&next, tables)...)
	}

	// Step 9: advance, or close the round.
	aevts, err := advanceTurn(&next, tables)
	if err != nil {
		return g, nil, false, err
	}
	evts = append(evts, aevts...)
	return next, evts, true, nil
}

// runSiteChecks installs the Magical Glade, mine, and Crystal Joy
// end-of-turn gates. Returns suspended=true when a gate now awaits a
// decision.
func runSiteChecks(g *state.GameState, tables catalog.Tables, p *state.Player) ([]event.Event, bool) {
	var evts []event.Event
	hex, ok := g.Map.HexAt(p.Position)
	if ok && hex.Site != nil {
		switch hex.Site.Kind {
		case catalog.SiteMagicGlade:
			if !p.GladeOfferedThisTurn && holdsWound(tables, p) {
				p.GladeOfferedThisTurn = true
				p.Pending.GladeWound = &state.PendingGladeWound{}
				evts = append(evts, event.New(event.ChoiceRequired, p.ID).With("gate", "glade-wound"))
				return evts, true
			}
		case catalog.SiteMine:
			colors := hex.Site.MineColors
			switch {
			case len(colors) == 1 && !p.MineOfferedThisTurn:
				p.MineOfferedThisTurn = true
				count, _ := mana.AddCrystal(p.Crystals[colors[0]], 1)
				p.Crystals[colors[0]] = count
				evts = append(evts, event.New(event.DeepMineCrystalGained, p.ID).
					With("color", string(colors[0])))
			case len(colors) > 1 && !p.MineOfferedThisTurn:
				p.MineOfferedThisTurn = true
				p.Pending.DeepMine = &state.PendingDeepMine{Colors: append([]mana.Color(nil), colors...)}
				evts = append(evts, event.New(event.ChoiceRequired, p.ID).With("gate", "deep-mine"))
				return evts, true
			}
		}
	}
	if p.Pending.CrystalJoyReclaim == nil {
		for _, c := range p.Discard {
			if c.Ref.Value == CrystalJoyCardID {
				p.Pending.CrystalJoyReclaim = &state.PendingCrystalJoyReclaim{CardID: c.ID}
				evts = append(evts, event.New(event.ChoiceRequired, p.ID).With("gate", "crystal-joy"))
				return evts, true
			}
		}
	}
	return evts, false
}

// EndTurnDrawLimit is the base hand limit plus one when the player's own
// hex holds a Keep (a Keep on an adjacent hex does not count), one for
// the Planning tactic when at least two cards remain in the deck, and
// any hand-limit modifiers.
func EndTurnDrawLimit(g *state.GameState, p *state.Player) int {
	limit := p.HandLimit
	if hex, ok := g.Map.HexAt(p.Position); ok && hex.Site != nil && hex.Site.Kind == catalog.SiteKeep {
		limit++
	}
	if p.TacticState.PlanningActive && len(p.Deck) >= 2 {
		limit++
	}
	for _, m := range modifier.OfKind(g.ActiveModifiers.ForPlayer(p.ID), modifier.KindHandLimitBonus) {
		limit += m.Amount
	}
	return limit
}

// returnDice rerolls dice spent on powering cards, returns Mana Draw
// dice unrerolled, and releases the player's taken dice except the
// Mana Steal stash and claim-sustained dice.
func returnDice(g *state.GameState, p *state.Player) []event.Event {
	var evts []event.Event
	roller := rng.FromState(g.RNG)
	rolled := false

	claimed := map[string]bool{}
	for _, m := range modifier.OfKind(g.ActiveModifiers.ForPlayer(p.ID), modifier.KindManaClaimSustained) {
		claimed[m.ClaimedDieID] = true
	}
	if p.TacticState.StoredManaDieID != "" {
		claimed[p.TacticState.StoredManaDieID] = true
	}

	manaDraw := map[string]bool{}
	for _, id := range p.ManaDrawDieIDs {
		manaDraw[id] = true
	}
	used := map[string]bool{}
	for _, id := range p.UsedDieIDs {
		used[id] = true
	}

	for i := range g.Source.Dice {
		die := &g.Source.Dice[i]
		if die.TakenBy != p.ID {
			continue
		}
		if claimed[die.ID] {
			continue
		}
		if used[die.ID] && !manaDraw[die.ID] {
			roll, err := roller.Roll(len(dieFaces))
			if err == nil {
				die.Color = dieFaces[roll-1]
				die.Depleted = !mana.IsDieUsable(mana.Die{Color: die.Color}, g.IsDay())
				rolled = true
			}
		}
		die.TakenBy = ""
		evts = append(evts, event.New(event.ManaDieReturned, p.ID).
			With("die", die.ID).With("color", string(die.Color)))
	}
	if rolled {
		g.RNG = roller.ToState()
	}
	return evts
}

// dieFaces is the source die's face distribution.
var dieFaces = []mana.Color{mana.Red, mana.Blue, mana.Green, mana.White, mana.Gold, mana.Black}

// resetPerTurn clears the player's turn-scoped fields and expires
// turn-duration modifiers, preserving round-persistent tactic state.
func resetPerTurn(g *state.GameState, p *state.Player) []event.Event {
	var evts []event.Event

	p.MovePoints = 0
	p.InfluencePoints = 0
	p.PureMana = nil
	p.HasMovedThisTurn = false
	p.HasTakenActionThisTurn = false
	p.HasCombattedThisTurn = false
	p.PlayedCardFromHandThisTurn = false
	p.HasPlunderedThisTurn = false
	p.HasRecruitedUnitThisTurn = false
	p.IsResting = false
	p.UsedManaFromSource = false
	p.GladeOfferedThisTurn = false
	p.MineOfferedThisTurn = false
	p.UsedDieIDs = nil
	p.ManaDrawDieIDs = nil
	p.ManaUsedThisTurn = nil
	p.SpellColorsCastThisTurn = nil
	p.EnemiesDefeatedThisTurn = nil
	p.UnitsRecruitedThisInteraction = nil
	p.UnitsHealedThisTurn = nil
	p.WoundsReceivedThisTurn = 0
	p.SpentCrystalsThisTurn = nil
	p.KnockedOut = false
	p.SkillCooldowns.UsedThisTurn = nil
	p.TacticState.ManaStealUsedThisTurn = false
	p.TacticState.ManaSearchUsedThisTurn = false
	p.CombatAccumulator = state.NewAccumulator()

	g.ActiveModifiers, _ = g.ActiveModifiers.ExpireForTurnEnd(p.ID)
	return evts
}

// advanceTurn moves to the next player, honoring announced round ends
// and scenario-end final turns.
func advanceTurn(g *state.GameState, tables catalog.Tables) ([]event.Event, error) {
	var evts []event.Event

	lastIndex := g.CurrentPlayerIndex == len(g.TurnOrder)-1
	roundClosing := g.EndOfRoundAnnouncedBy != "" || g.ScenarioEndTriggered

	if roundClosing && lastIndex {
		if g.ScenarioEndTriggered {
			g.FinalTurnsRemaining--
			if g.FinalTurnsRemaining <= 0 {
				evts = append(evts, event.New(event.GameEnded, ""))
				g.RoundPhase = state.PhaseRoundEnd
				return evts, nil
			}
		}
		revts, err := endRound(g, tables)
		if err != nil {
			return nil, err
		}
		return append(evts, revts...), nil
	}

	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.TurnOrder)
	nextID := g.TurnOrder[g.CurrentPlayerIndex]
	if p := g.PlayerByID(nextID); p != nil {
		g.ActiveModifiers, _ = g.ActiveModifiers.ExpireUntilNextTurnFor(nextID)
		p.SkillCooldowns.ActiveUntilNextTurn = nil
		if p.SelectedTactic != nil {
			p.BeforeTurnTacticPending = false
		}
	}
	evts = append(evts, event.New(event.TurnStarted, nextID).With("round", g.RoundNumber))
	return evts, nil
}
