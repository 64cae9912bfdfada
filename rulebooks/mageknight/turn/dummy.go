package turn

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// ComputeDummyPlan divides the dummy's deck into turns of three flipped
// cards. When the third card's color matches the dummy's dominant
// crystal color, min(crystalCount, remainingDeck) extra cards flip as a
// bonus. The plan is a pure function of deck order and crystals, so it
// is computed once per round and replayed deterministically.
func ComputeDummyPlan(tables catalog.Tables, d *state.DummyState) []state.DummyTurn {
	var plan []state.DummyTurn
	dominant := d.DominantColor()
	crystals := d.Crystals[dominant]

	pos := 0
	total := len(d.Deck)
	for pos < total {
		flip := 3
		if total-pos < flip {
			flip = total - pos
		}
		t := state.DummyTurn{CardsFlipped: flip}
		thirdIndex := pos + flip - 1
		if flip == 3 && dominant != "" && crystals > 0 {
			if def, ok := tables.Card(d.Deck[thirdIndex].Ref); ok && def.Color == dominant {
				remaining := total - (pos + flip)
				bonus := crystals
				if bonus > remaining {
					bonus = remaining
				}
				t.BonusFlipped = bonus
				t.MatchedColor = dominant
			}
		}
		pos += t.CardsFlipped + t.BonusFlipped
		t.DeckRemainingAfter = total - pos
		plan = append(plan, t)
	}
	return plan
}

// playDummyTurn executes the next planned turn: the planned cards move
// from the dummy's deck to its discard.
func playDummyTurn(g *state.GameState, tables catalog.Tables) []event.Event {
	d := g.Dummy
	if d == nil || d.NextTurnIndex >= len(d.Plan) {
		return nil
	}
	t := d.Plan[d.NextTurnIndex]
	d.NextTurnIndex++

	count := t.CardsFlipped + t.BonusFlipped
	if count > len(d.Deck) {
		count = len(d.Deck)
	}
	flipped := d.Deck[:count]
	d.Deck = d.Deck[count:]
	d.Discard = append(d.Discard, flipped...)

	evt := event.New(event.TurnEnded, "").
		With("dummy", true).
		With("cardsFlipped", t.CardsFlipped).
		With("bonusFlipped", t.BonusFlipped).
		With("deckRemaining", len(d.Deck))
	_ = tables
	return []event.Event{evt}
}
