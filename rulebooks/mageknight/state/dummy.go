package state

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
)

// DummyTurn is one precomputed turn of the solo dummy player's plan.
type DummyTurn struct {
	CardsFlipped       int
	BonusFlipped       int
	MatchedColor       mana.Color // "" when the third card matched nothing
	DeckRemainingAfter int
}

// DummyState is the deterministic solo opponent: a 16-card deck played
// by a precomputed plan, recomputed at each new round after reshuffle.
type DummyState struct {
	Deck           []CardInstance
	Discard        []CardInstance
	Crystals       map[mana.Color]int
	SelectedTactic *core.Ref
	Plan           []DummyTurn
	NextTurnIndex  int
}

// DominantColor is the color with the most crystals; ties resolve in
// basic-color order so the plan is deterministic.
func (d *DummyState) DominantColor() mana.Color {
	best := mana.Color("")
	bestCount := 0
	for _, c := range mana.BasicColors {
		if d.Crystals[c] > bestCount {
			best = c
			bestCount = d.Crystals[c]
		}
	}
	return best
}

func (d *DummyState) clone() *DummyState {
	if d == nil {
		return nil
	}
	next := &DummyState{
		Deck:           cloneCards(d.Deck),
		Discard:        cloneCards(d.Discard),
		SelectedTactic: d.SelectedTactic,
		Plan:           append([]DummyTurn(nil), d.Plan...),
		NextTurnIndex:  d.NextTurnIndex,
	}
	next.Crystals = make(map[mana.Color]int, len(d.Crystals))
	for _, c := range mana.BasicColors {
		if v, ok := d.Crystals[c]; ok {
			next.Crystals[c] = v
		}
	}
	return next
}
