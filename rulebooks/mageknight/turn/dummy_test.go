package turn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/content"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/refs"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/turn"
)

func TestComputeDummyPlan_BonusOnColorMatch(t *testing.T) {
	tables := content.Tables()
	// Deck: two colorless-ish (white/blue) cards, a red third card, then
	// three more. Crystals: 2 red, so red is dominant.
	d := &state.DummyState{
		Deck: []state.CardInstance{
			{ID: "c1", Ref: refs.Card("swiftness")},  // white
			{ID: "c2", Ref: refs.Card("stamina")},    // blue
			{ID: "c3", Ref: refs.Card("rage")},       // red: matches
			{ID: "c4", Ref: refs.Card("march")},
			{ID: "c5", Ref: refs.Card("promise")},
			{ID: "c6", Ref: refs.Card("crystallize")},
		},
		Crystals: map[mana.Color]int{mana.Red: 2},
	}

	plan := turn.ComputeDummyPlan(tables, d)
	require.Len(t, plan, 2)

	assert.Equal(t, 3, plan[0].CardsFlipped)
	assert.Equal(t, 2, plan[0].BonusFlipped)
	assert.Equal(t, mana.Red, plan[0].MatchedColor)
	assert.Equal(t, 1, plan[0].DeckRemainingAfter)

	assert.Equal(t, 1, plan[1].CardsFlipped)
	assert.Equal(t, 0, plan[1].BonusFlipped)
	assert.Equal(t, mana.Color(""), plan[1].MatchedColor)
	assert.Equal(t, 0, plan[1].DeckRemainingAfter)
}

func TestComputeDummyPlan_NoCrystalsNoBonus(t *testing.T) {
	tables := content.Tables()
	d := &state.DummyState{
		Deck: []state.CardInstance{
			{ID: "c1", Ref: refs.Card("rage")},
			{ID: "c2", Ref: refs.Card("rage")},
			{ID: "c3", Ref: refs.Card("rage")},
		},
		Crystals: map[mana.Color]int{},
	}
	plan := turn.ComputeDummyPlan(tables, d)
	require.Len(t, plan, 1)
	assert.Zero(t, plan[0].BonusFlipped)
	assert.Equal(t, mana.Color(""), plan[0].MatchedColor)
}
