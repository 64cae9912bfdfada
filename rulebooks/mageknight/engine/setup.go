package engine

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/turn"
	"github.com/mage-knight-digital/MageKnight-sub011/tools/spatial"
)

// enemyPileColors is the fixed order the token piles are built in.
var enemyPileColors = []string{"green", "grey", "brown", "violet", "white", "city"}

// buildStartingMap lays the scenario's opening geography: the portal
// hex, the first countryside corridor, and a keep at the corridor's
// end. Expansion slots ring the revealed edge.
func buildStartingMap(g *state.GameState, roller *rng.Seeded) {
	path := []spatial.CubeCoordinate{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: -1},
		{X: 2, Y: -1, Z: -1},
		{X: 3, Y: -2, Z: -1},
	}
	for _, c := range path {
		g.Map.Hexes = append(g.Map.Hexes, state.Hex{
			Key:     state.KeyOf(c),
			Terrain: state.TerrainPlains,
		})
	}

	keepCoord := spatial.CubeCoordinate{X: 4, Y: -3, Z: -1}
	keep := state.Hex{
		Key:     state.KeyOf(keepCoord),
		Terrain: state.TerrainHills,
		Site: &state.SiteState{
			Kind:      catalog.SiteKeep,
			Fortified: true,
		},
	}
	// The keep garrisons one face-down grey token, drawn now so the
	// reveal at combat entry is deterministic.
	if idx := g.EnemyPileByColor("grey"); idx >= 0 && len(g.EnemyTokens[idx].Pile.Draw) > 0 {
		pile := &g.EnemyTokens[idx].Pile
		roll, err := roller.Roll(len(pile.Draw))
		if err == nil {
			drawIdx := roll - 1
			keep.Site.GarrisonTokens = append(keep.Site.GarrisonTokens, pile.Draw[drawIdx])
			pile.Draw = append(pile.Draw[:drawIdx], pile.Draw[drawIdx+1:]...)
		}
	}
	g.Map.Hexes = append(g.Map.Hexes, keep)

	// Open slots along the frontier.
	for _, h := range g.Map.Hexes {
		coord, err := h.Key.Coord()
		if err != nil {
			continue
		}
		for _, n := range coord.GetNeighbors() {
			key := state.KeyOf(n)
			if _, taken := g.Map.HexAt(key); !taken && !g.Map.IsExpansionSlot(key) {
				g.Map.ExpansionSlots = append(g.Map.ExpansionSlots, key)
			}
		}
	}
}

// buildEnemyPiles shuffles every color pile from the catalog.
func buildEnemyPiles(g *state.GameState, tables catalog.Tables, roller *rng.Seeded) {
	for _, color := range enemyPileColors {
		refs := tables.EnemiesByColor(color)
		if len(refs) == 0 {
			continue
		}
		pile := state.TokenPile{Draw: append([]*core.Ref(nil), refs...)}
		roller.Shuffle(len(pile.Draw), func(a, b int) {
			pile.Draw[a], pile.Draw[b] = pile.Draw[b], pile.Draw[a]
		})
		g.EnemyTokens = append(g.EnemyTokens, state.EnemyPile{Color: color, Pile: pile})
	}
}

// buildSource rolls players+2 source dice.
func buildSource(g *state.GameState, roller *rng.Seeded, players int) {
	faces := []mana.Color{mana.Red, mana.Blue, mana.Green, mana.White, mana.Gold, mana.Black}
	count := players + 2
	for i := 0; i < count; i++ {
		roll, err := roller.Roll(len(faces))
		if err != nil {
			continue
		}
		color := faces[roll-1]
		g.Source.Dice = append(g.Source.Dice, state.SourceDie{
			ID:       fmt.Sprintf("die-%d", i+1),
			Color:    color,
			Depleted: !mana.IsDieUsable(mana.Die{Color: color}, g.IsDay()),
		})
	}
}

// buildDecksAndOffers shuffles the scenario's deck compositions and
// reveals the three card offers.
func buildDecksAndOffers(g *state.GameState, roller *rng.Seeded) {
	shuffle := func(in []*core.Ref) []*core.Ref {
		out := append([]*core.Ref(nil), in...)
		roller.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
		return out
	}
	g.Map.CountrysideDeck = shuffle(g.Scenario.CountrysideTiles)
	g.Map.CoreDeck = shuffle(g.Scenario.CoreTiles)
	g.Decks.AdvancedActions = shuffle(g.Scenario.AdvancedActionDeck)
	g.Decks.Spells = shuffle(g.Scenario.SpellDeck)
	g.Decks.Units = shuffle(g.Scenario.UnitDeck)
	g.Decks.Artifacts = shuffle(g.Scenario.ArtifactDeck)

	reveal := func(deck *[]*core.Ref, offer *[]*core.Ref, n int) {
		for i := 0; i < n && len(*deck) > 0; i++ {
			*offer = append(*offer, (*deck)[0])
			*deck = (*deck)[1:]
		}
	}
	reveal(&g.Decks.AdvancedActions, &g.Offers.AdvancedActions, 3)
	reveal(&g.Decks.Spells, &g.Offers.Spells, 3)
	reveal(&g.Decks.Units, &g.Offers.Units, 3)
}

// buildDummy seeds the solo opponent with a shuffled copy of the lead
// hero's starting deck and an empty crystal bank, then precomputes its
// first-round plan.
func buildDummy(g *state.GameState, tables catalog.Tables, roller *rng.Seeded) {
	hero := g.Players[0].Hero
	def, ok := tables.Hero(hero)
	if !ok {
		return
	}
	d := &state.DummyState{Crystals: map[mana.Color]int{}}
	for j, cardRef := range def.StartingDeck {
		d.Deck = append(d.Deck, state.CardInstance{
			ID:  fmt.Sprintf("%s-dummy-%d", cardRef.Value, j),
			Ref: cardRef,
		})
	}
	roller.Shuffle(len(d.Deck), func(a, b int) { d.Deck[a], d.Deck[b] = d.Deck[b], d.Deck[a] })
	d.Plan = turn.ComputeDummyPlan(tables, d)
	g.Dummy = d
}
