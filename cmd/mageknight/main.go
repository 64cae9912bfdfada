// Command mageknight wires an Engine against the sample content
// catalog and replays a short scripted opening, printing the emitted
// event stream. It exists to demonstrate the wiring, not to play the
// game; real clients drive the engine over their own transport.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/content"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/engine"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/refs"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
	"github.com/mage-knight-digital/MageKnight-sub011/tools/spatial"
)

func main() {
	seed := flag.Int64("seed", 123, "game seed")
	flag.Parse()

	eng, err := engine.New(engine.Config{Tables: content.Tables()})
	if err != nil {
		log.Fatal(err)
	}

	scenario := state.ScenarioConfig{
		Name:      "first-reconnaissance",
		Rounds:    6,
		SoloDummy: true,
		CountrysideTiles: []*core.Ref{
			refs.Tile("countryside-1"), refs.Tile("countryside-2"),
			refs.Tile("countryside-3"), refs.Tile("countryside-4"),
		},
		CoreTiles: []*core.Ref{refs.Tile("core-1"), refs.Tile("core-2")},
	}

	g, evts, err := eng.InitialState(*seed, scenario, []*core.Ref{refs.Hero("arythea")})
	if err != nil {
		log.Fatal(err)
	}
	printEvents(evts)

	playerID := g.Players[0].ID
	g = step(eng, g, playerID, action.SelectTactic{TacticRef: refs.Tactic("early_bird")})

	// Play every basic-playable card, then move if the points cover it.
	for {
		va := eng.GetValidActions(g, playerID)
		if va.Mode == "pending_choice" {
			g = step(eng, g, playerID, action.ResolveChoice{ChoiceIndex: 0})
			continue
		}
		if va.Mode != "normal_turn" || len(va.Normal.PlayableCards) == 0 {
			break
		}
		played := false
		for _, pc := range va.Normal.PlayableCards {
			if pc.CanPlayBasic {
				g = step(eng, g, playerID, action.PlayCard{CardID: pc.CardID})
				played = true
				break
			}
		}
		if !played {
			break
		}
	}
	if p := g.PlayerByID(playerID); p != nil && p.MovePoints >= 2 {
		g = step(eng, g, playerID, action.Move{To: spatial.CubeCoordinate{X: 1, Y: 0, Z: -1}})
	}
	g = step(eng, g, playerID, action.EndTurn{})

	va := eng.GetValidActions(g, playerID)
	fmt.Printf("-- mode: %s\n", va.Mode)
}

func step(eng *engine.Engine, g state.GameState, playerID string, a action.Action) state.GameState {
	next, evts, err := eng.ProcessAction(g, playerID, a)
	if err != nil {
		log.Fatalf("%s: %v", a.Name(), err)
	}
	printEvents(evts)
	return next
}

func printEvents(evts []event.Event) {
	for _, e := range evts {
		fmt.Printf("%-28s %s\n", e.Kind, e.PlayerID)
	}
}
