// Package engine is the public API of the rules engine: one Engine per
// game instance, seeded initial-state construction, the
// validate-command-resolve pipeline behind ProcessAction, valid-actions
// computation, and the hidden-information client view.
package engine

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/dice"
	"github.com/mage-knight-digital/MageKnight-sub011/events"
	"github.com/mage-knight-digital/MageKnight-sub011/gamectx"
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/command"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/validactions"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/validate"
	"github.com/mage-knight-digital/MageKnight-sub011/tools/spatial"
)

// Config carries the external collaborators an Engine needs.
type Config struct {
	// Tables is the read-only content catalog (required).
	Tables catalog.Tables
	// Bus optionally mirrors emitted events for out-of-engine sinks.
	Bus events.EventBus
	// Roller is reserved for non-replay tooling; gameplay randomness
	// always flows through the state's seeded RNG regardless.
	Roller dice.Roller
}

// Engine drives one game instance. The engine itself holds no game
// state beyond the per-game command log; the GameState is an argument
// and return value everywhere.
type Engine struct {
	tables catalog.Tables
	bus    events.EventBus
	stack  command.Stack
}

// New constructs an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Tables == nil {
		return nil, rpgerr.New(rpgerr.CodeInvalidArgument, "engine: config needs Tables")
	}
	return &Engine{tables: cfg.Tables, bus: cfg.Bus}, nil
}

// ProcessAction validates and executes one player intent. Invalid
// intents emit INVALID_ACTION and return the state unchanged. Engine
// invariant violations are returned as errors; the caller should treat
// the instance as corrupted and reload from its event log.
func (e *Engine) ProcessAction(g state.GameState, playerID string, a action.Action) (st state.GameState, evts []event.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			st = g
			evts = nil
			err = rpgerr.Newf(rpgerr.CodeInternal, "engine: invariant violation in %s: %v", a.Name(), r)
		}
	}()

	if _, isUndo := a.(action.Undo); isUndo {
		return e.undo(g, playerID)
	}

	vctx := &validate.Context{
		State:    &g,
		Tables:   e.tables,
		Game:     e.gameContext(&g),
		PlayerID: playerID,
		Action:   a,
	}
	if verr := validate.Check(vctx); verr != nil {
		rec := e.recorder()
		rec.Emit(event.New(event.InvalidAction, playerID).
			With("action", a.Name()).
			With("code", string(verr.Code)).
			With("message", verr.Message))
		if verr.Code == validate.CodeBlockInsufficient {
			rec.Emit(event.New(event.BlockFailed, playerID).With("action", a.Name()))
		}
		return g, rec.Events(), nil
	}

	cmd := command.ForAction(e.tables, &g, playerID, a)
	next, cmdEvts, err := e.stack.Execute(g, cmd)
	if err != nil {
		return g, nil, err
	}
	rec := e.recorder()
	rec.EmitAll(cmdEvts)
	return next, rec.Events(), nil
}

func (e *Engine) undo(g state.GameState, playerID string) (state.GameState, []event.Event, error) {
	rec := e.recorder()
	prev, evts, failure := e.stack.Undo(playerID)
	if failure != command.UndoOK {
		rec.Emit(event.New(event.UndoFailed, playerID).With("reason", string(failure)))
		return g, rec.Events(), nil
	}
	rec.EmitAll(evts)
	return prev, rec.Events(), nil
}

// GetValidActions enumerates the legal actions for (state, player).
func (e *Engine) GetValidActions(g state.GameState, playerID string) validactions.ValidActions {
	return validactions.Compute(&g, e.tables, playerID)
}

func (e *Engine) recorder() *event.Recorder {
	if e.bus != nil {
		return event.NewRecorderWithBus(e.bus)
	}
	return event.NewRecorder()
}

// gameContext exposes the state's players and combat enemies as the
// registries validator predicates consume.
func (e *Engine) gameContext(g *state.GameState) *gamectx.GameContext {
	return gamectx.NewGameContext(gamectx.GameContextConfig{
		PlayerRegistry: &playerRegistry{g: g},
		EnemyRegistry:  &enemyRegistry{g: g},
	})
}

type playerRegistry struct{ g *state.GameState }

func (r *playerRegistry) GetPlayer(id string) interface{} {
	if p := r.g.PlayerByID(id); p != nil {
		return p
	}
	return nil
}

type enemyRegistry struct{ g *state.GameState }

func (r *enemyRegistry) GetEnemy(id string) interface{} {
	if r.g.Combat == nil {
		return nil
	}
	if enemy := r.g.Combat.EnemyByInstanceID(id); enemy != nil {
		return enemy
	}
	return nil
}

// InitialState builds the deterministic opening position from a seed,
// a scenario, and the chosen heroes.
func (e *Engine) InitialState(seed int64, scenario state.ScenarioConfig, heroes []*core.Ref) (state.GameState, []event.Event, error) {
	if len(heroes) == 0 || len(heroes) > 4 {
		return state.GameState{}, nil, rpgerr.New(rpgerr.CodeInvalidArgument, "engine: 1-4 heroes")
	}
	roller := rng.New(seed, 0)

	g := state.GameState{
		RoundNumber: 1,
		TimeOfDay:   state.Day,
		RoundPhase:  state.PhaseTacticsSelection,
		Scenario:    scenario,
	}

	for i, heroRef := range heroes {
		def, ok := e.tables.Hero(heroRef)
		if !ok {
			return state.GameState{}, nil, rpgerr.Newf(rpgerr.CodeInvalidArgument, "engine: unknown hero %s", heroRef)
		}
		playerID := fmt.Sprintf("player-%d", i+1)
		p := state.Player{
			ID:                  playerID,
			Hero:                heroRef,
			Armor:               def.Armor,
			HandLimit:           def.HandLimit,
			CommandTokens:       1,
			Level:               1,
			Crystals:            map[mana.Color]int{},
			RemainingHeroSkills: append([]*core.Ref(nil), def.Skills...),
			Position:            state.KeyOf(spatial.CubeCoordinate{X: 0, Y: 0, Z: 0}),
		}
		for j, cardRef := range def.StartingDeck {
			p.Deck = append(p.Deck, state.CardInstance{
				ID:  fmt.Sprintf("%s-%s-%d", cardRef.Value, playerID, j),
				Ref: cardRef,
			})
		}
		roller.Shuffle(len(p.Deck), func(a, b int) { p.Deck[a], p.Deck[b] = p.Deck[b], p.Deck[a] })
		for len(p.Hand) < def.StartingHand && len(p.Deck) > 0 {
			p.Hand = append(p.Hand, p.Deck[0])
			p.Deck = p.Deck[1:]
		}
		g.Players = append(g.Players, p)
		g.TurnOrder = append(g.TurnOrder, playerID)
		g.TacticsSelectionOrder = append(g.TacticsSelectionOrder, playerID)
	}
	g.CurrentTacticSelector = g.TacticsSelectionOrder[0]
	g.AvailableTactics = e.tables.AllTactics(true)

	buildEnemyPiles(&g, e.tables, roller)
	buildStartingMap(&g, roller)
	buildSource(&g, roller, len(g.Players))
	buildDecksAndOffers(&g, roller)

	if scenario.SoloDummy && len(g.Players) == 1 {
		buildDummy(&g, e.tables, roller)
	}

	g.RNG = roller.ToState()
	evts := []event.Event{
		event.New(event.GameStarted, "").With("seed", seed).With("players", len(g.Players)),
		event.New(event.RoundStarted, "").With("round", 1).With("timeOfDay", string(state.Day)),
	}
	return g, evts, nil
}
