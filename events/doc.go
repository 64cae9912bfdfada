// Package events provides a game-agnostic event bus for loose coupling between
// toolkit components and game systems without requiring direct dependencies.
//
// Purpose:
// This package enables components to communicate without direct dependencies,
// supporting observable and extensible game systems through event-driven
// architecture. It allows the toolkit to remain decoupled while still
// coordinating complex interactions.
//
// Scope:
//   - Event bus implementation with pub/sub pattern
//   - Event interface and base types
//   - Typed event support with generics
//   - Event filtering and routing capabilities
//   - Synchronous event delivery (same goroutine)
//   - Event metadata and correlation
//   - No game-specific event types
//
// Non-Goals:
//   - Game event definitions: Define these in your game implementation
//   - Event persistence: Use external storage if needed
//   - Network transport: This is for in-process events only
//   - Async delivery: Events are delivered synchronously
//   - Event ordering guarantees: No order guarantees between subscribers
//   - Event replay: No built-in event sourcing
//   - Dead letter handling: A failed handler's error is returned from Publish, not retried
//
// Integration:
// This package is used throughout the toolkit for:
//   - spatial: Movement and room transition events
//   - rulebooks/mageknight/event: the engine's game-event recorder bridge
//
// Games subscribe to toolkit events and publish their own domain events.
// This creates a clean boundary between infrastructure and game logic.
//
// Example:
//
//	var MovedTopic = events.DefineTypedTopic[MovedEventData]("entity.moved")
//
//	bus := events.NewBus()
//	moves := MovedTopic.On(bus)
//
//	// Subscribe with a typed handler
//	_, err := moves.Subscribe(ctx, func(_ context.Context, e MovedEventData) error {
//	    fmt.Printf("Entity %s moved from %v to %v\n", e.EntityID, e.From, e.To)
//	    return nil
//	})
//
//	// Publish from toolkit components
//	err = moves.Publish(ctx, MovedEventData{
//	    EntityID: "goblin-1",
//	    From:     Position{10, 10},
//	    To:       Position{15, 10},
//	})
package events
