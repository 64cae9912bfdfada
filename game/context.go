// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package game

import (
	"errors"

	"github.com/mage-knight-digital/MageKnight-sub011/events"
)

// ErrEventBusRequired indicates a Context was constructed without a bus.
var ErrEventBusRequired = errors.New("eventBus is required")

// Context provides a consistent pattern for loading game entities from data.
// It combines the entity's data with the game infrastructure needed for runtime operations.
//
// The generic type T represents the data structure for the specific entity being loaded.
// For example: Context[RoomData], Context[CharacterData], etc.
//
// This pattern ensures:
//   - Consistent loading signatures across all entity types
//   - Self-contained data (T has everything needed to reconstruct the entity)
//   - Access to game infrastructure (event bus, future systems)
//   - Clean separation between data and behavior
//
// Fields are unexported so a Context constructed through NewContext is
// guaranteed valid for its whole lifetime.
type Context[T any] struct {
	// eventBus provides event-driven communication between game systems.
	// This allows entities to participate in the game's event ecosystem.
	eventBus events.EventBus

	// data contains all information needed to reconstruct the entity.
	// This should be self-contained with no external dependencies.
	data T

	// Future infrastructure can be added here as needed:
	// registry EntityRegistry  // For complex entity lookups
	// logger   Logger          // For debugging
	// metrics  MetricsCollector // For performance tracking
}

// NewContext creates a new Context with the provided infrastructure and data.
// The event bus is mandatory; loading an entity without one would silently
// disconnect it from the game's event ecosystem.
func NewContext[T any](eventBus events.EventBus, data T) (Context[T], error) {
	if eventBus == nil {
		return Context[T]{}, ErrEventBusRequired
	}
	return Context[T]{
		eventBus: eventBus,
		data:     data,
	}, nil
}

// EventBus returns the game's event bus.
func (c Context[T]) EventBus() events.EventBus {
	return c.eventBus
}

// Data returns the entity data this context carries.
func (c Context[T]) Data() T {
	return c.data
}
