// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package spatial

import (
	"time"

	"github.com/mage-knight-digital/MageKnight-sub011/events"
)

// Orchestrator topic definitions following the toolkit's dot notation pattern
var (
	// Room management topics
	RoomAddedTopic   = events.DefineTypedTopic[RoomAddedEvent]("spatial.orchestrator.room_added")
	RoomRemovedTopic = events.DefineTypedTopic[RoomRemovedEvent]("spatial.orchestrator.room_removed")

	// Connection management topics
	ConnectionAddedTopic   = events.DefineTypedTopic[ConnectionAddedEvent]("spatial.orchestrator.connection_added")
	ConnectionRemovedTopic = events.DefineTypedTopic[ConnectionRemovedEvent]("spatial.orchestrator.connection_removed")

	// Entity transition topics
	EntityTransitionBeganTopic = events.DefineTypedTopic[EntityTransitionBeganEvent]("spatial.orchestrator.transition_began")
	EntityTransitionEndedTopic = events.DefineTypedTopic[EntityTransitionEndedEvent]("spatial.orchestrator.transition_ended")
	EntityRoomTransitionTopic  = events.DefineTypedTopic[EntityRoomTransitionEvent]("spatial.orchestrator.room_transition")

	// Layout topics
	LayoutChangedTopic = events.DefineTypedTopic[LayoutChangedEvent]("spatial.orchestrator.layout_changed")
)

// RoomAddedEvent contains data for room addition events
type RoomAddedEvent struct {
	OrchestratorID string    `json:"orchestrator_id"`
	RoomID         string    `json:"room_id"`
	RoomType       string    `json:"room_type"`
	AddedAt        time.Time `json:"added_at"`
}

// RoomRemovedEvent contains data for room removal events
type RoomRemovedEvent struct {
	OrchestratorID string    `json:"orchestrator_id"`
	RoomID         string    `json:"room_id"`
	Reason         string    `json:"reason"`
	RemovedAt      time.Time `json:"removed_at"`
}

// ConnectionAddedEvent contains data for connection addition events
type ConnectionAddedEvent struct {
	OrchestratorID string    `json:"orchestrator_id"`
	ConnectionID   string    `json:"connection_id"`
	FromRoom       string    `json:"from_room"`
	ToRoom         string    `json:"to_room"`
	ConnectionType string    `json:"connection_type"`
	AddedAt        time.Time `json:"added_at"`
}

// ConnectionRemovedEvent contains data for connection removal events
type ConnectionRemovedEvent struct {
	OrchestratorID string    `json:"orchestrator_id"`
	ConnectionID   string    `json:"connection_id"`
	Reason         string    `json:"reason"`
	RemovedAt      time.Time `json:"removed_at"`
}

// EntityTransitionBeganEvent contains data for the start of an entity's
// room-to-room transition
type EntityTransitionBeganEvent struct {
	EntityID     string    `json:"entity_id"`
	FromRoom     string    `json:"from_room"`
	ToRoom       string    `json:"to_room"`
	ConnectionID string    `json:"connection_id"`
	BeganAt      time.Time `json:"began_at"`
}

// EntityTransitionEndedEvent contains data for the completion of an
// entity's room-to-room transition
type EntityTransitionEndedEvent struct {
	EntityID     string    `json:"entity_id"`
	FromRoom     string    `json:"from_room"`
	ToRoom       string    `json:"to_room"`
	ConnectionID string    `json:"connection_id"`
	EndedAt      time.Time `json:"ended_at"`
}

// EntityRoomTransitionEvent signals the game layer to position an
// entity after a room transition (ADR-0015)
type EntityRoomTransitionEvent struct {
	EntityID  string    `json:"entity_id"`
	FromRoom  string    `json:"from_room"`
	ToRoom    string    `json:"to_room"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// LayoutChangedEvent contains data for orchestrator layout changes
type LayoutChangedEvent struct {
	OrchestratorID string    `json:"orchestrator_id"`
	OldLayout      string    `json:"old_layout"`
	NewLayout      string    `json:"new_layout"`
	ChangedAt      time.Time `json:"changed_at"`
}
