// Package spatial provides 2D positioning and movement infrastructure for
// entity placement and spatial queries without imposing game-specific rules.
//
// Purpose:
// This package handles all spatial mathematics, collision detection, and
// movement validation without imposing any game-specific movement rules
// or combat mechanics. It provides the mathematical foundation for position-based
// game systems.
//
// Scope:
//   - 2D coordinate system with configurable units
//   - Grid support (square, hex, gridless)
//   - Room-based spatial organization
//   - Collision detection and spatial queries
//   - Hex pathfinding around blocked hexes (SimplePathFinder, A*) and
//     room-to-room paths through connections
//   - Multi-room orchestration and connections
//   - Distance calculations and area queries
//   - Entity position tracking
//
// Non-Goals:
//   - Movement rules: Speed, difficult terrain are game-specific
//   - Line of sight rules: Cover/concealment mechanics belong in games
//   - Terrain-weighted pathfinding: SimplePathFinder charges 1 per hex
//   - Combat ranges: Weapon/spell ranges are game-specific
//   - 3D positioning: This is explicitly 2D only
//   - Movement costs: Action economy is game-specific
//   - Elevation: Height/flying is game-specific
//
// Integration:
// This package integrates with:
//   - events: Publishes movement and room transition events
//   - rulebooks/mageknight/state: CubeCoordinate is the map's hex coordinate
//
// The spatial package is the foundation for any position-based mechanics
// but deliberately avoids encoding any game rules about how space is used.
//
// Example:
//
//	// Create a room with square grid
//	room := spatial.NewBasicRoom(spatial.BasicRoomConfig{
//	    ID:   "throne-room",
//	    Type: "chamber",
//	    Grid: spatial.NewSquareGrid(spatial.SquareGridConfig{Width: 40, Height: 30}),
//	})
//	room.ConnectToEventBus(bus)
//
//	// Place entities (any core.Entity)
//	err := room.PlaceEntity(guard, spatial.Position{X: 10, Y: 5})
//	err = room.PlaceEntity(king, spatial.Position{X: 20, Y: 25})
//
//	// Query nearby entities
//	nearby := room.GetEntitiesInRange(
//	    spatial.Position{X: 15, Y: 15},
//	    10.0, // 10 units radius
//	)
//
//	// Multi-room orchestration
//	orchestrator := spatial.NewBasicRoomOrchestrator(spatial.BasicRoomOrchestratorConfig{})
//	err = orchestrator.AddRoom(room)
//	err = orchestrator.AddRoom(hallway)
//
//	// Connect rooms
//	door := spatial.CreateDoorConnection("door-1", "throne-room", "hallway",
//	    spatial.Position{X: 40, Y: 15}, // Exit position
//	    spatial.Position{X: 0, Y: 5},   // Entry position
//	)
//	err = orchestrator.AddConnection(door)
package spatial
