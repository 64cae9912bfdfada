// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gamectx provides context wrapping for game state during rule
// evaluation. Purpose: lets validators and modifier predicates query
// loaded game state (other players, combat enemies) without bloating
// every call signature with all possible data.
package gamectx

// PlayerRegistry provides access to player state during rule evaluation.
// Purpose: allows validators and modifier predicates to look up other
// players by ID, such as a cooperative-assault invitee check or a
// skill that targets another hero.
type PlayerRegistry interface {
	// GetPlayer retrieves a player by ID.
	// Returns nil if the player is not found.
	GetPlayer(id string) interface{}
}

// EnemyRegistry provides access to combat enemy instances during rule
// evaluation, for enemy-targeted modifiers and validators.
type EnemyRegistry interface {
	// GetEnemy retrieves an enemy instance by instance ID.
	// Returns nil if the enemy is not found.
	GetEnemy(instanceID string) interface{}
}

// GameContext carries game state through context.Context for use during
// rule evaluation, so a dueling-style modifier can check its target
// enemy without the effect carrying the whole combat state.
type GameContext struct {
	players PlayerRegistry
	enemies EnemyRegistry
}

// GameContextConfig configures a new GameContext.
type GameContextConfig struct {
	// PlayerRegistry provides access to player state during evaluation.
	PlayerRegistry PlayerRegistry
	// EnemyRegistry provides access to enemy instances during evaluation.
	EnemyRegistry EnemyRegistry
}

// NewGameContext creates a new GameContext with the specified configuration.
// Missing registries default to empty lookups.
func NewGameContext(config GameContextConfig) *GameContext {
	players := config.PlayerRegistry
	if players == nil {
		players = &emptyPlayerRegistry{}
	}
	enemies := config.EnemyRegistry
	if enemies == nil {
		enemies = &emptyEnemyRegistry{}
	}
	return &GameContext{players: players, enemies: enemies}
}

// Players returns the PlayerRegistry for this GameContext.
func (g *GameContext) Players() PlayerRegistry {
	return g.players
}

// Enemies returns the EnemyRegistry for this GameContext.
func (g *GameContext) Enemies() EnemyRegistry {
	return g.enemies
}

// emptyPlayerRegistry is a default implementation that returns nil for all lookups.
type emptyPlayerRegistry struct{}

// GetPlayer always returns nil for the empty registry.
func (e *emptyPlayerRegistry) GetPlayer(_ string) interface{} {
	return nil
}

// emptyEnemyRegistry is a default implementation that returns nil for all lookups.
type emptyEnemyRegistry struct{}

// GetEnemy always returns nil for the empty registry.
func (e *emptyEnemyRegistry) GetEnemy(_ string) interface{} {
	return nil
}
