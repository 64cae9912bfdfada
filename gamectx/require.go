// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package gamectx

import "context"

// gameContextKey is the key type for storing GameContext in context.Context.
type gameContextKey struct{}

// WithGameContext wraps a context.Context with the provided GameContext.
// Purpose: enables passing game state through the context chain during
// rule evaluation.
//
// Example:
//
//	gameCtx := gamectx.NewGameContext(gamectx.GameContextConfig{
//	    PlayerRegistry: myRegistry,
//	})
//	ctx = gamectx.WithGameContext(ctx, gameCtx)
func WithGameContext(ctx context.Context, gameCtx *GameContext) context.Context {
	return context.WithValue(ctx, gameContextKey{}, gameCtx)
}

// Players retrieves the PlayerRegistry from the context.
// Returns the registry and true if found, nil and false otherwise.
func Players(ctx context.Context) (PlayerRegistry, bool) {
	if gameCtx, ok := ctx.Value(gameContextKey{}).(*GameContext); ok && gameCtx != nil {
		return gameCtx.Players(), true
	}
	return nil, false
}

// Enemies retrieves the EnemyRegistry from the context.
// Returns the registry and true if found, nil and false otherwise.
func Enemies(ctx context.Context) (EnemyRegistry, bool) {
	if gameCtx, ok := ctx.Value(gameContextKey{}).(*GameContext); ok && gameCtx != nil {
		return gameCtx.Enemies(), true
	}
	return nil, false
}

// RequirePlayers retrieves the PlayerRegistry from the context.
// Panics if no GameContext is present in the context.
//
// Purpose: for code paths that absolutely require game context to
// function. Use Players() instead if missing context is a valid
// scenario.
func RequirePlayers(ctx context.Context) PlayerRegistry {
	registry, ok := Players(ctx)
	if !ok {
		panic("RequirePlayers: no GameContext found in context")
	}
	return registry
}
