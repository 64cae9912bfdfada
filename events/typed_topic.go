// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package events

import (
	"context"
	"sync"

	"github.com/mage-knight-digital/MageKnight-sub011/core"
)

// TypedTopic provides type-safe publish/subscribe for payloads of type
// T over the ref-routed bus. Payloads are plain values; the topic wraps
// them in an internal envelope that satisfies the bus Event interface,
// so domain packages never implement Event themselves.
type TypedTopic[T any] interface {
	// Subscribe registers a handler for payloads of type T.
	// Returns a subscription ID that can be used to unsubscribe.
	Subscribe(ctx context.Context, handler func(context.Context, T) error) (string, error)

	// Unsubscribe removes a handler using its subscription ID.
	// Returns an error if the ID is not found.
	Unsubscribe(ctx context.Context, id string) error

	// Publish sends a payload to all subscribers.
	Publish(ctx context.Context, payload T) error
}

// GetTopic returns a typed topic for the specified topic key.
func GetTopic[T any](bus EventBus, topic Topic) TypedTopic[T] {
	return &typedTopic[T]{
		bus:   bus,
		topic: string(topic),
	}
}

// topicRefs interns one *core.Ref per topic string. The bus routes by
// ref pointer identity, so Subscribe and Publish must share the exact
// same Ref value for a topic.
var topicRefs = struct {
	mu   sync.Mutex
	refs map[string]*core.Ref
}{refs: map[string]*core.Ref{}}

func refForTopic(topic string) (*core.Ref, error) {
	topicRefs.mu.Lock()
	defer topicRefs.mu.Unlock()
	if ref, ok := topicRefs.refs[topic]; ok {
		return ref, nil
	}
	ref, err := core.NewRef(core.RefInput{
		Module: "topic",
		Type:   "event",
		Value:  topic,
	})
	if err != nil {
		return nil, err
	}
	topicRefs.refs[topic] = ref
	return ref, nil
}

// Envelope carries a typed payload across the bus. Exported only so
// reflection-registered handlers can name the type; construct via
// topics, never directly.
type Envelope[T any] struct {
	ref     *core.Ref
	payload T
	ctx     *EventContext
}

// EventRef implements Event.
func (e *Envelope[T]) EventRef() *core.Ref {
	return e.ref
}

// Context implements Event.
func (e *Envelope[T]) Context() *EventContext {
	return e.ctx
}

// Payload returns the wrapped value.
func (e *Envelope[T]) Payload() T {
	return e.payload
}

// typedTopic is the implementation of TypedTopic[T].
type typedTopic[T any] struct {
	bus   EventBus
	topic string
}

// Subscribe implements TypedTopic[T].
func (t *typedTopic[T]) Subscribe(_ context.Context, handler func(context.Context, T) error) (string, error) {
	ref, err := refForTopic(t.topic)
	if err != nil {
		return "", err
	}
	wrapped := func(ctx context.Context, env *Envelope[T]) error {
		return handler(ctx, env.Payload())
	}
	return t.bus.Subscribe(ref, wrapped)
}

// Unsubscribe implements TypedTopic[T].
func (t *typedTopic[T]) Unsubscribe(_ context.Context, id string) error {
	return t.bus.Unsubscribe(id)
}

// Publish implements TypedTopic[T].
func (t *typedTopic[T]) Publish(ctx context.Context, payload T) error {
	ref, err := refForTopic(t.topic)
	if err != nil {
		return err
	}
	env := &Envelope[T]{ref: ref, payload: payload, ctx: NewEventContext()}
	return t.bus.PublishWithContext(ctx, env)
}
