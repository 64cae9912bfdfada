package event_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub011/events"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
)

func TestWith_CopiesPayload(t *testing.T) {
	base := event.New(event.CardPlayed, "player-1").With("card", "march-1")
	extended := base.With("powered", true)

	_, ok := base.Get("powered")
	assert.False(t, ok, "With must not mutate the original event")

	card, ok := extended.Get("card")
	require.True(t, ok)
	assert.Equal(t, "march-1", card)
}

func TestRecorder_PreservesOrder(t *testing.T) {
	rec := event.NewRecorder()
	rec.Emit(event.New(event.TurnStarted, "player-1"))
	rec.Emit(event.New(event.CardPlayed, "player-1"))
	rec.Emit(event.New(event.TurnEnded, "player-1"))

	got := rec.Events()
	require.Len(t, got, 3)
	assert.Equal(t, event.TurnStarted, got[0].Kind)
	assert.Equal(t, event.CardPlayed, got[1].Kind)
	assert.Equal(t, event.TurnEnded, got[2].Kind)

	// Events() returns a copy; appending to it must not affect the recorder.
	_ = append(got, event.New(event.GameEnded, ""))
	assert.Equal(t, 3, rec.Len())
}

func TestSortedKeys(t *testing.T) {
	e := event.New(event.PlayerMoved, "player-1").
		With("to", "1,0,-1").With("from", "0,0,0").With("cost", 2)
	assert.Equal(t, []string{"cost", "from", "to"}, event.SortedKeys(e))
}

func TestRecorder_BusBridge(t *testing.T) {
	bus := events.NewBus()
	rec := event.NewRecorderWithBus(bus)

	var seen []event.Type
	topic := events.GetTopic[event.Event](bus, event.Topic)
	_, err := topic.Subscribe(context.Background(), func(_ context.Context, e event.Event) error {
		seen = append(seen, e.Kind)
		return nil
	})
	require.NoError(t, err)

	rec.Emit(event.New(event.GameStarted, ""))
	assert.Equal(t, []event.Type{event.GameStarted}, seen)
}
