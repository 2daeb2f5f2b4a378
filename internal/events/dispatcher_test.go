package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var got []string
	dispatcher.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		got = append(got, event.TicketID)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "t-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t-1"}, got)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	called := false
	dispatcher.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated})
	require.NoError(t, err)
	assert.False(t, called)
}

// A failing handler must be logged, must not fail publication, and must
// not stop the remaining handlers from running.
func TestPublishLogsHandlerFailureAndContinues(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	dispatcher := NewInMemoryDispatcher(zap.New(core))

	secondRan := false
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		return errors.New("mail gateway down")
	})
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated, ID: "evt-1"})
	require.NoError(t, err)
	assert.True(t, secondRan)

	entries := logs.FilterMessage("event handler failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "evt-1", entries[0].ContextMap()["event_id"])
}
