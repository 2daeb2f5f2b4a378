package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/events"
)

func TestStatusChangeNotifiesReporter(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	mailer := &fakeMailer{}
	service := NewNotificationService(dispatcher, mailer, zap.NewNop())
	service.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: "t-1",
		Payload: events.TicketStatusChangedPayload{
			OldStatusID:   1,
			NewStatusID:   3,
			NewStatusName: "RESOLVED",
			ReporterEmail: "dina@example.com",
			Subject:       "Broken laptop",
		},
	})
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "dina@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTML, "RESOLVED")
}

func TestStatusChangeWithoutReporterEmailSkipsMail(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	mailer := &fakeMailer{}
	NewNotificationService(dispatcher, mailer, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventTicketStatusChanged,
		Payload: events.TicketStatusChangedPayload{NewStatusID: 2},
	})
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestTicketCreatedNotifiesReporter(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	mailer := &fakeMailer{}
	NewNotificationService(dispatcher, mailer, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			Subject:       "Broken laptop",
			ReporterEmail: "dina@example.com",
		},
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].Subject, "Broken laptop")
}
