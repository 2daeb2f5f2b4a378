package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/events"
	"github.com/hanifnrh/helpdesk-bumi/internal/mail"
)

// NotificationService turns domain events into reporter-facing emails.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigneeChanged, n.handleTicketAssigneeChanged)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket created", zap.String("ticket_id", event.TicketID), zap.String("subject", payload.Subject))
	if strings.TrimSpace(payload.ReporterEmail) == "" {
		return nil
	}
	html := fmt.Sprintf("<p>We received your ticket <strong>%s</strong> and will get back to you shortly.</p>", payload.Subject)
	return n.deliver(ctx, payload.ReporterEmail, "Ticket received: "+payload.Subject, html, event)
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket status changed",
		zap.String("ticket_id", event.TicketID),
		zap.Int64("old_status", payload.OldStatusID),
		zap.Int64("new_status", payload.NewStatusID))
	if strings.TrimSpace(payload.ReporterEmail) == "" {
		return nil
	}
	html := fmt.Sprintf("<p>Your ticket <strong>%s</strong> is now <strong>%s</strong>.</p>", payload.Subject, payload.NewStatusName)
	return n.deliver(ctx, payload.ReporterEmail, "Ticket update: "+payload.Subject, html, event)
}

func (n *NotificationService) handleTicketAssigneeChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssigneeChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket assignee changed",
		zap.String("ticket_id", event.TicketID),
		zap.Int64("old_assignee", payload.OldAssigneeID),
		zap.Int64("new_assignee", payload.NewAssigneeID))
	return nil
}

// deliver sends the email without failing the event pipeline; a missed
// notification must never roll back the state change that caused it.
func (n *NotificationService) deliver(ctx context.Context, to, subject, html string, event events.Event) error {
	if n.mailer == nil {
		return nil
	}
	if _, err := n.mailer.Send(ctx, to, subject, html); err != nil {
		n.logger.Error("notification email failed",
			zap.String("to", to),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
	return nil
}
