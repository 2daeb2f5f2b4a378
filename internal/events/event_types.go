package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketAssigneeChanged EventType = "ticket_assignee_changed"
	EventUserInvited           EventType = "user_invited"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject       string `json:"subject"`
	PriorityID    int64  `json:"priority_id"`
	CategoryID    int64  `json:"category_id"`
	ReporterEmail string `json:"reporter_email,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatusID   int64  `json:"old_status_id"`
	NewStatusID   int64  `json:"new_status_id"`
	NewStatusName string `json:"new_status_name"`
	ReporterEmail string `json:"reporter_email,omitempty"`
	Subject       string `json:"subject"`
}

// TicketAssigneeChangedPayload payload.
type TicketAssigneeChangedPayload struct {
	OldAssigneeID int64 `json:"old_assignee_id"`
	NewAssigneeID int64 `json:"new_assignee_id"`
}

// UserInvitedPayload payload.
type UserInvitedPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	ResetURL string `json:"reset_url"`
}
