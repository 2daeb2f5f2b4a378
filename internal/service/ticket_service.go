package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/events"
	"github.com/hanifnrh/helpdesk-bumi/internal/repository"
	"github.com/hanifnrh/helpdesk-bumi/internal/storage"
	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
	apperrors "github.com/hanifnrh/helpdesk-bumi/pkg/util/errorutil"
)

// TaxonomySource yields the reference snapshot used to validate
// cross-filtered selections at creation time.
type TaxonomySource interface {
	Snapshot(ctx context.Context) (*domain.Taxonomy, error)
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	attachments storage.AttachmentStore
	taxonomy    TaxonomySource
	dispatcher  events.Dispatcher
	validate    *validator.Validate
	logger      *zap.Logger
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	Attachments storage.AttachmentStore
	Taxonomy    TaxonomySource
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// AttachmentUpload describes an optional file submitted with a ticket.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// TicketCreateInput describes the ticket creation payload. Branch,
// service, category, subject, description and priority are required;
// subcategory and network are optional and must belong to the selected
// category when present.
type TicketCreateInput struct {
	Subject     string `validate:"required"`
	Description string `validate:"required"`
	Branch      int64  `validate:"required,gt=0"`
	Service     int64  `validate:"required,gt=0"`
	Category    int64  `validate:"required,gt=0"`
	Subcategory int64
	Network     int64
	Priority    int64 `validate:"required,gt=0"`
	Tags        string
	Attachment  *AttachmentUpload
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		attachments: deps.Attachments,
		taxonomy:    deps.Taxonomy,
		dispatcher:  deps.Dispatcher,
		validate:    validator.New(),
		logger:      deps.Logger,
	}
}

// CreateTicket creates a ticket for the authenticated caller. Session
// verification happens before any upload or insert; the reporter is
// always the caller, never client input. When the ticket insert fails
// after a successful upload, the uploaded object is deleted again.
func (s *TicketService) CreateTicket(ctx context.Context, caller *domain.Profile, input TicketCreateInput) (*domain.Ticket, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("not authenticated")
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.NewValidationError("branch, services, category, subject, description, priority required", map[string]any{"cause": err.Error()})
	}

	taxonomy, err := s.taxonomy.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	options := triage.NewFormOptions(taxonomy)
	if input.Subcategory != 0 && !options.ValidSubcategory(input.Category, input.Subcategory) {
		return nil, apperrors.NewValidationError("subcategory does not belong to selected category", map[string]any{"subcategory": input.Subcategory})
	}
	if input.Network != 0 && !options.ValidNetwork(input.Category, input.Network) {
		return nil, apperrors.NewValidationError("network does not belong to selected category", map[string]any{"network": input.Network})
	}

	var uploaded *storage.UploadResult
	if input.Attachment != nil {
		result, err := s.attachments.Upload(ctx, caller.ID, input.Attachment.FileName, input.Attachment.ContentType, input.Attachment.Body)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		uploaded = &result
	}

	ticket := &domain.Ticket{
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		Branch:      domain.Relation{ID: input.Branch},
		Service:     domain.Relation{ID: input.Service},
		Category:    domain.Relation{ID: input.Category},
		Subcategory: domain.Relation{ID: input.Subcategory},
		Network:     domain.Relation{ID: input.Network},
		Priority:    domain.Relation{ID: input.Priority},
		Status:      domain.Relation{ID: domain.StatusOpen},
		Reporter:    domain.ReporterRef{ID: caller.ID},
		Tags:        strings.TrimSpace(input.Tags),
	}
	if uploaded != nil {
		ticket.Attachment = &uploaded.URL
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		if uploaded != nil {
			if cleanupErr := s.attachments.Remove(ctx, uploaded.Path); cleanupErr != nil {
				s.logger.Error("orphaned attachment cleanup failed",
					zap.String("path", uploaded.Path), zap.Error(cleanupErr))
			}
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  caller.ID,
		Payload: events.TicketCreatedPayload{
			Subject:       ticket.Subject,
			PriorityID:    input.Priority,
			CategoryID:    input.Category,
			ReporterEmail: caller.Email,
		},
	})
	return ticket, nil
}

// List returns tickets in server-side filter mode, newest first. A nil
// reporterID lists all tickets (admin dashboard); otherwise the set is
// scoped to the reporter.
func (s *TicketService) List(ctx context.Context, filter triage.Filter, reporterID *string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, filter, reporterID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get fetches one ticket. Non-admin callers only see their own tickets.
func (s *TicketService) Get(ctx context.Context, caller *domain.Profile, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if caller != nil && caller.Role != domain.RoleAdmin && ticket.Reporter.ID != caller.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// UpdateStatus sets a ticket's status and bumps updated_at. The status
// set is flat: any value in the closed enumeration is reachable from any
// other.
func (s *TicketService) UpdateStatus(ctx context.Context, actorID, ticketID string, statusID int64) (*domain.Ticket, error) {
	if !domain.ValidStatus(statusID) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": statusID})
	}
	before, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, statusID); err != nil {
		return nil, apperrors.MapError(err)
	}
	after, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticketID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatusID:   before.Status.ID,
			NewStatusID:   statusID,
			NewStatusName: domain.StatusName(statusID),
			ReporterEmail: before.Reporter.Email,
			Subject:       before.Subject,
		},
	})
	return after, nil
}

// UpdateAssignee sets or clears a ticket's assignee and bumps
// updated_at. Zero unassigns.
func (s *TicketService) UpdateAssignee(ctx context.Context, actorID, ticketID string, assigneeID int64) (*domain.Ticket, error) {
	before, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	var persisted *int64
	if assigneeID != 0 {
		persisted = &assigneeID
	}
	if err := s.tickets.UpdateAssignee(ctx, ticketID, persisted); err != nil {
		return nil, apperrors.MapError(err)
	}
	after, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigneeChanged,
		TicketID: ticketID,
		ActorID:  actorID,
		Payload: events.TicketAssigneeChangedPayload{
			OldAssigneeID: before.Assignee.ID,
			NewAssigneeID: assigneeID,
		},
	})
	return after, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
