// Package dashboard holds the per-session view state behind the admin and
// user ticket dashboards: the taxonomy snapshot, the ticket read-through
// cache, and the active filter set.
package dashboard

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
	apperrors "github.com/hanifnrh/helpdesk-bumi/pkg/util/errorutil"
)

// TicketStore is the slice of ticket persistence a session needs.
type TicketStore interface {
	List(ctx context.Context, filter triage.Filter, reporterID *string) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, statusID int64) error
	UpdateAssignee(ctx context.Context, id string, assigneeID *int64) error
}

// TaxonomySource produces the reference data snapshot for a mount.
type TaxonomySource interface {
	Snapshot(ctx context.Context) (*domain.Taxonomy, error)
}

// Session is the explicit replacement for the source system's ambient
// dashboard context: created at sign-in, torn down at sign-out, passed by
// reference to everything that renders tickets. Admin sessions see all
// tickets; user sessions are scoped to their own reporter ID.
type Session struct {
	mu sync.Mutex

	store    TicketStore
	source   TaxonomySource
	logger   *zap.Logger
	reporter *string

	taxonomy *domain.Taxonomy
	tickets  []domain.Ticket
	filter   triage.Filter
	detailID string
}

// NewSession builds an unloaded session. reporterID is nil for admin
// dashboards.
func NewSession(store TicketStore, source TaxonomySource, logger *zap.Logger, reporterID *string) *Session {
	return &Session{
		store:    store,
		source:   source,
		logger:   logger,
		reporter: reporterID,
		filter:   triage.NewFilter(),
	}
}

// Open loads the taxonomy snapshot and the unfiltered ticket set. The
// taxonomy is loaded once per mount and read-only afterwards.
func (s *Session) Open(ctx context.Context) error {
	taxonomy, err := s.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	tickets, err := s.store.List(ctx, triage.NewFilter(), s.reporter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxonomy = taxonomy
	s.tickets = tickets
	return nil
}

// Refresh refetches the ticket set with the active filter. This is the
// refetch-after-write consistency step.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	tickets, err := s.store.List(ctx, filter, s.reporter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = tickets
	return nil
}

// Taxonomy exposes the read-only reference snapshot.
func (s *Session) Taxonomy() *domain.Taxonomy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taxonomy
}

// Filter returns the active filter set.
func (s *Session) Filter() triage.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter replaces the active filter set. The cached ticket set is
// untouched; Visible applies the new filter client-side.
func (s *Session) SetFilter(filter triage.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
}

// ClearFilters resets to the all-wildcard state and refetches the full,
// unfiltered ticket set.
func (s *Session) ClearFilters(ctx context.Context) error {
	s.mu.Lock()
	s.filter = triage.NewFilter()
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Visible normalizes the cached ticket set and applies the active filter
// in memory: the client-side execution mode.
func (s *Session) Visible() []triage.NormalizedTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Apply(triage.NormalizeAll(s.tickets, s.taxonomy))
}

// OpenDetail marks a ticket as shown in the detail view. Status and
// assignee changes propagate to it because Detail reads from the same
// cached set the list renders.
func (s *Session) OpenDetail(ticketID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailID = ticketID
}

// CloseDetail dismisses the detail view.
func (s *Session) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailID = ""
}

// Detail returns the normalized ticket currently open in the detail view.
func (s *Session) Detail() (triage.NormalizedTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detailID == "" {
		return triage.NormalizedTicket{}, false
	}
	for i := range s.tickets {
		if s.tickets[i].ID == s.detailID {
			return triage.Normalize(&s.tickets[i], s.taxonomy), true
		}
	}
	return triage.NormalizedTicket{}, false
}

// ChangeStatus applies a status change optimistically, then persists it.
// The pre-image is kept and restored when the write fails, so the view
// never drifts from the store. Any status in the closed set is reachable
// from any other.
func (s *Session) ChangeStatus(ctx context.Context, ticketID string, statusID int64) error {
	if !domain.ValidStatus(statusID) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": statusID})
	}

	s.mu.Lock()
	idx := s.indexOf(ticketID)
	if idx < 0 {
		s.mu.Unlock()
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	preImage := s.tickets[idx]
	name := domain.StatusName(statusID)
	if opt, ok := s.taxonomy.Lookup(domain.KindStatus, statusID); ok {
		name = opt.Name
	}
	s.tickets[idx].Status = domain.Relation{ID: statusID, Name: name, Expanded: true}
	s.tickets[idx].UpdatedAt = time.Now()
	s.mu.Unlock()

	if err := s.store.UpdateStatus(ctx, ticketID, statusID); err != nil {
		s.rollback(ticketID, preImage)
		s.logger.Error("status update failed", zap.String("ticket_id", ticketID), zap.Error(err))
		return apperrors.MapError(err)
	}
	return nil
}

// ChangeAssignee applies an assignee change optimistically, then persists
// it. The assignee resolves through the taxonomy for display; unknown IDs
// keep the raw ID as a degraded fallback. Zero unassigns.
func (s *Session) ChangeAssignee(ctx context.Context, ticketID string, assigneeID int64) error {
	s.mu.Lock()
	idx := s.indexOf(ticketID)
	if idx < 0 {
		s.mu.Unlock()
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	preImage := s.tickets[idx]
	s.tickets[idx].Assignee = s.resolveAssignee(assigneeID)
	s.tickets[idx].UpdatedAt = time.Now()
	s.mu.Unlock()

	var persisted *int64
	if assigneeID != 0 {
		persisted = &assigneeID
	}
	if err := s.store.UpdateAssignee(ctx, ticketID, persisted); err != nil {
		s.rollback(ticketID, preImage)
		s.logger.Error("assignee update failed", zap.String("ticket_id", ticketID), zap.Error(err))
		return apperrors.MapError(err)
	}
	return nil
}

func (s *Session) resolveAssignee(assigneeID int64) domain.Relation {
	if assigneeID == 0 {
		return domain.Relation{ID: 0, Name: "Unassigned", Expanded: true}
	}
	if opt, ok := s.taxonomy.Lookup(domain.KindAssignee, assigneeID); ok {
		return domain.Relation{ID: opt.ID, Name: opt.Name, Expanded: true}
	}
	return domain.Relation{ID: assigneeID, Name: strconv.FormatInt(assigneeID, 10), Expanded: true}
}

func (s *Session) rollback(ticketID string, preImage domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(ticketID); idx >= 0 {
		s.tickets[idx] = preImage
	}
}

// indexOf requires s.mu held.
func (s *Session) indexOf(ticketID string) int {
	for i := range s.tickets {
		if s.tickets[i].ID == ticketID {
			return i
		}
	}
	return -1
}
