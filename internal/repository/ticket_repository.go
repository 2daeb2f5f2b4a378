package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
)

// TicketRepository encapsulates ticket persistence. List is the
// server-side filter execution mode: the same triage predicates the
// dashboards evaluate in memory translate to SQL here.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter triage.Filter, reporterID *string) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, statusID int64) error
	UpdateAssignee(ctx context.Context, id string, assigneeID *int64) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `
        t.id, t.subject, t.title, t.description,
        t.branch, b.branch_name,
        t.services, s.service_name,
        t.category, c.category_name,
        t.subcategory, sc.subcategory_name,
        t.network, n.network_name,
        t.priority, pr.priority_name, pr.level,
        t.status, st.status_name,
        t.assignee, a.assignee_name,
        t.profile, p.name, p.email, p.phone,
        t.tags, t.attachment, t.created_at, t.updated_at`

const ticketJoins = `
        FROM ticket t
        LEFT JOIN branches b ON b.id = t.branch
        LEFT JOIN services s ON s.id = t.services
        LEFT JOIN categories c ON c.id = t.category
        LEFT JOIN subcategories sc ON sc.id = t.subcategory
        LEFT JOIN networks n ON n.id = t.network
        LEFT JOIN priorities pr ON pr.id = t.priority
        LEFT JOIN statuses st ON st.id = t.status
        LEFT JOIN assignee a ON a.id = t.assignee
        LEFT JOIN profiles p ON p.id = t.profile`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO ticket (subject, title, description, branch, services, category, subcategory, network, priority, status, assignee, profile, tags, attachment)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Subject,
		nullIfEmpty(ticket.Title),
		ticket.Description,
		ticket.Branch.ID,
		ticket.Service.ID,
		ticket.Category.ID,
		nullableRelationID(ticket.Subcategory),
		nullableRelationID(ticket.Network),
		ticket.Priority.ID,
		ticket.Status.ID,
		nullableRelationID(ticket.Assignee),
		ticket.Reporter.ID,
		nullIfEmpty(ticket.Tags),
		ticket.Attachment,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ticketJoins + ` WHERE t.id=$1`
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) List(ctx context.Context, filter triage.Filter, reporterID *string) ([]domain.Ticket, error) {
	query, args, err := buildListQuery(filter, reporterID)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, statusID int64) error {
	const query = `UPDATE ticket SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, statusID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) UpdateAssignee(ctx context.Context, id string, assigneeID *int64) error {
	const query = `UPDATE ticket SET assignee=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, assigneeID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// buildListQuery translates the triage predicates into the WHERE clause.
// The search columns mirror the in-memory match exactly: the display title
// (title falling back to subject), the description and the reporter name.
func buildListQuery(filter triage.Filter, reporterID *string) (string, []any, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if reporterID != nil {
		args = append(args, *reporterID)
		clauses = append(clauses, fmt.Sprintf("t.profile=$%d", len(args)))
	}

	for _, pred := range filter.Predicates() {
		switch pred.Field {
		case triage.FieldSearch:
			args = append(args, "%"+pred.Value+"%")
			placeholder := fmt.Sprintf("$%d", len(args))
			clauses = append(clauses, fmt.Sprintf(
				"(COALESCE(t.title, t.subject) ILIKE %s OR t.description ILIKE %s OR p.name ILIKE %s)",
				placeholder, placeholder, placeholder))
		default:
			column, ok := predicateColumn(pred.Field)
			if !ok {
				continue
			}
			id, err := strconv.ParseInt(strings.TrimSpace(pred.Value), 10, 64)
			if err != nil {
				return "", nil, fmt.Errorf("filter %s: %w", pred.Field, err)
			}
			args = append(args, id)
			clauses = append(clauses, fmt.Sprintf("%s=$%d", column, len(args)))
		}
	}

	query := `SELECT` + ticketColumns + ticketJoins +
		` WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY t.created_at DESC`
	return query, args, nil
}

func predicateColumn(field triage.PredicateField) (string, bool) {
	switch field {
	case triage.FieldStatus:
		return "t.status", true
	case triage.FieldPriority:
		return "t.priority", true
	case triage.FieldCategory:
		return "t.category", true
	case triage.FieldAssignee:
		return "t.assignee", true
	}
	return "", false
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		ticket          domain.Ticket
		title           *string
		branchID        *int64
		branchName      *string
		serviceID       *int64
		serviceName     *string
		categoryID      *int64
		categoryName    *string
		subcategoryID   *int64
		subcategoryName *string
		networkID       *int64
		networkName     *string
		priorityID      *int64
		priorityName    *string
		priorityLevel   *int
		statusID        *int64
		statusName      *string
		assigneeID      *int64
		assigneeName    *string
		reporterID      *string
		reporterName    *string
		reporterEmail   *string
		reporterPhone   *string
		tags            *string
	)

	if err := row.Scan(
		&ticket.ID,
		&ticket.Subject,
		&title,
		&ticket.Description,
		&branchID, &branchName,
		&serviceID, &serviceName,
		&categoryID, &categoryName,
		&subcategoryID, &subcategoryName,
		&networkID, &networkName,
		&priorityID, &priorityName, &priorityLevel,
		&statusID, &statusName,
		&assigneeID, &assigneeName,
		&reporterID, &reporterName, &reporterEmail, &reporterPhone,
		&tags,
		&ticket.Attachment,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if title != nil {
		ticket.Title = *title
	}
	if tags != nil {
		ticket.Tags = *tags
	}
	ticket.Branch = scanRelation(branchID, branchName, nil)
	ticket.Service = scanRelation(serviceID, serviceName, nil)
	ticket.Category = scanRelation(categoryID, categoryName, nil)
	ticket.Subcategory = scanRelation(subcategoryID, subcategoryName, nil)
	ticket.Network = scanRelation(networkID, networkName, nil)
	ticket.Priority = scanRelation(priorityID, priorityName, priorityLevel)
	ticket.Status = scanRelation(statusID, statusName, nil)
	ticket.Assignee = scanRelation(assigneeID, assigneeName, nil)
	if reporterID != nil {
		ticket.Reporter = domain.ReporterRef{
			ID:       *reporterID,
			Name:     deref(reporterName),
			Email:    deref(reporterEmail),
			Phone:    deref(reporterPhone),
			Expanded: true,
		}
	}
	return &ticket, nil
}

// scanRelation builds the expanded relation form when the join produced a
// name, and the bare-ID form when it did not.
func scanRelation(id *int64, name *string, level *int) domain.Relation {
	if id == nil {
		return domain.Relation{}
	}
	rel := domain.Relation{ID: *id}
	if level != nil {
		rel.Level = *level
	}
	if name != nil {
		rel.Name = *name
		rel.Expanded = true
	}
	return rel
}

func nullableRelationID(rel domain.Relation) *int64 {
	if rel.ID == 0 {
		return nil
	}
	id := rel.ID
	return &id
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
