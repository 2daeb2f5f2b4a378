package dto

import (
	"time"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
)

// RelationResponse is the resolved {id, name} pair rendered for every
// relation field.
type RelationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TicketResponse is the normalized ticket shape both dashboards render.
type TicketResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Branch       RelationResponse `json:"branch"`
	Service      RelationResponse `json:"services"`
	Category     RelationResponse `json:"category"`
	Subcategory  RelationResponse `json:"subcategory"`
	Network      RelationResponse `json:"network"`
	Priority     RelationResponse `json:"priority"`
	Status       RelationResponse `json:"status"`
	Assignee     RelationResponse `json:"assignee"`
	ReporterID   string           `json:"reporter_id"`
	ReporterName string           `json:"reporter_name"`
	Tags         []string         `json:"tags"`
	Attachment   *string          `json:"attachment"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// FromNormalized converts the triage view into the response shape.
func FromNormalized(t triage.NormalizedTicket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Branch:       RelationResponse(t.Branch),
		Service:      RelationResponse(t.Service),
		Category:     RelationResponse(t.Category),
		Subcategory:  RelationResponse(t.Subcategory),
		Network:      RelationResponse(t.Network),
		Priority:     RelationResponse(t.Priority),
		Status:       RelationResponse(t.Status),
		Assignee:     RelationResponse(t.Assignee),
		ReporterID:   t.ReporterID,
		ReporterName: t.ReporterName,
		Tags:         t.Tags,
		Attachment:   t.Attachment,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromNormalizedList converts a ticket set.
func FromNormalizedList(tickets []triage.NormalizedTicket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, FromNormalized(t))
	}
	return out
}

// UpdateStatusRequest sets the ticket status.
type UpdateStatusRequest struct {
	Status int64 `json:"status"`
}

// UpdateAssigneeRequest sets or clears the assignee; zero unassigns.
type UpdateAssigneeRequest struct {
	Assignee int64 `json:"assignee"`
}

// TaxonomyOptionResponse is one selectable reference row.
type TaxonomyOptionResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ServiceID  int64  `json:"service_id,omitempty"`
	CategoryID int64  `json:"category_id,omitempty"`
	Level      int    `json:"level,omitempty"`
}

// TaxonomyOptionResponses converts a reference option list.
func TaxonomyOptionResponses(opts []domain.TaxonomyOption) []TaxonomyOptionResponse {
	out := make([]TaxonomyOptionResponse, 0, len(opts))
	for _, opt := range opts {
		out = append(out, TaxonomyOptionResponse{
			ID:         opt.ID,
			Name:       opt.Name,
			ServiceID:  opt.ServiceID,
			CategoryID: opt.CategoryID,
			Level:      opt.Level,
		})
	}
	return out
}
