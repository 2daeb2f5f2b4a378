// Package triage holds the pure ticket derivation logic shared by both
// dashboards: normalizing the polymorphic relation shapes the store
// returns, filtering ticket sets, and cross-filtering form option lists.
package triage

import (
	"time"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
)

// NormalizedRelation is the canonical view of a relation field: the
// authoritative ID plus a resolved display name.
type NormalizedRelation struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NormalizedTicket is the display form both dashboards render. All
// relation fields are resolved, defaults applied, tags parsed.
type NormalizedTicket struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Branch       NormalizedRelation `json:"branch"`
	Service      NormalizedRelation `json:"service"`
	Category     NormalizedRelation `json:"category"`
	Subcategory  NormalizedRelation `json:"subcategory"`
	Network      NormalizedRelation `json:"network"`
	Priority     NormalizedRelation `json:"priority"`
	Status       NormalizedRelation `json:"status"`
	Assignee     NormalizedRelation `json:"assignee"`
	ReporterID   string             `json:"reporter_id"`
	ReporterName string             `json:"reporter_name"`
	Tags         []string           `json:"tags"`
	Attachment   *string            `json:"attachment"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Normalize produces the canonical view of a ticket. Pure function: the
// input ticket is not modified, and normalizing an already-normalized
// shape yields the same result.
func Normalize(t *domain.Ticket, taxonomy *domain.Taxonomy) NormalizedTicket {
	status := resolveStatus(t.Status, taxonomy)
	priority := resolveRelation(t.Priority, domain.KindPriority, taxonomy)
	if t.Priority.IsZero() {
		priority = NormalizedRelation{ID: domain.PriorityMedium, Name: taxonomy.Name(domain.KindPriority, domain.PriorityMedium)}
	}
	assignee := resolveRelation(t.Assignee, domain.KindAssignee, taxonomy)
	if t.Assignee.IsZero() {
		assignee = NormalizedRelation{ID: 0, Name: "Unassigned"}
	}

	return NormalizedTicket{
		ID:           t.ID,
		Title:        t.DisplayTitle(),
		Description:  t.Description,
		Branch:       resolveRelation(t.Branch, domain.KindBranch, taxonomy),
		Service:      resolveRelation(t.Service, domain.KindService, taxonomy),
		Category:     resolveRelation(t.Category, domain.KindCategory, taxonomy),
		Subcategory:  resolveRelation(t.Subcategory, domain.KindSubcategory, taxonomy),
		Network:      resolveRelation(t.Network, domain.KindNetwork, taxonomy),
		Priority:     priority,
		Status:       status,
		Assignee:     assignee,
		ReporterID:   t.Reporter.ID,
		ReporterName: t.Reporter.DisplayName(),
		Tags:         domain.SplitTags(t.Tags),
		Attachment:   t.Attachment,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// NormalizeAll maps Normalize over a ticket set.
func NormalizeAll(tickets []domain.Ticket, taxonomy *domain.Taxonomy) []NormalizedTicket {
	out := make([]NormalizedTicket, 0, len(tickets))
	for i := range tickets {
		out = append(out, Normalize(&tickets[i], taxonomy))
	}
	return out
}

// resolveRelation extracts the canonical {id, name} pair. An expanded
// relation keeps its own name when present; bare IDs resolve through the
// taxonomy snapshot. Anything unresolvable renders as "N/A".
func resolveRelation(rel domain.Relation, kind domain.TaxonomyKind, taxonomy *domain.Taxonomy) NormalizedRelation {
	if rel.IsZero() {
		return NormalizedRelation{ID: 0, Name: "N/A"}
	}
	if rel.Expanded && rel.Name != "" {
		return NormalizedRelation{ID: rel.ID, Name: rel.Name}
	}
	return NormalizedRelation{ID: rel.ID, Name: taxonomy.Name(kind, rel.ID)}
}

// resolveStatus handles the status relation. Absent status defaults to
// OPEN; names prefer the statuses reference table and fall back to the
// built-in labels for the closed set.
func resolveStatus(rel domain.Relation, taxonomy *domain.Taxonomy) NormalizedRelation {
	id := rel.ID
	if rel.IsZero() {
		id = domain.StatusOpen
	}
	if rel.Expanded && rel.Name != "" {
		return NormalizedRelation{ID: id, Name: rel.Name}
	}
	if opt, ok := taxonomy.Lookup(domain.KindStatus, id); ok {
		return NormalizedRelation{ID: id, Name: opt.Name}
	}
	return NormalizedRelation{ID: id, Name: domain.StatusName(id)}
}
