package triage

import (
	"strconv"
	"strings"
)

// Wildcard is the filter value meaning "no constraint on this field".
const Wildcard = "all"

// Filter is the active filter set for a dashboard list. Relation values
// hold a taxonomy ID as a string, or Wildcard.
type Filter struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Category string `json:"category"`
	Assignee string `json:"assignee"`
}

// NewFilter returns the all-wildcard default state.
func NewFilter() Filter {
	return Filter{
		Status:   Wildcard,
		Priority: Wildcard,
		Category: Wildcard,
		Assignee: Wildcard,
	}
}

// IsWildcard reports whether the whole filter set matches everything.
func (f Filter) IsWildcard() bool {
	return strings.TrimSpace(f.Search) == "" &&
		relationWildcard(f.Status) &&
		relationWildcard(f.Priority) &&
		relationWildcard(f.Category) &&
		relationWildcard(f.Assignee)
}

// PredicateField names a filterable ticket column.
type PredicateField string

const (
	FieldStatus   PredicateField = "status"
	FieldPriority PredicateField = "priority"
	FieldCategory PredicateField = "category"
	FieldAssignee PredicateField = "assignee"
	FieldSearch   PredicateField = "search"
)

// Predicate is one active constraint. Relation predicates are ID equality;
// the search predicate is a case-insensitive substring match over
// title/subject, description and reporter name.
type Predicate struct {
	Field PredicateField
	Value string
}

// Predicates expands the filter set into its active constraints. Both
// execution modes derive from this: Match evaluates the predicates in
// memory, the ticket repository translates them into SQL, so the two modes
// agree on the same inputs by construction.
func (f Filter) Predicates() []Predicate {
	var preds []Predicate
	if !relationWildcard(f.Status) {
		preds = append(preds, Predicate{Field: FieldStatus, Value: f.Status})
	}
	if !relationWildcard(f.Priority) {
		preds = append(preds, Predicate{Field: FieldPriority, Value: f.Priority})
	}
	if !relationWildcard(f.Category) {
		preds = append(preds, Predicate{Field: FieldCategory, Value: f.Category})
	}
	if !relationWildcard(f.Assignee) {
		preds = append(preds, Predicate{Field: FieldAssignee, Value: f.Assignee})
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		preds = append(preds, Predicate{Field: FieldSearch, Value: search})
	}
	return preds
}

// Match reports whether a normalized ticket passes every active
// constraint. Active constraints combine with AND.
func (f Filter) Match(t NormalizedTicket) bool {
	for _, pred := range f.Predicates() {
		if !matchPredicate(t, pred) {
			return false
		}
	}
	return true
}

// Apply filters a normalized ticket set down to the visible subset.
func (f Filter) Apply(tickets []NormalizedTicket) []NormalizedTicket {
	if f.IsWildcard() {
		return tickets
	}
	out := make([]NormalizedTicket, 0, len(tickets))
	for _, t := range tickets {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func matchPredicate(t NormalizedTicket, pred Predicate) bool {
	switch pred.Field {
	case FieldStatus:
		return relationEquals(t.Status.ID, pred.Value)
	case FieldPriority:
		return relationEquals(t.Priority.ID, pred.Value)
	case FieldCategory:
		return relationEquals(t.Category.ID, pred.Value)
	case FieldAssignee:
		return relationEquals(t.Assignee.ID, pred.Value)
	case FieldSearch:
		needle := strings.ToLower(pred.Value)
		return strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) ||
			strings.Contains(strings.ToLower(t.ReporterName), needle)
	}
	return true
}

// relationEquals compares a resolved relation ID against the filter value
// as strings, matching how the filter state carries select values.
func relationEquals(id int64, value string) bool {
	return strconv.FormatInt(id, 10) == strings.TrimSpace(value)
}

func relationWildcard(value string) bool {
	trimmed := strings.TrimSpace(value)
	return trimmed == "" || strings.EqualFold(trimmed, Wildcard)
}
