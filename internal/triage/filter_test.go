package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
)

func sampleTickets() []NormalizedTicket {
	return []NormalizedTicket{
		{
			ID:           "t-1",
			Title:        "VPN keeps dropping",
			Description:  "Disconnects every hour",
			Status:       NormalizedRelation{ID: 1, Name: "OPEN"},
			Priority:     NormalizedRelation{ID: 3, Name: "High"},
			Category:     NormalizedRelation{ID: 5, Name: "Hardware"},
			Assignee:     NormalizedRelation{ID: 31, Name: "Andi"},
			ReporterName: "Dina",
		},
		{
			ID:           "t-2",
			Title:        "Printer out of toner",
			Description:  "Second floor printer",
			Status:       NormalizedRelation{ID: 2, Name: "IN_PROGRESS"},
			Priority:     NormalizedRelation{ID: 2, Name: "Medium"},
			Category:     NormalizedRelation{ID: 5, Name: "Hardware"},
			Assignee:     NormalizedRelation{ID: 0, Name: "Unassigned"},
			ReporterName: "Budi",
		},
		{
			ID:           "t-3",
			Title:        "License expired",
			Description:  "Design software license",
			Status:       NormalizedRelation{ID: 1, Name: "OPEN"},
			Priority:     NormalizedRelation{ID: 1, Name: "Low"},
			Category:     NormalizedRelation{ID: 6, Name: "Software"},
			Assignee:     NormalizedRelation{ID: 32, Name: "Sari"},
			ReporterName: "Dina",
		},
	}
}

func TestWildcardFilterIsIdentity(t *testing.T) {
	tickets := sampleTickets()
	filter := NewFilter()

	assert.True(t, filter.IsWildcard())
	assert.Equal(t, tickets, filter.Apply(tickets))
	assert.Empty(t, filter.Predicates())
}

func TestExplicitWildcardValuesMatchEverything(t *testing.T) {
	filter := Filter{Status: "all", Priority: "ALL", Category: " all ", Assignee: ""}
	assert.True(t, filter.IsWildcard())
}

func TestFilterSingleField(t *testing.T) {
	tickets := sampleTickets()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "status", filter: Filter{Status: "1", Priority: "all", Category: "all", Assignee: "all"}, want: []string{"t-1", "t-3"}},
		{name: "priority", filter: Filter{Status: "all", Priority: "3", Category: "all", Assignee: "all"}, want: []string{"t-1"}},
		{name: "category", filter: Filter{Status: "all", Priority: "all", Category: "6", Assignee: "all"}, want: []string{"t-3"}},
		{name: "assignee", filter: Filter{Status: "all", Priority: "all", Category: "all", Assignee: "31"}, want: []string{"t-1"}},
		{name: "unassigned", filter: Filter{Status: "all", Priority: "all", Category: "all", Assignee: "0"}, want: []string{"t-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(tickets)
			ids := make([]string, 0, len(got))
			for _, ticket := range got {
				ids = append(ids, ticket.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterSearchMatchesTitleDescriptionReporter(t *testing.T) {
	tickets := sampleTickets()

	byTitle := Filter{Search: "vpn"}
	assert.Len(t, byTitle.Apply(tickets), 1)

	byDescription := Filter{Search: "second floor"}
	assert.Len(t, byDescription.Apply(tickets), 1)

	byReporter := Filter{Search: "dina"}
	assert.Len(t, byReporter.Apply(tickets), 2)

	noHit := Filter{Search: "nonexistent"}
	assert.Empty(t, noHit.Apply(tickets))
}

// Search reads exactly the columns the repository's SQL translation reads:
// display title (title shadowing subject), description, reporter name. A
// subject hidden behind a distinct title is invisible to both modes alike.
func TestSearchReadsDisplayTitleNotRawSubject(t *testing.T) {
	taxonomy := domain.NewTaxonomy(nil)
	ticket := Normalize(&domain.Ticket{
		ID:          "t-7",
		Subject:     "PC won't boot",
		Title:       "Boot failure",
		Description: "Black screen after powering on",
		Reporter:    domain.ReporterRef{ID: "u-7", Name: "Dina", Expanded: true},
	}, taxonomy)

	assert.True(t, Filter{Search: "boot failure"}.Match(ticket))
	assert.True(t, Filter{Search: "black screen"}.Match(ticket))
	assert.True(t, Filter{Search: "dina"}.Match(ticket))
	assert.False(t, Filter{Search: "PC"}.Match(ticket), "shadowed subject must not match")

	untitled := Normalize(&domain.Ticket{ID: "t-8", Subject: "PC won't boot"}, taxonomy)
	assert.True(t, Filter{Search: "PC"}.Match(untitled), "subject is the title fallback")
}

func TestFilterConstraintsCombineWithAND(t *testing.T) {
	tickets := sampleTickets()
	filter := Filter{Search: "dina", Status: "1", Priority: "all", Category: "5", Assignee: "all"}

	got := filter.Apply(tickets)
	assert.Len(t, got, 1)
	assert.Equal(t, "t-1", got[0].ID)
}

func TestFilteredSetIsSubset(t *testing.T) {
	tickets := sampleTickets()
	filter := Filter{Status: "1", Priority: "all", Category: "all", Assignee: "all"}

	visible := filter.Apply(tickets)
	ids := make(map[string]bool, len(tickets))
	for _, ticket := range tickets {
		ids[ticket.ID] = true
	}
	for _, ticket := range visible {
		assert.True(t, ids[ticket.ID])
		assert.True(t, filter.Match(ticket))
	}
}

// The repository translates the same predicate list into SQL; both
// execution modes consume identical constraints.
func TestPredicatesCoverActiveFieldsOnly(t *testing.T) {
	filter := Filter{Search: " vpn ", Status: "2", Priority: "all", Category: "", Assignee: "31"}

	preds := filter.Predicates()
	fields := make(map[PredicateField]string, len(preds))
	for _, pred := range preds {
		fields[pred.Field] = pred.Value
	}

	assert.Equal(t, map[PredicateField]string{
		FieldStatus:   "2",
		FieldAssignee: "31",
		FieldSearch:   "vpn",
	}, fields)
}

func TestMatchAgainstNormalizedDefaults(t *testing.T) {
	taxonomy := domain.NewTaxonomy(nil)
	ticket := Normalize(&domain.Ticket{ID: "t-9", Subject: "fresh"}, taxonomy)

	openOnly := Filter{Status: "1"}
	assert.True(t, openOnly.Match(ticket))

	closedOnly := Filter{Status: "4"}
	assert.False(t, closedOnly.Match(ticket))
}
