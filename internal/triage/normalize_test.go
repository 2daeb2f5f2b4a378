package triage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
)

func testTaxonomy() *domain.Taxonomy {
	return domain.NewTaxonomy(map[domain.TaxonomyKind][]domain.TaxonomyOption{
		domain.KindBranch:  {{ID: 1, Name: "Jakarta"}, {ID: 2, Name: "Surabaya"}},
		domain.KindService: {{ID: 1, Name: "IT Support"}, {ID: 2, Name: "Facilities"}},
		domain.KindCategory: {
			{ID: 5, Name: "Hardware", ServiceID: 1},
			{ID: 6, Name: "Software", ServiceID: 1},
			{ID: 7, Name: "Building", ServiceID: 2},
		},
		domain.KindSubcategory: {
			{ID: 11, Name: "Laptop", CategoryID: 5},
			{ID: 12, Name: "Printer", CategoryID: 5},
			{ID: 13, Name: "OS", CategoryID: 6},
		},
		domain.KindNetwork: {
			{ID: 21, Name: "LAN", CategoryID: 5},
			{ID: 22, Name: "WiFi", CategoryID: 6},
		},
		domain.KindPriority: {
			{ID: 1, Name: "Low", Level: 1},
			{ID: 2, Name: "Medium", Level: 2},
			{ID: 3, Name: "High", Level: 3},
			{ID: 4, Name: "Critical", Level: 4},
		},
		domain.KindStatus: {
			{ID: 1, Name: "OPEN"},
			{ID: 2, Name: "IN_PROGRESS"},
			{ID: 3, Name: "RESOLVED"},
			{ID: 4, Name: "CLOSED"},
		},
		domain.KindAssignee: {
			{ID: 31, Name: "Andi"},
			{ID: 32, Name: "Sari"},
		},
	})
}

func TestNormalizeResolvesBareIDs(t *testing.T) {
	taxonomy := testTaxonomy()
	ticket := &domain.Ticket{
		ID:          "t-1",
		Subject:     "Broken laptop",
		Description: "Screen flickers",
		Branch:      domain.Relation{ID: 1},
		Service:     domain.Relation{ID: 1},
		Category:    domain.Relation{ID: 5},
		Subcategory: domain.Relation{ID: 11},
		Network:     domain.Relation{ID: 21},
		Priority:    domain.Relation{ID: 3},
		Status:      domain.Relation{ID: 2},
		Assignee:    domain.Relation{ID: 31},
		Reporter:    domain.ReporterRef{ID: "u-1", Name: "Dina", Expanded: true},
		Tags:        "urgent, hardware ,,software",
	}

	got := Normalize(ticket, taxonomy)

	assert.Equal(t, NormalizedRelation{ID: 5, Name: "Hardware"}, got.Category)
	assert.Equal(t, NormalizedRelation{ID: 3, Name: "High"}, got.Priority)
	assert.Equal(t, NormalizedRelation{ID: 2, Name: "IN_PROGRESS"}, got.Status)
	assert.Equal(t, NormalizedRelation{ID: 31, Name: "Andi"}, got.Assignee)
	assert.Equal(t, "Broken laptop", got.Title)
	assert.Equal(t, "Dina", got.ReporterName)
	assert.Equal(t, []string{"urgent", "hardware", "software"}, got.Tags)
}

func TestNormalizePolymorphicShapesAgree(t *testing.T) {
	taxonomy := testTaxonomy()
	bare := &domain.Ticket{ID: "t-1", Subject: "x", Category: domain.Relation{ID: 5}}
	expanded := &domain.Ticket{ID: "t-1", Subject: "x", Category: domain.Relation{ID: 5, Name: "Hardware", Expanded: true}}

	assert.Equal(t, Normalize(bare, taxonomy).Category, Normalize(expanded, taxonomy).Category)
}

func TestNormalizeDefaults(t *testing.T) {
	taxonomy := testTaxonomy()
	ticket := &domain.Ticket{ID: "t-2", Subject: "no relations"}

	got := Normalize(ticket, taxonomy)

	assert.Equal(t, NormalizedRelation{ID: domain.StatusOpen, Name: "OPEN"}, got.Status)
	assert.Equal(t, NormalizedRelation{ID: domain.PriorityMedium, Name: "Medium"}, got.Priority)
	assert.Equal(t, NormalizedRelation{ID: 0, Name: "Unassigned"}, got.Assignee)
	assert.Equal(t, NormalizedRelation{ID: 0, Name: "N/A"}, got.Category)
}

func TestNormalizeUnknownIDsRenderNA(t *testing.T) {
	taxonomy := testTaxonomy()
	ticket := &domain.Ticket{ID: "t-3", Subject: "x", Category: domain.Relation{ID: 999}}

	got := Normalize(ticket, taxonomy)
	assert.Equal(t, NormalizedRelation{ID: 999, Name: "N/A"}, got.Category)
}

func TestNormalizeStatusFallsBackToBuiltinLabels(t *testing.T) {
	empty := domain.NewTaxonomy(nil)
	ticket := &domain.Ticket{ID: "t-4", Subject: "x", Status: domain.Relation{ID: domain.StatusResolved}}

	got := Normalize(ticket, empty)
	assert.Equal(t, NormalizedRelation{ID: 3, Name: "RESOLVED"}, got.Status)
}

func TestNormalizeIsIdempotentAndPure(t *testing.T) {
	taxonomy := testTaxonomy()
	ticket := &domain.Ticket{
		ID:        "t-5",
		Subject:   "x",
		Category:  domain.Relation{ID: 5},
		Status:    domain.Relation{ID: 1},
		CreatedAt: time.Now(),
	}
	before := *ticket

	first := Normalize(ticket, taxonomy)
	second := Normalize(ticket, taxonomy)

	assert.Equal(t, first, second)
	assert.Equal(t, before, *ticket)
}

func TestNormalizeAll(t *testing.T) {
	taxonomy := testTaxonomy()
	tickets := []domain.Ticket{
		{ID: "a", Subject: "first", Status: domain.Relation{ID: 1}},
		{ID: "b", Subject: "second", Status: domain.Relation{ID: 4}},
	}

	got := NormalizeAll(tickets, taxonomy)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "CLOSED", got[1].Status.Name)
}
