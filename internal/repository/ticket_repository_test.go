package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
)

func TestBuildListQueryWildcard(t *testing.T) {
	query, args, err := buildListQuery(triage.NewFilter(), nil)

	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, query, "WHERE 1=1")
	assert.Contains(t, query, "ORDER BY t.created_at DESC")
	assert.NotContains(t, query, "ILIKE")
}

func TestBuildListQueryReporterScope(t *testing.T) {
	reporter := "u-1"
	query, args, err := buildListQuery(triage.NewFilter(), &reporter)

	require.NoError(t, err)
	assert.Equal(t, []any{"u-1"}, args)
	assert.Contains(t, query, "t.profile=$1")
}

// The search clause must cover the same columns the in-memory match reads:
// the display title (title falling back to subject), the description and
// the reporter name. A ticket found by one execution mode and missed by
// the other breaks the shared-predicate contract.
func TestBuildListQuerySearchColumns(t *testing.T) {
	filter := triage.NewFilter()
	filter.Search = "dina"

	query, args, err := buildListQuery(filter, nil)

	require.NoError(t, err)
	assert.Equal(t, []any{"%dina%"}, args)
	assert.Contains(t, query, "COALESCE(t.title, t.subject) ILIKE $1")
	assert.Contains(t, query, "t.description ILIKE $1")
	assert.Contains(t, query, "p.name ILIKE $1")
}

func TestBuildListQueryRelationPredicates(t *testing.T) {
	filter := triage.NewFilter()
	filter.Status = "2"
	filter.Priority = "3"
	filter.Assignee = "0"

	query, args, err := buildListQuery(filter, nil)

	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(3), int64(0)}, args)
	assert.Contains(t, query, "t.status=$1")
	assert.Contains(t, query, "t.priority=$2")
	assert.Contains(t, query, "t.assignee=$3")
}

func TestBuildListQueryRejectsNonNumericValue(t *testing.T) {
	filter := triage.NewFilter()
	filter.Status = "open"

	_, _, err := buildListQuery(filter, nil)
	assert.Error(t, err)
}
