package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Relation
	}{
		{name: "bare id", json: `5`, want: Relation{ID: 5}},
		{name: "string id", json: `"7"`, want: Relation{ID: 7}},
		{name: "null", json: `null`, want: Relation{}},
		{
			name: "expanded category",
			json: `{"id": 5, "category_name": "Hardware"}`,
			want: Relation{ID: 5, Name: "Hardware", Expanded: true},
		},
		{
			name: "expanded priority with level",
			json: `{"id": 3, "priority_name": "High", "level": 3}`,
			want: Relation{ID: 3, Name: "High", Level: 3, Expanded: true},
		},
		{
			name: "expanded status",
			json: `{"id": 2, "status_name": "IN_PROGRESS"}`,
			want: Relation{ID: 2, Name: "IN_PROGRESS", Expanded: true},
		},
		{
			name: "object without name column",
			json: `{"id": 9}`,
			want: Relation{ID: 9, Expanded: true},
		},
		{
			name: "generic name key",
			json: `{"id": 4, "name": "Network Ops"}`,
			want: Relation{ID: 4, Name: "Network Ops", Expanded: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rel Relation
			require.NoError(t, json.Unmarshal([]byte(tt.json), &rel))
			assert.Equal(t, tt.want, rel)
		})
	}
}

func TestRelationUnmarshalRejectsGarbage(t *testing.T) {
	var rel Relation
	assert.Error(t, json.Unmarshal([]byte(`true`), &rel))
	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &rel))
}

func TestRelationMarshal(t *testing.T) {
	tests := []struct {
		name string
		rel  Relation
		want string
	}{
		{name: "zero is null", rel: Relation{}, want: `null`},
		{name: "bare id", rel: Relation{ID: 5}, want: `5`},
		{
			name: "expanded",
			rel:  Relation{ID: 5, Name: "Hardware", Expanded: true},
			want: `{"id":5,"name":"Hardware"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.rel)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestRelationIsZero(t *testing.T) {
	assert.True(t, Relation{}.IsZero())
	assert.False(t, Relation{ID: 1}.IsZero())
	assert.False(t, Relation{Expanded: true}.IsZero())
}

func TestReporterRefUnmarshal(t *testing.T) {
	var bare ReporterRef
	require.NoError(t, json.Unmarshal([]byte(`"uuid-1"`), &bare))
	assert.Equal(t, ReporterRef{ID: "uuid-1"}, bare)

	var expanded ReporterRef
	require.NoError(t, json.Unmarshal([]byte(`{"id":"uuid-2","name":"Dina","email":"dina@example.com"}`), &expanded))
	assert.Equal(t, ReporterRef{ID: "uuid-2", Name: "Dina", Email: "dina@example.com", Expanded: true}, expanded)
}

func TestReporterRefDisplayName(t *testing.T) {
	assert.Equal(t, "Dina", ReporterRef{Name: "Dina", Email: "d@x.com"}.DisplayName())
	assert.Equal(t, "d@x.com", ReporterRef{Email: "d@x.com"}.DisplayName())
	assert.Equal(t, "uuid-3", ReporterRef{ID: "uuid-3"}.DisplayName())
	assert.Equal(t, "Unknown", ReporterRef{}.DisplayName())
}
