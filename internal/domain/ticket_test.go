package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusName(t *testing.T) {
	assert.Equal(t, "OPEN", StatusName(StatusOpen))
	assert.Equal(t, "IN_PROGRESS", StatusName(StatusInProgress))
	assert.Equal(t, "RESOLVED", StatusName(StatusResolved))
	assert.Equal(t, "CLOSED", StatusName(StatusClosed))
	assert.Equal(t, "N/A", StatusName(99))
}

func TestValidStatus(t *testing.T) {
	for id := int64(1); id <= 4; id++ {
		assert.True(t, ValidStatus(id))
	}
	assert.False(t, ValidStatus(0))
	assert.False(t, ValidStatus(5))
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "whitespace only", in: "   ", want: nil},
		{name: "single", in: "urgent", want: []string{"urgent"}},
		{
			name: "messy separators",
			in:   "urgent, hardware ,,software",
			want: []string{"urgent", "hardware", "software"},
		},
		{name: "trailing comma", in: "vpn,", want: []string{"vpn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTags(tt.in))
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	withTitle := Ticket{Subject: "subject", Title: "title"}
	assert.Equal(t, "title", withTitle.DisplayTitle())

	subjectOnly := Ticket{Subject: "subject"}
	assert.Equal(t, "subject", subjectOnly.DisplayTitle())
}
