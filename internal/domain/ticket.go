package domain

import (
	"strings"
	"time"
)

// Status IDs form a fixed four-value enumeration. No dynamic extension.
const (
	StatusOpen       int64 = 1
	StatusInProgress int64 = 2
	StatusResolved   int64 = 3
	StatusClosed     int64 = 4
)

// Priority IDs, ordered by severity level.
const (
	PriorityLow      int64 = 1
	PriorityMedium   int64 = 2
	PriorityHigh     int64 = 3
	PriorityCritical int64 = 4
)

// statusNames maps the closed status set to display labels.
var statusNames = map[int64]string{
	StatusOpen:       "OPEN",
	StatusInProgress: "IN_PROGRESS",
	StatusResolved:   "RESOLVED",
	StatusClosed:     "CLOSED",
}

// StatusName returns the label for a status ID, or "N/A" for unknown IDs.
func StatusName(id int64) string {
	if name, ok := statusNames[id]; ok {
		return name
	}
	return "N/A"
}

// ValidStatus reports membership in the closed status set.
func ValidStatus(id int64) bool {
	_, ok := statusNames[id]
	return ok
}

// Ticket is the central aggregate. Relation fields keep whichever shape the
// store returned; consumers go through triage.Normalize for display.
type Ticket struct {
	ID          string      `json:"id"`
	Subject     string      `json:"subject"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description"`
	Branch      Relation    `json:"branch"`
	Service     Relation    `json:"services"`
	Category    Relation    `json:"category"`
	Subcategory Relation    `json:"subcategory"`
	Network     Relation    `json:"network"`
	Priority    Relation    `json:"priority"`
	Status      Relation    `json:"status"`
	Assignee    Relation    `json:"assignee"`
	Reporter    ReporterRef `json:"profile"`
	Tags        string      `json:"tags,omitempty"`
	Attachment  *string     `json:"attachment"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DisplayTitle prefers the title column and falls back to subject.
func (t *Ticket) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Subject
}

// SplitTags parses the comma-separated tag column into a trimmed list.
// Empty and whitespace-only segments are dropped.
func SplitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
