package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// relationNameKeys is the lookup order for display names on expanded
// relation objects. The store returns a different column name per taxonomy
// table, so the first key present wins.
var relationNameKeys = []string{
	"category_name",
	"priority_name",
	"status_name",
	"assignee_name",
	"branch_name",
	"service_name",
	"subcategory_name",
	"network_name",
	"name",
	"email",
	"phone",
}

// Relation references a taxonomy entry. The wire shape is polymorphic: a
// bare integer ID, an expanded object carrying the ID plus a name column,
// or null. The ID is authoritative; Name may be empty until the relation is
// resolved against a Taxonomy snapshot.
type Relation struct {
	ID       int64
	Name     string
	Level    int
	Expanded bool
}

// IsZero reports whether the relation is absent (null or never set).
func (r Relation) IsZero() bool {
	return r.ID == 0 && !r.Expanded
}

// Expand returns a copy carrying the given display name.
func (r Relation) Expand(name string) Relation {
	r.Name = name
	r.Expanded = true
	return r
}

// UnmarshalJSON accepts null, a bare integer (optionally string-encoded),
// or an expanded {id, <name column>} object.
func (r *Relation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Relation{}
		return nil
	}

	if data[0] != '{' {
		id, err := parseRelationID(data)
		if err != nil {
			return err
		}
		*r = Relation{ID: id}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rel := Relation{Expanded: true}
	if idRaw, ok := raw["id"]; ok {
		id, err := parseRelationID(bytes.TrimSpace(idRaw))
		if err != nil {
			return err
		}
		rel.ID = id
	}
	if levelRaw, ok := raw["level"]; ok {
		var level int
		if err := json.Unmarshal(levelRaw, &level); err == nil {
			rel.Level = level
		}
	}
	for _, key := range relationNameKeys {
		nameRaw, ok := raw[key]
		if !ok {
			continue
		}
		var name string
		if err := json.Unmarshal(nameRaw, &name); err != nil {
			continue
		}
		if name != "" {
			rel.Name = name
			break
		}
	}

	*r = rel
	return nil
}

// MarshalJSON writes the canonical expanded form when a name is known and a
// bare ID otherwise.
func (r Relation) MarshalJSON() ([]byte, error) {
	if !r.Expanded {
		if r.ID == 0 {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatInt(r.ID, 10)), nil
	}
	type expanded struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Level int    `json:"level,omitempty"`
	}
	return json.Marshal(expanded{ID: r.ID, Name: r.Name, Level: r.Level})
}

func parseRelationID(data []byte) (int64, error) {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		return id, nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return 0, fmt.Errorf("relation id: unsupported shape %q", data)
	}
	if str == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("relation id: %w", err)
	}
	return id, nil
}

// ReporterRef identifies the profile that opened a ticket. The wire shape
// is either the bare profile ID string or an expanded profile object.
type ReporterRef struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Expanded bool
}

// DisplayName returns the best available reporter label.
func (p ReporterRef) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Email != "" {
		return p.Email
	}
	if p.ID != "" {
		return p.ID
	}
	return "Unknown"
}

// UnmarshalJSON accepts null, a bare ID string, or an expanded profile.
func (p *ReporterRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ReporterRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*p = ReporterRef{ID: id}
		return nil
	}
	var raw struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ReporterRef{ID: raw.ID, Name: raw.Name, Email: raw.Email, Phone: raw.Phone, Expanded: true}
	return nil
}

// MarshalJSON writes the expanded form when profile fields are known.
func (p ReporterRef) MarshalJSON() ([]byte, error) {
	if !p.Expanded {
		return json.Marshal(p.ID)
	}
	type expanded struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email,omitempty"`
		Phone string `json:"phone,omitempty"`
	}
	return json.Marshal(expanded{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone})
}
