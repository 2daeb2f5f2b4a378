package domain

// TaxonomyKind identifies one of the reference tables tickets classify
// against.
type TaxonomyKind string

const (
	KindBranch      TaxonomyKind = "branches"
	KindService     TaxonomyKind = "services"
	KindCategory    TaxonomyKind = "categories"
	KindSubcategory TaxonomyKind = "subcategories"
	KindNetwork     TaxonomyKind = "networks"
	KindPriority    TaxonomyKind = "priorities"
	KindStatus      TaxonomyKind = "statuses"
	KindAssignee    TaxonomyKind = "assignee"
)

// TaxonomyKinds lists every reference table a dashboard loads.
var TaxonomyKinds = []TaxonomyKind{
	KindBranch,
	KindService,
	KindCategory,
	KindSubcategory,
	KindNetwork,
	KindPriority,
	KindStatus,
	KindAssignee,
}

// TaxonomyOption is one row of a reference table. ServiceID is set on
// categories, CategoryID on subcategories and networks, Level on priorities.
type TaxonomyOption struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ServiceID  int64  `json:"service_id,omitempty"`
	CategoryID int64  `json:"category_id,omitempty"`
	Level      int    `json:"level,omitempty"`
}

// Taxonomy is the reference data snapshot a dashboard session works
// against. Loaded once per mount and read-only afterwards.
type Taxonomy struct {
	options map[TaxonomyKind][]TaxonomyOption
	byID    map[TaxonomyKind]map[int64]TaxonomyOption
}

// NewTaxonomy builds a snapshot with per-kind ID indexes.
func NewTaxonomy(options map[TaxonomyKind][]TaxonomyOption) *Taxonomy {
	byID := make(map[TaxonomyKind]map[int64]TaxonomyOption, len(options))
	for kind, opts := range options {
		index := make(map[int64]TaxonomyOption, len(opts))
		for _, opt := range opts {
			index[opt.ID] = opt
		}
		byID[kind] = index
	}
	return &Taxonomy{options: options, byID: byID}
}

// Options returns the option list for a kind. Priorities arrive ordered by
// level, the rest by name; the slice must not be mutated.
func (t *Taxonomy) Options(kind TaxonomyKind) []TaxonomyOption {
	if t == nil {
		return nil
	}
	return t.options[kind]
}

// Lookup resolves an option by kind and ID.
func (t *Taxonomy) Lookup(kind TaxonomyKind, id int64) (TaxonomyOption, bool) {
	if t == nil {
		return TaxonomyOption{}, false
	}
	opt, ok := t.byID[kind][id]
	return opt, ok
}

// Name resolves a display name, falling back to "N/A" when the ID has no
// matching entry.
func (t *Taxonomy) Name(kind TaxonomyKind, id int64) string {
	if opt, ok := t.Lookup(kind, id); ok {
		return opt.Name
	}
	return "N/A"
}
