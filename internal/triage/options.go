package triage

import "github.com/hanifnrh/helpdesk-bumi/internal/domain"

// FormOptions computes the option lists the ticket creation form offers,
// cross-filtered by the current selections: categories narrow to the
// selected service, subcategories and networks narrow to the selected
// category.
type FormOptions struct {
	taxonomy *domain.Taxonomy
}

// NewFormOptions wraps a taxonomy snapshot.
func NewFormOptions(taxonomy *domain.Taxonomy) FormOptions {
	return FormOptions{taxonomy: taxonomy}
}

// Branches returns the full branch list.
func (o FormOptions) Branches() []domain.TaxonomyOption {
	return o.taxonomy.Options(domain.KindBranch)
}

// Services returns the full service list.
func (o FormOptions) Services() []domain.TaxonomyOption {
	return o.taxonomy.Options(domain.KindService)
}

// Priorities returns priorities, already ordered by level.
func (o FormOptions) Priorities() []domain.TaxonomyOption {
	return o.taxonomy.Options(domain.KindPriority)
}

// Categories returns categories belonging to the selected service.
func (o FormOptions) Categories(serviceID int64) []domain.TaxonomyOption {
	return filterByParent(o.taxonomy.Options(domain.KindCategory), serviceID, func(opt domain.TaxonomyOption) int64 {
		return opt.ServiceID
	})
}

// Subcategories returns subcategories belonging to the selected category.
func (o FormOptions) Subcategories(categoryID int64) []domain.TaxonomyOption {
	return filterByParent(o.taxonomy.Options(domain.KindSubcategory), categoryID, func(opt domain.TaxonomyOption) int64 {
		return opt.CategoryID
	})
}

// Networks returns networks belonging to the selected category.
func (o FormOptions) Networks(categoryID int64) []domain.TaxonomyOption {
	return filterByParent(o.taxonomy.Options(domain.KindNetwork), categoryID, func(opt domain.TaxonomyOption) int64 {
		return opt.CategoryID
	})
}

// ValidSubcategory reports whether a previously selected subcategory is
// still selectable under the given category. Changing the category
// invalidates selections that no longer match.
func (o FormOptions) ValidSubcategory(categoryID, subcategoryID int64) bool {
	return containsOption(o.Subcategories(categoryID), subcategoryID)
}

// ValidNetwork reports whether a previously selected network is still
// selectable under the given category.
func (o FormOptions) ValidNetwork(categoryID, networkID int64) bool {
	return containsOption(o.Networks(categoryID), networkID)
}

// ValidCategory reports whether a previously selected category is still
// selectable under the given service.
func (o FormOptions) ValidCategory(serviceID, categoryID int64) bool {
	return containsOption(o.Categories(serviceID), categoryID)
}

func filterByParent(opts []domain.TaxonomyOption, parentID int64, parent func(domain.TaxonomyOption) int64) []domain.TaxonomyOption {
	out := make([]domain.TaxonomyOption, 0, len(opts))
	for _, opt := range opts {
		if parent(opt) == parentID {
			out = append(out, opt)
		}
	}
	return out
}

func containsOption(opts []domain.TaxonomyOption, id int64) bool {
	for _, opt := range opts {
		if opt.ID == id {
			return true
		}
	}
	return false
}
