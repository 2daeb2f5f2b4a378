package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
)

// taxonomyQuery describes how one reference table maps onto
// TaxonomyOption. Priorities order by severity level, everything else by
// display name.
type taxonomyQuery struct {
	sql        string
	hasService bool
	hasParent  bool
	hasLevel   bool
}

var taxonomyQueries = map[domain.TaxonomyKind]taxonomyQuery{
	domain.KindBranch: {
		sql: `SELECT id, branch_name FROM branches ORDER BY branch_name`,
	},
	domain.KindService: {
		sql: `SELECT id, service_name FROM services ORDER BY service_name`,
	},
	domain.KindCategory: {
		sql:        `SELECT id, category_name, service_id FROM categories ORDER BY category_name`,
		hasService: true,
	},
	domain.KindSubcategory: {
		sql:       `SELECT id, subcategory_name, category_id FROM subcategories ORDER BY subcategory_name`,
		hasParent: true,
	},
	domain.KindNetwork: {
		sql:       `SELECT id, network_name, category_id FROM networks ORDER BY network_name`,
		hasParent: true,
	},
	domain.KindPriority: {
		sql:      `SELECT id, priority_name, level FROM priorities ORDER BY level`,
		hasLevel: true,
	},
	domain.KindStatus: {
		sql: `SELECT id, status_name FROM statuses ORDER BY status_name`,
	},
	domain.KindAssignee: {
		sql: `SELECT id, assignee_name FROM assignee ORDER BY assignee_name`,
	},
}

// TaxonomyRepository reads the reference tables tickets classify against.
type TaxonomyRepository interface {
	ListOptions(ctx context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyOption, error)
}

type taxonomyRepository struct {
	pool *pgxpool.Pool
}

// NewTaxonomyRepository instantiates repository.
func NewTaxonomyRepository(pool *pgxpool.Pool) TaxonomyRepository {
	return &taxonomyRepository{pool: pool}
}

func (r *taxonomyRepository) ListOptions(ctx context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyOption, error) {
	spec, ok := taxonomyQueries[kind]
	if !ok {
		return nil, fmt.Errorf("unknown taxonomy kind %q", kind)
	}

	rows, err := r.pool.Query(ctx, spec.sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.TaxonomyOption
	for rows.Next() {
		var opt domain.TaxonomyOption
		switch {
		case spec.hasService:
			var serviceID *int64
			if err := rows.Scan(&opt.ID, &opt.Name, &serviceID); err != nil {
				return nil, err
			}
			if serviceID != nil {
				opt.ServiceID = *serviceID
			}
		case spec.hasParent:
			var categoryID *int64
			if err := rows.Scan(&opt.ID, &opt.Name, &categoryID); err != nil {
				return nil, err
			}
			if categoryID != nil {
				opt.CategoryID = *categoryID
			}
		case spec.hasLevel:
			if err := rows.Scan(&opt.ID, &opt.Name, &opt.Level); err != nil {
				return nil, err
			}
		default:
			if err := rows.Scan(&opt.ID, &opt.Name); err != nil {
				return nil, err
			}
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}
