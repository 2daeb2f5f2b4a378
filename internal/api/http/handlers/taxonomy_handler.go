package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hanifnrh/helpdesk-bumi/internal/api/dto"
	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/service"
	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
	apperrors "github.com/hanifnrh/helpdesk-bumi/pkg/util/errorutil"
)

// TaxonomyHandler serves the reference data backing form selects and
// filter dropdowns.
type TaxonomyHandler struct {
	taxonomy service.TaxonomySource
}

// NewTaxonomyHandler constructs handler.
func NewTaxonomyHandler(taxonomy service.TaxonomySource) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

// Taxonomy GET /api/taxonomy. Every reference table in one payload so a
// dashboard mounts with a single fetch.
func (h *TaxonomyHandler) Taxonomy(c *fiber.Ctx) error {
	snapshot, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	data := fiber.Map{}
	for _, kind := range domain.TaxonomyKinds {
		data[string(kind)] = dto.TaxonomyOptionResponses(snapshot.Options(kind))
	}
	return c.JSON(fiber.Map{"data": data})
}

// FormOptions GET /api/taxonomy/options. Returns the option lists for
// the create form, cross-filtered by the selected service and category.
func (h *TaxonomyHandler) FormOptions(c *fiber.Ctx) error {
	snapshot, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}

	options := triage.NewFormOptions(snapshot)
	serviceID := queryInt64(c, "services")
	categoryID := queryInt64(c, "category")

	return c.JSON(fiber.Map{"data": fiber.Map{
		"branches":      dto.TaxonomyOptionResponses(options.Branches()),
		"services":      dto.TaxonomyOptionResponses(options.Services()),
		"categories":    dto.TaxonomyOptionResponses(options.Categories(serviceID)),
		"subcategories": dto.TaxonomyOptionResponses(options.Subcategories(categoryID)),
		"networks":      dto.TaxonomyOptionResponses(options.Networks(categoryID)),
		"priorities":    dto.TaxonomyOptionResponses(options.Priorities()),
	}})
}

func queryInt64(c *fiber.Ctx, key string) int64 {
	val := c.Query(key)
	if val == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
