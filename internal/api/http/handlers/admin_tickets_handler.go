package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanifnrh/helpdesk-bumi/internal/api/dto"
	"github.com/hanifnrh/helpdesk-bumi/internal/auth"
	"github.com/hanifnrh/helpdesk-bumi/internal/service"
	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
	apperrors "github.com/hanifnrh/helpdesk-bumi/pkg/util/errorutil"
)

// AdminTicketsHandler exposes the admin dashboard ticket surface: the
// unscoped listing plus status and assignee updates.
type AdminTicketsHandler struct {
	tickets  *service.TicketService
	taxonomy service.TaxonomySource
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(tickets *service.TicketService, taxonomy service.TaxonomySource) *AdminTicketsHandler {
	return &AdminTicketsHandler{tickets: tickets, taxonomy: taxonomy}
}

// ListTickets GET /api/admin/tickets. Filters arrive as query values;
// absent values mean the wildcard.
func (h *AdminTicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseFilterQuery(c)
	tickets, err := h.tickets.List(c.UserContext(), filter, nil)
	if err != nil {
		return err
	}

	taxonomy, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromNormalizedList(triage.NormalizeAll(tickets, taxonomy))})
}

// GetTicket GET /api/admin/tickets/:id.
func (h *AdminTicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, err := h.tickets.Get(c.UserContext(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}

	taxonomy, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromNormalized(triage.Normalize(ticket, taxonomy))})
}

// UpdateStatus PATCH /api/admin/tickets/:id/status.
func (h *AdminTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), principal.Profile.ID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}

	taxonomy, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromNormalized(triage.Normalize(ticket, taxonomy))})
}

// UpdateAssignee PATCH /api/admin/tickets/:id/assignee. Zero unassigns.
func (h *AdminTicketsHandler) UpdateAssignee(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateAssigneeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.UpdateAssignee(c.UserContext(), principal.Profile.ID, c.Params("id"), req.Assignee)
	if err != nil {
		return err
	}

	taxonomy, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromNormalized(triage.Normalize(ticket, taxonomy))})
}
