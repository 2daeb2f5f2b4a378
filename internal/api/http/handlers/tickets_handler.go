package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hanifnrh/helpdesk-bumi/internal/api/dto"
	"github.com/hanifnrh/helpdesk-bumi/internal/auth"
	"github.com/hanifnrh/helpdesk-bumi/internal/domain"
	"github.com/hanifnrh/helpdesk-bumi/internal/service"
	"github.com/hanifnrh/helpdesk-bumi/internal/triage"
	apperrors "github.com/hanifnrh/helpdesk-bumi/pkg/util/errorutil"
)

// TicketsHandler exposes the end-user dashboard endpoints. Listings are
// always scoped to the caller's own tickets.
type TicketsHandler struct {
	tickets  *service.TicketService
	taxonomy service.TaxonomySource
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, taxonomy service.TaxonomySource) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, taxonomy: taxonomy}
}

// CreateTicket POST /api/tickets. Multipart form with an optional
// attachment part.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	input := service.TicketCreateInput{
		Subject:     c.FormValue("subject"),
		Description: c.FormValue("description"),
		Branch:      formInt64(c, "branch"),
		Service:     formInt64(c, "services"),
		Category:    formInt64(c, "category"),
		Subcategory: formInt64(c, "subcategory"),
		Network:     formInt64(c, "network"),
		Priority:    formInt64(c, "priority"),
		Tags:        c.FormValue("tags"),
	}

	if fileHeader, err := c.FormFile("attachment"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable attachment", nil)
		}
		defer file.Close()
		input.Attachment = &service.AttachmentUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), principal.Profile, input)
	if err != nil {
		return err
	}

	normalized, err := h.normalize(c, ticket)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": normalized})
}

// ListTickets GET /api/tickets. Returns the caller's tickets newest
// first; filter values narrow the set server-side.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := parseFilterQuery(c)
	reporterID := principal.Profile.ID
	tickets, err := h.tickets.List(c.UserContext(), filter, &reporterID)
	if err != nil {
		return err
	}

	taxonomy, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromNormalizedList(triage.NormalizeAll(tickets, taxonomy))})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Profile == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, err := h.tickets.Get(c.UserContext(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	normalized, err := h.normalize(c, ticket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": normalized})
}

func (h *TicketsHandler) normalize(c *fiber.Ctx, ticket *domain.Ticket) (dto.TicketResponse, error) {
	taxonomy, err := h.taxonomy.Snapshot(c.UserContext())
	if err != nil {
		return dto.TicketResponse{}, apperrors.MapError(err)
	}
	return dto.FromNormalized(triage.Normalize(ticket, taxonomy)), nil
}

// parseFilterQuery reads the shared filter query parameters. Absent
// values stay at the wildcard.
func parseFilterQuery(c *fiber.Ctx) triage.Filter {
	filter := triage.NewFilter()
	if v := c.Query("search"); v != "" {
		filter.Search = v
	}
	if v := c.Query("status"); v != "" {
		filter.Status = v
	}
	if v := c.Query("priority"); v != "" {
		filter.Priority = v
	}
	if v := c.Query("category"); v != "" {
		filter.Category = v
	}
	if v := c.Query("assignee"); v != "" {
		filter.Assignee = v
	}
	return filter
}

func formInt64(c *fiber.Ctx, key string) int64 {
	val := c.FormValue(key)
	if val == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
