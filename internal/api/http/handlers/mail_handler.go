package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanifnrh/helpdesk-bumi/internal/api/dto"
	"github.com/hanifnrh/helpdesk-bumi/internal/mail"
	apperrors "github.com/hanifnrh/helpdesk-bumi/pkg/util/errorutil"
)

// MailHandler relays transactional email requests to the delivery
// provider. Admin only, enforced at the route.
type MailHandler struct {
	mailer mail.Mailer
}

// NewMailHandler constructs handler.
func NewMailHandler(mailer mail.Mailer) *MailHandler {
	return &MailHandler{mailer: mailer}
}

// SendEmail handles POST /api/send-email.
func (h *MailHandler) SendEmail(c *fiber.Ctx) error {
	var req dto.SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.To == "" || req.Subject == "" || req.HTML == "" {
		return apperrors.NewValidationError("to, subject, html required", nil)
	}

	messageID, err := h.mailer.Send(c.UserContext(), req.To, req.Subject, req.HTML)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "result": fiber.Map{"id": messageID}})
}
