package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanifnrh/helpdesk-bumi/internal/api/http/handlers"
	"github.com/hanifnrh/helpdesk-bumi/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	Taxonomy       *handlers.TaxonomyHandler
	Mail           *handlers.MailHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The /api surface requires a signed
// token; the admin subset additionally requires the admin role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.Users.Logout)
	authGroup.Post("/password/reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Users.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Post("/password/change", cfg.Users.ChangePassword)

	api := app.Group("/api", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	api.Get("/taxonomy", cfg.Taxonomy.Taxonomy)
	api.Get("/taxonomy/options", cfg.Taxonomy.FormOptions)
	api.Get("/profile", cfg.Users.Profile)
	api.Patch("/profile", cfg.Users.UpdateProfile)
	api.Get("/departments", cfg.Users.Departments)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)

	admin := api.Group("", auth.RequireAdmin())
	admin.Get("/admin/users", cfg.Users.ListUsers)
	admin.Get("/admin/tickets", cfg.AdminTickets.ListTickets)
	admin.Get("/admin/tickets/:id", cfg.AdminTickets.GetTicket)
	admin.Patch("/admin/tickets/:id/status", cfg.AdminTickets.UpdateStatus)
	admin.Patch("/admin/tickets/:id/assignee", cfg.AdminTickets.UpdateAssignee)
	admin.Post("/invite-user", cfg.Users.InviteUser)
	admin.Delete("/users/:id", cfg.Users.DeleteUser)
	admin.Post("/send-email", cfg.Mail.SendEmail)
}
