package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-service/internal/api/http/handlers"
	"github.com/spec-kit/field-service/internal/auth"
	"github.com/spec-kit/field-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Portal         *handlers.ClientPortalHandler
	Planner        *handlers.PlannerHandler
	Clients        *handlers.ClientsHandler
	Assets         *handlers.AssetsHandler
	Attendance     *handlers.AttendanceHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/staff/login", cfg.Auth.LoginStaff)
	authGroup.Post("/clients/login", cfg.Auth.LoginClient)
	authGroup.Post("/kiosk/login", cfg.Auth.LoginKiosk)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Auth.ChangePassword)

	// Public self-service signup.
	api.Post("/access-requests", cfg.Clients.SubmitAccessRequest)

	staffOnly := auth.RequireStaffRole()
	adminOnly := auth.RequireStaffRole(domain.RoleSuperadmin, domain.RoleAdmin)
	coordinationRoles := auth.RequireStaffRole(domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleCoordinador)

	tickets := api.Group("/tickets", cfg.AuthMiddleware.Handle, staffOnly)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", coordinationRoles, cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/assign-coordinator", adminOnly, cfg.Tickets.AssignCoordinator)
	tickets.Post("/:id/assign-operatives", coordinationRoles, cfg.Tickets.AssignOperatives)
	tickets.Post("/:id/return-to-pending", coordinationRoles, cfg.Tickets.ReturnToPending)
	tickets.Delete("/:id", auth.RequireStaffRole(domain.RoleSuperadmin), cfg.Tickets.DeleteTicket)

	planner := api.Group("/planner", cfg.AuthMiddleware.Handle, staffOnly)
	planner.Get("/board", cfg.Planner.Board)

	clients := api.Group("/clients", cfg.AuthMiddleware.Handle, coordinationRoles)
	clients.Get("/", cfg.Clients.ListClients)

	accessRequests := api.Group("/access-requests", cfg.AuthMiddleware.Handle, adminOnly)
	accessRequests.Get("/", cfg.Clients.ListAccessRequests)
	accessRequests.Post("/:id/approve", cfg.Clients.ApproveAccessRequest)
	accessRequests.Post("/:id/reject", cfg.Clients.RejectAccessRequest)

	assets := api.Group("/assets", cfg.AuthMiddleware.Handle, coordinationRoles)
	assets.Get("/", cfg.Assets.ListAssets)
	assets.Get("/:id", cfg.Assets.GetAsset)
	assets.Post("/", cfg.Assets.CreateAsset)

	attendance := api.Group("/attendance", cfg.AuthMiddleware.Handle, staffOnly)
	attendance.Post("/clock-in", cfg.Attendance.ClockIn)
	attendance.Post("/clock-out", cfg.Attendance.ClockOut)
	attendance.Get("/me", cfg.Attendance.MySummaries)
	attendance.Get("/", coordinationRoles, cfg.Attendance.Summaries)
	attendance.Post("/:user_id/clock-out", coordinationRoles, cfg.Attendance.ManualClockOut)

	staff := api.Group("/staff", cfg.AuthMiddleware.Handle, adminOnly)
	staff.Get("/", cfg.Staff.ListStaff)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, adminOnly)
	admin.Post("/create-user", cfg.Staff.CreateStaff)
	admin.Post("/create-staff-kiosk", cfg.Staff.CreateKioskUser)
	admin.Post("/update-password", cfg.Staff.UpdatePassword)
	admin.Post("/invite-client", cfg.Clients.InviteClient)

	portal := api.Group("/portal", cfg.AuthMiddleware.Handle, auth.RequireClient())
	portal.Get("/tickets", cfg.Portal.ListMyTickets)
	portal.Post("/tickets", cfg.Portal.CreateRequest)
	portal.Get("/tickets/:id", cfg.Portal.GetMyTicket)
	portal.Post("/tickets/:id/rate", cfg.Portal.RateTicket)
}
