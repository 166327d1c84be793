package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/makeup-booking/internal/api/http/handlers"
	"github.com/spec-kit/makeup-booking/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Bookings       *handlers.BookingsHandler
	AdminBookings  *handlers.AdminBookingsHandler
	Schedule       *handlers.ScheduleHandler
	Attendance     *handlers.AttendanceHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)

	bookings := protected.Group("/bookings")
	bookings.Get("/available-dates", cfg.Bookings.AvailableDates)
	bookings.Get("/available-slots", cfg.Bookings.AvailableSlots)
	bookings.Get("/remaining-computers", cfg.Bookings.RemainingComputers)
	bookings.Get("/my", cfg.Bookings.MyBookings)
	bookings.Post("/", cfg.Bookings.CreateBooking)
	bookings.Delete("/:id", cfg.Bookings.CancelBooking)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/bookings", cfg.AdminBookings.List)
	admin.Post("/bookings", cfg.AdminBookings.Create)
	admin.Put("/bookings/:id", cfg.AdminBookings.Update)
	admin.Put("/bookings/:id/status", cfg.AdminBookings.UpdateStatus)
	admin.Delete("/bookings/:id", cfg.AdminBookings.Delete)
	admin.Post("/bookings/:id/add-points", cfg.Attendance.AddPoints)

	admin.Get("/timeslots", cfg.Schedule.ListTemplates)
	admin.Put("/timeslots/:id", cfg.Schedule.UpdateTemplate)
	admin.Get("/remaining-computers", cfg.Schedule.CapacityReport)

	admin.Get("/checkin", cfg.Attendance.Roster)
	admin.Post("/checkin/:id", cfg.Attendance.CheckIn)
	admin.Post("/no-show/:userId/increment", cfg.Attendance.RecordNoShow)
	admin.Get("/no-show-stats", cfg.Attendance.NoShowStats)
	admin.Delete("/no-show/:userId/suspend", cfg.Attendance.LiftSuspension)
	admin.Get("/students", cfg.Attendance.ListStudents)
}
