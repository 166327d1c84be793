package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/makeup-booking/internal/api/dto"
	"github.com/spec-kit/makeup-booking/internal/auth"
	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/service"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// BookingsHandler manages student-facing booking endpoints.
type BookingsHandler struct {
	bookings *service.BookingService
	schedule *service.ScheduleService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookings *service.BookingService, schedule *service.ScheduleService) *BookingsHandler {
	return &BookingsHandler{bookings: bookings, schedule: schedule}
}

// AvailableDates GET /api/bookings/available-dates.
func (h *BookingsHandler) AvailableDates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"dates": h.schedule.AvailableDates()})
}

// AvailableSlots GET /api/bookings/available-slots?date&location.
func (h *BookingsHandler) AvailableSlots(c *fiber.Ctx) error {
	date := c.Query("date")
	location := c.Query("location")
	if date == "" || location == "" {
		return apperrors.NewValidationError("date and location are required", nil)
	}

	slots, err := h.schedule.AvailableSlots(c.Context(), domain.Location(location), date)
	if err != nil {
		return err
	}
	items := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		items = append(items, dto.NewSlotResponse(&slots[i]))
	}
	return c.JSON(fiber.Map{"slots": items})
}

// RemainingComputers GET /api/bookings/remaining-computers?date&period&location.
func (h *BookingsHandler) RemainingComputers(c *fiber.Ctx) error {
	date := c.Query("date")
	period := c.Query("period")
	location := c.Query("location")
	if date == "" || period == "" || location == "" {
		return apperrors.NewValidationError("date, period and location are required", nil)
	}

	remaining, total, err := h.schedule.Remaining(c.Context(), domain.Location(location), date, domain.Period(period))
	if err != nil {
		return err
	}
	return c.JSON(dto.RemainingResponse{Remaining: remaining, Total: total})
}

// CreateBooking POST /api/bookings.
func (h *BookingsHandler) CreateBooking(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	booking, err := h.bookings.CreateAsStudent(c.Context(), principal.User, service.BookingCreateInput{
		Location:       domain.Location(req.Location),
		BookingDate:    req.BookingDate,
		Period:         domain.Period(req.Period),
		ClassName:      req.ClassName,
		Course:         req.Course,
		CourseDate:     req.CourseDate,
		AttachmentPath: req.AttachmentPath,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "booking created",
		"booking": dto.NewBookingResponse(booking),
	})
}

// MyBookings GET /api/bookings/my.
func (h *BookingsHandler) MyBookings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	bookings, err := h.bookings.ListOwnFromToday(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, dto.NewBookingResponse(&bookings[i]))
	}
	return c.JSON(fiber.Map{"bookings": items})
}

// CancelBooking DELETE /api/bookings/:id.
func (h *BookingsHandler) CancelBooking(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.bookings.Cancel(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "booking cancelled"})
}
