package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/makeup-booking/internal/api/dto"
	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/service"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// AdminBookingsHandler manages staff-side booking operations.
type AdminBookingsHandler struct {
	bookings *service.BookingService
}

// NewAdminBookingsHandler constructs handler.
func NewAdminBookingsHandler(bookings *service.BookingService) *AdminBookingsHandler {
	return &AdminBookingsHandler{bookings: bookings}
}

// List GET /api/admin/bookings?start_date&end_date.
func (h *AdminBookingsHandler) List(c *fiber.Ctx) error {
	rows, err := h.bookings.AdminList(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return err
	}
	items := make([]dto.BookingWithStudentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.NewBookingWithStudentResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{"bookings": items})
}

// Create POST /api/admin/bookings.
func (h *AdminBookingsHandler) Create(c *fiber.Ctx) error {
	var req dto.AdminCreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	booking, err := h.bookings.CreateAsAdmin(c.Context(), req.UserID, service.BookingCreateInput{
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

// Update PUT /api/admin/bookings/:id.
func (h *AdminBookingsHandler) Update(c *fiber.Ctx) error {
	var req dto.AdminUpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.AdminUpdateInput{
		Course:     req.Course,
		CourseDate: req.CourseDate,
		ClassName:  req.ClassName,
	}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		input.Status = &status
	}
	if err := h.bookings.AdminUpdate(c.Context(), c.Params("id"), input); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "booking updated"})
}

// UpdateStatus PUT /api/admin/bookings/:id/status.
func (h *AdminBookingsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	status := domain.BookingStatus(req.Status)
	if err := h.bookings.AdminUpdate(c.Context(), c.Params("id"), service.AdminUpdateInput{Status: &status}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}

// Delete DELETE /api/admin/bookings/:id.
func (h *AdminBookingsHandler) Delete(c *fiber.Ctx) error {
	if err := h.bookings.AdminDelete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "booking deleted"})
}
