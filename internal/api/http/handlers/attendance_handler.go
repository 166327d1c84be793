package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/makeup-booking/internal/api/dto"
	"github.com/spec-kit/makeup-booking/internal/service"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// AttendanceHandler manages the check-in desk, the no-show ledger and the
// student roster.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Roster GET /api/admin/checkin?date&period.
func (h *AttendanceHandler) Roster(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return apperrors.NewValidationError("date is required", nil)
	}

	rows, err := h.attendance.Roster(c.Context(), date, c.Query("period"))
	if err != nil {
		return err
	}
	items := make([]dto.BookingWithStudentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.NewBookingWithStudentResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{"roster": items})
}

// CheckIn POST /api/admin/checkin/:id.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateStruct(req); err != nil {
		return err
	}

	booking, err := h.attendance.CheckIn(c.Context(), c.Params("id"), req.Account)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "checked in",
		"booking": dto.NewBookingWithStudentResponse(booking),
	})
}

// RecordNoShow POST /api/admin/no-show/:userId/increment?month.
// An omitted month defaults to the current one.
func (h *AttendanceHandler) RecordNoShow(c *fiber.Ctx) error {
	count, err := h.attendance.RecordNoShow(c.Context(), c.Params("userId"), c.Query("month"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "no-show recorded",
		"count":   count,
	})
}

// NoShowStats GET /api/admin/no-show-stats?month.
func (h *AttendanceHandler) NoShowStats(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return apperrors.NewValidationError("month is required", nil)
	}

	rows, err := h.attendance.MonthlyStats(c.Context(), month)
	if err != nil {
		return err
	}
	items := make([]dto.NoShowRecordResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.NoShowRecordResponse{
			ID:             row.ID,
			UserID:         row.UserID,
			YearMonth:      row.YearMonth,
			Count:          row.Count,
			StudentName:    row.StudentName,
			StudentAccount: row.StudentAccount,
		})
	}
	return c.JSON(fiber.Map{"stats": items})
}

// LiftSuspension DELETE /api/admin/no-show/:userId/suspend.
func (h *AttendanceHandler) LiftSuspension(c *fiber.Ctx) error {
	if err := h.attendance.LiftSuspension(c.Context(), c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "suspension lifted"})
}

// AddPoints POST /api/admin/bookings/:id/add-points.
func (h *AttendanceHandler) AddPoints(c *fiber.Ctx) error {
	if err := h.attendance.AddPoints(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "points added"})
}

// ListStudents GET /api/admin/students.
func (h *AttendanceHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.attendance.ListStudents(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(students))
	for i := range students {
		items = append(items, dto.NewUserResponse(&students[i]))
	}
	return c.JSON(fiber.Map{"students": items})
}
