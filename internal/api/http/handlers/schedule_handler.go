package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/makeup-booking/internal/api/dto"
	"github.com/spec-kit/makeup-booking/internal/service"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// ScheduleHandler manages the admin view of the weekly templates and the
// capacity grid.
type ScheduleHandler struct {
	schedule *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(schedule *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// ListTemplates GET /api/admin/timeslots.
func (h *ScheduleHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.schedule.ListTemplates(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.SlotResponse, 0, len(templates))
	for i := range templates {
		items = append(items, dto.NewSlotResponse(&templates[i]))
	}
	return c.JSON(fiber.Map{"timeslots": items})
}

// UpdateTemplate PUT /api/admin/timeslots/:id.
func (h *ScheduleHandler) UpdateTemplate(c *fiber.Ctx) error {
	var req dto.UpdateSlotTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ComputerCount == nil && req.IsOpen == nil {
		return apperrors.NewValidationError("nothing to update", nil)
	}

	if err := h.schedule.UpdateTemplate(c.Context(), c.Params("id"), req.ComputerCount, req.IsOpen); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "timeslot updated"})
}

// CapacityReport GET /api/admin/remaining-computers?start_date&end_date.
func (h *ScheduleHandler) CapacityReport(c *fiber.Ctx) error {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		return apperrors.NewValidationError("start_date and end_date are required", nil)
	}

	rows, err := h.schedule.CapacityReport(c.Context(), start, end)
	if err != nil {
		return err
	}
	items := make([]dto.CapacityReportRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.CapacityReportRowResponse{
			Date:      row.Date,
			Location:  row.Location,
			Period:    row.Period,
			Total:     row.Total,
			Booked:    row.Booked,
			Remaining: row.Remaining,
		})
	}
	return c.JSON(fiber.Map{"report": items})
}
