package dto

import "github.com/spec-kit/makeup-booking/internal/domain"

// SlotResponse is one weekly template row, or the synthetic online slot.
type SlotResponse struct {
	ID            string          `json:"id,omitempty"`
	Location      domain.Location `json:"location"`
	DayOfWeek     int             `json:"day_of_week"`
	Period        domain.Period   `json:"period"`
	ComputerCount int             `json:"computer_count"`
	IsOpen        bool            `json:"is_open"`
}

// NewSlotResponse maps a template.
func NewSlotResponse(tmpl *domain.SlotTemplate) SlotResponse {
	return SlotResponse{
		ID:            tmpl.ID,
		Location:      tmpl.Location,
		DayOfWeek:     tmpl.DayOfWeek,
		Period:        tmpl.Period,
		ComputerCount: tmpl.ComputerCount,
		IsOpen:        tmpl.IsOpen,
	}
}

// RemainingResponse reports live seat counts; -1/-1 means unlimited.
type RemainingResponse struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// UpdateSlotTemplateRequest carries admin template edits.
type UpdateSlotTemplateRequest struct {
	ComputerCount *int  `json:"computer_count"`
	IsOpen        *bool `json:"is_open"`
}

// CapacityReportRowResponse is one cell of the capacity grid.
type CapacityReportRowResponse struct {
	Date      string          `json:"date"`
	Location  domain.Location `json:"location"`
	Period    domain.Period   `json:"period"`
	Total     int             `json:"total"`
	Booked    int             `json:"booked"`
	Remaining int             `json:"remaining"`
}
