package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/makeup-booking/internal/config"
	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/repository"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// ScheduleService implements the recurrence model and the live capacity
// ledger on top of the weekly slot templates.
type ScheduleService struct {
	templates repository.SlotTemplateRepository
	bookings  repository.BookingRepository
	policy    config.BookingConfig
	now       func() time.Time
}

// NewScheduleService constructs the service.
func NewScheduleService(cfg config.BookingConfig, templates repository.SlotTemplateRepository, bookings repository.BookingRepository) *ScheduleService {
	return &ScheduleService{
		templates: templates,
		bookings:  bookings,
		policy:    cfg,
		now:       time.Now,
	}
}

// AdmissionWindow returns the inclusive [min, max] date range open to
// student-initiated bookings, relative to today in server local time.
func (s *ScheduleService) AdmissionWindow() (time.Time, time.Time) {
	today := domain.Midnight(s.now())
	return today.AddDate(0, 0, s.policy.WindowMinOffsetDays), today.AddDate(0, 0, s.policy.WindowMaxOffsetDays)
}

// AvailableDates lists every date inside the admission window.
func (s *ScheduleService) AvailableDates() []string {
	minDate, maxDate := s.AdmissionWindow()
	var dates []string
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		dates = append(dates, domain.FormatDate(d))
	}
	return dates
}

// ResolveTemplate derives the slot definition for a concrete calendar date.
// Online always resolves open and unlimited; a missing template row resolves
// closed with zero capacity. Deterministic, no side effects.
func (s *ScheduleService) ResolveTemplate(ctx context.Context, location domain.Location, date time.Time, period domain.Period) (domain.ResolvedSlot, error) {
	if location == domain.LocationOnline {
		return domain.ResolvedSlot{Capacity: domain.UnlimitedCapacity, IsOpen: true}, nil
	}

	tmpl, err := s.templates.GetByKey(ctx, location, domain.ISOWeekday(date), period)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ResolvedSlot{Capacity: 0, IsOpen: false}, nil
		}
		return domain.ResolvedSlot{}, err
	}
	return domain.ResolvedSlot{Capacity: tmpl.ComputerCount, IsOpen: tmpl.IsOpen}, nil
}

// AvailableSlots lists the open slots for a date and location. Online yields
// a single synthetic unlimited slot untouched by templates.
func (s *ScheduleService) AvailableSlots(ctx context.Context, location domain.Location, dateStr string) ([]domain.SlotTemplate, error) {
	if !location.Valid() {
		return nil, apperrors.NewValidationError("unknown location", nil)
	}
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date", nil)
	}

	if location == domain.LocationOnline {
		return []domain.SlotTemplate{{
			Location:      domain.LocationOnline,
			DayOfWeek:     domain.ISOWeekday(date),
			Period:        domain.PeriodOnline,
			ComputerCount: domain.UnlimitedCapacity,
			IsOpen:        true,
		}}, nil
	}

	return s.templates.ListOpenByDay(ctx, location, domain.ISOWeekday(date))
}

// Remaining reports free and total seats for a slot, recomputed live from
// booking rows. Online reports the unlimited sentinel for both values.
func (s *ScheduleService) Remaining(ctx context.Context, location domain.Location, dateStr string, period domain.Period) (int, int, error) {
	if !location.Valid() || !period.Valid() {
		return 0, 0, apperrors.NewValidationError("unknown location or period", nil)
	}
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return 0, 0, apperrors.NewValidationError("invalid date", nil)
	}

	if location == domain.LocationOnline {
		return domain.UnlimitedCapacity, domain.UnlimitedCapacity, nil
	}

	resolved, err := s.ResolveTemplate(ctx, location, date, period)
	if err != nil {
		return 0, 0, err
	}
	booked, err := s.bookings.CountForSlot(ctx, location, date, period)
	if err != nil {
		return 0, 0, err
	}
	return resolved.Capacity - booked, resolved.Capacity, nil
}

// CapacityReportRow is one cell of the admin capacity grid.
type CapacityReportRow struct {
	Date      string
	Location  domain.Location
	Period    domain.Period
	Total     int
	Booked    int
	Remaining int
}

// CapacityReport walks a date range across every physical location and
// template period, reporting occupancy for each open slot.
func (s *ScheduleService) CapacityReport(ctx context.Context, startStr, endStr string) ([]CapacityReportRow, error) {
	start, err := domain.ParseDate(startStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid start_date", nil)
	}
	end, err := domain.ParseDate(endStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid end_date", nil)
	}

	var rows []CapacityReportRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, loc := range domain.PhysicalLocations {
			for _, per := range domain.TemplatePeriods {
				tmpl, err := s.templates.GetByKey(ctx, loc, domain.ISOWeekday(d), per)
				if err != nil {
					if err == pgx.ErrNoRows {
						continue
					}
					return nil, err
				}
				if !tmpl.IsOpen {
					continue
				}
				booked, err := s.bookings.CountForSlot(ctx, loc, d, per)
				if err != nil {
					return nil, err
				}
				rows = append(rows, CapacityReportRow{
					Date:      domain.FormatDate(d),
					Location:  loc,
					Period:    per,
					Total:     tmpl.ComputerCount,
					Booked:    booked,
					Remaining: tmpl.ComputerCount - booked,
				})
			}
		}
	}
	return rows, nil
}

// ListTemplates returns every weekly template row.
func (s *ScheduleService) ListTemplates(ctx context.Context) ([]domain.SlotTemplate, error) {
	return s.templates.ListAll(ctx)
}

// UpdateTemplate applies admin edits to capacity or the open flag.
func (s *ScheduleService) UpdateTemplate(ctx context.Context, id string, computerCount *int, isOpen *bool) error {
	if computerCount != nil && *computerCount < 0 {
		return apperrors.NewValidationError("computer_count must not be negative", nil)
	}
	err := s.templates.UpdateByID(ctx, id, repository.SlotTemplateUpdate{
		ComputerCount: computerCount,
		IsOpen:        isOpen,
	})
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound("slot template", nil)
	}
	return err
}
