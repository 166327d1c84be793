package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/makeup-booking/internal/config"
	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/events"
	"github.com/spec-kit/makeup-booking/internal/repository"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// AttendanceService owns the check-in gate and the no-show/suspension
// state machine.
type AttendanceService struct {
	bookings   repository.BookingRepository
	users      repository.UserRepository
	noShows    repository.NoShowRepository
	dispatcher events.Dispatcher
	policy     config.BookingConfig
	now        func() time.Time
}

// AttendanceDependencies bundles collaborators for the attendance service.
type AttendanceDependencies struct {
	BookingRepo repository.BookingRepository
	UserRepo    repository.UserRepository
	NoShowRepo  repository.NoShowRepository
	Dispatcher  events.Dispatcher
}

// NewAttendanceService constructs the service.
func NewAttendanceService(cfg config.BookingConfig, deps AttendanceDependencies) *AttendanceService {
	return &AttendanceService{
		bookings:   deps.BookingRepo,
		users:      deps.UserRepo,
		noShows:    deps.NoShowRepo,
		dispatcher: deps.Dispatcher,
		policy:     cfg,
		now:        time.Now,
	}
}

// Roster lists the bookings for a date, optionally one period, joined with
// student identity for the check-in desk.
func (s *AttendanceService) Roster(ctx context.Context, dateStr string, periodStr string) ([]domain.BookingWithStudent, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date", nil)
	}
	var period *domain.Period
	if periodStr != "" && periodStr != "all" {
		p := domain.Period(periodStr)
		if !p.Valid() {
			return nil, apperrors.NewValidationError("unknown period", nil)
		}
		period = &p
	}
	return s.bookings.ListRoster(ctx, date, period)
}

// CheckIn marks a booking attended. The presented account must match the
// booking owner so the wrong student is never checked in when several
// bookings share a slot; a second check-in is rejected.
func (s *AttendanceService) CheckIn(ctx context.Context, bookingID, account string) (*domain.BookingWithStudent, error) {
	if account == "" {
		return nil, apperrors.NewValidationError("account is required", nil)
	}

	booking, err := s.bookings.GetWithStudent(ctx, bookingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("booking", nil)
		}
		return nil, err
	}
	if booking.StudentAccount != account {
		return nil, apperrors.NewIdentityMismatch()
	}
	if booking.CheckedIn {
		return nil, apperrors.NewAlreadyCheckedIn()
	}

	checkedInAt := s.now().Truncate(time.Second)
	if err := s.bookings.SetCheckedIn(ctx, bookingID, checkedInAt); err != nil {
		return nil, err
	}
	booking.CheckedIn = true
	booking.CheckedInAt = &checkedInAt

	s.publish(ctx, events.Event{
		Type:      events.EventBookingCheckedIn,
		UserID:    booking.UserID,
		BookingID: booking.ID,
		Payload: events.BookingCheckedInPayload{
			Account:     account,
			CheckedInAt: checkedInAt,
		},
	})
	return booking, nil
}

// RecordNoShow bumps the user's monthly tally and, once the count reaches
// the threshold, suspends the account for one calendar month from now.
// Further increments past the threshold keep raising the count but never
// move the stored suspension date.
func (s *AttendanceService) RecordNoShow(ctx context.Context, userID, yearMonth string) (int, error) {
	if yearMonth == "" {
		yearMonth = domain.CurrentYearMonth(s.now())
	}
	if !domain.ValidYearMonth(yearMonth) {
		return 0, apperrors.NewValidationError("month must be YYYY-MM", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.NewNotFound("user", nil)
		}
		return 0, err
	}

	count, err := s.noShows.Increment(ctx, userID, yearMonth)
	if err != nil {
		return 0, err
	}

	if count >= s.policy.SuspensionThreshold && !user.IsSuspended {
		user.Suspend(s.now().AddDate(0, s.policy.SuspensionMonths, 0))
		if err := s.users.Update(ctx, user); err != nil {
			return count, err
		}
		s.publish(ctx, events.Event{
			Type:   events.EventUserSuspended,
			UserID: user.ID,
			Payload: events.UserSuspendedPayload{
				YearMonth:      yearMonth,
				NoShowCount:    count,
				SuspendedUntil: domain.FormatDate(*user.SuspendedUntil),
			},
		})
	}
	return count, nil
}

// LiftSuspension clears the suspension unconditionally, regardless of the
// accumulated no-show count.
func (s *AttendanceService) LiftSuspension(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	user.LiftSuspension()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventSuspensionLifted,
		UserID: user.ID,
	})
	return nil
}

// MonthlyStats lists the no-show tallies for one month, highest first.
func (s *AttendanceService) MonthlyStats(ctx context.Context, yearMonth string) ([]domain.NoShowWithStudent, error) {
	if !domain.ValidYearMonth(yearMonth) {
		return nil, apperrors.NewValidationError("month must be YYYY-MM", nil)
	}
	return s.noShows.ListByMonth(ctx, yearMonth)
}

// AddPoints flags an online booking as credited. Only online sessions earn
// points.
func (s *AttendanceService) AddPoints(ctx context.Context, bookingID string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("booking", nil)
		}
		return err
	}
	if booking.Location != domain.LocationOnline {
		return apperrors.NewWrongLocation("points can only be added to online bookings")
	}
	return s.bookings.SetPointsAdded(ctx, bookingID)
}

// ListStudents returns the student roster with suspension state.
func (s *AttendanceService) ListStudents(ctx context.Context) ([]domain.User, error) {
	return s.users.ListStudents(ctx)
}

func (s *AttendanceService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
