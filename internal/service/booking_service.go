package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/events"
	"github.com/spec-kit/makeup-booking/internal/repository"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// BookingService is the admission controller and cancellation policy for
// make-up class bookings.
type BookingService struct {
	bookings   repository.BookingRepository
	users      repository.UserRepository
	schedule   *ScheduleService
	dispatcher events.Dispatcher
	now        func() time.Time
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	BookingRepo repository.BookingRepository
	UserRepo    repository.UserRepository
	Schedule    *ScheduleService
	Dispatcher  events.Dispatcher
}

// BookingCreateInput describes a booking request payload.
type BookingCreateInput struct {
	Location       domain.Location
	BookingDate    string
	Period         domain.Period
	ClassName      string
	Course         string
	CourseDate     string
	AttachmentPath string
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		users:      deps.UserRepo,
		schedule:   deps.Schedule,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// CreateAsStudent admits a student-initiated booking. Validation order:
// required fields, suspension, admission window, duplicate slot, capacity.
// The capacity recount and the insert run in one transaction.
func (s *BookingService) CreateAsStudent(ctx context.Context, student *domain.User, input BookingCreateInput) (*domain.Booking, error) {
	date, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	if student.IsSuspended {
		until := ""
		if student.SuspendedUntil != nil {
			until = domain.FormatDate(*student.SuspendedUntil)
		}
		return nil, apperrors.NewSuspended(until)
	}

	minDate, maxDate := s.schedule.AdmissionWindow()
	if date.Before(minDate) || date.After(maxDate) {
		return nil, apperrors.NewOutOfWindow(domain.FormatDate(minDate), domain.FormatDate(maxDate))
	}

	className := input.ClassName
	if className == "" && student.ClassName != nil {
		className = *student.ClassName
	}

	booking := &domain.Booking{
		ReferenceKey:   generateBookingRef(),
		UserID:         student.ID,
		Location:       input.Location,
		BookingDate:    date,
		Period:         input.Period,
		ClassName:      className,
		Course:         input.Course,
		CourseDate:     input.CourseDate,
		AttachmentPath: input.AttachmentPath,
		Status:         domain.BookingStatusPending,
		CreatedBy:      domain.CreatedByStudent,
	}
	if err := s.commit(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CreateAsAdmin admits an admin-created booking for any student. Staff may
// register historical or exceptional sessions, so neither the admission
// window nor the suspension state is consulted; capacity still is.
func (s *BookingService) CreateAsAdmin(ctx context.Context, userID string, input BookingCreateInput) (*domain.Booking, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user_id is required", nil)
	}
	date, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	booking := &domain.Booking{
		ReferenceKey:   generateBookingRef(),
		UserID:         userID,
		Location:       input.Location,
		BookingDate:    date,
		Period:         input.Period,
		ClassName:      input.ClassName,
		Course:         input.Course,
		CourseDate:     input.CourseDate,
		AttachmentPath: input.AttachmentPath,
		Status:         domain.BookingStatusPending,
		CreatedBy:      domain.CreatedByAdmin,
	}
	if err := s.commit(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) validateInput(input BookingCreateInput) (time.Time, error) {
	if input.Location == "" || input.BookingDate == "" || input.Period == "" {
		return time.Time{}, apperrors.NewValidationError("location, booking_date and period are required", nil)
	}
	if !input.Location.Valid() {
		return time.Time{}, apperrors.NewValidationError("unknown location", nil)
	}
	if !input.Period.Valid() {
		return time.Time{}, apperrors.NewValidationError("unknown period", nil)
	}
	date, err := domain.ParseDate(input.BookingDate)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid booking_date", nil)
	}
	return date, nil
}

// commit runs the duplicate pre-check, resolves capacity and inserts. The
// unique constraint and the in-transaction recount close the race the
// pre-checks leave open.
func (s *BookingService) commit(ctx context.Context, booking *domain.Booking) error {
	exists, err := s.bookings.ExistsForUserSlot(ctx, booking.UserID, booking.BookingDate, booking.Period)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewDuplicateBooking()
	}

	capacity := domain.UnlimitedCapacity
	if booking.Location != domain.LocationOnline {
		resolved, err := s.schedule.ResolveTemplate(ctx, booking.Location, booking.BookingDate, booking.Period)
		if err != nil {
			return err
		}
		if !resolved.IsOpen {
			return apperrors.NewValidationError("slot is not open for booking", nil)
		}
		capacity = resolved.Capacity
	}

	if err := s.bookings.CreateWithCapacity(ctx, booking, capacity); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventBookingCreated,
		UserID:    booking.UserID,
		BookingID: booking.ID,
		Payload: events.BookingCreatedPayload{
			Location:    booking.Location,
			BookingDate: domain.FormatDate(booking.BookingDate),
			Period:      booking.Period,
			CreatedBy:   booking.CreatedBy,
		},
	})
	return nil
}

// ListOwnFromToday returns the student's bookings dated today or later.
func (s *BookingService) ListOwnFromToday(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUserFromDate(ctx, userID, domain.Midnight(s.now()))
}

// Cancel removes a student's own booking, requiring at least one full day
// of lead time before the booked date. Deleting the row frees the seat
// because capacity is always derived live from remaining bookings.
func (s *BookingService) Cancel(ctx context.Context, actor *domain.User, bookingID string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("booking", nil)
		}
		return err
	}
	if booking.UserID != actor.ID {
		return apperrors.NewNotFound("booking", nil)
	}

	tomorrow := domain.Midnight(s.now()).AddDate(0, 0, 1)
	if domain.Midnight(booking.BookingDate).Before(tomorrow) {
		return apperrors.NewTooLateToCancel()
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventBookingCancelled,
		UserID:    booking.UserID,
		BookingID: booking.ID,
		Payload: events.BookingCancelledPayload{
			Location:    booking.Location,
			BookingDate: domain.FormatDate(booking.BookingDate),
			Period:      booking.Period,
		},
	})
	return nil
}

// AdminList returns bookings joined with student identity, optionally
// constrained to an inclusive date range.
func (s *BookingService) AdminList(ctx context.Context, startStr, endStr string) ([]domain.BookingWithStudent, error) {
	var start, end *time.Time
	if startStr != "" && endStr != "" {
		from, err := domain.ParseDate(startStr)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid start_date", nil)
		}
		to, err := domain.ParseDate(endStr)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid end_date", nil)
		}
		start, end = &from, &to
	}
	return s.bookings.ListWithStudents(ctx, start, end)
}

// AdminUpdateInput carries optional admin edits.
type AdminUpdateInput struct {
	Course     *string
	CourseDate *string
	Status     *domain.BookingStatus
	ClassName  *string
}

// AdminUpdate edits course metadata, settlement status or class label.
func (s *BookingService) AdminUpdate(ctx context.Context, bookingID string, input AdminUpdateInput) error {
	if input.Status != nil && !input.Status.Valid() {
		return apperrors.NewValidationError("unknown status", nil)
	}
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("booking", nil)
		}
		return err
	}
	err := s.bookings.UpdateFields(ctx, bookingID, repository.BookingUpdate{
		Course:     input.Course,
		CourseDate: input.CourseDate,
		Status:     input.Status,
		ClassName:  input.ClassName,
	})
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFound("booking", nil)
	}
	return err
}

// AdminDelete removes a booking with no cutoff check.
func (s *BookingService) AdminDelete(ctx context.Context, bookingID string) error {
	return s.bookings.Delete(ctx, bookingID)
}

func (s *BookingService) publish(ctx context.Context, event events.Event) {
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

func generateBookingRef() string {
	return "MKB-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
