package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/makeup-booking/internal/domain"
	"github.com/spec-kit/makeup-booking/internal/repository"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// In-memory repository doubles for service tests. They mirror the Postgres
// implementations' contract, including the capacity and duplicate guards
// inside the booking write path.

type stubUserRepo struct {
	users   map[string]*domain.User
	updates int
	nextID  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	r.updates++
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetByAccount(_ context.Context, account string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Account == account {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ListStudents(_ context.Context) ([]domain.User, error) {
	var students []domain.User
	for _, user := range r.users {
		if user.Role == domain.RoleStudent {
			students = append(students, *user)
		}
	}
	return students, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

type stubBookingRepo struct {
	bookings map[string]*domain.Booking
	users    *stubUserRepo
	nextID   int
}

func newStubBookingRepo(users *stubUserRepo) *stubBookingRepo {
	return &stubBookingRepo{bookings: map[string]*domain.Booking{}, users: users}
}

func (r *stubBookingRepo) CreateWithCapacity(_ context.Context, booking *domain.Booking, capacity int) error {
	for _, existing := range r.bookings {
		if existing.UserID == booking.UserID &&
			existing.BookingDate.Equal(booking.BookingDate) &&
			existing.Period == booking.Period {
			return apperrors.NewDuplicateBooking()
		}
	}
	if capacity != domain.UnlimitedCapacity {
		booked := 0
		for _, existing := range r.bookings {
			if existing.Location == booking.Location &&
				existing.BookingDate.Equal(booking.BookingDate) &&
				existing.Period == booking.Period {
				booked++
			}
		}
		if booked >= capacity {
			return apperrors.NewCapacityExceeded()
		}
	}
	r.nextID++
	booking.ID = fmt.Sprintf("booking-%d", r.nextID)
	booking.CreatedAt = time.Now()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *stubBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (r *stubBookingRepo) GetWithStudent(ctx context.Context, id string) (*domain.BookingWithStudent, error) {
	booking, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.join(booking), nil
}

func (r *stubBookingRepo) join(booking *domain.Booking) *domain.BookingWithStudent {
	row := &domain.BookingWithStudent{Booking: *booking}
	if user, ok := r.users.users[booking.UserID]; ok {
		row.StudentName = user.Name
		row.StudentAccount = user.Account
		row.StudentClass = user.ClassName
	}
	return row
}

func (r *stubBookingRepo) ExistsForUserSlot(_ context.Context, userID string, date time.Time, period domain.Period) (bool, error) {
	for _, booking := range r.bookings {
		if booking.UserID == userID && booking.BookingDate.Equal(date) && booking.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBookingRepo) CountForSlot(_ context.Context, location domain.Location, date time.Time, period domain.Period) (int, error) {
	count := 0
	for _, booking := range r.bookings {
		if booking.Location == location && booking.BookingDate.Equal(date) && booking.Period == period {
			count++
		}
	}
	return count, nil
}

func (r *stubBookingRepo) ListByUserFromDate(_ context.Context, userID string, from time.Time) ([]domain.Booking, error) {
	var result []domain.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID && !booking.BookingDate.Before(from) {
			result = append(result, *booking)
		}
	}
	return result, nil
}

func (r *stubBookingRepo) ListWithStudents(_ context.Context, startDate, endDate *time.Time) ([]domain.BookingWithStudent, error) {
	var result []domain.BookingWithStudent
	for _, booking := range r.bookings {
		if startDate != nil && booking.BookingDate.Before(*startDate) {
			continue
		}
		if endDate != nil && booking.BookingDate.After(*endDate) {
			continue
		}
		result = append(result, *r.join(booking))
	}
	return result, nil
}

func (r *stubBookingRepo) ListRoster(_ context.Context, date time.Time, period *domain.Period) ([]domain.BookingWithStudent, error) {
	var result []domain.BookingWithStudent
	for _, booking := range r.bookings {
		if !booking.BookingDate.Equal(date) {
			continue
		}
		if period != nil && booking.Period != *period {
			continue
		}
		result = append(result, *r.join(booking))
	}
	return result, nil
}

func (r *stubBookingRepo) UpdateFields(_ context.Context, id string, update repository.BookingUpdate) error {
	booking, ok := r.bookings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if update.Course != nil {
		booking.Course = *update.Course
	}
	if update.CourseDate != nil {
		booking.CourseDate = *update.CourseDate
	}
	if update.Status != nil {
		booking.Status = *update.Status
	}
	if update.ClassName != nil {
		booking.ClassName = *update.ClassName
	}
	return nil
}

func (r *stubBookingRepo) SetCheckedIn(_ context.Context, id string, at time.Time) error {
	booking, ok := r.bookings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if booking.CheckedIn {
		return apperrors.NewAlreadyCheckedIn()
	}
	booking.CheckedIn = true
	booking.CheckedInAt = &at
	return nil
}

func (r *stubBookingRepo) SetPointsAdded(_ context.Context, id string) error {
	booking, ok := r.bookings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	booking.PointsAdded = true
	return nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.bookings, id)
	return nil
}

type stubNoShowRepo struct {
	counts map[string]int
	users  *stubUserRepo
}

func newStubNoShowRepo(users *stubUserRepo) *stubNoShowRepo {
	return &stubNoShowRepo{counts: map[string]int{}, users: users}
}

func noShowKey(userID, yearMonth string) string {
	return userID + "|" + yearMonth
}

func (r *stubNoShowRepo) Increment(_ context.Context, userID, yearMonth string) (int, error) {
	key := noShowKey(userID, yearMonth)
	r.counts[key]++
	return r.counts[key], nil
}

func (r *stubNoShowRepo) GetByUserMonth(_ context.Context, userID, yearMonth string) (*domain.NoShowRecord, error) {
	count, ok := r.counts[noShowKey(userID, yearMonth)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.NoShowRecord{UserID: userID, YearMonth: yearMonth, Count: count}, nil
}

func (r *stubNoShowRepo) ListByMonth(_ context.Context, yearMonth string) ([]domain.NoShowWithStudent, error) {
	var result []domain.NoShowWithStudent
	for key, count := range r.counts {
		userID := key[:len(key)-len(yearMonth)-1]
		if key != noShowKey(userID, yearMonth) {
			continue
		}
		row := domain.NoShowWithStudent{
			NoShowRecord: domain.NoShowRecord{UserID: userID, YearMonth: yearMonth, Count: count},
		}
		if user, ok := r.users.users[userID]; ok {
			row.StudentName = user.Name
			row.StudentAccount = user.Account
		}
		result = append(result, row)
	}
	return result, nil
}

type stubTemplateRepo struct {
	templates map[string]*domain.SlotTemplate
	nextID    int
}

func newStubTemplateRepo() *stubTemplateRepo {
	return &stubTemplateRepo{templates: map[string]*domain.SlotTemplate{}}
}

func (r *stubTemplateRepo) Create(_ context.Context, tmpl *domain.SlotTemplate) error {
	r.nextID++
	tmpl.ID = fmt.Sprintf("tmpl-%d", r.nextID)
	copied := *tmpl
	r.templates[tmpl.ID] = &copied
	return nil
}

func (r *stubTemplateRepo) GetByKey(_ context.Context, location domain.Location, dayOfWeek int, period domain.Period) (*domain.SlotTemplate, error) {
	for _, tmpl := range r.templates {
		if tmpl.Location == location && tmpl.DayOfWeek == dayOfWeek && tmpl.Period == period {
			copied := *tmpl
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubTemplateRepo) ListOpenByDay(_ context.Context, location domain.Location, dayOfWeek int) ([]domain.SlotTemplate, error) {
	var result []domain.SlotTemplate
	for _, tmpl := range r.templates {
		if tmpl.Location == location && tmpl.DayOfWeek == dayOfWeek && tmpl.IsOpen {
			result = append(result, *tmpl)
		}
	}
	return result, nil
}

func (r *stubTemplateRepo) ListAll(_ context.Context) ([]domain.SlotTemplate, error) {
	var result []domain.SlotTemplate
	for _, tmpl := range r.templates {
		result = append(result, *tmpl)
	}
	return result, nil
}

func (r *stubTemplateRepo) UpdateByID(_ context.Context, id string, update repository.SlotTemplateUpdate) error {
	tmpl, ok := r.templates[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if update.ComputerCount != nil {
		tmpl.ComputerCount = *update.ComputerCount
	}
	if update.IsOpen != nil {
		tmpl.IsOpen = *update.IsOpen
	}
	return nil
}

func domainErrorCode(t interface{ Fatalf(string, ...any) }, err error) string {
	if err == nil {
		t.Fatalf("expected an error, got nil")
	}
	domainErr := apperrors.ToDomainError(err)
	return domainErr.Code
}
