package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/makeup-booking/internal/config"
	"github.com/spec-kit/makeup-booking/internal/domain"
)

// Friday 2024-05-10, so the admission window is [2024-05-15, 2024-05-17].
var testNow = time.Date(2024, time.May, 10, 10, 0, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }

var testPolicy = config.BookingConfig{
	WindowMinOffsetDays: 5,
	WindowMaxOffsetDays: 7,
	SuspensionThreshold: 3,
	SuspensionMonths:    1,
}

type bookingFixture struct {
	users     *stubUserRepo
	bookings  *stubBookingRepo
	templates *stubTemplateRepo
	schedule  *ScheduleService
	service   *BookingService
	student   *domain.User
	admin     *domain.User
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	users := newStubUserRepo()
	bookings := newStubBookingRepo(users)
	templates := newStubTemplateRepo()

	className := "Class 3B"
	student := &domain.User{Account: "student01", Name: "Student One", Role: domain.RoleStudent, ClassName: &className}
	admin := &domain.User{Account: "admin", Name: "Administrator", Role: domain.RoleAdmin}
	if err := users.Create(context.Background(), student); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	if err := users.Create(context.Background(), admin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	// Headquarters evenings are open every weekday inside the test window.
	for day := 1; day <= 7; day++ {
		tmpl := &domain.SlotTemplate{
			Location:      domain.LocationHeadquarters,
			DayOfWeek:     day,
			Period:        domain.PeriodEvening,
			ComputerCount: 2,
			IsOpen:        true,
		}
		if err := templates.Create(context.Background(), tmpl); err != nil {
			t.Fatalf("seed template: %v", err)
		}
	}

	schedule := NewScheduleService(testPolicy, templates, bookings)
	schedule.now = fixedClock

	service := NewBookingService(BookingDependencies{
		BookingRepo: bookings,
		UserRepo:    users,
		Schedule:    schedule,
	})
	service.now = fixedClock

	return &bookingFixture{
		users:     users,
		bookings:  bookings,
		templates: templates,
		schedule:  schedule,
		service:   service,
		student:   student,
		admin:     admin,
	}
}

func TestCreateAsStudentWithinWindow(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateAsStudent(context.Background(), f.student, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-15",
		Period:      domain.PeriodEvening,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.ID == "" {
		t.Fatal("expected an assigned booking id")
	}
	if !strings.HasPrefix(booking.ReferenceKey, "MKB-") {
		t.Fatalf("unexpected reference key %q", booking.ReferenceKey)
	}
	if booking.Status != domain.BookingStatusPending {
		t.Fatalf("expected pending status, got %q", booking.Status)
	}
	if booking.CreatedBy != domain.CreatedByStudent {
		t.Fatalf("expected student creator, got %q", booking.CreatedBy)
	}
	if booking.ClassName != "Class 3B" {
		t.Fatalf("expected class name defaulted from profile, got %q", booking.ClassName)
	}
}

func TestCreateAsStudentWindowBoundaries(t *testing.T) {
	f := newBookingFixture(t)

	cases := []struct {
		date     string
		wantCode string
	}{
		{"2024-05-14", "OUT_OF_WINDOW"}, // today+4
		{"2024-05-15", ""},              // today+5, first admissible day
		{"2024-05-17", ""},              // today+7, last admissible day
		{"2024-05-18", "OUT_OF_WINDOW"}, // today+8
	}
	for _, tc := range cases {
		_, err := f.service.CreateAsStudent(context.Background(), f.student, BookingCreateInput{
			Location:    domain.LocationHeadquarters,
			BookingDate: tc.date,
			Period:      domain.PeriodEvening,
		})
		if tc.wantCode == "" {
			if err != nil {
				t.Fatalf("date %s: unexpected error %v", tc.date, err)
			}
			continue
		}
		if code := domainErrorCode(t, err); code != tc.wantCode {
			t.Fatalf("date %s: expected %s, got %s", tc.date, tc.wantCode, code)
		}
	}
}

func TestCreateAsStudentSuspended(t *testing.T) {
	f := newBookingFixture(t)

	until := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)
	f.student.IsSuspended = true
	f.student.SuspendedUntil = &until

	_, err := f.service.CreateAsStudent(context.Background(), f.student, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-15",
		Period:      domain.PeriodEvening,
	})
	if code := domainErrorCode(t, err); code != "SUSPENDED" {
		t.Fatalf("expected SUSPENDED, got %s", code)
	}
}

func TestCreateAsStudentDuplicateSlot(t *testing.T) {
	f := newBookingFixture(t)

	input := BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-15",
		Period:      domain.PeriodEvening,
	}
	if _, err := f.service.CreateAsStudent(context.Background(), f.student, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.service.CreateAsStudent(context.Background(), f.student, input)
	if code := domainErrorCode(t, err); code != "DUPLICATE_BOOKING" {
		t.Fatalf("expected DUPLICATE_BOOKING, got %s", code)
	}
}

func TestCreateAsStudentCapacityExceeded(t *testing.T) {
	f := newBookingFixture(t)

	input := BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-15",
		Period:      domain.PeriodEvening,
	}
	// The seeded template carries two computers: fill both seats.
	for i := 0; i < 2; i++ {
		other := &domain.User{Account: "other", Name: "Other", Role: domain.RoleStudent}
		if err := f.users.Create(context.Background(), other); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		if _, err := f.service.CreateAsStudent(context.Background(), other, input); err != nil {
			t.Fatalf("fill seat %d: %v", i, err)
		}
	}

	_, err := f.service.CreateAsStudent(context.Background(), f.student, input)
	if code := domainErrorCode(t, err); code != "CAPACITY_EXCEEDED" {
		t.Fatalf("expected CAPACITY_EXCEEDED, got %s", code)
	}
}

func TestCreateAsStudentOnlineUnlimited(t *testing.T) {
	f := newBookingFixture(t)

	// No template governs online; admissions never run out of seats.
	for i := 0; i < 10; i++ {
		student := &domain.User{Account: "bulk", Name: "Bulk", Role: domain.RoleStudent}
		if err := f.users.Create(context.Background(), student); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		_, err := f.service.CreateAsStudent(context.Background(), student, BookingCreateInput{
			Location:    domain.LocationOnline,
			BookingDate: "2024-05-15",
			Period:      domain.PeriodOnline,
		})
		if err != nil {
			t.Fatalf("online booking %d: %v", i, err)
		}
	}
}

func TestCreateAsStudentClosedSlot(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateAsStudent(context.Background(), f.student, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-15",
		Period:      domain.PeriodMorning, // no template row, resolves closed
	})
	if code := domainErrorCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestCreateAsAdminBypassesWindowAndSuspension(t *testing.T) {
	f := newBookingFixture(t)

	until := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)
	f.student.IsSuspended = true
	f.student.SuspendedUntil = &until
	if err := f.users.Update(context.Background(), f.student); err != nil {
		t.Fatalf("update student: %v", err)
	}

	// Tomorrow is outside the student window; staff may still register it.
	booking, err := f.service.CreateAsAdmin(context.Background(), f.student.ID, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-11",
		Period:      domain.PeriodEvening,
	})
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if booking.CreatedBy != domain.CreatedByAdmin {
		t.Fatalf("expected admin creator, got %q", booking.CreatedBy)
	}
}

func TestCreateAsAdminUnknownUser(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateAsAdmin(context.Background(), "missing", BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-11",
		Period:      domain.PeriodEvening,
	})
	if code := domainErrorCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestCancelRequiresOneDayLead(t *testing.T) {
	f := newBookingFixture(t)

	// Tomorrow still satisfies the one-day lead; today does not.
	tomorrow, err := f.service.CreateAsAdmin(context.Background(), f.student.ID, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-11",
		Period:      domain.PeriodEvening,
	})
	if err != nil {
		t.Fatalf("create tomorrow booking: %v", err)
	}
	if err := f.service.Cancel(context.Background(), f.student, tomorrow.ID); err != nil {
		t.Fatalf("cancel tomorrow booking: %v", err)
	}

	today, err := f.service.CreateAsAdmin(context.Background(), f.student.ID, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-10",
		Period:      domain.PeriodEvening,
	})
	if err != nil {
		t.Fatalf("create today booking: %v", err)
	}
	err = f.service.Cancel(context.Background(), f.student, today.ID)
	if code := domainErrorCode(t, err); code != "TOO_LATE_TO_CANCEL" {
		t.Fatalf("expected TOO_LATE_TO_CANCEL, got %s", code)
	}
}

func TestCancelForeignBookingHidden(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateAsStudent(context.Background(), f.student, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-15",
		Period:      domain.PeriodEvening,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	other := &domain.User{Account: "other01", Name: "Other", Role: domain.RoleStudent}
	if err := f.users.Create(context.Background(), other); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	err = f.service.Cancel(context.Background(), other, booking.ID)
	if code := domainErrorCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND for foreign booking, got %s", code)
	}
}

func TestAdminUpdateRejectsUnknownStatus(t *testing.T) {
	f := newBookingFixture(t)

	booking, err := f.service.CreateAsStudent(context.Background(), f.student, BookingCreateInput{
		Location:    domain.LocationHeadquarters,
		BookingDate: "2024-05-15",
		Period:      domain.PeriodEvening,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bogus := domain.BookingStatus("archived")
	err = f.service.AdminUpdate(context.Background(), booking.ID, AdminUpdateInput{Status: &bogus})
	if code := domainErrorCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}

	done := domain.BookingStatusCompleted
	if err := f.service.AdminUpdate(context.Background(), booking.ID, AdminUpdateInput{Status: &done}); err != nil {
		t.Fatalf("valid update: %v", err)
	}
	updated, err := f.bookings.GetByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.Status != domain.BookingStatusCompleted {
		t.Fatalf("expected completed status, got %q", updated.Status)
	}
}

func TestAdminListDateRange(t *testing.T) {
	f := newBookingFixture(t)

	for _, date := range []string{"2024-05-11", "2024-05-15", "2024-05-20"} {
		if _, err := f.service.CreateAsAdmin(context.Background(), f.student.ID, BookingCreateInput{
			Location:    domain.LocationHeadquarters,
			BookingDate: date,
			Period:      domain.PeriodEvening,
		}); err != nil {
			t.Fatalf("seed booking %s: %v", date, err)
		}
	}

	rows, err := f.service.AdminList(context.Background(), "2024-05-12", "2024-05-18")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 booking in range, got %d", len(rows))
	}
	if rows[0].StudentAccount != "student01" {
		t.Fatalf("expected joined student identity, got %q", rows[0].StudentAccount)
	}

	all, err := f.service.AdminList(context.Background(), "", "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 bookings without a range, got %d", len(all))
	}
}
