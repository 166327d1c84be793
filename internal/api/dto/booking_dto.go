package dto

import (
	"time"

	"github.com/spec-kit/makeup-booking/internal/domain"
)

// CreateBookingRequest is the student booking payload.
type CreateBookingRequest struct {
	Location       string `json:"location" validate:"required"`
	BookingDate    string `json:"booking_date" validate:"required"`
	Period         string `json:"period" validate:"required"`
	ClassName      string `json:"class_name"`
	Course         string `json:"course"`
	CourseDate     string `json:"course_date"`
	AttachmentPath string `json:"attachment_path"`
}

// AdminCreateBookingRequest adds the target student.
type AdminCreateBookingRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	Location       string `json:"location" validate:"required"`
	BookingDate    string `json:"booking_date" validate:"required"`
	Period         string `json:"period" validate:"required"`
	ClassName      string `json:"class_name"`
	Course         string `json:"course"`
	CourseDate     string `json:"course_date"`
	AttachmentPath string `json:"attachment_path"`
}

// AdminUpdateBookingRequest carries optional field edits.
type AdminUpdateBookingRequest struct {
	Course     *string `json:"course"`
	CourseDate *string `json:"course_date"`
	Status     *string `json:"status"`
	ClassName  *string `json:"class_name"`
}

// UpdateBookingStatusRequest sets the settlement status alone.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingResponse is the caller-visible booking shape.
type BookingResponse struct {
	ID             string               `json:"id"`
	ReferenceKey   string               `json:"reference_key"`
	UserID         string               `json:"user_id"`
	Location       domain.Location      `json:"location"`
	BookingDate    string               `json:"booking_date"`
	Period         domain.Period        `json:"period"`
	ClassName      string               `json:"class_name"`
	Course         string               `json:"course"`
	CourseDate     string               `json:"course_date"`
	AttachmentPath string               `json:"attachment_path"`
	Status         domain.BookingStatus `json:"status"`
	PointsAdded    bool                 `json:"points_added"`
	CheckedIn      bool                 `json:"checked_in"`
	CheckedInAt    *time.Time           `json:"checked_in_at"`
	CreatedAt      time.Time            `json:"created_at"`
	CreatedBy      domain.CreatorType   `json:"created_by"`
}

// BookingWithStudentResponse joins the owning student's identity.
type BookingWithStudentResponse struct {
	BookingResponse
	StudentName    string  `json:"student_name"`
	StudentAccount string  `json:"student_account"`
	StudentClass   *string `json:"student_class"`
}

// NewBookingResponse maps a domain booking.
func NewBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		ReferenceKey:   b.ReferenceKey,
		UserID:         b.UserID,
		Location:       b.Location,
		BookingDate:    domain.FormatDate(b.BookingDate),
		Period:         b.Period,
		ClassName:      b.ClassName,
		Course:         b.Course,
		CourseDate:     b.CourseDate,
		AttachmentPath: b.AttachmentPath,
		Status:         b.Status,
		PointsAdded:    b.PointsAdded,
		CheckedIn:      b.CheckedIn,
		CheckedInAt:    b.CheckedInAt,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
	}
}

// NewBookingWithStudentResponse maps a joined booking row.
func NewBookingWithStudentResponse(b *domain.BookingWithStudent) BookingWithStudentResponse {
	return BookingWithStudentResponse{
		BookingResponse: NewBookingResponse(&b.Booking),
		StudentName:     b.StudentName,
		StudentAccount:  b.StudentAccount,
		StudentClass:    b.StudentClass,
	}
}
