package domain

import "time"

// BookingStatus enumerates administrative settlement states.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusUnpaid    BookingStatus = "unpaid"
)

// Valid reports whether the status is a known value.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusCompleted, BookingStatusUnpaid:
		return true
	}
	return false
}

// CreatorType records which path inserted a booking.
type CreatorType string

const (
	CreatedByStudent CreatorType = "student"
	CreatedByAdmin   CreatorType = "admin"
)

// Booking commits one user to one (location, date, period) occurrence.
type Booking struct {
	ID             string
	ReferenceKey   string
	UserID         string
	Location       Location
	BookingDate    time.Time
	Period         Period
	ClassName      string
	Course         string
	CourseDate     string
	AttachmentPath string
	Status         BookingStatus
	PointsAdded    bool
	CheckedIn      bool
	CheckedInAt    *time.Time
	CreatedAt      time.Time
	CreatedBy      CreatorType
}

// BookingWithStudent joins a booking with its owner's identity for admin
// listings and check-in rosters.
type BookingWithStudent struct {
	Booking
	StudentName    string
	StudentAccount string
	StudentClass   *string
}
