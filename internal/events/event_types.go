package events

import (
	"time"

	"github.com/spec-kit/makeup-booking/internal/domain"
)

// EventType identifies booking lifecycle events.
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingCheckedIn EventType = "booking.checked_in"
	EventUserSuspended    EventType = "user.suspended"
	EventSuspensionLifted EventType = "user.suspension_lifted"
)

// Event is the dispatched envelope.
type Event struct {
	ID        string
	Type      EventType
	UserID    string
	BookingID string
	Timestamp time.Time
	Payload   any
}

// BookingCreatedPayload describes a committed admission.
type BookingCreatedPayload struct {
	Location    domain.Location
	BookingDate string
	Period      domain.Period
	CreatedBy   domain.CreatorType
}

// BookingCancelledPayload describes a freed slot.
type BookingCancelledPayload struct {
	Location    domain.Location
	BookingDate string
	Period      domain.Period
}

// BookingCheckedInPayload describes a completed check-in.
type BookingCheckedInPayload struct {
	Account     string
	CheckedInAt time.Time
}

// UserSuspendedPayload describes a no-show-triggered suspension.
type UserSuspendedPayload struct {
	YearMonth      string
	NoShowCount    int
	SuspendedUntil string
}
