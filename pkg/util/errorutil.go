package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

// NewSuspended rejects actions by a suspended student account.
func NewSuspended(until string) error {
	details := map[string]any{}
	if until != "" {
		details["suspended_until"] = until
	}
	return NewDomainError("SUSPENDED", "account is suspended from booking", http.StatusForbidden, details)
}

// NewOutOfWindow rejects booking dates outside the admission window.
// The bounds are embedded so callers can show the valid range.
func NewOutOfWindow(minDate, maxDate string) error {
	return NewDomainError(
		"OUT_OF_WINDOW",
		fmt.Sprintf("bookings are only accepted for dates %s through %s", minDate, maxDate),
		http.StatusBadRequest,
		map[string]any{"min_date": minDate, "max_date": maxDate},
	)
}

func NewDuplicateBooking() error {
	return NewDomainError("DUPLICATE_BOOKING", "a booking already exists for this date and period", http.StatusConflict, nil)
}

func NewCapacityExceeded() error {
	return NewDomainError("CAPACITY_EXCEEDED", "all computers for this slot are already booked", http.StatusConflict, nil)
}

func NewTooLateToCancel() error {
	return NewDomainError("TOO_LATE_TO_CANCEL", "bookings must be cancelled at least one day in advance", http.StatusBadRequest, nil)
}

func NewAlreadyCheckedIn() error {
	return NewDomainError("ALREADY_CHECKED_IN", "booking is already checked in", http.StatusConflict, nil)
}

func NewIdentityMismatch() error {
	return NewDomainError("IDENTITY_MISMATCH", "account does not match the booking owner", http.StatusBadRequest, nil)
}

func NewWrongLocation(message string) error {
	return NewDomainError("WRONG_LOCATION", message, http.StatusBadRequest, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
