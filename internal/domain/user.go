package domain

import "time"

// Role distinguishes students from administrators.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is the domain model for student and admin accounts.
type User struct {
	ID             string
	Account        string
	PasswordHash   string
	Name           string
	Role           Role
	ClassName      *string
	IsSuspended    bool
	SuspendedUntil *time.Time
	CreatedAt      time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Suspend marks the account suspended through the given date.
func (u *User) Suspend(until time.Time) {
	day := Midnight(until)
	u.IsSuspended = true
	u.SuspendedUntil = &day
}

// LiftSuspension clears the suspension state unconditionally.
func (u *User) LiftSuspension() {
	u.IsSuspended = false
	u.SuspendedUntil = nil
}

// MaybeExpireSuspension clears an elapsed suspension and reports whether
// the user changed. Suspension is self-expiring: the calendar date of now
// on or after suspended_until lifts it, no background sweep involved.
func (u *User) MaybeExpireSuspension(now time.Time) bool {
	if !u.IsSuspended || u.SuspendedUntil == nil {
		return false
	}
	if Midnight(now).Before(Midnight(*u.SuspendedUntil)) {
		return false
	}
	u.LiftSuspension()
	return true
}
