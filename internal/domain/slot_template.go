package domain

import "time"

// Location enumerates bookable sites. Online carries no seat limit and no
// weekly template.
type Location string

const (
	LocationHeadquarters Location = "headquarters"
	LocationDachang      Location = "dachang"
	LocationOnline       Location = "online"
)

// PhysicalLocations lists the sites backed by slot templates.
var PhysicalLocations = []Location{LocationHeadquarters, LocationDachang}

// Valid reports whether the location is a known value.
func (l Location) Valid() bool {
	switch l {
	case LocationHeadquarters, LocationDachang, LocationOnline:
		return true
	}
	return false
}

// Period enumerates the daily time slots. PeriodOnline only appears on
// bookings at the online location.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
	PeriodOnline    Period = "online"
)

// TemplatePeriods lists the periods a weekly template may define.
var TemplatePeriods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// Valid reports whether the period is a known value.
func (p Period) Valid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodOnline:
		return true
	}
	return false
}

// SlotTemplate is the weekly recurrence rule for one
// (location, day-of-week, period) key.
type SlotTemplate struct {
	ID            string
	Location      Location
	DayOfWeek     int // ISO: Monday=1 .. Sunday=7
	Period        Period
	ComputerCount int
	IsOpen        bool
}

// UnlimitedCapacity is the sentinel reported for the online location.
const UnlimitedCapacity = -1

// ResolvedSlot is the outcome of resolving a template for a concrete date.
type ResolvedSlot struct {
	Capacity int
	IsOpen   bool
}

// Unlimited reports whether the slot has no seat limit.
func (s ResolvedSlot) Unlimited() bool {
	return s.Capacity == UnlimitedCapacity
}

// DateLayout is the calendar date wire format.
const DateLayout = "2006-01-02"

// ISOWeekday maps a date to the domain's Monday=1..Sunday=7 convention,
// remapping Go's native Sunday=0.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// Midnight truncates a timestamp to its local calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate parses a calendar date in the wire format.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.Local)
}

// FormatDate renders a calendar date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
