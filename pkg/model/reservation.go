package model

import (
	"time"
)

// Reservation is the single bookable-unit reservation. StartDate and EndDate
// are inclusive calendar dates, stored normalized to midnight UTC.
type Reservation struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	HolderName  string    `json:"holder_name" bson:"holder_name" validate:"required,min=2,max=100"`
	HolderEmail string    `json:"holder_email" bson:"holder_email" validate:"required,email"`
	StartDate   time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" bson:"end_date" validate:"required"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}

// ReservationUpdate carries the only mutable fields of a persisted
// reservation. Holder identity is immutable once set.
type ReservationUpdate struct {
	StartDate *time.Time `json:"start_date,omitempty" validate:"omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" validate:"omitempty"`
}

// NormalizeDate truncates t to its calendar day in UTC.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// precedes a. Both arguments are normalized first, so intra-day components
// never skew the count.
func DaysBetween(a, b time.Time) int {
	a = NormalizeDate(a)
	b = NormalizeDate(b)
	return int(b.Sub(a).Hours() / 24)
}

// RangesOverlap reports whether the inclusive date ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one calendar day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !NormalizeDate(aStart).After(NormalizeDate(bEnd)) &&
		!NormalizeDate(aEnd).Before(NormalizeDate(bStart))
}

// Normalize snaps both dates of r to midnight UTC.
func (r *Reservation) Normalize() {
	r.StartDate = NormalizeDate(r.StartDate)
	r.EndDate = NormalizeDate(r.EndDate)
}

// Span returns the reservation length in days (EndDate - StartDate).
func (r *Reservation) Span() int {
	return DaysBetween(r.StartDate, r.EndDate)
}

// SameHolder reports whether other belongs to the same client identity.
func (r *Reservation) SameHolder(name, email string) bool {
	return r.HolderName == name && r.HolderEmail == email
}
