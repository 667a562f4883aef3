package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")
)

// RejectionReason identifies which business rule refused a candidate.
type RejectionReason string

const (
	ReasonTooFarAhead         RejectionReason = "too_far_ahead"
	ReasonInvalidRange        RejectionReason = "invalid_range"
	ReasonInvalidDuration     RejectionReason = "invalid_duration"
	ReasonHolderAlreadyBooked RejectionReason = "holder_already_booked"
	ReasonDatesAlreadyBooked  RejectionReason = "dates_already_booked"
)

// RejectionError is a business-rule rejection of a candidate reservation.
// It is terminal for the request: callers must not retry it automatically.
// ConflictID is set only for holder_already_booked, naming the persisted
// reservation that blocks the candidate.
type RejectionError struct {
	Reason     RejectionReason
	Message    string
	ConflictID string
}

func (e *RejectionError) Error() string {
	if e.ConflictID != "" {
		return fmt.Sprintf("%s: %s (conflicting reservation: %s)", e.Reason, e.Message, e.ConflictID)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func NewRejection(reason RejectionReason, message string) *RejectionError {
	return &RejectionError{Reason: reason, Message: message}
}

func NewHolderConflict(conflictID string) *RejectionError {
	return &RejectionError{
		Reason:     ReasonHolderAlreadyBooked,
		Message:    fmt.Sprintf("there is already a valid reservation in place for you (reservation id: %s)", conflictID),
		ConflictID: conflictID,
	}
}

// AsRejection unwraps err into a RejectionError when it is one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
