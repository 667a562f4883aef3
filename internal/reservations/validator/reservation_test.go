package validator

import (
	"context"
	"errors"
	"testing"
	"time"

	reserrors "reservationmanager/internal/reservations/errors"
	"reservationmanager/pkg/logger"
	"reservationmanager/pkg/model"

	"github.com/google/uuid"
)

func newValidator() *ReservationValidator {
	return NewReservationValidator(logger.NewNop(), 30, 1, 3)
}

func day(offset int) time.Time {
	return model.NormalizeDate(time.Now()).AddDate(0, 0, offset)
}

func candidate(startOffset, endOffset int) *model.Reservation {
	return &model.Reservation{
		HolderName:  "Alice Smith",
		HolderEmail: "alice@example.com",
		StartDate:   day(startOffset),
		EndDate:     day(endOffset),
	}
}

func noConflicts() ConflictLookups {
	return ConflictLookups{
		Overlapping: func(context.Context, time.Time, time.Time) ([]*model.Reservation, error) {
			return nil, nil
		},
		ActiveForHolder: func(context.Context, string, string, time.Time) ([]*model.Reservation, error) {
			return nil, nil
		},
	}
}

func TestValidateCandidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.Reservation)
		wantErr bool
	}{
		{"valid candidate", func(r *model.Reservation) {}, false},
		{"missing name", func(r *model.Reservation) { r.HolderName = "" }, true},
		{"name too short", func(r *model.Reservation) { r.HolderName = "A" }, true},
		{"missing email", func(r *model.Reservation) { r.HolderEmail = "" }, true},
		{"malformed email", func(r *model.Reservation) { r.HolderEmail = "alice" }, true},
		{"missing start date", func(r *model.Reservation) { r.StartDate = time.Time{} }, true},
		{"missing end date", func(r *model.Reservation) { r.EndDate = time.Time{} }, true},
		{"start date in the past", func(r *model.Reservation) { r.StartDate = day(-1) }, true},
		{"end date in the past", func(r *model.Reservation) { r.StartDate, r.EndDate = day(-3), day(-1) }, true},
		{"start date today", func(r *model.Reservation) { r.StartDate = day(0) }, false},
		{"non-uuid id", func(r *model.Reservation) { r.ID = "not-a-uuid" }, true},
		{"uuid id", func(r *model.Reservation) { r.ID = uuid.NewString() }, false},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := candidate(0, 2)
			tt.mutate(r)

			err := v.ValidateCandidate(r, time.Now())
			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected success, got %v", err)
			}
		})
	}
}

func TestValidateRulesBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		startOffset int
		endOffset   int
		wantReason  reserrors.RejectionReason
	}{
		{"one day ahead", 1, 2, ""},
		{"exactly max advance", 30, 31, ""},
		{"one past max advance", 31, 32, reserrors.ReasonTooFarAhead},
		{"far past max advance", 120, 121, reserrors.ReasonTooFarAhead},
		{"end before start", 7, 5, reserrors.ReasonInvalidRange},
		{"same-day span", 5, 5, reserrors.ReasonInvalidDuration},
		{"minimum span", 5, 6, ""},
		{"maximum span", 5, 8, ""},
		{"span one over max", 5, 9, reserrors.ReasonInvalidDuration},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRules(context.Background(), candidate(tt.startOffset, tt.endOffset), time.Now(), noConflicts())
			if tt.wantReason == "" {
				if err != nil {
					t.Errorf("expected admission, got %v", err)
				}
				return
			}
			rej, ok := reserrors.AsRejection(err)
			if !ok {
				t.Fatalf("expected a rejection, got %v", err)
			}
			if rej.Reason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, rej.Reason)
			}
		})
	}
}

func TestValidateRulesRangeBeatsDuration(t *testing.T) {
	// An inverted range is always invalid_range, never invalid_duration,
	// regardless of how long the negative span is.
	v := newValidator()
	err := v.ValidateRules(context.Background(), candidate(10, 2), time.Now(), noConflicts())
	rej, ok := reserrors.AsRejection(err)
	if !ok || rej.Reason != reserrors.ReasonInvalidRange {
		t.Fatalf("expected invalid_range, got %v", err)
	}
}

func TestValidateRulesHolderConflict(t *testing.T) {
	existingID := uuid.NewString()
	lookups := noConflicts()
	lookups.ActiveForHolder = func(context.Context, string, string, time.Time) ([]*model.Reservation, error) {
		return []*model.Reservation{{ID: existingID, StartDate: day(20), EndDate: day(22)}}, nil
	}

	v := newValidator()
	err := v.ValidateRules(context.Background(), candidate(5, 7), time.Now(), lookups)
	rej, ok := reserrors.AsRejection(err)
	if !ok || rej.Reason != reserrors.ReasonHolderAlreadyBooked {
		t.Fatalf("expected holder_already_booked, got %v", err)
	}
	if rej.ConflictID != existingID {
		t.Errorf("expected conflict id %q, got %q", existingID, rej.ConflictID)
	}
}

func TestValidateRulesHolderConflictBeatsOverlap(t *testing.T) {
	// When both conflict rules would fire, holder uniqueness is checked
	// first and its reason wins.
	overlapCalled := false
	lookups := ConflictLookups{
		ActiveForHolder: func(context.Context, string, string, time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{{ID: uuid.NewString()}}, nil
		},
		Overlapping: func(context.Context, time.Time, time.Time) ([]*model.Reservation, error) {
			overlapCalled = true
			return []*model.Reservation{{ID: uuid.NewString()}}, nil
		},
	}

	v := newValidator()
	err := v.ValidateRules(context.Background(), candidate(5, 7), time.Now(), lookups)
	rej, ok := reserrors.AsRejection(err)
	if !ok || rej.Reason != reserrors.ReasonHolderAlreadyBooked {
		t.Fatalf("expected holder_already_booked, got %v", err)
	}
	if overlapCalled {
		t.Error("overlap lookup must not run once the holder rule has rejected")
	}
}

func TestValidateRulesSelfExclusion(t *testing.T) {
	id := uuid.NewString()
	self := candidate(5, 7)
	self.ID = id

	lookups := ConflictLookups{
		ActiveForHolder: func(context.Context, string, string, time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{{ID: id, StartDate: day(5), EndDate: day(7)}}, nil
		},
		Overlapping: func(context.Context, time.Time, time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{{ID: id, StartDate: day(5), EndDate: day(7)}}, nil
		},
	}

	v := newValidator()
	if err := v.ValidateRules(context.Background(), self, time.Now(), lookups); err != nil {
		t.Fatalf("expected a reservation not to conflict with itself, got %v", err)
	}
}

func TestValidateRulesLookupErrorsPropagate(t *testing.T) {
	lookupErr := errors.New("connection reset")
	lookups := noConflicts()
	lookups.ActiveForHolder = func(context.Context, string, string, time.Time) ([]*model.Reservation, error) {
		return nil, lookupErr
	}

	v := newValidator()
	err := v.ValidateRules(context.Background(), candidate(5, 7), time.Now(), lookups)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error to propagate unchanged, got %v", err)
	}
	if _, ok := reserrors.AsRejection(err); ok {
		t.Error("a lookup failure must not be reported as a rejection")
	}
}
