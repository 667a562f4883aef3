package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reserrors "reservationmanager/internal/reservations/errors"
	"reservationmanager/pkg/logger"
	"reservationmanager/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ConflictLookups are the two reads the business rules (holder uniqueness and
// date overlap) are evaluated against. The reservation service binds them to
// the same unit of work as the eventual write; evaluating them outside it
// would open a time-of-check/time-of-use race.
type ConflictLookups struct {
	Overlapping     func(ctx context.Context, from, to time.Time) ([]*model.Reservation, error)
	ActiveForHolder func(ctx context.Context, name, email string, after time.Time) ([]*model.Reservation, error)
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger

	maxAdvanceDays int
	minStayDays    int
	maxStayDays    int
}

func NewReservationValidator(log *logger.Logger, maxAdvanceDays, minStayDays, maxStayDays int) *ReservationValidator {
	log.Info("Reservation validator initialized",
		"max_advance_days", maxAdvanceDays,
		"min_stay_days", minStayDays,
		"max_stay_days", maxStayDays,
	)

	return &ReservationValidator{
		validate:       validator.New(),
		logger:         log,
		maxAdvanceDays: maxAdvanceDays,
		minStayDays:    minStayDays,
		maxStayDays:    maxStayDays,
	}
}

// ValidateCandidate performs structural, field-level validation of a
// candidate: required fields, email shape, dates not in the past. It needs no
// storage access and runs before any lock or transaction is taken.
func (v *ReservationValidator) ValidateCandidate(reservation *model.Reservation, now time.Time) error {
	if err := v.validate.Struct(reservation); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	today := model.NormalizeDate(now)
	if model.NormalizeDate(reservation.StartDate).Before(today) {
		return ValidationErrors{
			ValidationError{
				Field:   "StartDate",
				Message: "start_date cannot be in the past",
			},
		}
	}
	if model.NormalizeDate(reservation.EndDate).Before(today) {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: "end_date cannot be in the past",
			},
		}
	}

	return nil
}

// ValidateRules applies the business rules in order; the first failing rule
// wins so rejection reasons stay deterministic and user-actionable. The
// decision is pure: "now" and the conflict set are injected, nothing here
// writes.
func (v *ReservationValidator) ValidateRules(ctx context.Context, candidate *model.Reservation, now time.Time, lookups ConflictLookups) error {
	if model.DaysBetween(now, candidate.StartDate) > v.maxAdvanceDays {
		return reserrors.NewRejection(reserrors.ReasonTooFarAhead,
			fmt.Sprintf("reservation too far ahead: reservations can be made up to %d days in advance", v.maxAdvanceDays))
	}

	span := candidate.Span()

	if span < 0 {
		return reserrors.NewRejection(reserrors.ReasonInvalidRange,
			"reservation has an invalid range: make sure the start date is before the end date")
	}

	if span < v.minStayDays || span > v.maxStayDays {
		return reserrors.NewRejection(reserrors.ReasonInvalidDuration,
			fmt.Sprintf("reservation lasts %d days: must be between %d and %d days", span, v.minStayDays, v.maxStayDays))
	}

	active, err := lookups.ActiveForHolder(ctx, candidate.HolderName, candidate.HolderEmail, now)
	if err != nil {
		return err
	}
	for _, existing := range active {
		if existing.ID != candidate.ID {
			return reserrors.NewHolderConflict(existing.ID)
		}
	}

	overlapping, err := lookups.Overlapping(ctx, candidate.StartDate, candidate.EndDate)
	if err != nil {
		return err
	}
	for _, existing := range overlapping {
		if existing.ID != candidate.ID {
			return reserrors.NewRejection(reserrors.ReasonDatesAlreadyBooked,
				"there is already a valid reservation in place for those dates")
		}
	}

	return nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "uuid4":
			message = fmt.Sprintf("%s must be a valid UUID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
