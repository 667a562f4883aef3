package service

import (
	"context"
	"errors"
	"time"

	"reservationmanager/internal/reservations/cache"
	reserrors "reservationmanager/internal/reservations/errors"
	"reservationmanager/internal/reservations/events"
	"reservationmanager/internal/reservations/repository"
	"reservationmanager/internal/reservations/validator"
	"reservationmanager/pkg/config"
	apperrors "reservationmanager/pkg/errors"
	"reservationmanager/pkg/model"
	"reservationmanager/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// unitLockID serializes writers against the single bookable unit. Every
// create/edit takes this advisory lock for the duration of its
// validate-then-commit transaction, so two candidates that would together
// violate the overlap or holder-uniqueness invariant can never both pass
// validation against the same stale state.
const unitLockID = "reservation_unit_lock"

type ReservationService interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	Edit(ctx context.Context, id string, updates *model.ReservationUpdate) (*model.Reservation, error)
	Cancel(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]*model.Reservation, error)
}

type reservationService struct {
	repo      repository.ReservationRepository
	lockRepo  repository.ReservationLockRepository
	validator *validator.ReservationValidator
	cache     cache.ReservationCache
	events    events.ReservationEvents
	cfg       *config.Config
}

func NewReservationService(
	repo repository.ReservationRepository,
	lockRepo repository.ReservationLockRepository,
	validator *validator.ReservationValidator,
	reservationCache cache.ReservationCache,
	reservationEvents events.ReservationEvents,
	cfg *config.Config,
) ReservationService {
	return &reservationService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		cache:     reservationCache,
		events:    reservationEvents,
		cfg:       cfg,
	}
}

func (s *reservationService) Create(ctx context.Context, reservation *model.Reservation) error {
	s.sanitize(reservation)
	reservation.Normalize()
	reservation.ID = "" // id is assigned on commit, never by the caller

	now := time.Now()
	if err := s.validateCandidate(reservation, now); err != nil {
		return err
	}

	release, err := s.acquireUnitLock(ctx)
	if err != nil {
		return err
	}
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.validator.ValidateRules(txCtx, reservation, now, s.conflictLookups()); err != nil {
			return s.ruleError(err)
		}
		if err := s.repo.Insert(txCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create reservation", "error", err)
		return err
	}

	s.cache.Put(ctx, reservation)
	s.events.ReservationCreated(ctx, reservation)

	s.cfg.Log.Info("Reservation created successfully",
		"id", reservation.ID,
		"holder_email", reservation.HolderEmail,
		"start_date", reservation.StartDate,
		"end_date", reservation.EndDate,
	)
	return nil
}

func (s *reservationService) Edit(ctx context.Context, id string, updates *model.ReservationUpdate) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	release, err := s.acquireUnitLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	now := time.Now()
	var merged model.Reservation

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		// The merge base is read under the unit lock, inside the same unit of
		// work as the write: a concurrent edit cannot slip a stale field past
		// the merge.
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return s.storeError("Failed to check reservation existence", id, err)
		}

		// Only the date fields are mutable; holder identity stays as persisted.
		merged = *existing
		if updates.StartDate != nil {
			merged.StartDate = *updates.StartDate
		}
		if updates.EndDate != nil {
			merged.EndDate = *updates.EndDate
		}
		merged.Normalize()

		if err := s.validateCandidate(&merged, now); err != nil {
			return err
		}

		// Self-exclusion: the candidate carries the persisted id, so its own
		// row never counts as a conflict.
		if err := s.validator.ValidateRules(txCtx, &merged, now, s.conflictLookups()); err != nil {
			return s.ruleError(err)
		}
		if err := s.repo.UpdateDates(txCtx, id, merged.StartDate, merged.EndDate); err != nil {
			return s.storeError("Failed to update reservation", id, err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to edit reservation", "id", id, "error", err)
		return nil, err
	}

	s.cache.Put(ctx, &merged)
	s.events.ReservationUpdated(ctx, &merged)

	s.cfg.Log.Info("Reservation updated successfully", "id", id)
	return &merged, nil
}

// Cancel deletes unconditionally, with no validation. Cancelling an id that
// no longer exists is not an error: the end state is the same.
func (s *reservationService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	removed := true
	err := s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reserrors.ErrNotFound) {
				removed = false
				return nil
			}
			if errors.Is(err, reserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid reservation ID format")
			}
			return apperrors.Internal("Failed to cancel reservation", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel reservation", "id", id, "error", err)
		return err
	}

	s.cache.Evict(ctx, id)
	if removed {
		s.events.ReservationCancelled(ctx, id)
	}

	s.cfg.Log.Info("Reservation cancelled", "id", id, "removed", removed)
	return nil
}

// FindByID is read-through: cache first, store on miss, cache repopulated
// from the store's answer.
func (s *reservationService) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	if reservation, ok := s.cache.Get(ctx, id); ok {
		return reservation, nil
	}

	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError("Failed to retrieve reservation", id, err)
	}

	s.cache.Put(ctx, reservation)
	return reservation, nil
}

// FindBetween always reads the store directly; range queries are not cached.
func (s *reservationService) FindBetween(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	if model.NormalizeDate(to).Before(model.NormalizeDate(from)) {
		return nil, apperrors.InvalidInput("'to' date cannot be before 'from' date")
	}

	reservations, err := s.repo.FindOverlapping(ctx, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to search reservations", "from", from, "to", to, "error", err)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}

	return reservations, nil
}

// --- Helpers ---

func (s *reservationService) sanitize(r *model.Reservation) {
	r.HolderName = sanitizer.NormalizeHolderName(r.HolderName)
	r.HolderEmail = sanitizer.NormalizeHolderEmail(r.HolderEmail)
}

func (s *reservationService) validateCandidate(r *model.Reservation, now time.Time) error {
	if err := s.validator.ValidateCandidate(r, now); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *reservationService) conflictLookups() validator.ConflictLookups {
	return validator.ConflictLookups{
		Overlapping:     s.repo.FindOverlapping,
		ActiveForHolder: s.repo.FindActiveForHolder,
	}
}

// ruleError translates a business-rule outcome into the caller-facing error
// taxonomy. Storage failures raised by the conflict lookups pass through
// untouched: a real race must never masquerade as a validation verdict.
func (s *reservationService) ruleError(err error) error {
	if rej, ok := reserrors.AsRejection(err); ok {
		details := map[string]any{"reason": string(rej.Reason)}
		if rej.ConflictID != "" {
			details["conflict_id"] = rej.ConflictID
		}
		return apperrors.Validation(rej.Message, details)
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Failed to check existing reservations", err)
}

func (s *reservationService) storeError(message, id string, err error) error {
	if errors.Is(err, reserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Reservation", id)
	}
	if errors.Is(err, reserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid reservation ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal(message, err)
}

// acquireUnitLock takes the advisory lock covering the bookable unit.
// A duplicate key means another writer is mid-commit; that is a retryable
// concurrency conflict, not a business rejection.
func (s *reservationService) acquireUnitLock(ctx context.Context) (func(), error) {
	lock := &model.ReservationLock{
		ID:        unitLockID,
		ExpiresAt: time.Now().Add(s.cfg.LockTTL),
	}

	if _, err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ConcurrencyConflict("another reservation is being processed: please retry", err)
		}
		return nil, apperrors.Internal("Failed to acquire reservation lock", err)
	}

	release := func() {
		if err := s.lockRepo.Release(ctx, unitLockID); err != nil {
			s.cfg.Log.Warn("Failed to release reservation lock", "lock_id", unitLockID, "error", err)
		}
	}
	return release, nil
}
