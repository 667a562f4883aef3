package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"reservationmanager/internal/reservations/cache"
	reserrors "reservationmanager/internal/reservations/errors"
	"reservationmanager/internal/reservations/repository"
	"reservationmanager/internal/reservations/validator"
	"reservationmanager/pkg/config"
	apperrors "reservationmanager/pkg/errors"
	"reservationmanager/pkg/logger"
	"reservationmanager/pkg/model"

	mongotx "reservationmanager/pkg/db/mongo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockRepo struct {
	insertFn          func(ctx context.Context, reservation *model.Reservation) error
	findByIDFn        func(ctx context.Context, id string) (*model.Reservation, error)
	findOverlappingFn func(ctx context.Context, from, to time.Time) ([]*model.Reservation, error)
	findActiveFn      func(ctx context.Context, name, email string, after time.Time) ([]*model.Reservation, error)
	updateDatesFn     func(ctx context.Context, id string, startDate, endDate time.Time) error
	deleteFn          func(ctx context.Context, id string) error
	executeTxFn       func(ctx context.Context, fn mongotx.TransactionFunc) error
}

func (m *mockRepo) Insert(ctx context.Context, reservation *model.Reservation) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, reservation)
	}
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	return nil
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, reserrors.ErrNotFound
}

func (m *mockRepo) FindOverlapping(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	if m.findOverlappingFn != nil {
		return m.findOverlappingFn(ctx, from, to)
	}
	return nil, nil
}

func (m *mockRepo) FindActiveForHolder(ctx context.Context, name, email string, after time.Time) ([]*model.Reservation, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, name, email, after)
	}
	return nil, nil
}

func (m *mockRepo) UpdateDates(ctx context.Context, id string, startDate, endDate time.Time) error {
	if m.updateDatesFn != nil {
		return m.updateDatesFn(ctx, id, startDate, endDate)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	if m.executeTxFn != nil {
		return m.executeTxFn(ctx, fn)
	}
	return fn(ctx)
}

type mockLockRepo struct {
	acquireFn func(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error)

	acquired int
	released int
}

func (m *mockLockRepo) Acquire(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error) {
	m.acquired++
	if m.acquireFn != nil {
		return m.acquireFn(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepo) Release(ctx context.Context, lockID string) error {
	m.released++
	return nil
}

type mockEvents struct {
	created   []*model.Reservation
	updated   []*model.Reservation
	cancelled []string
}

func (m *mockEvents) ReservationCreated(_ context.Context, r *model.Reservation) {
	m.created = append(m.created, r)
}

func (m *mockEvents) ReservationUpdated(_ context.Context, r *model.Reservation) {
	m.updated = append(m.updated, r)
}

func (m *mockEvents) ReservationCancelled(_ context.Context, id string) {
	m.cancelled = append(m.cancelled, id)
}

func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func day(offset int) time.Time {
	return model.NormalizeDate(time.Now()).AddDate(0, 0, offset)
}

func validReservation(startOffset, endOffset int) *model.Reservation {
	return &model.Reservation{
		HolderName:  "Alice Smith",
		HolderEmail: "alice@example.com",
		StartDate:   day(startOffset),
		EndDate:     day(endOffset),
	}
}

func newTestService(repo repository.ReservationRepository, lockRepo repository.ReservationLockRepository, events *mockEvents) (ReservationService, cache.ReservationCache) {
	cfg := &config.Config{
		MaxAdvanceDays: 30,
		MinStayDays:    1,
		MaxStayDays:    3,
		LockTTL:        10 * time.Second,
		Log:            logger.NewNop(),
	}
	v := validator.NewReservationValidator(cfg.Log, cfg.MaxAdvanceDays, cfg.MinStayDays, cfg.MaxStayDays)
	c := cache.NewMemory()
	return NewReservationService(repo, lockRepo, v, c, events, cfg), c
}

func TestCreateSuccess(t *testing.T) {
	var inserted *model.Reservation
	repo := &mockRepo{
		insertFn: func(_ context.Context, r *model.Reservation) error {
			r.ID = uuid.NewString()
			inserted = r
			return nil
		},
	}
	locks := &mockLockRepo{}
	events := &mockEvents{}
	svc, c := newTestService(repo, locks, events)

	reservation := validReservation(5, 7)
	reservation.HolderName = "  Alice Smith  "
	reservation.HolderEmail = "ALICE@Example.COM"

	if err := svc.Create(context.Background(), reservation); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if inserted == nil {
		t.Fatal("expected Insert to be called")
	}
	if reservation.ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if reservation.HolderName != "Alice Smith" {
		t.Errorf("expected holder name to be trimmed, got %q", reservation.HolderName)
	}
	if reservation.HolderEmail != "alice@example.com" {
		t.Errorf("expected holder email to be lowercased, got %q", reservation.HolderEmail)
	}
	if locks.acquired != 1 || locks.released != 1 {
		t.Errorf("expected lock acquired and released once, got %d/%d", locks.acquired, locks.released)
	}
	if cached, ok := c.Get(context.Background(), reservation.ID); !ok || cached.ID != reservation.ID {
		t.Error("expected created reservation to be cached")
	}
	if len(events.created) != 1 {
		t.Errorf("expected 1 created event, got %d", len(events.created))
	}
}

func TestCreateIgnoresCallerSuppliedID(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

	reservation := validReservation(1, 2)
	reservation.ID = "caller-chosen-id"

	if err := svc.Create(context.Background(), reservation); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if reservation.ID == "caller-chosen-id" {
		t.Error("expected caller-supplied ID to be discarded")
	}
}

func TestCreateStructuralRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.Reservation)
		wantErr string
	}{
		{
			name:    "missing holder name",
			mutate:  func(r *model.Reservation) { r.HolderName = "" },
			wantErr: apperrors.CodeValidation,
		},
		{
			name:    "malformed email",
			mutate:  func(r *model.Reservation) { r.HolderEmail = "not-an-email" },
			wantErr: apperrors.CodeValidation,
		},
		{
			name:    "start date in the past",
			mutate:  func(r *model.Reservation) { r.StartDate = day(-1) },
			wantErr: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locks := &mockLockRepo{}
			svc, _ := newTestService(&mockRepo{}, locks, &mockEvents{})

			reservation := validReservation(5, 6)
			tt.mutate(reservation)

			err := svc.Create(context.Background(), reservation)
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != tt.wantErr {
				t.Fatalf("expected %s, got %v", tt.wantErr, err)
			}
			if locks.acquired != 0 {
				t.Error("structural rejection must not take the unit lock")
			}
		})
	}
}

func TestCreateBusinessRuleRejections(t *testing.T) {
	tests := []struct {
		name        string
		startOffset int
		endOffset   int
		wantReason  reserrors.RejectionReason
	}{
		{"too far ahead", 31, 32, reserrors.ReasonTooFarAhead},
		{"end before start", 7, 5, reserrors.ReasonInvalidRange},
		{"zero-day span", 5, 5, reserrors.ReasonInvalidDuration},
		{"span over maximum", 5, 9, reserrors.ReasonInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserted := false
			repo := &mockRepo{
				insertFn: func(context.Context, *model.Reservation) error {
					inserted = true
					return nil
				},
			}
			svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

			err := svc.Create(context.Background(), validReservation(tt.startOffset, tt.endOffset))
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != apperrors.CodeValidation {
				t.Fatalf("expected validation rejection, got %v", err)
			}
			if got := appErr.Details["reason"]; got != string(tt.wantReason) {
				t.Errorf("expected reason %q, got %v", tt.wantReason, got)
			}
			if inserted {
				t.Error("rejected candidate must not be persisted")
			}
		})
	}
}

func TestCreateExactlyMaxAdvanceDaysAdmitted(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

	// 30 days out is the inclusive boundary; only 31 is too far.
	if err := svc.Create(context.Background(), validReservation(30, 31)); err != nil {
		t.Fatalf("expected 30-day-advance reservation to be admitted, got %v", err)
	}
}

func TestCreateHolderAlreadyBooked(t *testing.T) {
	existingID := uuid.NewString()
	repo := &mockRepo{
		findActiveFn: func(_ context.Context, name, email string, _ time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{{
				ID:          existingID,
				HolderName:  name,
				HolderEmail: email,
				StartDate:   day(20),
				EndDate:     day(22),
			}}, nil
		},
	}
	svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

	err := svc.Create(context.Background(), validReservation(5, 7))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation rejection, got %v", err)
	}
	if got := appErr.Details["reason"]; got != string(reserrors.ReasonHolderAlreadyBooked) {
		t.Errorf("expected holder_already_booked, got %v", got)
	}
	if got := appErr.Details["conflict_id"]; got != existingID {
		t.Errorf("expected conflict_id %q, got %v", existingID, got)
	}
}

func TestCreateDatesAlreadyBooked(t *testing.T) {
	repo := &mockRepo{
		findOverlappingFn: func(_ context.Context, from, to time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{{
				ID:          uuid.NewString(),
				HolderName:  "Bob Jones",
				HolderEmail: "bob@example.com",
				StartDate:   from,
				EndDate:     to,
			}}, nil
		},
	}
	svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

	err := svc.Create(context.Background(), validReservation(5, 7))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation rejection, got %v", err)
	}
	if got := appErr.Details["reason"]; got != string(reserrors.ReasonDatesAlreadyBooked) {
		t.Errorf("expected dates_already_booked, got %v", got)
	}
}

func TestCreateLockContention(t *testing.T) {
	locks := &mockLockRepo{
		acquireFn: func(context.Context, *model.ReservationLock) (*model.ReservationLock, error) {
			return nil, duplicateKeyErr()
		},
	}
	events := &mockEvents{}
	svc, _ := newTestService(&mockRepo{}, locks, events)

	err := svc.Create(context.Background(), validReservation(5, 7))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConcurrencyConflict {
		t.Fatalf("expected concurrency conflict, got %v", err)
	}
	if !apperrors.IsRetryable(err) {
		t.Error("lock contention must be retryable")
	}
	if len(events.created) != 0 {
		t.Error("no event must be emitted for a contended create")
	}
}

func TestCreateLookupFailureIsNotValidation(t *testing.T) {
	repo := &mockRepo{
		findOverlappingFn: func(context.Context, time.Time, time.Time) ([]*model.Reservation, error) {
			return nil, context.DeadlineExceeded
		},
	}
	locks := &mockLockRepo{}
	svc, _ := newTestService(repo, locks, &mockEvents{})

	err := svc.Create(context.Background(), validReservation(5, 7))
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if locks.released != 1 {
		t.Error("lock must be released after a failed transaction")
	}
}

func TestEditSuccess(t *testing.T) {
	id := uuid.NewString()
	existing := &model.Reservation{
		ID:          id,
		HolderName:  "Alice Smith",
		HolderEmail: "alice@example.com",
		StartDate:   day(5),
		EndDate:     day(7),
		CreatedAt:   time.Now(),
	}
	var updatedStart, updatedEnd time.Time
	repo := &mockRepo{
		findByIDFn: func(_ context.Context, gotID string) (*model.Reservation, error) {
			if gotID != id {
				t.Errorf("expected lookup of %q, got %q", id, gotID)
			}
			copied := *existing
			return &copied, nil
		},
		updateDatesFn: func(_ context.Context, _ string, startDate, endDate time.Time) error {
			updatedStart, updatedEnd = startDate, endDate
			return nil
		},
	}
	events := &mockEvents{}
	svc, c := newTestService(repo, &mockLockRepo{}, events)

	newStart, newEnd := day(10), day(12)
	result, err := svc.Edit(context.Background(), id, &model.ReservationUpdate{StartDate: &newStart, EndDate: &newEnd})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !result.StartDate.Equal(newStart) || !result.EndDate.Equal(newEnd) {
		t.Errorf("expected dates %v-%v, got %v-%v", newStart, newEnd, result.StartDate, result.EndDate)
	}
	if result.HolderEmail != existing.HolderEmail {
		t.Error("holder identity must survive an edit")
	}
	if !updatedStart.Equal(newStart) || !updatedEnd.Equal(newEnd) {
		t.Error("expected UpdateDates to receive the merged dates")
	}
	if cached, ok := c.Get(context.Background(), id); !ok || !cached.StartDate.Equal(newStart) {
		t.Error("expected cache to hold the updated reservation")
	}
	if len(events.updated) != 1 {
		t.Errorf("expected 1 updated event, got %d", len(events.updated))
	}
}

func TestEditExcludesOwnReservationFromConflicts(t *testing.T) {
	id := uuid.NewString()
	existing := &model.Reservation{
		ID:          id,
		HolderName:  "Alice Smith",
		HolderEmail: "alice@example.com",
		StartDate:   day(5),
		EndDate:     day(7),
	}
	repo := &mockRepo{
		findByIDFn: func(context.Context, string) (*model.Reservation, error) {
			copied := *existing
			return &copied, nil
		},
		// Both lookups return only the reservation being edited; it must not
		// conflict with itself.
		findOverlappingFn: func(context.Context, time.Time, time.Time) ([]*model.Reservation, error) {
			copied := *existing
			return []*model.Reservation{&copied}, nil
		},
		findActiveFn: func(context.Context, string, string, time.Time) ([]*model.Reservation, error) {
			copied := *existing
			return []*model.Reservation{&copied}, nil
		},
	}
	svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

	newEnd := day(8)
	if _, err := svc.Edit(context.Background(), id, &model.ReservationUpdate{EndDate: &newEnd}); err != nil {
		t.Fatalf("expected self-overlap to be admitted, got %v", err)
	}
}

func TestEditReadsMergeBaseUnderUnitLock(t *testing.T) {
	id := uuid.NewString()
	locks := &mockLockRepo{}
	repo := &mockRepo{
		findByIDFn: func(context.Context, string) (*model.Reservation, error) {
			// Reading the merge base before the lock would let a concurrent
			// edit's committed fields be overwritten with stale ones.
			if locks.acquired == 0 {
				t.Error("merge base must be read after the unit lock is taken")
			}
			return &model.Reservation{
				ID:          id,
				HolderName:  "Alice Smith",
				HolderEmail: "alice@example.com",
				StartDate:   day(5),
				EndDate:     day(7),
			}, nil
		},
	}
	svc, _ := newTestService(repo, locks, &mockEvents{})

	newEnd := day(8)
	if _, err := svc.Edit(context.Background(), id, &model.ReservationUpdate{EndDate: &newEnd}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if locks.released != 1 {
		t.Errorf("expected the unit lock to be released once, got %d", locks.released)
	}
}

func TestEditNotFound(t *testing.T) {
	svc, _ := newTestService(&mockRepo{}, &mockLockRepo{}, &mockEvents{})

	newEnd := day(8)
	_, err := svc.Edit(context.Background(), uuid.NewString(), &model.ReservationUpdate{EndDate: &newEnd})
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCancelSuccess(t *testing.T) {
	id := uuid.NewString()
	deleted := false
	repo := &mockRepo{
		deleteFn: func(_ context.Context, gotID string) error {
			deleted = true
			if gotID != id {
				t.Errorf("expected delete of %q, got %q", id, gotID)
			}
			return nil
		},
	}
	events := &mockEvents{}
	svc, c := newTestService(repo, &mockLockRepo{}, events)

	c.Put(context.Background(), &model.Reservation{ID: id, HolderName: "Alice Smith", HolderEmail: "alice@example.com", StartDate: day(5), EndDate: day(7)})

	if err := svc.Cancel(context.Background(), id); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !deleted {
		t.Error("expected Delete to be called")
	}
	if _, ok := c.Get(context.Background(), id); ok {
		t.Error("expected cache entry to be evicted")
	}
	if len(events.cancelled) != 1 || events.cancelled[0] != id {
		t.Errorf("expected 1 cancelled event for %q, got %v", id, events.cancelled)
	}
}

func TestCancelMissingReservationIsIdempotent(t *testing.T) {
	repo := &mockRepo{
		deleteFn: func(context.Context, string) error {
			return reserrors.ErrNotFound
		},
	}
	events := &mockEvents{}
	svc, _ := newTestService(repo, &mockLockRepo{}, events)

	if err := svc.Cancel(context.Background(), uuid.NewString()); err != nil {
		t.Fatalf("cancelling a missing reservation must succeed, got %v", err)
	}
	if len(events.cancelled) != 0 {
		t.Error("no event must be emitted when nothing was removed")
	}
}

func TestFindByIDReadThrough(t *testing.T) {
	id := uuid.NewString()
	lookups := 0
	repo := &mockRepo{
		findByIDFn: func(context.Context, string) (*model.Reservation, error) {
			lookups++
			return &model.Reservation{ID: id, HolderName: "Alice Smith", HolderEmail: "alice@example.com", StartDate: day(5), EndDate: day(7)}, nil
		},
	}
	svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

	for i := 0; i < 3; i++ {
		got, err := svc.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got.ID != id {
			t.Errorf("expected %q, got %q", id, got.ID)
		}
	}
	if lookups != 1 {
		t.Errorf("expected a single store lookup across repeated reads, got %d", lookups)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	svc, _ := newTestService(&mockRepo{}, &mockLockRepo{}, &mockEvents{})

	_, err := svc.FindByID(context.Background(), uuid.NewString())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

// fakeUnitStore is a shared in-memory store with real advisory-lock
// semantics: at most one holder at a time, contenders get a duplicate key.
// It lets concurrently running creates interleave the way they would against
// the lock collection.
type fakeUnitStore struct {
	mu       sync.Mutex
	rows     map[string]model.Reservation
	lockHeld bool
}

func newFakeUnitStore() *fakeUnitStore {
	return &fakeUnitStore{rows: make(map[string]model.Reservation)}
}

func (s *fakeUnitStore) Acquire(_ context.Context, lock *model.ReservationLock) (*model.ReservationLock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lockHeld {
		return nil, duplicateKeyErr()
	}
	s.lockHeld = true
	return lock, nil
}

func (s *fakeUnitStore) Release(_ context.Context, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockHeld = false
	return nil
}

func (s *fakeUnitStore) insert(r *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.rows[r.ID] = *r
	return nil
}

func (s *fakeUnitStore) overlapping(from, to time.Time) []*model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []*model.Reservation
	for _, row := range s.rows {
		if model.RangesOverlap(row.StartDate, row.EndDate, from, to) {
			copied := row
			results = append(results, &copied)
		}
	}
	return results
}

func (s *fakeUnitStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func TestConcurrentCreatesSameRange(t *testing.T) {
	store := newFakeUnitStore()
	repo := &mockRepo{
		insertFn: func(_ context.Context, r *model.Reservation) error {
			return store.insert(r)
		},
		findOverlappingFn: func(_ context.Context, from, to time.Time) ([]*model.Reservation, error) {
			return store.overlapping(from, to), nil
		},
	}
	svc, _ := newTestService(repo, store, &mockEvents{})

	// Two different holders race for the same dates. No interleaving may let
	// both commit: at most one reservation can exist for the range.
	const writers = 2
	results := make([]error, writers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = svc.Create(context.Background(), &model.Reservation{
				HolderName:  fmt.Sprintf("Holder %d", i),
				HolderEmail: fmt.Sprintf("holder%d@example.com", i),
				StartDate:   day(5),
				EndDate:     day(7),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	successes := 0
	for i, err := range results {
		if err == nil {
			successes++
			continue
		}
		appErr := apperrors.AsAppError(err)
		if appErr == nil {
			t.Fatalf("writer %d: expected a typed failure, got %v", i, err)
		}
		switch appErr.Code {
		case apperrors.CodeConcurrencyConflict:
			// Lost the lock race; safe to retry from scratch.
		case apperrors.CodeValidation:
			// Serialized behind the winner and saw its committed row.
			if got := appErr.Details["reason"]; got != string(reserrors.ReasonDatesAlreadyBooked) {
				t.Errorf("writer %d: expected dates_already_booked, got %v", i, got)
			}
		default:
			t.Errorf("writer %d: unexpected failure code %s", i, appErr.Code)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly one concurrent create to succeed, got %d", successes)
	}
	if got := store.count(); got != 1 {
		t.Errorf("expected exactly one persisted reservation, got %d", got)
	}
}

func TestFindBetween(t *testing.T) {
	repo := &mockRepo{
		findOverlappingFn: func(_ context.Context, from, to time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{{ID: uuid.NewString(), StartDate: from, EndDate: to}}, nil
		},
	}
	svc, _ := newTestService(repo, &mockLockRepo{}, &mockEvents{})

	results, err := svc.FindBetween(context.Background(), day(0), day(10))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}

	if _, err := svc.FindBetween(context.Background(), day(10), day(0)); err == nil {
		t.Error("expected inverted range to be rejected")
	}
}
