package repository

import (
	"context"
	"time"

	"reservationmanager/pkg/config"
	"reservationmanager/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationLockRepository provides advisory locks serializing writers
// against the shared bookable unit.
type ReservationLockRepository interface {
	Acquire(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error)
	Release(ctx context.Context, lockID string) error
}

type mongoReservationLockRepository struct {
	collection *mongo.Collection
}

func NewReservationLockRepository(cfg *config.Config) ReservationLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationLockRepository{
		collection: db.Collection("Reservation_locks"),
	}
}

// Acquire inserts the lock document. A duplicate key error means another
// writer currently holds the unit.
func (r *mongoReservationLockRepository) Acquire(ctx context.Context, lock *model.ReservationLock) (*model.ReservationLock, error) {
	lock.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}

	return lock, nil
}

// Release removes an advisory lock
func (r *mongoReservationLockRepository) Release(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
