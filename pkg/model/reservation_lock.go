package model

import "time"

// ReservationLock is an advisory lock document used to serialize writers
// against the shared bookable unit while a validate-then-commit transaction
// runs. A TTL index on expires_at reclaims locks orphaned by crashed writers.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
