package model

import "time"

// BookingLock is an advisory lock document keyed by a venue/date slot.
// Inserting it behind the unique _id makes concurrent writers collide
// before either re-runs the conflict scan, closing the check-then-act
// window. A TTL index on expires_at reaps abandoned locks.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
