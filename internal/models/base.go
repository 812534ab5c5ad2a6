package models

import "time"

// DemoUserID is the owner stamped on every record. There is a single local user.
const DemoUserID = "demo"

// Base contains the identity and bookkeeping fields shared by ledger records.
type Base struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stamp initializes a new record with its id and creation timestamps.
func (b *Base) Stamp(id string, now time.Time) {
	b.ID = id
	b.UserID = DemoUserID
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch refreshes UpdatedAt after a field mutation.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}
