package entity

import "time"

// ActivityLog is an append-only audit row, OldValues/NewValues hold a JSON
// object with only the fields that actually changed.
type ActivityLog struct {
	ID        uint64    `db:"id"`
	BookingID uint64    `db:"booking_id"`
	Action    string    `db:"action"`
	OldValues []byte    `db:"old_values"`
	NewValues []byte    `db:"new_values"`
	ActorMail string    `db:"actor_email"`
	CreatedAt time.Time `db:"created_at"`
}
