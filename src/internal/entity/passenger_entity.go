package entity

import "time"

type Passenger struct {
	ID        uint64    `db:"id"`
	BookingID uint64    `db:"booking_id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	IsLead    bool      `db:"is_lead"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
