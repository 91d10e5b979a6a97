package entity

import "time"

const (
	RideStatusPendingAssign = "PENDING_ASSIGN"

	PayoutStatusPending = "PENDING"
	PayoutStatusSettled = "SETTLED"
)

// Ride is the dispatch work item created alongside every booking, it is
// advanced by the dispatch subsystem, never by this service.
type Ride struct {
	ID        uint64    `db:"id"`
	BookingID uint64    `db:"booking_id"`
	Status    string    `db:"status"`
	DriverID  *uint64   `db:"driver_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SupplierPayout is the pending ledger entry settled later by the payouts
// subsystem.
type SupplierPayout struct {
	ID         uint64    `db:"id"`
	SupplierID uint64    `db:"supplier_id"`
	BookingID  uint64    `db:"booking_id"`
	Amount     float64   `db:"amount"`
	Currency   string    `db:"currency"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}
