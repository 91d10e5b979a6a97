package entity

import "time"

const (
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"

	PaymentStatusUnpaid   = "UNPAID"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"

	PaymentMethodPayLater     = "PAY_LATER"
	PaymentMethodCard         = "CARD"
	PaymentMethodBankTransfer = "BANK_TRANSFER"

	ChannelDirect     = "DIRECT"
	ChannelAgency     = "AGENCY"
	ChannelPartnerAPI = "PARTNER_API"

	DirectionFromAirport = "FROM_AIRPORT"
	DirectionToAirport   = "TO_AIRPORT"
)

type Booking struct {
	ID             uint64     `db:"id"`
	PublicCode     string     `db:"public_code"`
	Channel        string     `db:"channel"`
	AirportID      uint64     `db:"airport_id"`
	ZoneID         uint64     `db:"zone_id"`
	Direction      string     `db:"direction"`
	PickupTime     time.Time  `db:"pickup_time"`
	FlightNumber   *string    `db:"flight_number"`
	PickupAddress  *string    `db:"pickup_address"`
	DropoffAddress *string    `db:"dropoff_address"`
	VehicleType    string     `db:"vehicle_type"`
	PaxAdults      int        `db:"pax_adults"`
	Currency       string     `db:"currency"`
	OriginalPrice  float64    `db:"original_price"`
	DiscountAmount float64    `db:"discount_amount"`
	TotalPrice     float64    `db:"total_price"`
	Commission     float64    `db:"commission"`
	SupplierPayout float64    `db:"supplier_payout"`
	TariffID       uint64     `db:"tariff_id"`
	SupplierID     uint64     `db:"supplier_id"`
	PromoCodeID    *uint64    `db:"promo_code_id"`
	Status         string     `db:"status"`
	PaymentStatus  string     `db:"payment_status"`
	PaymentMethod  string     `db:"payment_method"`
	SpecialRequest *string    `db:"special_requests"`
	CancelledAt    *time.Time `db:"cancelled_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

// EditableStatus reports whether the booking status still allows changes.
// CANCELLED, COMPLETED and IN_PROGRESS are terminal for editing.
func (b *Booking) EditableStatus() bool {
	switch b.Status {
	case StatusCancelled, StatusCompleted, StatusInProgress:
		return false
	}
	return true
}
