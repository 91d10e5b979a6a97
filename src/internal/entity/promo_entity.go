package entity

import "time"

const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

type PromoCode struct {
	ID            uint64    `db:"id"`
	Code          string    `db:"code"`
	DiscountType  string    `db:"discount_type"`
	DiscountValue float64   `db:"discount_value"`
	Currency      string    `db:"currency"`
	MinAmount     float64   `db:"min_amount"`
	MaxDiscount   *float64  `db:"max_discount"`
	UsageLimit    *int      `db:"usage_limit"`
	UsedCount     int       `db:"used_count"`
	UserLimit     int       `db:"user_limit"`
	IsActive      bool      `db:"is_active"`
	ValidFrom     time.Time `db:"valid_from"`
	ValidUntil    time.Time `db:"valid_until"`
}

// PromoUsage is the per-redemption audit row, it also backs the per-customer
// usage limit (counted by lead passenger email).
type PromoUsage struct {
	ID             uint64    `db:"id"`
	PromoCodeID    uint64    `db:"promo_code_id"`
	BookingID      uint64    `db:"booking_id"`
	CustomerEmail  string    `db:"customer_email"`
	DiscountAmount float64   `db:"discount_amount"`
	CreatedAt      time.Time `db:"created_at"`
}
