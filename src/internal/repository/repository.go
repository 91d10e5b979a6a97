package repository

import (
	"context"
	"errors"

	"transfer-service/src/internal/entity"
)

// ErrPromoExhausted is returned by CreateBookingTx when the guarded usage
// counter increment finds the promo already at its limit, the whole
// transaction is rolled back and the caller decides how to proceed.
var ErrPromoExhausted = errors.New("promo code usage limit reached")

type TariffStore interface {
	// FindActiveTariff returns at most one tariff for the route and vehicle
	// type, both the route and the owning supplier must be active. The bool
	// reports whether more than one candidate existed (lowest id wins).
	// (nil, false, nil) means no eligible tariff, a business outcome.
	FindActiveTariff(ctx context.Context, airportID, zoneID uint64, vehicleType string) (*entity.Tariff, bool, error)
}

type PromoStore interface {
	FindByCode(ctx context.Context, code string) (*entity.PromoCode, error)
	CountUsageByEmail(ctx context.Context, promoCodeID uint64, email string) (int, error)
}

type BookingStore interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	CreateBookingTx(ctx context.Context, input *CreateBookingInput) (uint64, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindLeadPassenger(ctx context.Context, bookingID uint64) (*entity.Passenger, error)
	UpdateBookingTx(ctx context.Context, bookingID, passengerID uint64, update *BookingUpdate) error
}
