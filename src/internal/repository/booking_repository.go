package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"transfer-service/src/internal/entity"
	"transfer-service/src/pkg/databases/mysql"
)

type BookingRepository struct {
	DB mysql.DBInterface
}

func NewBookingRepository(db mysql.DBInterface) *BookingRepository {
	return &BookingRepository{
		DB: db,
	}
}

// CreateBookingInput carries everything one booking transaction writes.
type CreateBookingInput struct {
	Booking   entity.Booking
	Passenger entity.Passenger

	// Promo is nil when no discount was applied.
	Promo          *entity.PromoCode
	DiscountAmount float64
}

// BookingUpdate describes one modification: the columns to write plus the
// changed-fields-only audit payload.
type BookingUpdate struct {
	BookingFields   map[string]interface{}
	PassengerFields map[string]interface{}
	OldValues       map[string]interface{}
	NewValues       map[string]interface{}
	Action          string
	ActorEmail      string
}

func (r *BookingRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return false, err
	}

	var count int
	err = db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE public_code = ?`, code)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateBookingTx persists the booking with all of its dependent rows in one
// transaction: booking, lead passenger, ride placeholder, pending supplier
// payout and, when a promo applies, the usage audit row plus a guarded
// increment of the promo counter. Any failure rolls back everything.
func (r *BookingRepository) CreateBookingTx(ctx context.Context, input *CreateBookingInput) (uint64, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	b := input.Booking
	res, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (
			public_code, channel, airport_id, zone_id, direction,
			pickup_time, flight_number, pickup_address, dropoff_address,
			vehicle_type, pax_adults, currency,
			original_price, discount_amount, total_price, commission, supplier_payout,
			tariff_id, supplier_id, promo_code_id,
			status, payment_status, payment_method, special_requests,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		b.PublicCode, b.Channel, b.AirportID, b.ZoneID, b.Direction,
		b.PickupTime, b.FlightNumber, b.PickupAddress, b.DropoffAddress,
		b.VehicleType, b.PaxAdults, b.Currency,
		b.OriginalPrice, b.DiscountAmount, b.TotalPrice, b.Commission, b.SupplierPayout,
		b.TariffID, b.SupplierID, b.PromoCodeID,
		b.Status, b.PaymentStatus, b.PaymentMethod, b.SpecialRequest,
	)
	if err != nil {
		return 0, err
	}

	bookingID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	p := input.Passenger
	_, err = tx.ExecContext(ctx, `
		INSERT INTO passengers (booking_id, first_name, last_name, email, phone, is_lead, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, NOW(), NOW())`,
		bookingID, p.FirstName, p.LastName, p.Email, p.Phone,
	)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rides (booking_id, status, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())`,
		bookingID, entity.RideStatusPendingAssign,
	)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO supplier_payouts (supplier_id, booking_id, amount, currency, status, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		b.SupplierID, bookingID, b.SupplierPayout, b.Currency, entity.PayoutStatusPending,
	)
	if err != nil {
		return 0, err
	}

	if input.Promo != nil {
		// Increment-and-check inside the same transaction as the booking
		// insert, two near-simultaneous redemptions near the limit cannot
		// both pass.
		incRes, err := tx.ExecContext(ctx, `
			UPDATE promo_codes
			SET used_count = used_count + 1
			WHERE id = ?
			AND is_active = 1
			AND (usage_limit IS NULL OR used_count < usage_limit)`,
			input.Promo.ID,
		)
		if err != nil {
			return 0, err
		}

		affected, err := incRes.RowsAffected()
		if err != nil {
			return 0, err
		}
		if affected == 0 {
			return 0, ErrPromoExhausted
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO promo_usages (promo_code_id, booking_id, customer_email, discount_amount, created_at)
			VALUES (?, ?, ?, ?, NOW())`,
			input.Promo.ID, bookingID, p.Email, input.DiscountAmount,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return uint64(bookingID), nil
}

func (r *BookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var booking entity.Booking

	query := `
		SELECT
			id, public_code, channel, airport_id, zone_id, direction,
			pickup_time, flight_number, pickup_address, dropoff_address,
			vehicle_type, pax_adults, currency,
			original_price, discount_amount, total_price, commission, supplier_payout,
			tariff_id, supplier_id, promo_code_id,
			status, payment_status, payment_method, special_requests,
			cancelled_at, created_at, updated_at
		FROM bookings
		WHERE public_code = ?
	`

	err = db.GetContext(ctx, &booking, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) FindLeadPassenger(ctx context.Context, bookingID uint64) (*entity.Passenger, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var passenger entity.Passenger

	query := `
		SELECT id, booking_id, first_name, last_name, email, phone, is_lead, created_at, updated_at
		FROM passengers
		WHERE booking_id = ?
		AND is_lead = 1
	`

	err = db.GetContext(ctx, &passenger, query, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &passenger, nil
}

// UpdateBookingTx applies one modification atomically: the booking columns,
// the lead passenger columns and the activity log entry all commit together
// or not at all.
func (r *BookingRepository) UpdateBookingTx(ctx context.Context, bookingID, passengerID uint64, update *BookingUpdate) error {
	db, err := r.DB.GetDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if len(update.BookingFields) > 0 {
		set, args := buildSetClause(update.BookingFields)
		args = append(args, bookingID)
		query := fmt.Sprintf("UPDATE bookings SET %s, updated_at = NOW() WHERE id = ?", set)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if len(update.PassengerFields) > 0 {
		set, args := buildSetClause(update.PassengerFields)
		args = append(args, passengerID)
		query := fmt.Sprintf("UPDATE passengers SET %s, updated_at = NOW() WHERE id = ?", set)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	oldJSON, err := json.Marshal(update.OldValues)
	if err != nil {
		return err
	}
	newJSON, err := json.Marshal(update.NewValues)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO activity_logs (booking_id, action, old_values, new_values, actor_email, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		bookingID, update.Action, oldJSON, newJSON, update.ActorEmail,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// buildSetClause renders the columns in a stable order so queries stay
// deterministic for the sqlmock tests.
func buildSetClause(fields map[string]interface{}) (string, []interface{}) {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, column+" = ?")
		args = append(args, fields[column])
	}

	return strings.Join(parts, ", "), args
}
