package repository

import (
	"context"
	"database/sql"
	"errors"

	"transfer-service/src/internal/entity"
	"transfer-service/src/pkg/databases/mysql"
)

type PromoRepository struct {
	DB mysql.DBInterface
}

func NewPromoRepository(db mysql.DBInterface) *PromoRepository {
	return &PromoRepository{
		DB: db,
	}
}

// FindByCode returns the promo row regardless of eligibility, the pricing
// calculator owns the eligibility predicate. (nil, nil) when no such code.
func (r *PromoRepository) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, err
	}

	var promo entity.PromoCode

	query := `
		SELECT
			id,
			code,
			discount_type,
			discount_value,
			currency,
			min_amount,
			max_discount,
			usage_limit,
			used_count,
			user_limit,
			is_active,
			valid_from,
			valid_until
		FROM promo_codes
		WHERE code = ?
	`

	err = db.GetContext(ctx, &promo, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &promo, nil
}

// CountUsageByEmail backs the per-customer limit, counted over the promo
// usage audit rows.
func (r *PromoRepository) CountUsageByEmail(ctx context.Context, promoCodeID uint64, email string) (int, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return 0, err
	}

	var count int

	query := `
		SELECT COUNT(*)
		FROM promo_usages
		WHERE promo_code_id = ?
		AND LOWER(customer_email) = LOWER(?)
	`

	err = db.GetContext(ctx, &count, query, promoCodeID, email)
	if err != nil {
		return 0, err
	}

	return count, nil
}
