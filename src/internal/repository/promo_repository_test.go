package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promoColumns = []string{
	"id", "code", "discount_type", "discount_value", "currency",
	"min_amount", "max_discount", "usage_limit", "used_count", "user_limit",
	"is_active", "valid_from", "valid_until",
}

func TestFindPromoByCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromoRepository(db)

	validFrom := time.Now().Add(-24 * time.Hour)
	validUntil := time.Now().Add(24 * time.Hour)

	rows := sqlmock.NewRows(promoColumns).
		AddRow(5, "SUMMER20", "PERCENTAGE", 20.0, "EUR", 0.0, 15.0, 100, 3, 1, true, validFrom, validUntil)
	mock.ExpectQuery("SELECT (.+) FROM promo_codes WHERE code").
		WithArgs("SUMMER20").
		WillReturnRows(rows)

	promo, err := repo.FindByCode(context.Background(), "SUMMER20")
	require.NoError(t, err)
	require.NotNil(t, promo)
	assert.Equal(t, uint64(5), promo.ID)
	assert.Equal(t, "PERCENTAGE", promo.DiscountType)
	assert.Equal(t, 20.0, promo.DiscountValue)
	require.NotNil(t, promo.MaxDiscount)
	assert.Equal(t, 15.0, *promo.MaxDiscount)
	require.NotNil(t, promo.UsageLimit)
	assert.Equal(t, 100, *promo.UsageLimit)
	assert.True(t, promo.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPromoByCodeUnknownCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromoRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM promo_codes WHERE code").
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows(promoColumns))

	promo, err := repo.FindByCode(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, promo)
}

func TestCountUsageByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPromoRepository(db)

	mock.ExpectQuery("SELECT COUNT(.+) FROM promo_usages").
		WithArgs(uint64(5), "john@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(2))

	count, err := repo.CountUsageByEmail(context.Background(), 5, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
