package repository

import (
	"context"

	"transfer-service/src/internal/entity"
	"transfer-service/src/pkg/databases/mysql"
)

type TariffRepository struct {
	DB mysql.DBInterface
}

func NewTariffRepository(db mysql.DBInterface) *TariffRepository {
	return &TariffRepository{
		DB: db,
	}
}

// FindActiveTariff selects the price rule for (airport, zone, vehicle type).
// The data model does not enforce uniqueness at that level, so two rows are
// fetched, the lowest id is the deterministic winner and the caller logs the
// ambiguity as a data-quality signal.
func (r *TariffRepository) FindActiveTariff(ctx context.Context, airportID, zoneID uint64, vehicleType string) (*entity.Tariff, bool, error) {
	db, err := r.DB.GetDB()
	if err != nil {
		return nil, false, err
	}

	var tariffs []entity.Tariff

	query := `
		SELECT
			t.id,
			t.airport_id,
			t.zone_id,
			t.vehicle_type,
			t.base_price,
			t.price_per_pax,
			t.currency,
			t.supplier_id,
			s.commission_rate
		FROM tariffs t
		JOIN suppliers s ON s.id = t.supplier_id
		JOIN routes r ON r.airport_id = t.airport_id AND r.zone_id = t.zone_id
		WHERE t.airport_id = ?
		AND t.zone_id = ?
		AND t.vehicle_type = ?
		AND t.is_active = 1
		AND s.is_active = 1
		AND r.is_active = 1
		ORDER BY t.id ASC
		LIMIT 2
	`

	err = db.SelectContext(ctx, &tariffs, query, airportID, zoneID, vehicleType)
	if err != nil {
		return nil, false, err
	}

	if len(tariffs) == 0 {
		return nil, false, nil
	}

	return &tariffs[0], len(tariffs) > 1, nil
}
