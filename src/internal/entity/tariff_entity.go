package entity

const (
	VehicleSedan   = "SEDAN"
	VehicleVan     = "VAN"
	VehicleMinibus = "MINIBUS"
	VehicleBus     = "BUS"
	VehicleVIP     = "VIP"
)

// Tariff is a supplier's priced offer for one (airport, zone, vehicle type)
// route. Read-only to this service, selection filters on both the route and
// the owning supplier being active.
type Tariff struct {
	ID             uint64   `db:"id"`
	AirportID      uint64   `db:"airport_id"`
	ZoneID         uint64   `db:"zone_id"`
	VehicleType    string   `db:"vehicle_type"`
	BasePrice      float64  `db:"base_price"`
	PricePerPax    *float64 `db:"price_per_pax"`
	Currency       string   `db:"currency"`
	SupplierID     uint64   `db:"supplier_id"`
	CommissionRate float64  `db:"commission_rate"`
}
