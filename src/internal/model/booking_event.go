package model

import "time"

type BookingMessage struct {
	PublicCode     string    `json:"publicCode"`
	Channel        string    `json:"channel"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	PickupTime     time.Time `json:"pickupTime"`
	VehicleType    string    `json:"vehicleType"`
	PaxAdults      int       `json:"paxAdults"`
	TotalPrice     float64   `json:"totalPrice"`
	Currency       string    `json:"currency"`
	SupplierID     uint64    `json:"supplierId"`
	CustomerEmail  string    `json:"customerEmail"`
	Modifications  []string  `json:"modifications,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type BookingEvent struct {
	ID      string         `json:"id,omitempty"`
	Message BookingMessage `json:"message,omitempty"`
}

func (e *BookingEvent) GetId() string {
	return e.ID
}

type NotificationMessage struct {
	BookingCode   string  `json:"bookingCode"`
	Recipient     string  `json:"recipient"`
	TotalPrice    float64 `json:"totalPrice"`
	Currency      string  `json:"currency"`
	SupplierID    uint64  `json:"supplierId"`
	PickupTimeISO string  `json:"pickupTime"`
}

type NotificationEvent struct {
	ID      string              `json:"id,omitempty"`
	Message NotificationMessage `json:"message,omitempty"`
}

func (e *NotificationEvent) GetId() string {
	return e.ID
}

// NotifyTaskPayload is the asynq task body enqueued after a booking commits,
// the task handler fans it out into customer and supplier notification
// events.
type NotifyTaskPayload struct {
	BookingCode   string    `json:"bookingCode"`
	CustomerEmail string    `json:"customerEmail"`
	SupplierID    uint64    `json:"supplierId"`
	TotalPrice    float64   `json:"totalPrice"`
	Currency      string    `json:"currency"`
	PickupTime    time.Time `json:"pickupTime"`
}

const TaskTypeBookingNotify = "booking:notify"
