package model

import (
	"strings"
	"time"
)

type LeadPassengerRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,email,max=150"`
	Phone     string `json:"phone" validate:"required,max=30"`
}

// MainPassengerRequest is the legacy input shape still sent by older agency
// integrations, a single combined name field.
type MainPassengerRequest struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type CreateBookingRequest struct {
	AirportID       uint64                `json:"airportId" validate:"required"`
	ZoneID          uint64                `json:"zoneId" validate:"required"`
	Direction       string                `json:"direction" validate:"omitempty,oneof=FROM_AIRPORT TO_AIRPORT"`
	Channel         string                `json:"channel" validate:"omitempty,oneof=DIRECT AGENCY PARTNER_API"`
	PickupTime      time.Time             `json:"pickupTime" validate:"required"`
	FlightNumber    string                `json:"flightNumber" validate:"max=20"`
	PickupAddress   string                `json:"pickupAddress" validate:"max=255"`
	DropoffAddress  string                `json:"dropoffAddress" validate:"max=255"`
	VehicleType     string                `json:"vehicleType" validate:"required,oneof=SEDAN VAN MINIBUS BUS VIP"`
	PaxAdults       int                   `json:"paxAdults" validate:"required,min=1,max=60"`
	Currency        string                `json:"currency" validate:"required,len=3"`
	LeadPassenger   *LeadPassengerRequest `json:"leadPassenger" validate:"required"`
	MainPassenger   *MainPassengerRequest `json:"mainPassenger" validate:"-"`
	SpecialRequests string                `json:"specialRequests" validate:"max=500"`
	PaymentMethod   string                `json:"paymentMethod" validate:"omitempty,oneof=PAY_LATER CARD BANK_TRANSFER"`
	PromoCode       string                `json:"promoCode" validate:"max=50"`
}

// Normalize resolves the legacy mainPassenger shape into leadPassenger and
// fills the defaults, called once at the boundary before validation so the
// rest of the flow only ever sees the canonical shape.
func (r *CreateBookingRequest) Normalize() {
	if r.LeadPassenger == nil && r.MainPassenger != nil {
		first, last := SplitFullName(r.MainPassenger.FullName)
		r.LeadPassenger = &LeadPassengerRequest{
			FirstName: first,
			LastName:  last,
			Email:     r.MainPassenger.Email,
			Phone:     r.MainPassenger.Phone,
		}
	}
	if r.Direction == "" {
		r.Direction = "FROM_AIRPORT"
	}
	if r.Channel == "" {
		r.Channel = "DIRECT"
	}
	if r.PaymentMethod == "" {
		r.PaymentMethod = "PAY_LATER"
	}
	r.PromoCode = strings.ToUpper(strings.TrimSpace(r.PromoCode))
}

// SplitFullName cuts on the first whitespace, the remainder becomes the last
// name (empty when the input is a single word).
func SplitFullName(fullName string) (string, string) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return "", ""
	}
	first, last, found := strings.Cut(name, " ")
	if !found {
		return first, ""
	}
	return first, strings.TrimSpace(last)
}

type CreateBookingResponse struct {
	BookingID     uint64  `json:"bookingId"`
	PublicCode    string  `json:"publicCode"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalPrice    float64 `json:"totalPrice"`
	Currency      string  `json:"currency"`
	PromoApplied  bool    `json:"promoApplied"`
	PromoReason   string  `json:"promoReason,omitempty"`
}

type BookingView struct {
	PublicCode      string    `json:"publicCode"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	PickupTime      time.Time `json:"pickupTime"`
	FlightNumber    string    `json:"flightNumber,omitempty"`
	PickupAddress   string    `json:"pickupAddress,omitempty"`
	DropoffAddress  string    `json:"dropoffAddress,omitempty"`
	VehicleType     string    `json:"vehicleType"`
	PaxAdults       int       `json:"paxAdults"`
	TotalPrice      float64   `json:"totalPrice"`
	Currency        string    `json:"currency"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}

type PassengerView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type GetBookingRequest struct {
	PublicCode string `json:"-" validate:"required,max=12"`
	Email      string `json:"-" validate:"required,email"`
}

type GetBookingResponse struct {
	Booking   BookingView   `json:"booking"`
	Passenger PassengerView `json:"passenger"`
}
