package model

import "time"

type CanModifyRequest struct {
	PublicCode string `json:"-" validate:"required,max=12"`
	Email      string `json:"-" validate:"required,email"`
}

type CanModifyResponse struct {
	CanModify        bool          `json:"canModify"`
	Reason           string        `json:"reason,omitempty"`
	Booking          BookingView   `json:"booking"`
	Passenger        PassengerView `json:"passenger"`
	ModifiableFields []string      `json:"modifiableFields"`
	HoursUntilPickup float64       `json:"hoursUntilPickup"`
	MinHoursRequired float64       `json:"minHoursRequired"`
}

type ModifyBookingRequest struct {
	PublicCode      string     `json:"-" validate:"required,max=12"`
	Email           string     `json:"email" validate:"required,email"`
	PickupTime      *time.Time `json:"pickupTime"`
	FlightNumber    *string    `json:"flightNumber" validate:"omitempty,max=20"`
	PickupAddress   *string    `json:"pickupAddress" validate:"omitempty,max=255"`
	DropoffAddress  *string    `json:"dropoffAddress" validate:"omitempty,max=255"`
	SpecialRequests *string    `json:"specialRequests" validate:"omitempty,max=500"`
	PassengerName   *string    `json:"passengerName" validate:"omitempty,max=200"`
	PassengerPhone  *string    `json:"passengerPhone" validate:"omitempty,max=30"`
	PassengerEmail  *string    `json:"passengerEmail" validate:"omitempty,email,max=150"`
}

// HasChanges reports whether at least one modifiable field was submitted.
func (r *ModifyBookingRequest) HasChanges() bool {
	return r.PickupTime != nil ||
		r.FlightNumber != nil ||
		r.PickupAddress != nil ||
		r.DropoffAddress != nil ||
		r.SpecialRequests != nil ||
		r.PassengerName != nil ||
		r.PassengerPhone != nil ||
		r.PassengerEmail != nil
}

type ModifyBookingResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	BookingCode   string   `json:"bookingCode"`
	Modifications []string `json:"modifications"`
}

type CancelBookingRequest struct {
	PublicCode string `json:"-" validate:"required,max=12"`
	Email      string `json:"email" validate:"required,email"`
}

type CancelBookingResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	BookingCode string `json:"bookingCode"`
	Status      string `json:"status"`
}
