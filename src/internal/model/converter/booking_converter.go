package converter

import (
	"time"

	"transfer-service/src/internal/entity"
	"transfer-service/src/internal/model"
)

func BookingToView(booking *entity.Booking) model.BookingView {
	view := model.BookingView{
		PublicCode:    booking.PublicCode,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		PickupTime:    booking.PickupTime,
		VehicleType:   booking.VehicleType,
		PaxAdults:     booking.PaxAdults,
		TotalPrice:    booking.TotalPrice,
		Currency:      booking.Currency,
	}
	if booking.FlightNumber != nil {
		view.FlightNumber = *booking.FlightNumber
	}
	if booking.PickupAddress != nil {
		view.PickupAddress = *booking.PickupAddress
	}
	if booking.DropoffAddress != nil {
		view.DropoffAddress = *booking.DropoffAddress
	}
	if booking.SpecialRequest != nil {
		view.SpecialRequests = *booking.SpecialRequest
	}
	return view
}

func PassengerToView(passenger *entity.Passenger) model.PassengerView {
	return model.PassengerView{
		FirstName: passenger.FirstName,
		LastName:  passenger.LastName,
		Email:     passenger.Email,
		Phone:     passenger.Phone,
	}
}

func BookingToEvent(eventID string, booking *entity.Booking, passenger *entity.Passenger, modifications []string) *model.BookingEvent {
	return &model.BookingEvent{
		ID: eventID,
		Message: model.BookingMessage{
			PublicCode:    booking.PublicCode,
			Channel:       booking.Channel,
			Status:        booking.Status,
			PaymentStatus: booking.PaymentStatus,
			PickupTime:    booking.PickupTime,
			VehicleType:   booking.VehicleType,
			PaxAdults:     booking.PaxAdults,
			TotalPrice:    booking.TotalPrice,
			Currency:      booking.Currency,
			SupplierID:    booking.SupplierID,
			CustomerEmail: passenger.Email,
			Modifications: modifications,
			OccurredAt:    time.Now().UTC(),
		},
	}
}
