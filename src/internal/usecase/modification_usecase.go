package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"transfer-service/src/internal/entity"
	"transfer-service/src/internal/gateway/messaging"
	"transfer-service/src/internal/model"
	"transfer-service/src/internal/model/converter"
	"transfer-service/src/internal/repository"
	httpError "transfer-service/src/pkg/http-error"
	"transfer-service/src/pkg/log"
	"transfer-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// modifiableFields is the fixed set of fields a customer may still change,
// reported by the pre-flight read and accepted by the write path.
var modifiableFields = []string{
	"pickupTime",
	"flightNumber",
	"pickupAddress",
	"dropoffAddress",
	"specialRequests",
	"passengerName",
	"passengerPhone",
	"passengerEmail",
}

type ModificationUseCase struct {
	Log               log.Log
	Validate          *validator.Validate
	BookingRepository repository.BookingStore
	Config            *viper.Viper
	BookingProducer   *messaging.BookingProducer
	MinLeadHours      int
	ModifyCutoffHours int
}

func NewModificationUseCase(
	logger log.Log,
	validate *validator.Validate,
	bookingRepository repository.BookingStore,
	cfg *viper.Viper,
	bookingProducer *messaging.BookingProducer,
) *ModificationUseCase {
	minLeadHours := cfg.GetInt("booking.min_lead_hours")
	if minLeadHours <= 0 {
		minLeadHours = 8
	}
	cutoffHours := cfg.GetInt("booking.modify_cutoff_hours")
	if cutoffHours <= 0 {
		cutoffHours = 4
	}

	return &ModificationUseCase{
		Log:               logger,
		Validate:          validate,
		BookingRepository: bookingRepository,
		Config:            cfg,
		BookingProducer:   bookingProducer,
		MinLeadHours:      minLeadHours,
		ModifyCutoffHours: cutoffHours,
	}
}

// loadOwnedBooking resolves a public code and verifies ownership by lead
// passenger email, case-insensitive. Unknown code is 404, wrong email is a
// 403 whose wording never confirms the booking exists.
func loadOwnedBooking(ctx context.Context, repo repository.BookingStore, logger log.Log, code, email string) (*entity.Booking, *entity.Passenger, *httpError.CommonError) {
	booking, err := repo.FindByCode(ctx, code)
	if err != nil {
		logger.Error("booking-ownership", fmt.Sprintf("booking lookup failed: %v", err), "loadOwnedBooking", code)
		return nil, nil, httpError.NewInternalServerError()
	}
	if booking == nil {
		return nil, nil, httpError.NewNotFound()
	}

	passenger, err := repo.FindLeadPassenger(ctx, booking.ID)
	if err != nil {
		logger.Error("booking-ownership", fmt.Sprintf("lead passenger lookup failed: %v", err), "loadOwnedBooking", code)
		return nil, nil, httpError.NewInternalServerError()
	}
	if passenger == nil {
		logger.Error("booking-ownership", "booking without lead passenger", "data-quality", code)
		return nil, nil, httpError.NewInternalServerError()
	}

	if !strings.EqualFold(strings.TrimSpace(email), passenger.Email) {
		return nil, nil, httpError.NewForbidden()
	}

	return booking, passenger, nil
}

// evaluateGates computes the two independent modification gates: the status
// gate and the time-to-pickup gate. The pre-flight read and the write path
// both go through here so they can never disagree.
func (c *ModificationUseCase) evaluateGates(booking *entity.Booking, now time.Time) (bool, string, float64) {
	hoursUntilPickup := booking.PickupTime.Sub(now).Hours()

	if !booking.EditableStatus() {
		return false, fmt.Sprintf("booking in status %s can no longer be modified", booking.Status), hoursUntilPickup
	}
	if hoursUntilPickup < float64(c.ModifyCutoffHours) {
		return false, fmt.Sprintf("modifications are closed within %d hours of pickup", c.ModifyCutoffHours), hoursUntilPickup
	}

	return true, "", hoursUntilPickup
}

// CanModify is the non-mutating pre-flight behind the modification UI.
func (c *ModificationUseCase) CanModify(ctx context.Context, request *model.CanModifyRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	booking, passenger, errObj := loadOwnedBooking(ctx, c.BookingRepository, c.Log, request.PublicCode, request.Email)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	canModify, reason, hoursUntilPickup := c.evaluateGates(booking, time.Now().UTC())

	response := model.CanModifyResponse{
		CanModify:        canModify,
		Reason:           reason,
		Booking:          converter.BookingToView(booking),
		Passenger:        converter.PassengerToView(passenger),
		ModifiableFields: []string{},
		HoursUntilPickup: utils.RoundMoney(hoursUntilPickup),
		MinHoursRequired: float64(c.ModifyCutoffHours),
	}
	if canModify {
		response.ModifiableFields = modifiableFields
	}

	result.Data = response
	return result
}

// ModifyBooking applies the submitted field changes atomically together with
// an activity log entry that records only what actually changed.
func (c *ModificationUseCase) ModifyBooking(ctx context.Context, request *model.ModifyBookingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	if !request.HasChanges() {
		errObj := httpError.NewBadRequest()
		errObj.Message = "at least one modifiable field must be provided"
		result.Error = errObj
		return result
	}

	booking, passenger, errObj := loadOwnedBooking(ctx, c.BookingRepository, c.Log, request.PublicCode, request.Email)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	now := time.Now().UTC()
	canModify, reason, _ := c.evaluateGates(booking, now)
	if !canModify {
		errObj := httpError.NewBadRequest()
		errObj.Message = reason
		result.Error = errObj
		return result
	}

	update, modifications, errObj := c.buildUpdate(request, booking, passenger, now)
	if errObj != nil {
		result.Error = errObj
		return result
	}
	if len(modifications) == 0 {
		errObj := httpError.NewBadRequest()
		errObj.Message = "no changes detected, submitted values match the booking"
		result.Error = errObj
		return result
	}

	if err := c.BookingRepository.UpdateBookingTx(ctx, booking.ID, passenger.ID, update); err != nil {
		c.Log.Error("modification-usecase", fmt.Sprintf("modification transaction failed: %v", err), "ModifyBooking", booking.PublicCode)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	event := converter.BookingToEvent(uuid.NewString(), booking, passenger, modifications)
	if err := c.BookingProducer.SendBookingModified(event); err != nil {
		c.Log.Error("modification-usecase", "publish booking-modified failed: "+err.Error(), "ModifyBooking", booking.PublicCode)
	}

	result.Data = model.ModifyBookingResponse{
		Success:       true,
		Message:       "booking updated",
		BookingCode:   booking.PublicCode,
		Modifications: modifications,
	}
	return result
}

// CancelBooking flips the status to CANCELLED under the same ownership and
// gate rules, the row is never deleted.
func (c *ModificationUseCase) CancelBooking(ctx context.Context, request *model.CancelBookingRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	booking, passenger, errObj := loadOwnedBooking(ctx, c.BookingRepository, c.Log, request.PublicCode, request.Email)
	if errObj != nil {
		result.Error = errObj
		return result
	}

	now := time.Now().UTC()
	canModify, reason, _ := c.evaluateGates(booking, now)
	if !canModify {
		errObj := httpError.NewBadRequest()
		errObj.Message = reason
		result.Error = errObj
		return result
	}

	update := &repository.BookingUpdate{
		BookingFields: map[string]interface{}{
			"status":       entity.StatusCancelled,
			"cancelled_at": now,
		},
		OldValues:  map[string]interface{}{"status": booking.Status},
		NewValues:  map[string]interface{}{"status": entity.StatusCancelled},
		Action:     "CANCEL",
		ActorEmail: passenger.Email,
	}

	if err := c.BookingRepository.UpdateBookingTx(ctx, booking.ID, passenger.ID, update); err != nil {
		c.Log.Error("modification-usecase", fmt.Sprintf("cancel transaction failed: %v", err), "CancelBooking", booking.PublicCode)
		result.Error = httpError.NewInternalServerError()
		return result
	}

	booking.Status = entity.StatusCancelled
	event := converter.BookingToEvent(uuid.NewString(), booking, passenger, []string{"status"})
	if err := c.BookingProducer.SendBookingModified(event); err != nil {
		c.Log.Error("modification-usecase", "publish booking-modified failed: "+err.Error(), "CancelBooking", booking.PublicCode)
	}

	result.Data = model.CancelBookingResponse{
		Success:     true,
		Message:     "booking cancelled",
		BookingCode: booking.PublicCode,
		Status:      entity.StatusCancelled,
	}
	return result
}

// buildUpdate diffs the submitted fields against the current records, only
// real changes make it into the update and the audit payload. A new pickup
// time is re-validated against the minimum lead time from now.
func (c *ModificationUseCase) buildUpdate(request *model.ModifyBookingRequest, booking *entity.Booking, passenger *entity.Passenger, now time.Time) (*repository.BookingUpdate, []string, *httpError.CommonError) {
	update := &repository.BookingUpdate{
		BookingFields:   map[string]interface{}{},
		PassengerFields: map[string]interface{}{},
		OldValues:       map[string]interface{}{},
		NewValues:       map[string]interface{}{},
		Action:          "MODIFY",
		ActorEmail:      passenger.Email,
	}
	var modifications []string

	if request.PickupTime != nil && !request.PickupTime.Equal(booking.PickupTime) {
		minLead := time.Duration(c.MinLeadHours) * time.Hour
		if request.PickupTime.Sub(now) < minLead {
			errObj := httpError.NewBadRequest()
			errObj.Message = fmt.Sprintf("new pickup time must be at least %d hours from now", c.MinLeadHours)
			return nil, nil, errObj
		}
		update.BookingFields["pickup_time"] = *request.PickupTime
		update.OldValues["pickupTime"] = booking.PickupTime.Format(time.RFC3339)
		update.NewValues["pickupTime"] = request.PickupTime.Format(time.RFC3339)
		modifications = append(modifications, "pickupTime")
	}

	applyString := func(field, column string, submitted *string, current *string, passengerField bool) {
		if submitted == nil {
			return
		}
		currentVal := ""
		if current != nil {
			currentVal = *current
		}
		if *submitted == currentVal {
			return
		}
		if passengerField {
			update.PassengerFields[column] = *submitted
		} else {
			update.BookingFields[column] = *submitted
		}
		update.OldValues[field] = currentVal
		update.NewValues[field] = *submitted
		modifications = append(modifications, field)
	}

	applyString("flightNumber", "flight_number", request.FlightNumber, booking.FlightNumber, false)
	applyString("pickupAddress", "pickup_address", request.PickupAddress, booking.PickupAddress, false)
	applyString("dropoffAddress", "dropoff_address", request.DropoffAddress, booking.DropoffAddress, false)
	applyString("specialRequests", "special_requests", request.SpecialRequests, booking.SpecialRequest, false)

	if request.PassengerName != nil {
		first, last := model.SplitFullName(*request.PassengerName)
		if first != passenger.FirstName || last != passenger.LastName {
			update.PassengerFields["first_name"] = first
			update.PassengerFields["last_name"] = last
			update.OldValues["passengerName"] = strings.TrimSpace(passenger.FirstName + " " + passenger.LastName)
			update.NewValues["passengerName"] = strings.TrimSpace(first + " " + last)
			modifications = append(modifications, "passengerName")
		}
	}
	applyString("passengerPhone", "phone", request.PassengerPhone, &passenger.Phone, true)
	applyString("passengerEmail", "email", request.PassengerEmail, &passenger.Email, true)

	return update, modifications, nil
}
