package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"transfer-service/src/internal/entity"
	"transfer-service/src/internal/gateway/messaging"
	"transfer-service/src/internal/model"
	"transfer-service/src/internal/repository"
	httpError "transfer-service/src/pkg/http-error"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	uc       *BookingUseCase
	tariffs  *fakeTariffStore
	promos   *fakePromoStore
	bookings *fakeBookingStore
	broker   *fakeKafkaProducer
	enqueuer *fakeEnqueuer
}

func newBookingFixture() *bookingFixture {
	logger := testLogger()
	f := &bookingFixture{
		tariffs:  &fakeTariffStore{tariff: standardTariff()},
		promos:   &fakePromoStore{},
		bookings: &fakeBookingStore{},
		broker:   &fakeKafkaProducer{},
		enqueuer: &fakeEnqueuer{},
	}
	f.uc = NewBookingUseCase(
		logger,
		validator.New(),
		f.bookings,
		f.tariffs,
		f.promos,
		viper.New(),
		messaging.NewBookingProducer(f.broker, logger),
		messaging.NewNotificationProducer(f.broker, logger),
		f.enqueuer,
	)
	return f
}

func validCreateRequest() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		AirportID:   1,
		ZoneID:      2,
		VehicleType: entity.VehicleSedan,
		PaxAdults:   3,
		Currency:    "EUR",
		PickupTime:  time.Now().UTC().Add(48 * time.Hour),
		LeadPassenger: &model.LeadPassengerRequest{
			FirstName: "John",
			LastName:  "Smith",
			Email:     "john@example.com",
			Phone:     "+4912345678",
		},
	}
}

func asCommonError(t *testing.T, err interface{}) *httpError.CommonError {
	t.Helper()
	commonErr, ok := err.(*httpError.CommonError)
	require.True(t, ok, "expected *httpError.CommonError, got %T", err)
	return commonErr
}

func TestCreateBookingSuccessWithPromo(t *testing.T) {
	f := newBookingFixture()
	f.promos.promo = activePromo()

	request := validCreateRequest()
	request.PromoCode = "summer20"
	request.FlightNumber = "LH441"

	result := f.uc.CreateBooking(context.Background(), request)
	require.Nil(t, result.Error)

	response, ok := result.Data.(model.CreateBookingResponse)
	require.True(t, ok)
	assert.Equal(t, entity.StatusConfirmed, response.Status)
	assert.Equal(t, entity.PaymentStatusUnpaid, response.PaymentStatus)
	assert.Equal(t, 48.0, response.TotalPrice)
	assert.Equal(t, "EUR", response.Currency)
	assert.True(t, response.PromoApplied)
	assert.Empty(t, response.PromoReason)
	assert.Len(t, response.PublicCode, 8)

	require.Len(t, f.bookings.createdInputs, 1)
	input := f.bookings.createdInputs[0]
	assert.Equal(t, 60.0, input.Booking.OriginalPrice)
	assert.Equal(t, 12.0, input.Booking.DiscountAmount)
	assert.Equal(t, 48.0, input.Booking.TotalPrice)
	assert.Equal(t, 7.20, input.Booking.Commission)
	assert.Equal(t, 40.80, input.Booking.SupplierPayout)
	assert.Equal(t, uint64(10), input.Booking.TariffID)
	assert.Equal(t, uint64(3), input.Booking.SupplierID)
	require.NotNil(t, input.Promo)
	assert.Equal(t, "SUMMER20", input.Promo.Code)
	require.NotNil(t, input.Booking.FlightNumber)
	assert.Equal(t, "LH441", *input.Booking.FlightNumber)

	require.Len(t, f.enqueuer.tasks, 1)
	assert.Equal(t, model.TaskTypeBookingNotify, f.enqueuer.tasks[0].Type())

	require.Len(t, f.broker.published, 1)
	assert.Equal(t, "booking-created", f.broker.published[0].topic)
}

func TestCreateBookingLeadTimeTooShort(t *testing.T) {
	f := newBookingFixture()

	request := validCreateRequest()
	request.PickupTime = time.Now().UTC().Add(3 * time.Hour)

	result := f.uc.CreateBooking(context.Background(), request)
	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, 400, commonErr.ResponseCode)
	assert.Contains(t, commonErr.Message, "8 hours")

	assert.Zero(t, f.tariffs.calls)
	assert.Empty(t, f.bookings.createdInputs)
	assert.Empty(t, f.enqueuer.tasks)
	assert.Empty(t, f.broker.published)
}

func TestCreateBookingValidationFailure(t *testing.T) {
	f := newBookingFixture()

	request := validCreateRequest()
	request.PaxAdults = 0

	result := f.uc.CreateBooking(context.Background(), request)
	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, 400, commonErr.ResponseCode)
	assert.Contains(t, commonErr.Message, "validation error")
	assert.Empty(t, f.bookings.createdInputs)
}

func TestCreateBookingUnknownVehicleType(t *testing.T) {
	f := newBookingFixture()

	request := validCreateRequest()
	request.VehicleType = "HELICOPTER"

	result := f.uc.CreateBooking(context.Background(), request)
	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, 400, commonErr.ResponseCode)
}

func TestCreateBookingNoTariff(t *testing.T) {
	f := newBookingFixture()
	f.tariffs.tariff = nil

	result := f.uc.CreateBooking(context.Background(), validCreateRequest())
	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, 400, commonErr.ResponseCode)
	assert.Contains(t, commonErr.Message, "no tariff available")
	assert.Empty(t, f.bookings.createdInputs)
}

func TestCreateBookingAmbiguousTariffStillBooks(t *testing.T) {
	f := newBookingFixture()
	f.tariffs.ambiguous = true

	result := f.uc.CreateBooking(context.Background(), validCreateRequest())
	require.Nil(t, result.Error)
	require.Len(t, f.bookings.createdInputs, 1)
	assert.Equal(t, uint64(10), f.bookings.createdInputs[0].Booking.TariffID)
}

func TestCreateBookingUnknownPromoIgnored(t *testing.T) {
	f := newBookingFixture()

	request := validCreateRequest()
	request.PromoCode = "NOPE"

	result := f.uc.CreateBooking(context.Background(), request)
	require.Nil(t, result.Error)

	response := result.Data.(model.CreateBookingResponse)
	assert.False(t, response.PromoApplied)
	assert.Equal(t, 60.0, response.TotalPrice)

	require.Len(t, f.bookings.createdInputs, 1)
	assert.Nil(t, f.bookings.createdInputs[0].Promo)
	assert.Equal(t, 0.0, f.bookings.createdInputs[0].Booking.DiscountAmount)
}

func TestCreateBookingPromoExhaustedRetriesFullPrice(t *testing.T) {
	f := newBookingFixture()
	f.promos.promo = activePromo()
	f.bookings.createErrs = []error{repository.ErrPromoExhausted}

	request := validCreateRequest()
	request.PromoCode = "SUMMER20"

	result := f.uc.CreateBooking(context.Background(), request)
	require.Nil(t, result.Error)

	response := result.Data.(model.CreateBookingResponse)
	assert.False(t, response.PromoApplied)
	assert.Contains(t, response.PromoReason, "usage limit")
	assert.Equal(t, 60.0, response.TotalPrice)

	require.Len(t, f.bookings.createdInputs, 2)
	first, second := f.bookings.createdInputs[0], f.bookings.createdInputs[1]
	assert.NotNil(t, first.Promo)
	assert.Nil(t, second.Promo)
	assert.Equal(t, 48.0, first.Booking.TotalPrice)
	assert.Equal(t, 60.0, second.Booking.TotalPrice)
	assert.Equal(t, first.Booking.PublicCode, second.Booking.PublicCode)
}

func TestCreateBookingCodeCollisionRetries(t *testing.T) {
	f := newBookingFixture()
	f.bookings.codeExistsQueue = []bool{true}

	result := f.uc.CreateBooking(context.Background(), validCreateRequest())
	require.Nil(t, result.Error)
	assert.Equal(t, 2, f.bookings.codeChecks)

	response := result.Data.(model.CreateBookingResponse)
	assert.Len(t, response.PublicCode, 8)
}

func TestCreateBookingCodeGenerationExhausted(t *testing.T) {
	f := newBookingFixture()
	f.bookings.codeExistsQueue = []bool{true, true, true, true, true}

	result := f.uc.CreateBooking(context.Background(), validCreateRequest())
	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, 500, commonErr.ResponseCode)
	assert.Empty(t, f.bookings.createdInputs)
}

func TestCreateBookingDispatchFailureDoesNotFailRequest(t *testing.T) {
	f := newBookingFixture()
	f.broker.err = assert.AnError
	f.enqueuer.err = assert.AnError

	result := f.uc.CreateBooking(context.Background(), validCreateRequest())
	require.Nil(t, result.Error)
	require.NotNil(t, result.Data)
	require.Len(t, f.bookings.createdInputs, 1)
}

func TestCreateBookingLegacyPassengerShape(t *testing.T) {
	f := newBookingFixture()

	request := validCreateRequest()
	request.LeadPassenger = nil
	request.MainPassenger = &model.MainPassengerRequest{
		FullName: "Jane Example Doe",
		Email:    "jane@example.com",
		Phone:    "+49123456",
	}

	result := f.uc.CreateBooking(context.Background(), request)
	require.Nil(t, result.Error)

	require.Len(t, f.bookings.createdInputs, 1)
	passenger := f.bookings.createdInputs[0].Passenger
	assert.Equal(t, "Jane", passenger.FirstName)
	assert.Equal(t, "Example Doe", passenger.LastName)
	assert.Equal(t, "jane@example.com", passenger.Email)
	assert.True(t, passenger.IsLead)
}

func TestGetBookingOwnership(t *testing.T) {
	f := newBookingFixture()
	f.bookings.booking = &entity.Booking{
		ID:         7,
		PublicCode: "ABCD2345",
		Status:     entity.StatusConfirmed,
		PickupTime: time.Now().UTC().Add(24 * time.Hour),
	}
	f.bookings.passenger = &entity.Passenger{
		ID:        11,
		BookingID: 7,
		FirstName: "John",
		Email:     "owner@example.com",
		IsLead:    true,
	}

	result := f.uc.GetBooking(context.Background(), &model.GetBookingRequest{
		PublicCode: "ABCD2345",
		Email:      "OWNER@example.COM",
	})
	require.Nil(t, result.Error)
	response := result.Data.(model.GetBookingResponse)
	assert.Equal(t, "ABCD2345", response.Booking.PublicCode)
	assert.Equal(t, "John", response.Passenger.FirstName)

	result = f.uc.GetBooking(context.Background(), &model.GetBookingRequest{
		PublicCode: "ABCD2345",
		Email:      "intruder@example.com",
	})
	commonErr := asCommonError(t, result.Error)
	assert.Equal(t, 403, commonErr.ResponseCode)
	assert.NotContains(t, commonErr.Message, "ABCD2345")

	result = f.uc.GetBooking(context.Background(), &model.GetBookingRequest{
		PublicCode: "ZZZZ9999",
		Email:      "owner@example.com",
	})
	commonErr = asCommonError(t, result.Error)
	assert.Equal(t, 404, commonErr.ResponseCode)
}

func TestHandleNotifyTaskFansOut(t *testing.T) {
	f := newBookingFixture()

	payload := model.NotifyTaskPayload{
		BookingCode:   "ABCD2345",
		CustomerEmail: "owner@example.com",
		SupplierID:    3,
		TotalPrice:    48,
		Currency:      "EUR",
		PickupTime:    time.Now().UTC().Add(24 * time.Hour),
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	err = f.uc.HandleNotifyTask(context.Background(), asynq.NewTask(model.TaskTypeBookingNotify, body))
	require.NoError(t, err)

	require.Len(t, f.broker.published, 2)
	assert.Equal(t, "customer-confirmation", f.broker.published[0].topic)
	assert.Equal(t, "supplier-notification", f.broker.published[1].topic)
}

func TestHandleNotifyTaskBadPayload(t *testing.T) {
	f := newBookingFixture()

	err := f.uc.HandleNotifyTask(context.Background(), asynq.NewTask(model.TaskTypeBookingNotify, []byte("{")))
	assert.Error(t, err)
	assert.Empty(t, f.broker.published)
}
