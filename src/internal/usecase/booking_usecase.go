package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transfer-service/src/internal/entity"
	"transfer-service/src/internal/gateway/messaging"
	"transfer-service/src/internal/model"
	"transfer-service/src/internal/model/converter"
	"transfer-service/src/internal/repository"
	httpError "transfer-service/src/pkg/http-error"
	"transfer-service/src/pkg/log"
	"transfer-service/src/pkg/refcode"
	"transfer-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

const codeGenerationAttempts = 5

// TaskEnqueuer is the slice of asynq.Client the usecase needs, kept as an
// interface so tests can capture enqueued tasks.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type BookingUseCase struct {
	Log                  log.Log
	Validate             *validator.Validate
	BookingRepository    repository.BookingStore
	TariffRepository     repository.TariffStore
	PromoRepository      repository.PromoStore
	Config               *viper.Viper
	BookingProducer      *messaging.BookingProducer
	NotificationProducer *messaging.NotificationProducer
	AsynqClient          TaskEnqueuer
	MinLeadHours         int
}

func NewBookingUseCase(
	logger log.Log,
	validate *validator.Validate,
	bookingRepository repository.BookingStore,
	tariffRepository repository.TariffStore,
	promoRepository repository.PromoStore,
	cfg *viper.Viper,
	bookingProducer *messaging.BookingProducer,
	notificationProducer *messaging.NotificationProducer,
	asynqClient TaskEnqueuer,
) *BookingUseCase {
	minLeadHours := cfg.GetInt("booking.min_lead_hours")
	if minLeadHours <= 0 {
		minLeadHours = 8
	}

	return &BookingUseCase{
		Log:                  logger,
		Validate:             validate,
		BookingRepository:    bookingRepository,
		TariffRepository:     tariffRepository,
		PromoRepository:      promoRepository,
		Config:               cfg,
		BookingProducer:      bookingProducer,
		NotificationProducer: notificationProducer,
		AsynqClient:          asynqClient,
		MinLeadHours:         minLeadHours,
	}
}

// CreateBooking runs the whole creation pipeline: normalization, validation,
// tariff resolution, pricing, reference code generation and the atomic
// multi-record write. Notification and webhook dispatch happen after commit
// and never fail the request.
func (c *BookingUseCase) CreateBooking(ctx context.Context, request *model.CreateBookingRequest) utils.Result {
	var result utils.Result

	request.Normalize()

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("booking-usecase", errObj.Message, "CreateBooking", utils.ConvertString(request))
		return result
	}

	now := time.Now().UTC()
	minLead := time.Duration(c.MinLeadHours) * time.Hour
	if request.PickupTime.Sub(now) < minLead {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("pickup time must be at least %d hours from now", c.MinLeadHours)
		result.Error = errObj
		return result
	}

	tariff, ambiguous, err := c.TariffRepository.FindActiveTariff(ctx, request.AirportID, request.ZoneID, request.VehicleType)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		result.Error = errObj
		c.Log.Error("booking-usecase", fmt.Sprintf("tariff lookup failed: %v", err), "CreateBooking", utils.ConvertString(request))
		return result
	}
	if tariff == nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "no tariff available for the selected route and vehicle type"
		result.Error = errObj
		return result
	}
	if ambiguous {
		c.Log.Error("booking-usecase", "multiple active tariffs for one route, picked lowest id", "data-quality",
			fmt.Sprintf("airport=%d zone=%d vehicle=%s tariff=%d", request.AirportID, request.ZoneID, request.VehicleType, tariff.ID))
	}

	promo, priorUses := c.resolvePromo(ctx, request)
	quote := CalculateQuote(tariff, request.PaxAdults, promo, priorUses, now)
	if request.PromoCode != "" && quote.Promo == nil && quote.PromoReason != "" {
		c.Log.Info("booking-usecase", "promo code ignored: "+quote.PromoReason, "CreateBooking", request.PromoCode)
	}

	code, err := c.generateUniqueCode(ctx)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		result.Error = errObj
		c.Log.Error("booking-usecase", err.Error(), "CreateBooking", "refcode")
		return result
	}

	booking, passenger := c.buildRecords(request, tariff, quote, code)
	input := &repository.CreateBookingInput{
		Booking:        booking,
		Passenger:      passenger,
		Promo:          quote.Promo,
		DiscountAmount: quote.DiscountAmount,
	}

	bookingID, err := c.BookingRepository.CreateBookingTx(ctx, input)
	if errors.Is(err, repository.ErrPromoExhausted) {
		// The guarded counter increment lost the race, retry once at full
		// price, same code, nothing was written.
		c.Log.Info("booking-usecase", "promo exhausted at commit time, retrying at full price", "CreateBooking", request.PromoCode)
		quote = quote.WithoutPromo(tariff, "promo code usage limit reached")
		booking, passenger = c.buildRecords(request, tariff, quote, code)
		input = &repository.CreateBookingInput{Booking: booking, Passenger: passenger}
		bookingID, err = c.BookingRepository.CreateBookingTx(ctx, input)
	}
	if err != nil {
		errObj := httpError.NewInternalServerError()
		result.Error = errObj
		c.Log.Error("booking-usecase", fmt.Sprintf("booking transaction failed: %v", err), "CreateBooking", code)
		return result
	}
	booking.ID = bookingID

	c.dispatchPostBooking(ctx, &booking, &passenger)

	result.Data = model.CreateBookingResponse{
		BookingID:     bookingID,
		PublicCode:    booking.PublicCode,
		Status:        booking.Status,
		PaymentStatus: booking.PaymentStatus,
		TotalPrice:    booking.TotalPrice,
		Currency:      booking.Currency,
		PromoApplied:  quote.Promo != nil,
		PromoReason:   quote.PromoReason,
	}
	return result
}

// GetBooking is the owner read behind "manage my booking", it applies the
// same ownership rule as modification.
func (c *BookingUseCase) GetBooking(ctx context.Context, request *model.GetBookingRequest) utils.Result {
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

	result.Data = model.GetBookingResponse{
		Booking:   converter.BookingToView(booking),
		Passenger: converter.PassengerToView(passenger),
	}
	return result
}

// HandleNotifyTask is the asynq handler that fans a committed booking out
// into the customer and supplier notification events.
func (c *BookingUseCase) HandleNotifyTask(ctx context.Context, task *asynq.Task) error {
	var payload model.NotifyTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		c.Log.Error("booking-usecase", "unmarshal notify payload failed: "+err.Error(), "HandleNotifyTask", "")
		return err
	}

	customerEvent := &model.NotificationEvent{
		ID: uuid.NewString(),
		Message: model.NotificationMessage{
			BookingCode:   payload.BookingCode,
			Recipient:     payload.CustomerEmail,
			TotalPrice:    payload.TotalPrice,
			Currency:      payload.Currency,
			SupplierID:    payload.SupplierID,
			PickupTimeISO: payload.PickupTime.Format(time.RFC3339),
		},
	}
	if err := c.NotificationProducer.SendCustomerConfirmation(customerEvent); err != nil {
		return err
	}

	supplierEvent := &model.NotificationEvent{
		ID: uuid.NewString(),
		Message: model.NotificationMessage{
			BookingCode:   payload.BookingCode,
			Recipient:     fmt.Sprintf("supplier:%d", payload.SupplierID),
			TotalPrice:    payload.TotalPrice,
			Currency:      payload.Currency,
			SupplierID:    payload.SupplierID,
			PickupTimeISO: payload.PickupTime.Format(time.RFC3339),
		},
	}
	return c.NotificationProducer.SendSupplierNotification(supplierEvent)
}

// resolvePromo loads the promo row and the customer's prior usage count.
// Lookup failures are logged and treated as "no promo", a broken promo table
// must not block bookings.
func (c *BookingUseCase) resolvePromo(ctx context.Context, request *model.CreateBookingRequest) (*entity.PromoCode, int) {
	if request.PromoCode == "" {
		return nil, 0
	}

	promo, err := c.PromoRepository.FindByCode(ctx, request.PromoCode)
	if err != nil {
		c.Log.Error("booking-usecase", fmt.Sprintf("promo lookup failed: %v", err), "resolvePromo", request.PromoCode)
		return nil, 0
	}
	if promo == nil {
		return nil, 0
	}

	priorUses, err := c.PromoRepository.CountUsageByEmail(ctx, promo.ID, request.LeadPassenger.Email)
	if err != nil {
		c.Log.Error("booking-usecase", fmt.Sprintf("promo usage count failed: %v", err), "resolvePromo", request.PromoCode)
		return nil, 0
	}

	return promo, priorUses
}

// generateUniqueCode retries on collision instead of locking, exhaustion
// means the identifier space or the store is misbehaving.
func (c *BookingUseCase) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		code, err := refcode.Generate(refcode.DefaultLength)
		if err != nil {
			return "", err
		}

		exists, err := c.BookingRepository.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}

		c.Log.Info("booking-usecase", "reference code collision, regenerating", "generateUniqueCode", code)
	}

	return "", fmt.Errorf("reference code generation exhausted after %d attempts", codeGenerationAttempts)
}

func (c *BookingUseCase) buildRecords(request *model.CreateBookingRequest, tariff *entity.Tariff, quote Quote, code string) (entity.Booking, entity.Passenger) {
	booking := entity.Booking{
		PublicCode:     code,
		Channel:        request.Channel,
		AirportID:      request.AirportID,
		ZoneID:         request.ZoneID,
		Direction:      request.Direction,
		PickupTime:     request.PickupTime,
		VehicleType:    request.VehicleType,
		PaxAdults:      request.PaxAdults,
		Currency:       request.Currency,
		OriginalPrice:  quote.OriginalPrice,
		DiscountAmount: quote.DiscountAmount,
		TotalPrice:     quote.TotalPrice,
		Commission:     quote.Commission,
		SupplierPayout: quote.SupplierPayout,
		TariffID:       tariff.ID,
		SupplierID:     tariff.SupplierID,
		Status:         entity.StatusConfirmed,
		PaymentStatus:  entity.PaymentStatusUnpaid,
		PaymentMethod:  request.PaymentMethod,
	}
	if quote.Promo != nil {
		booking.PromoCodeID = &quote.Promo.ID
	}
	if request.FlightNumber != "" {
		booking.FlightNumber = &request.FlightNumber
	}
	if request.PickupAddress != "" {
		booking.PickupAddress = &request.PickupAddress
	}
	if request.DropoffAddress != "" {
		booking.DropoffAddress = &request.DropoffAddress
	}
	if request.SpecialRequests != "" {
		booking.SpecialRequest = &request.SpecialRequests
	}

	passenger := entity.Passenger{
		FirstName: request.LeadPassenger.FirstName,
		LastName:  request.LeadPassenger.LastName,
		Email:     request.LeadPassenger.Email,
		Phone:     request.LeadPassenger.Phone,
		IsLead:    true,
	}

	return booking, passenger
}

// dispatchPostBooking fires the post-commit notification task and the
// webhook event. Failures are logged only, the booking is already committed
// and must report success.
func (c *BookingUseCase) dispatchPostBooking(ctx context.Context, booking *entity.Booking, passenger *entity.Passenger) {
	payload := model.NotifyTaskPayload{
		BookingCode:   booking.PublicCode,
		CustomerEmail: passenger.Email,
		SupplierID:    booking.SupplierID,
		TotalPrice:    booking.TotalPrice,
		Currency:      booking.Currency,
		PickupTime:    booking.PickupTime,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.Log.Error("booking-usecase", "marshal notify payload failed: "+err.Error(), "dispatchPostBooking", booking.PublicCode)
	} else if c.AsynqClient != nil {
		if _, err := c.AsynqClient.EnqueueContext(ctx, asynq.NewTask(model.TaskTypeBookingNotify, body)); err != nil {
			c.Log.Error("booking-usecase", "enqueue notify task failed: "+err.Error(), "dispatchPostBooking", booking.PublicCode)
		}
	}

	event := converter.BookingToEvent(uuid.NewString(), booking, passenger, nil)
	if err := c.BookingProducer.SendBookingCreated(event); err != nil {
		c.Log.Error("booking-usecase", "publish booking-created failed: "+err.Error(), "dispatchPostBooking", booking.PublicCode)
	}
}
