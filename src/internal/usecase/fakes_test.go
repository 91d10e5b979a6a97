package usecase

import (
	"context"
	"strings"

	"transfer-service/src/internal/entity"
	"transfer-service/src/internal/repository"
	"transfer-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

func testLogger() log.Log {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return log.Log{AppName: "test", LogLevel: 2, Logger: l}
}

type fakeTariffStore struct {
	tariff    *entity.Tariff
	ambiguous bool
	err       error
	calls     int
}

func (f *fakeTariffStore) FindActiveTariff(ctx context.Context, airportID, zoneID uint64, vehicleType string) (*entity.Tariff, bool, error) {
	f.calls++
	return f.tariff, f.ambiguous, f.err
}

type fakePromoStore struct {
	promo     *entity.PromoCode
	promoErr  error
	priorUses int
	usageErr  error
}

func (f *fakePromoStore) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	return f.promo, f.promoErr
}

func (f *fakePromoStore) CountUsageByEmail(ctx context.Context, promoCodeID uint64, email string) (int, error) {
	return f.priorUses, f.usageErr
}

type fakeBookingStore struct {
	codeExistsQueue []bool
	codeExistsErr   error
	codeChecks      int

	createErrs    []error
	createdInputs []*repository.CreateBookingInput
	nextID        uint64

	booking   *entity.Booking
	passenger *entity.Passenger
	findErr   error

	updates   []*repository.BookingUpdate
	updateErr error
}

func (f *fakeBookingStore) CodeExists(ctx context.Context, code string) (bool, error) {
	f.codeChecks++
	if f.codeExistsErr != nil {
		return false, f.codeExistsErr
	}
	if len(f.codeExistsQueue) == 0 {
		return false, nil
	}
	v := f.codeExistsQueue[0]
	f.codeExistsQueue = f.codeExistsQueue[1:]
	return v, nil
}

func (f *fakeBookingStore) CreateBookingTx(ctx context.Context, input *repository.CreateBookingInput) (uint64, error) {
	f.createdInputs = append(f.createdInputs, input)
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeBookingStore) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.booking == nil || !strings.EqualFold(f.booking.PublicCode, code) {
		return nil, nil
	}
	return f.booking, nil
}

func (f *fakeBookingStore) FindLeadPassenger(ctx context.Context, bookingID uint64) (*entity.Passenger, error) {
	return f.passenger, nil
}

func (f *fakeBookingStore) UpdateBookingTx(ctx context.Context, bookingID, passengerID uint64, update *repository.BookingUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, update)
	return nil
}

type publishedMessage struct {
	topic string
	key   []byte
	value []byte
}

type fakeKafkaProducer struct {
	published []publishedMessage
	err       error
}

func (f *fakeKafkaProducer) Publish(topic string, key, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedMessage{topic: topic, key: key, value: value})
	return nil
}

func (f *fakeKafkaProducer) Close() error { return nil }

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}
