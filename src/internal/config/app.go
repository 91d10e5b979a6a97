package config

import (
	"transfer-service/src/internal/delivery/http"
	"transfer-service/src/internal/delivery/http/middleware"
	"transfer-service/src/internal/delivery/http/route"
	"transfer-service/src/internal/gateway/messaging"
	"transfer-service/src/internal/model"
	"transfer-service/src/internal/repository"
	"transfer-service/src/internal/usecase"
	"transfer-service/src/pkg/databases/mysql"
	"transfer-service/src/pkg/kafka"
	"transfer-service/src/pkg/log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafka.Producer
	Redis       redis.UniversalClient
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	bookingRepository := repository.NewBookingRepository(config.DB)
	tariffRepository := repository.NewTariffRepository(config.DB)
	promoRepository := repository.NewPromoRepository(config.DB)

	// setup gateways
	bookingProducer := messaging.NewBookingProducer(config.Producer, config.Log)
	notificationProducer := messaging.NewNotificationProducer(config.Producer, config.Log)

	// setup use cases
	bookingUseCase := usecase.NewBookingUseCase(
		config.Log,
		config.Validate,
		bookingRepository,
		tariffRepository,
		promoRepository,
		config.Config,
		bookingProducer,
		notificationProducer,
		config.AsynqClient,
	)

	modificationUseCase := usecase.NewModificationUseCase(
		config.Log,
		config.Validate,
		bookingRepository,
		config.Config,
		bookingProducer,
	)

	// setup controllers
	bookingController := http.NewBookingController(bookingUseCase, config.Log)
	modificationController := http.NewModificationController(modificationUseCase, config.Log)

	// post-commit notification fan-out
	config.Async.HandleFunc(model.TaskTypeBookingNotify, bookingUseCase.HandleNotifyTask)

	routeConfig := route.RouteConfig{
		App:                    config.App,
		BookingController:      bookingController,
		ModificationController: modificationController,
		BookingRateLimiter:     middleware.NewRateLimiter(config.Config, config.Redis, config.Log, middleware.ClassBooking),
		GeneralRateLimiter:     middleware.NewRateLimiter(config.Config, config.Redis, config.Log, middleware.ClassGeneral),
	}
	routeConfig.Setup()
}
