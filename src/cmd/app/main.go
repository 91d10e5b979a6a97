package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"transfer-service/src/internal/config"
	"transfer-service/src/internal/delivery/http/middleware"
	"transfer-service/src/pkg/log"
)

func main() {

	viperConfig := config.NewViper()
	viperConfig.SetDefault("log.level", "DEBUG")
	viperConfig.SetDefault("app.name", "TRANSFER_SERVICE")
	viperConfig.SetDefault("web.port", 8080)
	viperConfig.SetDefault("booking.min_lead_hours", 8)
	viperConfig.SetDefault("booking.modify_cutoff_hours", 4)
	viperConfig.SetDefault("ratelimit.booking", "10-1m")
	viperConfig.SetDefault("ratelimit.general", "60-1m")
	log.InitLogger(viperConfig)
	config.NewKafkaConfig(viperConfig)
	logger := log.GetLogger()
	config.LoadRedisConfig(viperConfig)
	db := config.NewDatabase(viperConfig, logger)
	redisClient := config.NewRedis()
	producer := config.NewKafkaProducer(viperConfig, logger)
	validate := config.NewValidator(viperConfig)
	asynqClient := config.NewAsynqClient(viperConfig)
	asynqServer, asynqMux := config.NewAsynqServer(viperConfig)
	app := config.NewFiber(viperConfig)
	app.Use(middleware.NewLogger())
	config.Bootstrap(&config.BootstrapConfig{
		DB:          db,
		App:         app,
		Log:         logger,
		Validate:    validate,
		Config:      viperConfig,
		Producer:    producer,
		Redis:       redisClient,
		AsynqClient: asynqClient,
		Async:       asynqMux,
	})

	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			logger.Error("main", fmt.Sprintf("Failed to start asynq worker: %v", err), "main", "")
		}
	}()

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	go func() {
		<-quit
		logger.Info("main", "Server transfer-service is shutting down...", "graceful", "")

		_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		asynqServer.Shutdown()
		if err := app.Shutdown(); err != nil {
			logger.Error("main", fmt.Sprintf("Error during shutdown: %v", err), "graceful", "")
		}
		close(done)
	}()

	webPort := viperConfig.GetInt("web.port")
	if err := app.Listen(fmt.Sprintf(":%d", webPort)); err != nil {
		logger.Error("main", fmt.Sprintf("Failed to start server: %v", err), "main", "")
	}

	<-done
	logger.Info("main", fmt.Sprintf("Server %s stopped", viperConfig.GetString("app.name")), "graceful", "")
}
