package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/sawa-travel/marketplace/config"
	"github.com/sawa-travel/marketplace/internal/consumer"
	"github.com/sawa-travel/marketplace/internal/handler"
	"github.com/sawa-travel/marketplace/internal/middleware"
	"github.com/sawa-travel/marketplace/internal/repository"
	"github.com/sawa-travel/marketplace/internal/service"
	"github.com/sawa-travel/marketplace/pkg/database"
	"github.com/sawa-travel/marketplace/pkg/llm"
	"github.com/sawa-travel/marketplace/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	database.SeedCities(db)

	// RabbitMQ: notifications are published fire-and-forget and drained by
	// an in-process consumer into the notifications table.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewNotificationConsumer(db).Start(msgs)

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	hostResponseRepo := repository.NewHostResponseRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	cityRepo := repository.NewCityRepository(db)
	userRepo := repository.NewUserRepository(db)
	aiRepo := repository.NewAIRepository(db)

	// Services
	notificationSvc := service.NewNotificationService(notificationRepo, publisher)
	bookingSvc := service.NewBookingService(bookingRepo, cityRepo, conversationRepo, hostResponseRepo, notificationSvc)
	offerSvc := service.NewOfferService(offerRepo, bookingRepo, conversationRepo, hostResponseRepo, notificationSvc)
	conversationSvc := service.NewConversationService(conversationRepo, messageRepo, bookingRepo, hostResponseRepo, notificationSvc, cfg.FetchRetries)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	plannerSvc := service.NewPlannerService(llmClient, aiRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "sawa-marketplace"})
	})

	handler.NewCityHandler(cityRepo).RegisterRoutes(e)

	api := e.Group("/api/v1", middleware.RequireAuth(cfg.JWTSecret))
	handler.NewBookingHandler(bookingSvc, offerSvc).RegisterRoutes(api)
	handler.NewOfferHandler(offerSvc).RegisterRoutes(api)
	handler.NewConversationHandler(conversationSvc).RegisterRoutes(api)
	handler.NewPlannerHandler(plannerSvc).RegisterRoutes(api)
	handler.NewNotificationHandler(notificationSvc).RegisterRoutes(api)
	handler.NewUserHandler(userRepo).RegisterRoutes(api)

	log.Printf("SAWA marketplace starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
