package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/railbook/railbook/config"
	"github.com/railbook/railbook/internal/handler"
	"github.com/railbook/railbook/internal/middleware"
	"github.com/railbook/railbook/internal/models"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/internal/service"
	"github.com/railbook/railbook/pkg/database"
	"github.com/railbook/railbook/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: booking lifecycle events for downstream consumers
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, booking events disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	trainRepo := repository.NewTrainRepository(db)
	fareClassRepo := repository.NewFareClassRepository(db)
	passengerRepo := repository.NewPassengerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTLh, cfg.BcryptCost)
	if cfg.AdminEmail != "" {
		if err := authSvc.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to ensure admin account: %v", err)
		}
	}
	inventorySvc := service.NewInventoryService(trainRepo, fareClassRepo)
	availabilitySvc := service.NewAvailabilityService(trainRepo)
	passengerSvc := service.NewPassengerService(passengerRepo)
	reservationSvc := service.NewReservationService(bookingRepo, fareClassRepo, passengerRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "railbook"})
	})

	// Public surface
	authHandler := handler.NewAuthHandler(authSvc)
	authHandler.RegisterPublicRoutes(e)

	trainHandler := handler.NewTrainHandler(inventorySvc, availabilitySvc)
	trainHandler.RegisterPublicRoutes(e.Group("/api/v1/trains"))

	// Authenticated surface
	auth := middleware.JWTAuth(cfg.JWTSecret)
	authHandler.RegisterProtectedRoutes(e.Group("", auth))
	handler.NewPassengerHandler(passengerSvc).RegisterRoutes(e.Group("/api/v1/passengers", auth))
	handler.NewBookingHandler(reservationSvc).RegisterRoutes(e.Group("/api/v1/bookings", auth))

	// Admin surface
	admin := e.Group("/api/v1/admin", auth, middleware.RequireRole(models.RoleAdmin))
	trainHandler.RegisterAdminRoutes(admin.Group("/trains"))
	handler.NewAdminHandler(userRepo, reservationSvc).RegisterRoutes(admin)

	log.Printf("railbook starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
