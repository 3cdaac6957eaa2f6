package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelbooking/internal/clock"
	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain/availability"
	"hotelbooking/internal/domain/booking"
	"hotelbooking/internal/domain/payment"
	"hotelbooking/internal/domain/room"
	"hotelbooking/internal/lock"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/pkg/response"
	"hotelbooking/internal/repository"
)

// newRouter wires repositories, services and handlers onto a gin engine.
func newRouter(cfg *config.Config, db *gorm.DB, locker lock.Locker) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))

	tx := database.NewTransactor(db)
	clk := clock.NewSystem(cfg.Location)

	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	checker := availability.NewChecker(bookingRepo)

	bookingService := booking.NewService(tx, bookingRepo, roomRepo, paymentRepo, checker, locker, clk, booking.Options{
		Location:                  cfg.Location,
		InitialStatusFromReceipts: cfg.InitialStatusFromReceipts,
	})
	paymentService := payment.NewService(tx, bookingRepo, paymentRepo, locker, clk)
	roomService := room.NewService(tx, roomRepo, bookingRepo, checker, locker)

	r.GET("/healthz", healthz(db))

	api := r.Group("/api")
	{
		booking.NewHandler(bookingService).RegisterRoutes(api)
		payment.NewHandler(paymentService).RegisterRoutes(api)
		room.NewHandler(roomService).RegisterRoutes(api)
	}
	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
