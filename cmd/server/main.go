package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	"github.com/iliyamo/restaurant-table-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter. A nil
	// client disables both; the API still works without redis.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// The consumer appends reservation events to logs/reservation.log.
	// It reconnects forever on its own; a broken broker never stops
	// the API.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	tables := repository.NewTableRepo(db)
	menu := repository.NewMenuRepo(db)
	reservations := repository.NewReservationRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	menuHandler := handler.NewMenuHandler(menu)
	tableHandler := handler.NewTableHandler(tables)
	customerHandler := handler.NewCustomerHandler(reservations, tables)
	adminHandler := handler.NewAdminReservationHandler(reservations)

	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	e.Use(rateMW)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler)
	router.RegisterPublic(e, menuHandler, cacheMW)
	router.RegisterCustomer(e, customerHandler, tableHandler, cfg.JWTSecret, cacheMW)
	router.RegisterAdmin(e, adminHandler, menuHandler, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
