package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mealbridge/food-donation-platform/internal/config"
	"github.com/mealbridge/food-donation-platform/internal/database"
	"github.com/mealbridge/food-donation-platform/internal/handler"
	"github.com/mealbridge/food-donation-platform/internal/middleware"
	"github.com/mealbridge/food-donation-platform/internal/queue"
	"github.com/mealbridge/food-donation-platform/internal/repository"
	"github.com/mealbridge/food-donation-platform/internal/router"
)

func main() {
	// A .env file is a convenience for local development; in production the
	// variables come from the environment itself.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the service runs uncached and
	// unthrottled rather than refusing to start.
	rdb := config.NewRedisClient()

	// The consumer tails lifecycle events into the activity log and
	// reconnects on its own when the broker drops.
	go func() {
		if err := queue.StartLifecycleConsumer(); err != nil {
			log.Printf("lifecycle consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	donations := repository.NewDonationRepo(db)
	stats := repository.NewStatsRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	donationH := handler.NewDonationHandler(donations)
	lifecycleH := handler.NewLifecycleHandler(donations)
	viewH := handler.NewViewHandler(donations)
	adminH := handler.NewAdminHandler(users, donations, stats)

	e := echo.New()
	e.HideBanner = true

	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	var cache echo.MiddlewareFunc
	if rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublicDonations(e, donationH, cache)
	router.RegisterDonor(e, donationH, lifecycleH, viewH, cfg.JWTSecret)
	router.RegisterNgo(e, lifecycleH, viewH, cfg.JWTSecret)
	router.RegisterVolunteer(e, lifecycleH, viewH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
