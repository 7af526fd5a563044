package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/club-dining/internal/apiclient"
	"github.com/iliyamo/club-dining/internal/booking"
	"github.com/iliyamo/club-dining/internal/config"
	"github.com/iliyamo/club-dining/internal/dataset"
	"github.com/iliyamo/club-dining/internal/handler"
	"github.com/iliyamo/club-dining/internal/middleware"
	"github.com/iliyamo/club-dining/internal/queue"
	"github.com/iliyamo/club-dining/internal/router"
	"github.com/iliyamo/club-dining/internal/session"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: %v", err)
	}
	cfg := config.Load()

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	rdb := config.NewRedisClient() // nil disables every cache

	sessions := session.NewManager(api, rdb, cfg.SessionTTL)
	loader := dataset.NewLoader(rdb, cfg.DatasetTTL)

	var pub booking.Publisher = queue.Nop{}
	if cfg.Events {
		pub = queue.NewPublisher(cfg.AMQPURL)
	}
	svc := booking.NewService(pub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Events {
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.LogDir, loader)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("events-consumer: stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.RegisterRoutes(e, router.Deps{
		Health:       handler.NewHealthHandler(api),
		Auth:         handler.NewAuthHandler(sessions, api),
		Menu:         handler.NewMenuHandler(api),
		Data:         handler.NewDataHandler(sessions, loader),
		Reservations: handler.NewReservationHandler(sessions, loader, svc),
		Admin:        handler.NewAdminHandler(sessions, loader, svc),
		Sessions:     sessions,
		JWTSecret:    cfg.JWTSecret,
		Cache:        middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		RateLimit:    middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, api=%s)", addr, cfg.Env, cfg.APIBaseURL)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
