package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catering-booking-api/booking"
	"catering-booking-api/catalog"
	"catering-booking-api/config"
	"catering-booking-api/handlers"
	"catering-booking-api/middleware"
	"catering-booking-api/notify"
	"catering-booking-api/repository"
	"catering-booking-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := config.NewLogger(settings.Env, settings.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(settings, log); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func run(settings *config.Settings, log *zap.SugaredLogger) error {
	gin.SetMode(settings.GinMode)

	cat, err := catalog.LoadFile(settings.CatalogPath)
	if err != nil {
		return err
	}
	db, err := config.OpenDB(settings.DatabasePath)
	if err != nil {
		return err
	}
	log.Infow("database ready", "path", settings.DatabasePath)

	var sender notify.Sender = notify.NewLogSender(log)
	if settings.AMQPURL != "" {
		amqpSender, err := notify.DialAMQP(settings.AMQPURL, settings.AMQPExchange, log)
		if err != nil {
			return err
		}
		defer amqpSender.Close()
		sender = amqpSender
		log.Infow("publishing notifications", "exchange", settings.AMQPExchange)
	}
	notifier, err := notify.New(sender, settings.OpsEmail, settings.Timezone)
	if err != nil {
		return err
	}

	users := repository.NewUsers(db)
	dishes := repository.NewDishes(db)
	addOns := repository.NewAddOns(db)
	bookings := booking.NewService(cat, repository.NewOrders(db), dishes, addOns, notifier, log, settings.Timezone)

	h := handlers.New(handlers.Deps{
		Users:     users,
		Dishes:    dishes,
		AddOns:    addOns,
		Bookings:  bookings,
		JWTSecret: settings.JWTSecret,
		TokenTTL:  settings.TokenTTL,
		Logger:    log,
	})

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     settings.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Catering Booking API",
			"version": "1.0.0",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Catering Booking API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "admin"},
		})
	})

	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server running", "addr", "http://localhost:"+settings.Port, "zones", len(cat.Zones()), "packages", len(cat.Packages()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
