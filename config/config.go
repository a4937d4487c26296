package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"catering-booking-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Settings holds everything read from the environment
type Settings struct {
	Env          string
	Port         string
	GinMode      string
	DatabasePath string
	JWTSecret    []byte
	TokenTTL     time.Duration
	CatalogPath  string
	AMQPURL      string
	AMQPExchange string
	OpsEmail     string
	Timezone     *time.Location
	CORSOrigins  []string
	LogLevel     string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (when present) and the process environment
func Load() (*Settings, error) {
	_ = godotenv.Load()

	tz := getEnv("BUSINESS_TIMEZONE", "Asia/Manila")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", tz, err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	s := &Settings{
		Env:          getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		DatabasePath: getEnv("DATABASE_PATH", "catering.db"),
		JWTSecret:    []byte(getEnv("JWT_SECRET", "catering_booking_dev_secret")),
		TokenTTL:     ttl,
		CatalogPath:  os.Getenv("CATALOG_PATH"),
		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "catering.notifications"),
		OpsEmail:     getEnv("OPS_EMAIL", "operations@localhost"),
		Timezone:     loc,
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if s.Env == "production" && os.Getenv("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}
	return s, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// OpenDB connects to SQLite and auto-migrates all models
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.AddOn{},
		&models.Order{},
		&models.OrderAddOn{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// idempotency keys used to be unique across all customers
	if m := db.Migrator(); m.HasIndex(&models.Order{}, "idx_orders_idempotency_key") {
		if err := m.DropIndex(&models.Order{}, "idx_orders_idempotency_key"); err != nil {
			return nil, fmt.Errorf("failed to drop idx_orders_idempotency_key: %w", err)
		}
	}
	return db, nil
}

// NewLogger builds the process-wide sugared logger
func NewLogger(env, level string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if env != "production" {
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
