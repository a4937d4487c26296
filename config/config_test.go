package config

import (
	"path/filepath"
	"testing"
	"time"

	"catering-booking-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BUSINESS_TIMEZONE", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("APP_ENV", "")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "Asia/Manila", s.Timezone.String())
	assert.Equal(t, 24*time.Hour, s.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, s.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("BUSINESS_TIMEZONE", "UTC")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.CORSOrigins)
	assert.Equal(t, time.UTC, s.Timezone)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("BUSINESS_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BUSINESS_TIMEZONE", "UTC")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestOpenDBMigrates(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	for _, m := range []any{&models.User{}, &models.Dish{}, &models.AddOn{}, &models.Order{}, &models.OrderAddOn{}, &models.OrderStatusHistory{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Order{}, "idx_orders_customer_idempotency"))
}

func TestOpenDBDropsGlobalIdempotencyIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX idx_orders_idempotency_key ON orders(idempotency_key)").Error)

	db, err = OpenDB(path)
	require.NoError(t, err)
	assert.False(t, db.Migrator().HasIndex(&models.Order{}, "idx_orders_idempotency_key"))
	assert.True(t, db.Migrator().HasIndex(&models.Order{}, "idx_orders_customer_idempotency"))
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("development", "debug")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLogger("production", "loud")
	assert.Error(t, err)
}
