package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catering-booking-api/composition"
	"catering-booking-api/pricing"
	"catering-booking-api/repository"
	"catering-booking-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailMapsDomainErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := New(Deps{Logger: zap.New(core).Sugar()})

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"zone not found", fmt.Errorf("%w: %q", pricing.ErrZoneNotFound, "x"), http.StatusNotFound, `"code":"zone_not_found"`},
		{"quotation", pricing.ErrRequiresQuotation, http.StatusUnprocessableEntity, `"code":"requires_quotation"`},
		{"incomplete menu", &composition.IncompleteMenuError{Shortfalls: []composition.CategoryStatus{{Category: "salad", Required: 1}}},
			http.StatusUnprocessableEntity, `"shortfalls"`},
		{"missing order", repository.ErrNotFound, http.StatusNotFound, `"error":"Order not found"`},
		{"bad transition", fmt.Errorf("%w: completed -> pending", statemachine.ErrInvalidTransition), http.StatusUnprocessableEntity, `"reason"`},
		{"conflict", repository.ErrConflict, http.StatusConflict, `reload and try again`},
		{"storage", errors.New("disk I/O error"), http.StatusInternalServerError, `"Something went wrong, please try again"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			h.fail(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.NotContains(t, w.Body.String(), "disk I/O")
		})
	}

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "disk I/O error", logs.All()[0].ContextMap()["error"])
}

func TestFailNamesMissingEntity(t *testing.T) {
	h := New(Deps{Logger: zap.NewNop().Sugar()})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.fail(c, fmt.Errorf("dish 4: %w", repository.ErrNotFound), "Dish")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Dish not found"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	h.fail(c, repository.ErrNotFound)
	assert.JSONEq(t, `{"error":"Order not found"}`, w.Body.String())
}

func TestParseDay(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	d, err := parseDay("2026-10-24", manila)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 24, 0, 0, 0, 0, manila), d)

	_, err = parseDay("24/10/2026", manila)
	assert.Error(t, err)
}

func TestPickFields(t *testing.T) {
	got := pickFields(map[string]any{"name": "Sisig", "id": 9, "available": false}, "name", "available", "unit")
	assert.Equal(t, map[string]any{"name": "Sisig", "available": false}, got)
}
