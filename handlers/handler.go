package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catering-booking-api/booking"
	"catering-booking-api/repository"
	"catering-booking-api/statemachine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries what the endpoints need
type Handler struct {
	users    *repository.Users
	dishes   *repository.Dishes
	addOns   *repository.AddOns
	bookings *booking.Service
	secret   []byte
	tokenTTL time.Duration
	log      *zap.SugaredLogger
}

type Deps struct {
	Users     *repository.Users
	Dishes    *repository.Dishes
	AddOns    *repository.AddOns
	Bookings  *booking.Service
	JWTSecret []byte
	TokenTTL  time.Duration
	Logger    *zap.SugaredLogger
}

func New(d Deps) *Handler {
	return &Handler{
		users:    d.Users,
		dishes:   d.Dishes,
		addOns:   d.AddOns,
		bookings: d.Bookings,
		secret:   d.JWTSecret,
		tokenTTL: d.TokenTTL,
		log:      d.Logger,
	}
}

// JWTSecret is the signing key the auth middleware must share
func (h *Handler) JWTSecret() []byte { return h.secret }

// fail maps domain errors onto HTTP statuses. what names the entity in a not-found
// message and defaults to "Order". Anything unrecognised is a storage or
// infrastructure failure and is logged, never shown.
func (h *Handler) fail(c *gin.Context, err error, what ...string) {
	if v := booking.AsValidation(err); v != nil {
		body := gin.H{"error": v.Message, "code": v.Code}
		if len(v.Shortfalls) > 0 {
			body["shortfalls"] = v.Shortfalls
		}
		status := http.StatusUnprocessableEntity
		if v.Code == booking.CodePackageNotFound || v.Code == booking.CodeZoneNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, body)
		return
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		entity := "Order"
		if len(what) > 0 {
			entity = what[0]
		}
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, statemachine.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid state transition", "reason": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "The order was changed by someone else, reload and try again"})
	default:
		h.log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// parseDay reads a YYYY-MM-DD query value as midnight in the business time zone
func parseDay(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, loc)
}
