package handlers

import (
	"net/http"
	"time"

	"catering-booking-api/booking"
	"catering-booking-api/composition"
	"catering-booking-api/middleware"
	"catering-booking-api/models"
	"catering-booking-api/pricing"
	"catering-booking-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	Kind         models.OrderKind      `json:"kind" binding:"omitempty,oneof=catering delivery"`
	PackageID    string                `json:"package_id" binding:"required"`
	PresetName   string                `json:"preset_name"`
	GuestCount   int                   `json:"guest_count" binding:"required"`
	ZoneID       string                `json:"zone_id" binding:"required"`
	EventAt      time.Time             `json:"event_at" binding:"required"`
	VenueAddress string                `json:"venue_address" binding:"required"`
	ContactName  string                `json:"contact_name" binding:"required"`
	ContactPhone string                `json:"contact_phone" binding:"required"`
	ContactEmail string                `json:"contact_email" binding:"omitempty,email"`
	Notes        string                `json:"notes"`
	Selection    composition.Selection `json:"selection"`
	AddOns       []pricing.AddOnLine   `json:"addons"`
}

func (r PlaceOrderRequest) toRequest(customerID, createdBy uint, privileged bool, key string) booking.Request {
	return booking.Request{
		CustomerID:     customerID,
		CreatedBy:      createdBy,
		Privileged:     privileged,
		IdempotencyKey: key,
		Kind:           r.Kind,
		PackageID:      r.PackageID,
		PresetName:     r.PresetName,
		GuestCount:     r.GuestCount,
		ZoneID:         r.ZoneID,
		EventAt:        r.EventAt,
		VenueAddress:   r.VenueAddress,
		ContactName:    r.ContactName,
		ContactPhone:   r.ContactPhone,
		ContactEmail:   r.ContactEmail,
		Notes:          r.Notes,
		Selection:      r.Selection,
		AddOns:         r.AddOns,
	}
}

func (h *Handler) respondPlaced(c *gin.Context, order *models.Order, created bool) {
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Booking already received", "order": order})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Booking placed successfully",
		"order":          order,
		"valid_next":     statemachine.ValidTransitionsFrom(order.Status),
		"payment_status": order.PaymentStatus,
	})
}

// PlaceOrder submits a booking for the logged-in customer. A repeated Idempotency-Key
// returns the booking made the first time.
func (h *Handler) PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, created, err := h.bookings.Place(c.Request.Context(),
		req.toRequest(customerID, customerID, false, c.GetHeader("Idempotency-Key")))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondPlaced(c, order, created)
}

// GetMyOrders returns all orders for the logged-in customer
func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.bookings.ListForCustomer(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.bookings.GetForCustomer(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":      order,
		"valid_next": statemachine.ValidTransitionsFrom(order.Status),
	})
}

// CancelOrder cancels a booking that is still pending
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.bookings.Cancel(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "order_id": order.ID, "status": order.Status})
}
