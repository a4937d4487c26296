package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catering-booking-api/booking"
	"catering-booking-api/catalog"
	"catering-booking-api/middleware"
	"catering-booking-api/models"
	"catering-booking-api/repository"
	"catering-booking-api/statemachine"

	"github.com/gin-gonic/gin"
)

// readRange parses from/to days. to is inclusive for callers and turned into the next midnight.
func (h *Handler) readRange(c *gin.Context) (from, to time.Time, ok bool) {
	loc := h.bookings.Location()
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = parseDay(v, loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return from, to, false
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = parseDay(v, loc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return from, to, false
		}
		to = to.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must not be after to"})
		return from, to, false
	}
	return from, to, true
}

// AdminGetAllOrders lists bookings with optional status, payment, customer and date filters
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	from, to, ok := h.readRange(c)
	if !ok {
		return
	}
	filter := repository.OrderFilter{
		Status:  models.OrderStatus(c.Query("status")),
		Payment: models.PaymentStatus(c.Query("payment_status")),
		From:    from,
		To:      to,
	}
	if v := c.Query("customer_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer_id"})
			return
		}
		filter.CustomerID = uint(id)
	}

	orders, err := h.bookings.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	summary := map[string]int{}
	var booked, collected catalog.Money
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status != models.StatusCancelled {
			booked += o.ComputedTotal
		}
		switch o.PaymentStatus {
		case models.PaymentFullyPaid:
			collected += o.ComputedTotal
		case models.PaymentDepositPaid:
			collected += o.DepositAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary":   summary,
		"total_booked":    booked,
		"total_collected": collected,
		"count":           len(orders),
		"orders":          orders,
	})
}

// AdminCalendar lists events between two days, soonest first, grouped by day
func (h *Handler) AdminCalendar(c *gin.Context) {
	from, to, ok := h.readRange(c)
	if !ok {
		return
	}
	if from.IsZero() || to.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}
	orders, err := h.bookings.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		h.fail(c, err)
		return
	}

	loc := h.bookings.Location()
	days := map[string][]models.Order{}
	for _, o := range orders {
		day := o.EventAt.In(loc).Format("2006-01-02")
		days[day] = append(days[day], o)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "days": days})
}

// AdminGetOrder returns any booking with its history
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.bookings.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":              order,
		"valid_next":         statemachine.ValidTransitionsFrom(order.Status),
		"valid_next_payment": statemachine.ValidPaymentTransitionsFrom(order.PaymentStatus),
	})
}

type AdminCreateOrderRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
	PlaceOrderRequest
}

// AdminCreateOrder books on behalf of a customer. Same-day events are allowed with eight
// hours' notice.
func (h *Handler) AdminCreateOrder(c *gin.Context) {
	var req AdminCreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	customer, err := h.users.ByID(c.Request.Context(), req.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		h.fail(c, err)
		return
	}
	if req.ContactEmail == "" {
		req.ContactEmail = customer.Email
	}

	order, created, err := h.bookings.Place(c.Request.Context(),
		req.toRequest(customer.ID, middleware.GetUserID(c), true, c.GetHeader("Idempotency-Key")))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respondPlaced(c, order, created)
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// AdminUpdateOrderStatus moves a booking along its lifecycle
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.bookings.UpdateStatus(c.Request.Context(), id, req.Status, middleware.GetUserID(c), req.Note)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       order.ID,
		"current_status": order.Status,
		"valid_next":     statemachine.ValidTransitionsFrom(order.Status),
	})
}

type UpdatePaymentRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	DepositAmount *catalog.Money       `json:"deposit_amount"`
	Notes         string               `json:"notes"`
}

// AdminUpdatePayment records a deposit, full payment or refund
func (h *Handler) AdminUpdatePayment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.bookings.UpdatePayment(c.Request.Context(), id, booking.PaymentUpdate{
		Status:  req.PaymentStatus,
		Deposit: req.DepositAmount,
		Notes:   req.Notes,
	}, middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Payment updated",
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
		"deposit_amount": order.DepositAmount,
		"balance":        order.ComputedTotal - order.DepositAmount,
	})
}

type OverrideTotalRequest struct {
	Total  *catalog.Money `json:"total" binding:"required"`
	Reason string         `json:"reason" binding:"required"`
}

// AdminOverrideTotal replaces a booking's total with a negotiated figure
func (h *Handler) AdminOverrideTotal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req OverrideTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.bookings.OverrideTotal(c.Request.Context(), id, *req.Total, req.Reason, middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Order total overridden by admin",
		"order_id":         order.ID,
		"computed_total":   order.ComputedTotal,
		"package_subtotal": order.PackageSubtotal,
		"addons_total":     order.AddOnsTotal,
		"surcharge":        order.Surcharge,
	})
}

// AdminGetAllUsers returns all users, optionally of one role
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), models.UserRole(c.Query("role")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
