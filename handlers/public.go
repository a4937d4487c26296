package handlers

import (
	"fmt"
	"net/http"
	"time"

	"catering-booking-api/booking"
	"catering-booking-api/catalog"
	"catering-booking-api/composition"
	"catering-booking-api/models"
	"catering-booking-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListZones returns the service areas with their fees
func (h *Handler) ListZones(c *gin.Context) {
	zones := h.bookings.Catalog().Zones()
	c.JSON(http.StatusOK, gin.H{"count": len(zones), "zones": zones})
}

// ListPackages returns all packages, optionally of one type (buffet, cocktail, packed_meal)
func (h *Handler) ListPackages(c *gin.Context) {
	cat := h.bookings.Catalog()
	packages := cat.Packages()
	if t := c.Query("type"); t != "" {
		packages = cat.PackagesOfType(catalog.PackageType(t))
	}
	c.JSON(http.StatusOK, gin.H{"count": len(packages), "packages": packages})
}

// GetPackage returns one package
func (h *Handler) GetPackage(c *gin.Context) {
	pkg, ok := h.bookings.Catalog().Package(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

// ListDishes returns the dishes a customer can pick, optionally of one category
func (h *Handler) ListDishes(c *gin.Context) {
	category := catalog.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "categories": catalog.Categories})
		return
	}
	dishes, err := h.dishes.ListAvailable(c.Request.Context(), category)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(dishes), "dishes": dishes})
}

// ListAddOns returns the add-ons on offer
func (h *Handler) ListAddOns(c *gin.Context) {
	addOns, err := h.addOns.List(c.Request.Context(), false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(addOns), "addons": addOns})
}

// Quote prices a package for a zone and guest count
func (h *Handler) Quote(c *gin.Context) {
	var req booking.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.bookings.Quote(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": b})
}

type dishPick struct {
	Category catalog.Category `json:"category" binding:"required"`
	DishID   uint             `json:"dish_id" binding:"required"`
}

type MenuRequest struct {
	PackageID  string                `json:"package_id" binding:"required"`
	PresetName string                `json:"preset_name"`
	Selection  composition.Selection `json:"selection"`
	Select     *dishPick             `json:"select"`
	Deselect   *dishPick             `json:"deselect"`
}

// EvaluateMenu applies an optional pick or unpick and reports each category's state.
// The returned selection is what the client should send next.
func (h *Handler) EvaluateMenu(c *gin.Context) {
	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pkg, ok := h.bookings.Catalog().Package(req.PackageID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}
	preset := ""
	if !pkg.IsBuildYourOwn() {
		p, ok := pkg.Preset(req.PresetName)
		if !ok {
			h.fail(c, fmt.Errorf("%w: %q", composition.ErrPresetNotFound, req.PresetName))
			return
		}
		preset = p.Name
	}

	sel, err := composition.Normalize(pkg, preset, req.Selection)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Deselect != nil {
		sel = composition.Deselect(sel, req.Deselect.Category, req.Deselect.DishID)
	}
	if req.Select != nil {
		dishes, err := h.dishes.ByIDs(c.Request.Context(), []uint{req.Select.DishID})
		if err != nil {
			h.fail(c, err)
			return
		}
		d, ok := dishes[req.Select.DishID]
		if !ok || !d.Available || d.Category != req.Select.Category {
			h.fail(c, fmt.Errorf("%w: dish %d", booking.ErrUnknownDish, req.Select.DishID))
			return
		}
		if sel, err = composition.Select(pkg, preset, sel, req.Select.Category, req.Select.DishID); err != nil {
			h.fail(c, err)
			return
		}
	}

	dishes, err := h.dishes.ByIDs(c.Request.Context(), sel.DishIDs())
	if err != nil {
		h.fail(c, err)
		return
	}
	names := make(map[uint]string, len(dishes))
	for id, d := range dishes {
		names[id] = d.Name
	}

	missing := composition.MissingCategories(pkg, preset, sel)
	c.JSON(http.StatusOK, gin.H{
		"package_id":  pkg.ID,
		"preset_name": preset,
		"selection":   sel,
		"categories":  composition.Evaluate(pkg, preset, sel),
		"missing":     missing,
		"blocking":    composition.Validate(pkg, preset, sel) != nil,
		"menu":        composition.ResolveMenu(pkg, preset, sel, names),
	})
}

type ScheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time"`
}

// CheckSchedule runs the date/time picker rules for customers
func (h *Handler) CheckSchedule(c *gin.Context) { h.checkSchedule(c, false) }

// AdminCheckSchedule runs the picker with the same-day admin rules
func (h *Handler) AdminCheckSchedule(c *gin.Context) { h.checkSchedule(c, true) }

func (h *Handler) checkSchedule(c *gin.Context, privileged bool) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc := h.bookings.Location()
	day, err := parseDay(req.Date, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	now := h.bookings.Now()

	picker := booking.NewPicker(loc, privileged)
	picker.ChooseDate(day.Year(), day.Month(), day.Day(), now)
	if req.Time != "" {
		clock, err := time.Parse("15:04", req.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "time must be HH:MM"})
			return
		}
		picker.ChooseTime(clock.Hour(), clock.Minute(), now)
	}

	body := gin.H{
		"state":         picker.State(),
		"earliest_date": booking.EarliestDate(now, privileged, loc).Format("2006-01-02"),
	}
	if reason := picker.Reason(); reason != "" {
		body["reason"] = reason
	}
	if at, ok := picker.EventAt(); ok {
		body["event_at"] = at
	}
	c.JSON(http.StatusOK, body)
}

// GetStateMachineInfo returns the booking and payment state machines
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":         statemachine.GetAllTransitions(),
		"payment_state_machine": statemachine.GetPaymentTransitions(),
		"terminal_states":       []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"description":           "Catering Booking Lifecycle State Machine",
	})
}
