package handlers

import (
	"math"
	"net/http"
	"strings"

	"catering-booking-api/catalog"
	"catering-booking-api/models"

	"github.com/gin-gonic/gin"
)

// ── Dish Management ─────────────────────────────────────────────────────────

type CreateDishRequest struct {
	Name        string           `json:"name" binding:"required"`
	Category    catalog.Category `json:"category" binding:"required"`
	Description string           `json:"description"`
}

// pickFields keeps the allowed keys of a partial update body
func pickFields(req map[string]any, allowed ...string) map[string]any {
	update := map[string]any{}
	for _, k := range allowed {
		if v, ok := req[k]; ok {
			update[k] = v
		}
	}
	return update
}

// AdminListDishes returns every dish, unavailable ones included
func (h *Handler) AdminListDishes(c *gin.Context) {
	category := catalog.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "categories": catalog.Categories})
		return
	}
	dishes, err := h.dishes.List(c.Request.Context(), category, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(dishes), "dishes": dishes})
}

// CreateDish adds a dish to the selectable menu
func (h *Handler) CreateDish(c *gin.Context) {
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "categories": catalog.Categories})
		return
	}

	dish := models.Dish{
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Description: req.Description,
		Available:   true,
	}
	if err := h.dishes.Create(c.Request.Context(), &dish); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Dish added", "dish": dish})
}

// UpdateDish edits a dish's name, category, description or availability
func (h *Handler) UpdateDish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := pickFields(req, "name", "category", "description", "available")
	if v, ok := update["category"]; ok {
		s, _ := v.(string)
		if !catalog.Category(s).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "categories": catalog.Categories})
			return
		}
	}
	if v, ok := update["available"]; ok {
		if _, isBool := v.(bool); !isBool {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available must be true or false"})
			return
		}
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	dish, err := h.dishes.Update(c.Request.Context(), id, update)
	if err != nil {
		h.fail(c, err, "Dish")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish updated", "dish": dish})
}

// DeleteDish removes a dish. Existing bookings keep the dish names they were made with.
func (h *Handler) DeleteDish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.dishes.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Dish")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dish deleted"})
}

// ── Add-on Management ───────────────────────────────────────────────────────

type CreateAddOnRequest struct {
	Name      string        `json:"name" binding:"required"`
	UnitPrice catalog.Money `json:"unit_price" binding:"required,gt=0"`
	Unit      string        `json:"unit"`
}

// AdminListAddOns returns every add-on, unavailable ones included
func (h *Handler) AdminListAddOns(c *gin.Context) {
	addOns, err := h.addOns.List(c.Request.Context(), true)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(addOns), "addons": addOns})
}

// CreateAddOn adds a flat-rate extra
func (h *Handler) CreateAddOn(c *gin.Context) {
	var req CreateAddOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addOn := models.AddOn{
		Name:      strings.TrimSpace(req.Name),
		UnitPrice: req.UnitPrice,
		Unit:      req.Unit,
		Available: true,
	}
	if err := h.addOns.Create(c.Request.Context(), &addOn); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Add-on added", "addon": addOn})
}

// UpdateAddOn edits an add-on. Prices already on bookings do not change.
func (h *Handler) UpdateAddOn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := pickFields(req, "name", "unit_price", "unit", "available")
	if v, ok := update["unit_price"]; ok {
		price, isNum := v.(float64)
		if !isNum || price <= 0 || price != math.Trunc(price) || price > math.MaxInt32 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit_price must be a positive whole amount"})
			return
		}
		update["unit_price"] = catalog.Money(price)
	}
	if v, ok := update["available"]; ok {
		if _, isBool := v.(bool); !isBool {
			c.JSON(http.StatusBadRequest, gin.H{"error": "available must be true or false"})
			return
		}
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	addOn, err := h.addOns.Update(c.Request.Context(), id, update)
	if err != nil {
		h.fail(c, err, "Add-on")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Add-on updated", "addon": addOn})
}

// DeleteAddOn removes an add-on
func (h *Handler) DeleteAddOn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.addOns.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Add-on")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Add-on deleted"})
}
