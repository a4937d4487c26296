package routes

import (
	"catering-booking-api/handlers"
	"catering-booking-api/middleware"
	"catering-booking-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	authRequired := middleware.AuthRequired(h.JWTSecret())

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Catalog and menu browsing (no auth needed)
		public.GET("/zones", h.ListZones)
		public.GET("/packages", h.ListPackages)
		public.GET("/packages/:id", h.GetPackage)
		public.GET("/dishes", h.ListDishes)
		public.GET("/addons", h.ListAddOns)

		// Price and menu previews for the booking wizard
		public.POST("/quote", h.Quote)
		public.POST("/menu/evaluate", h.EvaluateMenu)
		public.POST("/schedule/check", h.CheckSchedule)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(authRequired)
	{
		auth.GET("/profile", h.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(authRequired, middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(authRequired, middleware.RoleRequired(models.RoleAdmin))
	{
		// Bookings
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.POST("/orders", h.AdminCreateOrder)
		admin.GET("/orders/:id", h.AdminGetOrder)
		admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)
		admin.PUT("/orders/:id/payment", h.AdminUpdatePayment)
		admin.PUT("/orders/:id/total", h.AdminOverrideTotal)
		admin.GET("/calendar", h.AdminCalendar)
		admin.POST("/schedule/check", h.AdminCheckSchedule)

		// Menu management
		admin.GET("/dishes", h.AdminListDishes)
		admin.POST("/dishes", h.CreateDish)
		admin.PUT("/dishes/:id", h.UpdateDish)
		admin.DELETE("/dishes/:id", h.DeleteDish)
		admin.GET("/addons", h.AdminListAddOns)
		admin.POST("/addons", h.CreateAddOn)
		admin.PUT("/addons/:id", h.UpdateAddOn)
		admin.DELETE("/addons/:id", h.DeleteAddOn)

		admin.GET("/users", h.AdminGetAllUsers)
	}
}
