package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymangel-backend/internal/shared/middleware"
	"gymangel-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPlanRoutes(v1, c)
		setupMembershipRoutes(v1, c)
		setupCartRoutes(v1, c)
		setupOrderRoutes(v1, c)
	}

	return router
}

// ========================================
// PLAN ROUTES (public)
// ========================================
func setupPlanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	plans := v1.Group("/plans")
	{
		plans.GET("", c.PlanHandler.ListPlans)
		plans.GET("/:id", c.PlanHandler.GetPlan)
	}
}

// ========================================
// MEMBERSHIP ROUTES
// ========================================
func setupMembershipRoutes(v1 *gin.RouterGroup, c *container.Container) {
	memberships := v1.Group("/memberships")
	memberships.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		memberships.POST("/subscribe", c.MembershipHandler.Subscribe)
		memberships.POST("/renew", c.MembershipHandler.Renew)
		memberships.GET("/status", c.MembershipHandler.GetStatus)
		memberships.PUT("/auto-renewal/enable", c.MembershipHandler.EnableAutoRenewal)
		memberships.PUT("/auto-renewal/disable", c.MembershipHandler.DisableAutoRenewal)
		memberships.POST("/cancel", c.MembershipHandler.Cancel)
		memberships.POST("/reconcile", c.MembershipHandler.Reconcile)
	}
}

// ========================================
// CART ROUTES (kèm discount code)
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/cart")
	cart.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.DELETE("", c.CartHandler.Clear)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:productId", c.CartHandler.UpdateItem)
		cart.DELETE("/items/:productId", c.CartHandler.RemoveItem)
		cart.POST("/sync", c.CartHandler.Sync)

		cart.POST("/discount", c.DiscountHandler.ApplyCode)
		cart.DELETE("/discount", c.DiscountHandler.RemoveCode)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	orders := v1.Group("/orders")
	orders.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		orders.POST("", c.OrderHandler.CreateOrder)
		orders.GET("", c.OrderHandler.ListOrders)
		orders.GET("/:id", c.OrderHandler.GetOrder)
		orders.POST("/:id/cancel", c.OrderHandler.CancelOrder)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["redis"] = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
