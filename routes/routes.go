package routes

import (
	"github.com/Govind-619/inventory-manager/controllers"
	"github.com/Govind-619/inventory-manager/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(h *controllers.Handler) *gin.Engine {
	utils.UseJSONFieldNames()

	router := gin.New()

	// Middleware must be registered before the routes it applies to
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Route not found")
	})

	router.GET("/health", h.Health)

	initCategoryRoutes(router, h)
	initItemRoutes(router, h)
	initDashboardRoutes(router, h)

	return router
}

// initCategoryRoutes initializes all category routes
func initCategoryRoutes(router *gin.Engine, h *controllers.Handler) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.GET("/:id", h.GetCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// initItemRoutes initializes all item routes
func initItemRoutes(router *gin.Engine, h *controllers.Handler) {
	items := router.Group("/items")
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.PATCH("/:id", h.UpdateItemQuantity)
		items.DELETE("/:id", h.DeleteItem)
	}
}

// initDashboardRoutes initializes the read-model routes
func initDashboardRoutes(router *gin.Engine, h *controllers.Handler) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", h.GetDashboard)
		dashboard.GET("/export", h.ExportDashboard)
	}
}
