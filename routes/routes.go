package routes

import (
	"strings"

	"menucatalog/config"
	"menucatalog/controllers"
	"menucatalog/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Settings) *gin.Engine {
	controllers.Init(cfg)

	r := gin.Default()
	r.Use(cors.Default())

	// Locally stored menu images and logos.
	r.Static(strings.TrimSuffix(cfg.MediaURL, "/"), cfg.MediaRoot)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Mobile/client API, gated on an app key
	api := r.Group("/api")
	api.Use(middlewares.APIKeyMiddleware())
	{
		api.GET("/menu/all", controllers.UnifiedMenu)
		api.GET("/menu/items", controllers.MenuItems)
		api.GET("/menu/random", controllers.RandomMenu)
		api.GET("/hotels", controllers.ListHotels)
		api.GET("/hotel/:id/menu", controllers.HotelMenu)

		// Mutations additionally need an operator token
		ops := api.Group("")
		ops.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
		{
			ops.POST("/upload-menu", controllers.UploadMenu)
			ops.POST("/menu/:id/toggle_visibility", controllers.ToggleVisibility)
			ops.POST("/menu/:id/update_category", controllers.UpdateCategory)
			ops.POST("/menu/:id/delete", controllers.DeleteMenuItem)
			ops.POST("/menu/bulk_delete", controllers.BulkDeleteMenuItems)
			ops.POST("/manual-category/create", controllers.CreateManualCategory)
		}
	}

	// Admin dashboard routes, token only
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		admin.GET("/hotels", controllers.AdminListHotels)
		admin.POST("/hotels", controllers.CreateHotel)
		admin.PUT("/hotels/:id", controllers.UpdateHotel)
		admin.GET("/hotels/:id/menu", controllers.GroupedHotelMenu)
		admin.POST("/hotels/:id/menu", controllers.AddMenuItem)
		admin.PUT("/hotels/:id/menu/:item_id", controllers.EditMenuItem)
		admin.POST("/upload", controllers.UploadMenu)
		admin.POST("/apps", controllers.CreateAllowedApp)
	}

	return r
}
