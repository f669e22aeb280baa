package controllers

import (
	"strconv"

	"menucatalog/config"
	"menucatalog/services"

	"github.com/gin-gonic/gin"
)

var settings *config.Settings

// Init hands the loaded settings to the handler package; called once
// from SetupRouter.
func Init(cfg *config.Settings) {
	settings = cfg
}

func newImageService() *services.ImageService {
	return services.NewImageService(settings)
}

func newMenuService() *services.MenuService {
	return services.NewMenuService(config.DB, settings, newImageService())
}

func newHotelService() *services.HotelService {
	return services.NewHotelService(config.DB, settings, newMenuService())
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func uintParam(c *gin.Context, key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
