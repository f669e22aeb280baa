package middlewares

import (
	"errors"
	"net/http"

	"menucatalog/config"
	"menucatalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIKeyMiddleware is the coarse client gate on the /api surface: every
// request must carry the key of an active registered app, via the
// X-APP-KEY header or an api_key query parameter.
func APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-APP-KEY")
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "API key missing"})
			return
		}

		var app models.AllowedApp
		err := config.DB.Where("api_key = ? AND is_active = ?", apiKey, true).First(&app).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Invalid API key"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "API key check failed"})
			return
		}

		c.Next()
	}
}
