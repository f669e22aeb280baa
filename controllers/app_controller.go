package controllers

import (
	"net/http"
	"strings"

	"menucatalog/config"
	"menucatalog/models"

	"github.com/gin-gonic/gin"
)

type createAppInput struct {
	AppName string `json:"app_name" binding:"required"`
}

// POST /admin/apps — registers a client app; the API key is generated
// on create and returned once here.
func CreateAllowedApp(c *gin.Context) {
	var input createAppInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app := models.AllowedApp{AppName: strings.TrimSpace(input.AppName), IsActive: true}
	if app.AppName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "App name cannot be empty."})
		return
	}
	if err := config.DB.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       app.ID,
		"app_name": app.AppName,
		"api_key":  app.APIKey,
	})
}
