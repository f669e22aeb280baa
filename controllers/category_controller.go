package controllers

import (
	"net/http"
	"strings"

	"menucatalog/config"
	"menucatalog/services"

	"github.com/gin-gonic/gin"
)

type createCategoryInput struct {
	Name string `json:"name" form:"name"`
}

// POST /api/manual-category/create — idempotent create-if-absent; the
// response distinguishes a fresh create from an existing match.
func CreateManualCategory(c *gin.Context) {
	var input createCategoryInput
	_ = c.ShouldBind(&input)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name cannot be empty."})
		return
	}

	cat, created, err := services.NewCategoryService(config.DB).GetOrCreateManual(name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "exists"
	if created {
		status = "success"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "id": cat.ID, "name": cat.Name})
}
