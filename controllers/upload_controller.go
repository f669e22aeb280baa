package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"menucatalog/config"
	"menucatalog/services"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
)

// UploadMenu accepts a multipart .xlsx menu and runs the ingestion
// pipeline. Both the admin form and the token API route here.
func UploadMenu(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Only .xlsx allowed"})
		return
	}

	tmpDir := filepath.Join(settings.MediaRoot, "temp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not store upload"})
		return
	}
	tmpPath := filepath.Join(tmpDir, slug.Make(file.Filename)+".xlsx")
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not store upload"})
		return
	}
	defer os.Remove(tmpPath)

	ingest := services.NewIngestService(config.DB, settings, newImageService())
	res, err := ingest.ImportFile(tmpPath, file.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid Excel file. Please re-save properly."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hotel":          res.Hotel,
		"items_imported": res.ItemsCreated,
		"status":         "success",
	})
}
