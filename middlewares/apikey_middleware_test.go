package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"menucatalog/config"
	"menucatalog/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAPIKeyTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	r := gin.New()
	r.Use(APIKeyMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestAPIKeyMiddleware(t *testing.T) {
	r := setupAPIKeyTest(t)

	active := models.AllowedApp{AppName: "mobile", IsActive: true}
	if err := config.DB.Create(&active).Error; err != nil {
		t.Fatal(err)
	}
	inactive := models.AllowedApp{AppName: "retired", IsActive: false}
	if err := config.DB.Create(&inactive).Error; err != nil {
		t.Fatal(err)
	}
	if active.APIKey == "" {
		t.Fatal("key should be generated on create")
	}

	do := func(header, query string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping"+query, nil)
		if header != "" {
			req.Header.Set("X-APP-KEY", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := do("", ""); code != http.StatusUnauthorized {
		t.Fatalf("missing key: %d, want 401", code)
	}
	if code := do("wrong-key", ""); code != http.StatusForbidden {
		t.Fatalf("unknown key: %d, want 403", code)
	}
	if code := do(inactive.APIKey, ""); code != http.StatusForbidden {
		t.Fatalf("inactive key: %d, want 403", code)
	}
	if code := do(active.APIKey, ""); code != http.StatusOK {
		t.Fatalf("header key: %d, want 200", code)
	}
	if code := do("", "?api_key="+active.APIKey); code != http.StatusOK {
		t.Fatalf("query key: %d, want 200", code)
	}
}
