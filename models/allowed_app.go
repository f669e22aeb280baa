package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllowedApp is an API-key identity for coarse client authentication on
// the /api/ surface.
type AllowedApp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AppName   string    `gorm:"size:255;not null" json:"app_name"`
	APIKey    string    `gorm:"size:64;uniqueIndex;not null" json:"api_key"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *AllowedApp) BeforeCreate(tx *gorm.DB) error {
	if a.APIKey == "" {
		a.APIKey = strings.ReplaceAll(uuid.New().String(), "-", "")
	}
	return nil
}
