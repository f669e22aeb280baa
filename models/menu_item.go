package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// One dish/product row scoped to a hotel. (hotel, item_name) is unique;
// re-importing a spreadsheet replaces all of a hotel's rows.
type MenuItem struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	HotelID     uint             `gorm:"not null;uniqueIndex:idx_hotel_item" json:"hotel_id"`
	Hotel       Hotel            `json:"-"`
	ItemName    string           `gorm:"size:255;not null;uniqueIndex:idx_hotel_item" json:"item_name"`
	Price       *decimal.Decimal `gorm:"type:numeric(10,3)" json:"price,omitempty"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string           `gorm:"size:500" json:"image_url,omitempty"`
	ImageLocal  string           `gorm:"size:500" json:"image_local,omitempty"` // path relative to the media root
	IsVisible   bool             `gorm:"default:true" json:"is_visible"`
	CreatedAt   time.Time        `json:"created_at"`

	// Categories is spreadsheet-derived; ManualCategories is curator-only.
	// They are independent so re-imports never clobber curated assignments.
	Categories       []Category       `gorm:"many2many:menu_item_categories" json:"-"`
	ManualCategories []ManualCategory `gorm:"many2many:menu_item_manual_categories" json:"-"`
}
