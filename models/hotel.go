package models

import "time"

// A venue owning a menu. Hotel names are the identity used by the
// spreadsheet importer: the uploaded filename resolves to exactly one hotel.
type Hotel struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Logo      string     `gorm:"size:500" json:"logo,omitempty"` // path relative to the media root
	CreatedAt time.Time  `json:"uploaded_at"`
	MenuItems []MenuItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
