package services

import (
	"math"
	"math/rand"
	"strings"

	"menucatalog/config"
	"menucatalog/models"
	"menucatalog/utils"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 50
)

// CatalogService builds the cross-hotel unique-dish listing: visible menu
// items grouped by name, one entry per dish with the list of hotels that
// serve it.
type CatalogService struct {
	db  *gorm.DB
	cfg *config.Settings
}

func NewCatalogService(db *gorm.DB, cfg *config.Settings) *CatalogService {
	return &CatalogService{db: db, cfg: cfg}
}

type CatalogHotel struct {
	HotelName string  `json:"hotel_name"`
	HotelLogo *string `json:"hotel_logo"`
}

type CatalogEntry struct {
	ItemName         string         `json:"item_name"`
	Price            *string        `json:"price"`
	Description      *string        `json:"description"`
	Image            *string        `json:"image"`
	ManualCategories []string       `json:"manual_categories"`
	Hotels           []CatalogHotel `json:"hotels"`
}

// Aggregate groups visible items by trimmed name. The query orders by
// created_at then id, so each group's representative (its first row) is
// deterministic: the oldest, lowest-id item wins.
func (s *CatalogService) Aggregate(baseURL string) ([]CatalogEntry, error) {
	var items []models.MenuItem
	err := s.db.
		Preload("Hotel").
		Preload("ManualCategories").
		Where("is_visible = ?", true).
		Order("created_at, id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string][]models.MenuItem)
	for _, item := range items {
		key := strings.TrimSpace(item.ItemName)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	entries := make([]CatalogEntry, 0, len(order))
	for _, key := range order {
		group := groups[key]
		first := group[0]

		entry := CatalogEntry{
			ItemName:         first.ItemName,
			ManualCategories: []string{},
			Hotels:           make([]CatalogHotel, 0, len(group)),
		}
		if first.Price != nil {
			p := first.Price.StringFixed(3) + " KD"
			entry.Price = &p
		}
		if first.Description != "" {
			d := first.Description
			entry.Description = &d
		}
		// External URL wins over the locally stored copy.
		if first.ImageURL != "" {
			img := first.ImageURL
			entry.Image = &img
		} else if first.ImageLocal != "" {
			img := utils.MediaURL(baseURL, s.cfg.MediaURL, first.ImageLocal)
			entry.Image = &img
		}
		for _, cat := range first.ManualCategories {
			entry.ManualCategories = append(entry.ManualCategories, cat.Name)
		}
		for _, member := range group {
			h := CatalogHotel{HotelName: member.Hotel.Name}
			if member.Hotel.Logo != "" {
				logo := utils.MediaURL(baseURL, s.cfg.MediaURL, member.Hotel.Logo)
				h.HotelLogo = &logo
			}
			entry.Hotels = append(entry.Hotels, h)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Shuffle randomizes entry order in place. The listing intentionally
// shows something different on each call; pagination happens afterwards.
func Shuffle(entries []CatalogEntry) {
	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}

// PagedResponse mirrors the mobile clients' expected pagination envelope.
type PagedResponse struct {
	Count       int     `json:"count"`
	TotalPages  int     `json:"total_pages"`
	HasNext     bool    `json:"has_next"`
	HasPrevious bool    `json:"has_previous"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	Results     any     `json:"results"`
}

// PageEntries slices entries for a 1-based page of pageSize. Pages past
// the end clamp to the last page, so the envelope's navigation flags and
// links always point at pages that exist.
func PageEntries(entries []CatalogEntry, page, pageSize int) ([]CatalogEntry, PagedResponse) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	count := len(entries)
	totalPages := int(math.Ceil(float64(count) / float64(pageSize)))
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start > count {
		start = count
	}
	end := start + pageSize
	if end > count {
		end = count
	}

	resp := PagedResponse{
		Count:       count,
		TotalPages:  totalPages,
		HasNext:     end < count,
		HasPrevious: start > 0 && start <= count,
	}
	return entries[start:end], resp
}
