package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"menucatalog/config"
	"menucatalog/models"
	"menucatalog/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuService covers the per-item operations: serialization, visibility,
// category reassignment, deletion and the manual (non-spreadsheet) upsert
// path.
type MenuService struct {
	db     *gorm.DB
	cfg    *config.Settings
	images *ImageService
}

func NewMenuService(db *gorm.DB, cfg *config.Settings, images *ImageService) *MenuService {
	return &MenuService{db: db, cfg: cfg, images: images}
}

type MenuItemResponse struct {
	ID               uint     `json:"id"`
	ItemName         string   `json:"item_name"`
	Price            *string  `json:"price"`
	Categories       []string `json:"categories"`
	ManualCategories []string `json:"manual_categories"`
	Description      *string  `json:"description"`
	Image            string   `json:"image"`
	IsVisible        bool     `json:"is_visible"`
}

// SerializeItem builds the item payload. Image resolution: the local copy
// when present, then the remote URL, then the shared placeholder.
func (s *MenuService) SerializeItem(item *models.MenuItem, baseURL string) MenuItemResponse {
	out := MenuItemResponse{
		ID:               item.ID,
		ItemName:         item.ItemName,
		Categories:       []string{},
		ManualCategories: []string{},
		IsVisible:        item.IsVisible,
	}
	if item.Price != nil {
		p := item.Price.StringFixed(3)
		out.Price = &p
	}
	if item.Description != "" {
		d := item.Description
		out.Description = &d
	}
	switch {
	case item.ImageLocal != "":
		out.Image = utils.MediaURL(baseURL, s.cfg.MediaURL, item.ImageLocal)
	case item.ImageURL != "":
		out.Image = item.ImageURL
	default:
		out.Image = utils.MediaURL(baseURL, s.cfg.MediaURL, "no_image.jpg")
	}
	for _, c := range item.Categories {
		out.Categories = append(out.Categories, c.Name)
	}
	for _, c := range item.ManualCategories {
		out.ManualCategories = append(out.ManualCategories, c.Name)
	}
	return out
}

func (s *MenuService) SerializeItems(items []models.MenuItem, baseURL string) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, s.SerializeItem(&items[i], baseURL))
	}
	return out
}

func (s *MenuService) Get(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.Preload("Categories").Preload("ManualCategories").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MenuService) ToggleVisibility(id uint, visible bool) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	item.IsVisible = visible
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCategory replaces the item's auto or manual category assignment
// with a single category, or clears the set when categoryID is nil.
func (s *MenuService) UpdateCategory(id uint, kind string, categoryID *uint) error {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return err
	}

	switch kind {
	case "auto":
		if categoryID == nil {
			return s.db.Model(&item).Association("Categories").Clear()
		}
		var cat models.Category
		if err := s.db.First(&cat, *categoryID).Error; err != nil {
			return err
		}
		return s.db.Model(&item).Association("Categories").Replace([]models.Category{cat})
	case "manual":
		if categoryID == nil {
			return s.db.Model(&item).Association("ManualCategories").Clear()
		}
		var cat models.ManualCategory
		if err := s.db.First(&cat, *categoryID).Error; err != nil {
			return err
		}
		return s.db.Model(&item).Association("ManualCategories").Replace([]models.ManualCategory{cat})
	default:
		return fmt.Errorf("unknown category type %q", kind)
	}
}

// Delete removes the row, its join rows and its locally stored image.
func (s *MenuService) Delete(id uint) error {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return err
	}
	s.images.Remove(item.ImageLocal)
	return s.db.Select(clause.Associations).Delete(&item).Error
}

// BulkDelete removes every existing id in the list and reports how many
// rows actually went away; unknown ids are skipped.
func (s *MenuService) BulkDelete(ids []uint) (int, error) {
	deleted := 0
	for _, id := range ids {
		err := s.Delete(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// ListVisible returns visible items ordered by name with limit/offset
// pagination, plus the total for the envelope.
func (s *MenuService) ListVisible(limit, offset int) ([]models.MenuItem, int64, error) {
	var total int64
	if err := s.db.Model(&models.MenuItem{}).Where("is_visible = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.MenuItem
	err := s.db.
		Preload("Hotel").
		Preload("Categories").
		Preload("ManualCategories").
		Where("is_visible = ?", true).
		Order("item_name").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

// RandomSample picks up to count items across all hotels, visibility
// regardless; fewer items than count returns everything. count comes
// straight from a query parameter, so negatives are treated as zero.
func (s *MenuService) RandomSample(count int) ([]models.MenuItem, error) {
	if count < 0 {
		count = 0
	}

	var items []models.MenuItem
	err := s.db.
		Preload("Hotel").
		Preload("Categories").
		Preload("ManualCategories").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	if count < len(items) {
		items = items[:count]
	}
	return items, nil
}

// ManualItemInput is the admin create/edit payload for a single item.
type ManualItemInput struct {
	ItemName          string  `json:"item_name" binding:"required"`
	Price             *string `json:"price"`
	Description       string  `json:"description"`
	ImageURL          string  `json:"image_url"`
	CategoryIDs       []uint  `json:"category_ids"`
	ManualCategoryIDs []uint  `json:"manual_category_ids"`
}

// UpsertManual creates or updates a hotel's item by its unique
// (hotel, item_name) key — the manual path never uses replace semantics.
// A provided image URL is localized the same way the importer does it.
func (s *MenuService) UpsertManual(hotelID uint, input ManualItemInput) (*models.MenuItem, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, hotelID).Error; err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.ItemName)
	if name == "" {
		return nil, errors.New("item name cannot be empty")
	}

	var item models.MenuItem
	err := s.db.Where("hotel_id = ? AND item_name = ?", hotelID, name).First(&item).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.MenuItem{HotelID: hotelID, ItemName: name, IsVisible: true}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, err
		}
	}
	return s.applyManual(&item, &hotel, input)
}

// UpdateManual edits one existing item by id, including renames (the
// (hotel, item_name) constraint still applies on save).
func (s *MenuService) UpdateManual(id uint, input ManualItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	var hotel models.Hotel
	if err := s.db.First(&hotel, item.HotelID).Error; err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.ItemName); name != "" {
		item.ItemName = name
	}
	return s.applyManual(&item, &hotel, input)
}

func (s *MenuService) applyManual(item *models.MenuItem, hotel *models.Hotel, input ManualItemInput) (*models.MenuItem, error) {
	if input.Price != nil && strings.TrimSpace(*input.Price) != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(*input.Price))
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		item.Price = &d
	} else {
		item.Price = nil
	}

	item.Description = strings.TrimSpace(input.Description)
	if url := strings.TrimSpace(input.ImageURL); url != "" && url != item.ImageURL {
		if local := s.images.Fetch(url, hotel.Name); local != "" {
			s.images.Remove(item.ImageLocal)
			item.ImageLocal = local
			item.ImageURL = url
		}
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}

	if input.CategoryIDs != nil {
		var cats []models.Category
		if len(input.CategoryIDs) > 0 {
			if err := s.db.Find(&cats, input.CategoryIDs).Error; err != nil {
				return nil, err
			}
		}
		if err := s.db.Model(item).Association("Categories").Replace(cats); err != nil {
			return nil, err
		}
	}
	if input.ManualCategoryIDs != nil {
		var cats []models.ManualCategory
		if len(input.ManualCategoryIDs) > 0 {
			if err := s.db.Find(&cats, input.ManualCategoryIDs).Error; err != nil {
				return nil, err
			}
		}
		if err := s.db.Model(item).Association("ManualCategories").Replace(cats); err != nil {
			return nil, err
		}
	}
	return item, nil
}
