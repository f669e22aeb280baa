package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"menucatalog/config"
	"menucatalog/models"
	"menucatalog/utils"

	"gorm.io/gorm"
)

var ErrHotelNameTaken = errors.New("a hotel with this name already exists")

// HotelService owns hotel listings, detail serialization and the manual
// add/edit path used by the admin surface.
type HotelService struct {
	db   *gorm.DB
	cfg  *config.Settings
	menu *MenuService
}

func NewHotelService(db *gorm.DB, cfg *config.Settings, menu *MenuService) *HotelService {
	return &HotelService{db: db, cfg: cfg, menu: menu}
}

type HotelResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploaded_at"`
	MenuCount  int64     `json:"menu_count"`
	Logo       *string   `json:"logo"`
}

type HotelDetailResponse struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	UploadedAt time.Time          `json:"uploaded_at"`
	Logo       *string            `json:"logo"`
	Menu       []MenuItemResponse `json:"menu"`
}

// List returns all hotels newest-first with their item counts.
func (s *HotelService) List(baseURL string) ([]HotelResponse, error) {
	var hotels []models.Hotel
	if err := s.db.Order("created_at DESC").Find(&hotels).Error; err != nil {
		return nil, err
	}

	counts, err := s.menuCounts()
	if err != nil {
		return nil, err
	}

	out := make([]HotelResponse, 0, len(hotels))
	for _, h := range hotels {
		resp := HotelResponse{
			ID:         h.ID,
			Name:       h.Name,
			UploadedAt: h.CreatedAt,
			MenuCount:  counts[h.ID],
		}
		if h.Logo != "" {
			logo := utils.MediaURL(baseURL, s.cfg.MediaURL, h.Logo)
			resp.Logo = &logo
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *HotelService) menuCounts() (map[uint]int64, error) {
	type row struct {
		HotelID uint
		N       int64
	}
	var rows []row
	err := s.db.Model(&models.MenuItem{}).
		Select("hotel_id, COUNT(*) AS n").
		Group("hotel_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.HotelID] = r.N
	}
	return counts, nil
}

// Detail returns one hotel with its visible menu serialized.
func (s *HotelService) Detail(id uint, baseURL string) (*HotelDetailResponse, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, id).Error; err != nil {
		return nil, err
	}

	var items []models.MenuItem
	err := s.db.
		Preload("Categories").
		Preload("ManualCategories").
		Where("hotel_id = ? AND is_visible = ?", hotel.ID, true).
		Order("item_name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	resp := &HotelDetailResponse{
		ID:         hotel.ID,
		Name:       hotel.Name,
		UploadedAt: hotel.CreatedAt,
		Menu:       s.menu.SerializeItems(items, baseURL),
	}
	if hotel.Logo != "" {
		logo := utils.MediaURL(baseURL, s.cfg.MediaURL, hotel.Logo)
		resp.Logo = &logo
	}
	return resp, nil
}

// Create adds a hotel manually, rejecting duplicate names
// case-insensitively the way the admin form always has.
func (s *HotelService) Create(name, logoURL string) (*models.Hotel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("hotel name cannot be empty")
	}

	var existing models.Hotel
	err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error
	if err == nil {
		return nil, ErrHotelNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hotel := models.Hotel{Name: name}
	if logoURL != "" {
		hotel.Logo = s.menu.images.Fetch(logoURL, name+"_logo")
	}
	if err := s.db.Create(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

// Update renames a hotel and/or replaces its logo.
func (s *HotelService) Update(id uint, name, logoURL string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, id).Error; err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" && name != hotel.Name {
		var existing models.Hotel
		err := s.db.Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).First(&existing).Error
		if err == nil {
			return nil, ErrHotelNameTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hotel.Name = name
	}
	if logoURL != "" {
		if local := s.menu.images.Fetch(logoURL, hotel.Name+"_logo"); local != "" {
			s.menu.images.Remove(hotel.Logo)
			hotel.Logo = local
		}
	}
	if err := s.db.Save(&hotel).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

type MenuGroup struct {
	Category string             `json:"category"`
	Items    []MenuItemResponse `json:"items"`
}

// GroupedMenu is the admin view of one hotel's menu: items bucketed by
// their first auto category ("Uncategorized" when none), groups sorted
// by name.
func (s *HotelService) GroupedMenu(id uint, baseURL string) ([]MenuGroup, error) {
	var hotel models.Hotel
	if err := s.db.First(&hotel, id).Error; err != nil {
		return nil, err
	}

	var items []models.MenuItem
	err := s.db.
		Preload("Categories").
		Preload("ManualCategories").
		Where("hotel_id = ?", hotel.ID).
		Order("item_name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]MenuItemResponse)
	for i := range items {
		key := "Uncategorized"
		if len(items[i].Categories) > 0 {
			key = items[i].Categories[0].Name
		}
		buckets[key] = append(buckets[key], s.menu.SerializeItem(&items[i], baseURL))
	}

	groups := make([]MenuGroup, 0, len(buckets))
	for name, grouped := range buckets {
		groups = append(groups, MenuGroup{Category: name, Items: grouped})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups, nil
}
