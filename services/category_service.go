package services

import (
	"errors"
	"strings"

	"menucatalog/models"

	"gorm.io/gorm"
)

// CategoryService owns the get-or-create policy for both category tables:
// lookup is case-insensitive, the first-seen casing is what gets stored.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) GetOrCreate(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name cannot be empty")
	}

	var cat models.Category
	err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat = models.Category{Name: name}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetOrCreateManual reports whether the category was newly created so the
// API can answer "success" vs "exists".
func (s *CategoryService) GetOrCreateManual(name string) (*models.ManualCategory, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, errors.New("category name cannot be empty")
	}

	var cat models.ManualCategory
	err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&cat).Error
	if err == nil {
		return &cat, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cat = models.ManualCategory{Name: name}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, false, err
	}
	return &cat, true, nil
}
