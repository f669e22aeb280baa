package services

import (
	"fmt"
	"strings"

	"menucatalog/config"
	"menucatalog/models"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Accepted header aliases per logical field, in match-priority order.
// Matching is against trimmed, lowercased header cells.
var (
	nameAliases        = []string{"_nameen", "name", "item", "itemname"}
	priceAliases       = []string{"_finalprice", "_regularprice", "price", "regularprice"}
	categoryAliases    = []string{"_categories", "category", "type"}
	descriptionAliases = []string{"_shortdescen", "description", "desc", "details"}
	imageAliases       = []string{"_imageurl1", "image", "image_url", "imageurl"}
	logoAliases        = []string{"_hotellogo", "logo", "hotel_logo"}
)

// columnMap holds resolved column indexes; -1 means the field is absent.
type columnMap struct {
	name        int
	price       int
	category    int
	description int
	image       int
	logo        int
}

// resolveColumns maps header cells to field columns. Empty header cells
// are skipped; the first alias found wins for each field.
func resolveColumns(header []string) columnMap {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	find := func(aliases []string) int {
		for _, alias := range aliases {
			for i, h := range normalized {
				if h != "" && h == alias {
					return i
				}
			}
		}
		return -1
	}

	return columnMap{
		name:        find(nameAliases),
		price:       find(priceAliases),
		category:    find(categoryAliases),
		description: find(descriptionAliases),
		image:       find(imageAliases),
		logo:        find(logoAliases),
	}
}

// rowCandidate is one validated data row before persistence.
type rowCandidate struct {
	Name        string
	Price       *decimal.Decimal
	Categories  []string
	Description string
	ImageURL    string
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// mapRow converts one data row into a candidate record. A missing or
// empty name cell means skip (ok=false); it does not count as an error.
func mapRow(row []string, cols columnMap) (cand rowCandidate, ok bool) {
	cand.Name = cellAt(row, cols.name)
	if cand.Name == "" {
		return cand, false
	}

	if v := cellAt(row, cols.price); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			cand.Price = &d
		}
		// unparseable prices are stored as absent, not row failures
	}

	if v := cellAt(row, cols.category); v != "" {
		for _, tok := range strings.Split(v, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" || containsString(cand.Categories, tok) {
				continue
			}
			cand.Categories = append(cand.Categories, tok)
		}
	}

	cand.Description = cellAt(row, cols.description)
	cand.ImageURL = cellAt(row, cols.image)
	return cand, true
}

// Case-insensitive, matching the category get-or-create policy.
func containsString(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// HotelNameFromFilename derives the hotel display name from an uploaded
// filename: the recognized menu_data prefix and the .xlsx extension are
// stripped, the rest is trimmed.
func HotelNameFromFilename(filename string) string {
	name := filename
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		name = name[:len(name)-len(".xlsx")]
	}
	for _, prefix := range []string{"menu_data_", "menu-data-"} {
		if i := strings.Index(name, prefix); i >= 0 {
			name = name[i+len(prefix):]
		}
	}
	return strings.TrimSpace(name)
}

// ImportResult reports what one upload run did.
type ImportResult struct {
	Hotel         string `json:"hotel"`
	RowsProcessed int    `json:"rows_processed"`
	ItemsCreated  int    `json:"items_imported"`
}

// IngestService orchestrates a full spreadsheet upload: resolve the
// hotel, fetch its logo, replace its menu items from the sheet rows.
type IngestService struct {
	db     *gorm.DB
	cfg    *config.Settings
	images *ImageService
}

func NewIngestService(db *gorm.DB, cfg *config.Settings, images *ImageService) *IngestService {
	return &IngestService{db: db, cfg: cfg, images: images}
}

// ImportFile ingests the workbook at path, uploaded under originalName.
// The delete-then-recreate of the hotel's items runs in one transaction;
// row failures are logged and skipped, image failures leave the field
// empty. An unparseable workbook fails the whole run.
func (s *IngestService) ImportFile(path, originalName string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("invalid excel file: %w", err)
	}

	hotelName := HotelNameFromFilename(originalName)
	res := &ImportResult{Hotel: hotelName}

	var hotel models.Hotel
	if err := s.db.Where(models.Hotel{Name: hotelName}).FirstOrCreate(&hotel).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return res, nil
	}
	cols := resolveColumns(rows[0])

	// Logo stage: row 2 of the logo column, best effort.
	if cols.logo >= 0 && len(rows) > 1 {
		if logoURL := cellAt(rows[1], cols.logo); logoURL != "" {
			if local := s.images.Fetch(logoURL, slug.Make(hotelName)+"_logo"); local != "" {
				hotel.Logo = local
				if err := s.db.Save(&hotel).Error; err != nil {
					logrus.WithField("hotel", hotelName).WithError(err).Warn("saving hotel logo failed")
				}
			}
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-uploading a spreadsheet is authoritative for this hotel's
		// items: clear join rows, then the items themselves.
		if err := tx.Exec(
			"DELETE FROM menu_item_categories WHERE menu_item_id IN (SELECT id FROM menu_items WHERE hotel_id = ?)",
			hotel.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM menu_item_manual_categories WHERE menu_item_id IN (SELECT id FROM menu_items WHERE hotel_id = ?)",
			hotel.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}

		for i, row := range rows[1:] {
			res.RowsProcessed++
			cand, ok := mapRow(row, cols)
			if !ok {
				continue
			}
			// Savepoint per row so a bad row never aborts the run.
			err := tx.Transaction(func(rowTx *gorm.DB) error {
				return s.createItem(rowTx, &hotel, cand)
			})
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"hotel": hotelName,
					"row":   i + 2,
					"item":  cand.Name,
				}).WithError(err).Warn("skipping menu row")
				continue
			}
			res.ItemsCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"hotel":    hotelName,
		"rows":     res.RowsProcessed,
		"imported": res.ItemsCreated,
	}).Info("menu import finished")
	return res, nil
}

func (s *IngestService) createItem(tx *gorm.DB, hotel *models.Hotel, cand rowCandidate) error {
	cats := NewCategoryService(tx)
	var linked []models.Category
	for _, name := range cand.Categories {
		cat, err := cats.GetOrCreate(name)
		if err != nil {
			return err
		}
		linked = append(linked, *cat)
	}

	imageLocal := ""
	if cand.ImageURL != "" {
		imageLocal = s.images.Fetch(cand.ImageURL, hotel.Name)
	}

	item := models.MenuItem{
		HotelID:     hotel.ID,
		ItemName:    cand.Name,
		Price:       cand.Price,
		Description: cand.Description,
		ImageURL:    cand.ImageURL,
		ImageLocal:  imageLocal,
		IsVisible:   true,
	}
	if err := tx.Create(&item).Error; err != nil {
		return err
	}
	if len(linked) > 0 {
		if err := tx.Model(&item).Association("Categories").Replace(linked); err != nil {
			return err
		}
	}
	return nil
}
