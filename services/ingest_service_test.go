package services

import (
	"os"
	"path/filepath"
	"testing"

	"menucatalog/models"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, dir, filename string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(dir, filename)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestSettings(t)
	svc := NewIngestService(db, cfg, NewImageService(cfg))

	path := writeWorkbook(t, t.TempDir(), "book.xlsx", [][]any{
		{"Name", "Price", "Category", "Description", "Image"},
		{"Cake", "2.5", "Dessert, Bakery", "Sweet and fluffy", ""},
		{"Tea", "0.500", "Drinks", "", ""},
		{"", "1.0", "Drinks", "", ""},
		{"Cake", "3.0", "Dessert", "", ""},
	})

	res, err := svc.ImportFile(path, "menu_data_Grand Palace.xlsx")
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if res.Hotel != "Grand Palace" {
		t.Fatalf("hotel = %q, want Grand Palace", res.Hotel)
	}
	if res.RowsProcessed != 4 {
		t.Fatalf("rows processed = %d, want 4", res.RowsProcessed)
	}
	// The empty-name row is skipped; the duplicate Cake row hits the
	// (hotel, item_name) constraint and is skipped too.
	if res.ItemsCreated != 2 {
		t.Fatalf("items created = %d, want 2", res.ItemsCreated)
	}

	var cake models.MenuItem
	if err := db.Preload("Categories").Where("item_name = ?", "Cake").First(&cake).Error; err != nil {
		t.Fatalf("load cake: %v", err)
	}
	if cake.Price == nil || cake.Price.StringFixed(3) != "2.500" {
		t.Fatalf("cake price = %v, want 2.500", cake.Price)
	}
	if len(cake.Categories) != 2 {
		t.Fatalf("cake categories = %d, want 2", len(cake.Categories))
	}
	if !cake.IsVisible {
		t.Fatal("imported items should be visible")
	}
}

func TestImportFileReplacesPreviousItems(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestSettings(t)
	svc := NewIngestService(db, cfg, NewImageService(cfg))
	dir := t.TempDir()

	first := writeWorkbook(t, dir, "first.xlsx", [][]any{
		{"Name", "Price"},
		{"Cake", "2.5"},
		{"Tea", "0.5"},
	})
	if _, err := svc.ImportFile(first, "menu_data_Grand Palace.xlsx"); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := writeWorkbook(t, dir, "second.xlsx", [][]any{
		{"Name", "Price"},
		{"Pie", "1.750"},
	})
	res, err := svc.ImportFile(second, "menu_data_Grand Palace.xlsx")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.ItemsCreated != 1 {
		t.Fatalf("items created = %d, want 1", res.ItemsCreated)
	}

	var hotels int64
	db.Model(&models.Hotel{}).Count(&hotels)
	if hotels != 1 {
		t.Fatalf("hotels = %d, want 1", hotels)
	}

	var items []models.MenuItem
	if err := db.Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 1 || items[0].ItemName != "Pie" {
		t.Fatalf("items after re-import = %+v, want only Pie", items)
	}
}

func TestImportFileRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestSettings(t)
	svc := NewIngestService(db, cfg, NewImageService(cfg))

	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := svc.ImportFile(path, "menu_data_X.xlsx"); err == nil {
		t.Fatal("expected error for a non-xlsx payload")
	}
}

func TestResolveColumnsAliases(t *testing.T) {
	cols := resolveColumns([]string{"_NameEn", "", "_FinalPrice", "_Categories", "_ShortDescEn", "_ImageUrl1", "_HotelLogo"})
	if cols.name != 0 {
		t.Fatalf("name column = %d, want 0", cols.name)
	}
	if cols.price != 2 {
		t.Fatalf("price column = %d, want 2", cols.price)
	}
	if cols.category != 3 || cols.description != 4 || cols.image != 5 || cols.logo != 6 {
		t.Fatalf("unexpected columns: %+v", cols)
	}

	cols = resolveColumns([]string{"Item", "RegularPrice", "Type"})
	if cols.name != 0 || cols.price != 1 || cols.category != 2 {
		t.Fatalf("fallback aliases not resolved: %+v", cols)
	}
	if cols.image != -1 || cols.logo != -1 {
		t.Fatalf("absent columns should be -1: %+v", cols)
	}
}

func TestMapRow(t *testing.T) {
	cols := resolveColumns([]string{"name", "price", "category"})

	if _, ok := mapRow([]string{"", "1.0", "Drinks"}, cols); ok {
		t.Fatal("empty name should be skipped")
	}

	cand, ok := mapRow([]string{" Tea ", "abc", "Drinks, drinks, Hot , Drinks"}, cols)
	if !ok {
		t.Fatal("row should be accepted")
	}
	if cand.Name != "Tea" {
		t.Fatalf("name = %q, want Tea", cand.Name)
	}
	if cand.Price != nil {
		t.Fatalf("unparseable price should be nil, got %v", cand.Price)
	}
	if len(cand.Categories) != 2 || cand.Categories[0] != "Drinks" || cand.Categories[1] != "Hot" {
		t.Fatalf("categories = %v, want [Drinks Hot]", cand.Categories)
	}
}

func TestHotelNameFromFilename(t *testing.T) {
	cases := map[string]string{
		"menu_data_Grand Palace.xlsx": "Grand Palace",
		"menu-data-Sea View.XLSX":     "Sea View",
		"Plain Hotel.xlsx":            "Plain Hotel",
		"menu_data_Spicy.xlsx":        "Spicy",
	}
	for in, want := range cases {
		if got := HotelNameFromFilename(in); got != want {
			t.Errorf("HotelNameFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
