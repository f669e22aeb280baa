package controllers

import (
	"errors"
	"net/http"

	"menucatalog/services"
	"menucatalog/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/hotels — all hotels, newest first, with item counts.
func ListHotels(c *gin.Context) {
	hotels, err := newHotelService().List(utils.RequestBaseURL(c.Request))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// GET /api/hotel/:id/menu — one hotel plus its visible menu.
func HotelMenu(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	detail, err := newHotelService().Detail(id, utils.RequestBaseURL(c.Request))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

type hotelInput struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// POST /admin/hotels — manual hotel creation; duplicate names are
// rejected case-insensitively.
func CreateHotel(c *gin.Context) {
	var input hotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hotel, err := newHotelService().Create(input.Name, input.LogoURL)
	if errors.Is(err, services.ErrHotelNameTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, hotel)
}

// PUT /admin/hotels/:id
func UpdateHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input hotelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hotel, err := newHotelService().Update(id, input.Name, input.LogoURL)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, hotel)
}

// GET /admin/hotels — the dashboard listing (same shape as the public one).
func AdminListHotels(c *gin.Context) {
	ListHotels(c)
}

// GET /admin/hotels/:id/menu — items grouped by first auto category.
func GroupedHotelMenu(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	groups, err := newHotelService().GroupedMenu(id, utils.RequestBaseURL(c.Request))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"grouped_menu": groups})
}

// POST /admin/hotels/:id/menu — manual item creation with upsert
// semantics on (hotel, item_name).
func AddMenuItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input services.ManualItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu := newMenuService()
	item, err := menu.UpsertManual(id, input)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	full, err := menu.Get(item.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, menu.SerializeItem(full, utils.RequestBaseURL(c.Request)))
}

// PUT /admin/hotels/:id/menu/:item_id — manual item edit.
func EditMenuItem(c *gin.Context) {
	itemID, ok := uintParam(c, "item_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input services.ManualItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	menu := newMenuService()
	item, err := menu.UpdateManual(itemID, input)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	full, err := menu.Get(item.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, menu.SerializeItem(full, utils.RequestBaseURL(c.Request)))
}
