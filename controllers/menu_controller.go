package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"menucatalog/config"
	"menucatalog/services"
	"menucatalog/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/menu/all — the unique-dish listing: visible items grouped
// across hotels, shuffled, then paginated.
func UnifiedMenu(c *gin.Context) {
	baseURL := utils.RequestBaseURL(c.Request)
	catalog := services.NewCatalogService(config.DB, settings)

	entries, err := catalog.Aggregate(baseURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	services.Shuffle(entries)

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", services.DefaultPageSize)
	pageItems, resp := services.PageEntries(entries, page, pageSize)
	resp.Results = pageItems
	// Keep the links consistent with the page that was actually served.
	if page < 1 {
		page = 1
	}
	if resp.TotalPages > 0 && page > resp.TotalPages {
		page = resp.TotalPages
	}
	if resp.HasNext {
		resp.Next = pageLink(c, page+1)
	}
	if resp.HasPrevious {
		resp.Previous = pageLink(c, page-1)
	}

	c.JSON(http.StatusOK, resp)
}

func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := utils.RequestBaseURL(c.Request) + u.String()
	return &link
}

// GET /api/menu/items — flat visible-item listing, limit/offset.
func MenuItems(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	menu := newMenuService()
	items, total, err := menu.ListVisible(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": menu.SerializeItems(items, utils.RequestBaseURL(c.Request)),
	})
}

// GET /api/menu/random?count=10 — fixed-size random sample of all items.
func RandomMenu(c *gin.Context) {
	count := intQuery(c, "count", 10)

	menu := newMenuService()
	items, err := menu.RandomSample(count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": menu.SerializeItems(items, utils.RequestBaseURL(c.Request)),
	})
}

type toggleVisibilityInput struct {
	Visible *bool `json:"visible"`
}

// POST /api/menu/:id/toggle_visibility
func ToggleVisibility(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input toggleVisibilityInput
	_ = c.ShouldBindJSON(&input)
	visible := true
	if input.Visible != nil {
		visible = *input.Visible
	}

	item, err := newMenuService().ToggleVisibility(id, visible)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "visible": item.IsVisible})
}

type updateCategoryInput struct {
	Type       string `json:"type"`
	CategoryID *uint  `json:"category_id"`
}

// POST /api/menu/:id/update_category — replace or clear the item's auto
// or manual category assignment.
func UpdateCategory(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input updateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := newMenuService().UpdateCategory(id, input.Type, input.CategoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// POST /api/menu/:id/delete — removes the row and its stored image.
func DeleteMenuItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	err := newMenuService().Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type bulkDeleteInput struct {
	IDs []uint `json:"ids"`
}

// POST /api/menu/bulk_delete — deletes the valid subset of ids and
// reports how many rows went away.
func BulkDeleteMenuItems(c *gin.Context) {
	var input bulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := newMenuService().BulkDelete(input.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
