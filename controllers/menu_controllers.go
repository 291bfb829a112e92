package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetMenu -> menu publik satu restoran: kategori aktif + item aktif
func (mc *MenuController) GetMenu(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	var restaurant models.Restaurant
	if err := mc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	var categories []models.MenuCategory
	if err := mc.DB.Where("restaurant_id = ? AND is_active = ?", restaurant.ID, true).
		Order("sort ASC").Find(&categories).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Where("restaurant_id = ? AND is_active = ?", restaurant.ID, true).
		Order("name ASC").Find(&items).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	itemsByCategory := make(map[uint][]models.MenuItem)
	for _, item := range items {
		itemsByCategory[item.CategoryID] = append(itemsByCategory[item.CategoryID], item)
	}

	catViews := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		catViews = append(catViews, gin.H{
			"id":    category.ID,
			"name":  category.Name,
			"sort":  category.Sort,
			"items": itemsByCategory[category.ID],
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant menu", gin.H{
		"restaurant": gin.H{
			"id":       restaurant.ID,
			"name":     restaurant.Name,
			"currency": restaurant.Currency,
		},
		"categories": catViews,
	})
}

// GetCategories -> hanya daftar kategori aktif
func (mc *MenuController) GetCategories(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	var categories []models.MenuCategory
	if err := mc.DB.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("sort ASC").Find(&categories).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu categories", categories)
}

// GetItemsByCategory -> item aktif satu kategori
func (mc *MenuController) GetItemsByCategory(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category id"))
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Where("restaurant_id = ? AND category_id = ? AND is_active = ?",
		restaurantID, categoryID, true).
		Order("name ASC").Find(&items).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu items", items)
}
