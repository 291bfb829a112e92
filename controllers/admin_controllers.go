package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// AdminController -> manajemen restoran/meja/menu/user oleh staff.
// Semua query difilter dengan tenant dari token, bukan dari request.
type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// restaurantOwned -> restoran di path harus milik tenant dari token,
// supaya admin tenant lain tidak bisa menyisipkan data ke menu restoran
// orang
func (ac *AdminController) restaurantOwned(tenantID uint, restaurantID uint64) bool {
	var restaurant models.Restaurant
	err := ac.DB.Where("id = ? AND tenant_id = ?", restaurantID, tenantID).First(&restaurant).Error
	return err == nil
}

// GetRestaurants -> daftar restoran milik tenant
func (ac *AdminController) GetRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := ac.DB.Where("tenant_id = ?", tenantFromContext(c)).
		Order("name ASC").Find(&restaurants).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// CreateRestaurant -> admin menambah restoran baru di tenant-nya
func (ac *AdminController) CreateRestaurant(c *gin.Context) {
	type ReqBody struct {
		Name     string `json:"name" binding:"required"`
		Address  string `json:"address"`
		Currency string `json:"currency"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("restaurant name required"))
		return
	}
	if body.Currency == "" {
		body.Currency = "TRY"
	}

	restaurant := models.Restaurant{
		TenantID: tenantFromContext(c),
		Name:     body.Name,
		Address:  body.Address,
		Currency: body.Currency,
	}
	if err := ac.DB.Create(&restaurant).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// GetTables -> daftar meja satu restoran
func (ac *AdminController) GetTables(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	var tables []models.Table
	if err := ac.DB.Where("restaurant_id = ? AND tenant_id = ?", restaurantID, tenantFromContext(c)).
		Order("code ASC").Find(&tables).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> tambah meja; code harus unik dalam restoran
func (ac *AdminController) CreateTable(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	if !ac.restaurantOwned(tenantFromContext(c), restaurantID) {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	type ReqBody struct {
		Code string `json:"code" binding:"required"`
		Name string `json:"name" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table code and name required"))
		return
	}

	var existing models.Table
	err = ac.DB.Where("restaurant_id = ? AND code = ?", restaurantID, body.Code).First(&existing).Error
	if err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("table code already exists"))
		return
	}

	table := models.Table{
		TenantID:     tenantFromContext(c),
		RestaurantID: uint(restaurantID),
		Code:         body.Code,
		Name:         body.Name,
		IsActive:     true,
	}
	if err := ac.DB.Create(&table).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTableStatus -> toggle aktif/nonaktif meja (tidak pernah hard delete)
func (ac *AdminController) UpdateTableStatus(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("table_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table id"))
		return
	}

	type ReqBody struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("is_active must be boolean"))
		return
	}

	var table models.Table
	if err := ac.DB.Where("id = ? AND tenant_id = ?", tableID, tenantFromContext(c)).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	if err := ac.DB.Model(&table).Update("is_active", *body.IsActive).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	table.IsActive = *body.IsActive

	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// GetMenuForManagement -> kategori + item termasuk yang nonaktif
func (ac *AdminController) GetMenuForManagement(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}
	tenantID := tenantFromContext(c)

	var categories []models.MenuCategory
	if err := ac.DB.Where("restaurant_id = ? AND tenant_id = ?", restaurantID, tenantID).
		Order("sort ASC").Find(&categories).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	var items []models.MenuItem
	if err := ac.DB.Where("restaurant_id = ? AND tenant_id = ?", restaurantID, tenantID).
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
			"id":        category.ID,
			"name":      category.Name,
			"sort":      category.Sort,
			"is_active": category.IsActive,
			"items":     itemsByCategory[category.ID],
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Menu for management", catViews)
}

// CreateCategory -> tambah kategori menu
func (ac *AdminController) CreateCategory(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	if !ac.restaurantOwned(tenantFromContext(c), restaurantID) {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	type ReqBody struct {
		Name string `json:"name" binding:"required"`
		Sort int    `json:"sort"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category name required"))
		return
	}

	category := models.MenuCategory{
		TenantID:     tenantFromContext(c),
		RestaurantID: uint(restaurantID),
		Name:         body.Name,
		Sort:         body.Sort,
		IsActive:     true,
	}
	if err := ac.DB.Create(&category).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// CreateMenuItem -> tambah item menu; harga/tarif PPN decimal
func (ac *AdminController) CreateMenuItem(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	if !ac.restaurantOwned(tenantFromContext(c), restaurantID) {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	type ReqBody struct {
		CategoryID  uint             `json:"category_id" binding:"required"`
		Name        string           `json:"name" binding:"required"`
		Description string           `json:"description"`
		Price       decimal.Decimal  `json:"price" binding:"required"`
		VatRate     *decimal.Decimal `json:"vat_rate"`
		SKU         string           `json:"sku"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category, name and price required"))
		return
	}

	vatRate := decimal.NewFromFloat(18.00)
	if body.VatRate != nil {
		vatRate = *body.VatRate
	}

	item := models.MenuItem{
		TenantID:     tenantFromContext(c),
		RestaurantID: uint(restaurantID),
		CategoryID:   body.CategoryID,
		Name:         body.Name,
		Description:  body.Description,
		Price:        body.Price,
		VatRate:      vatRate,
		SKU:          body.SKU,
		IsActive:     true,
	}
	if err := ac.DB.Create(&item).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// GetUsers -> daftar staff tenant (admin only)
func (ac *AdminController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := ac.DB.Where("tenant_id = ?", tenantFromContext(c)).
		Order("name ASC").Find(&users).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of users", users)
}

// UpdateUserStatus -> aktif/nonaktifkan staff (admin only)
func (ac *AdminController) UpdateUserStatus(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	type ReqBody struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("is_active must be boolean"))
		return
	}

	var user models.User
	if err := ac.DB.Where("id = ? AND tenant_id = ?", userID, tenantFromContext(c)).
		First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, utils.ErrNotFound)
		return
	}

	if err := ac.DB.Model(&user).Update("is_active", *body.IsActive).Error; err != nil {
		respondDomainError(c, err)
		return
	}
	user.IsActive = *body.IsActive

	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}
