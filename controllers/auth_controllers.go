package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login -> staff login, balikan token panjang
func (ac *AuthController) Login(c *gin.Context) {
	type ReqBody struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email and password required"))
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ? AND is_active = ?", body.Email, true).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if !utils.VerifyPassword(user.Hash, body.Password) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateStaffToken(user.ID, user.TenantID, user.Role)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var tenant models.Tenant
	ac.DB.First(&tenant, user.TenantID)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
			"tenant": gin.H{
				"id":   tenant.ID,
				"name": tenant.Name,
			},
		},
	})
}

// Register -> admin membuat akun staff baru di tenant-nya sendiri
func (ac *AuthController) Register(c *gin.Context) {
	type ReqBody struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("all fields required"))
		return
	}

	if !models.IsValidRole(body.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid role"))
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email already registered"))
		return
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	user := models.User{
		TenantID: tenantFromContext(c),
		Name:     body.Name,
		Email:    body.Email,
		Hash:     hash,
		Role:     body.Role,
		IsActive: true,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "User registered", user)
}

// Me -> info user dari token
func (ac *AuthController) Me(c *gin.Context) {
	var user models.User
	if err := ac.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
		return
	}

	var tenant models.Tenant
	ac.DB.First(&tenant, user.TenantID)

	utils.RespondJSON(c, http.StatusOK, "Current user", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"tenant": gin.H{
			"id":   tenant.ID,
			"name": tenant.Name,
		},
	})
}

// ChangePassword -> ganti password sendiri, wajib tahu password lama
func (ac *AuthController) ChangePassword(c *gin.Context) {
	type ReqBody struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("current and new password required"))
		return
	}

	var user models.User
	if err := ac.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
		return
	}

	if !utils.VerifyPassword(user.Hash, body.CurrentPassword) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid current password"))
		return
	}

	hash, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if err := ac.DB.Model(&user).Update("hash", hash).Error; err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password changed", nil)
}
