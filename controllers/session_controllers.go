package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type SessionController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{
		DB:       db,
		Sessions: services.NewSessionService(db),
	}
}

// OpenSession -> buka sesi meja baru dari scan QR
func (sc *SessionController) OpenSession(c *gin.Context) {
	type ReqBody struct {
		TenantID     uint `json:"tenant_id" binding:"required"`
		RestaurantID uint `json:"restaurant_id" binding:"required"`
		TableID      uint `json:"table_id" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("missing required parameters"))
		return
	}

	handle, err := sc.Sessions.Open(body.TenantID, body.RestaurantID, body.TableID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session opened", gin.H{
		"session_id": handle.Session.ID,
		"token":      handle.Token,
		"table": gin.H{
			"id":   handle.Table.ID,
			"name": handle.Table.Name,
			"code": handle.Table.Code,
		},
		"restaurant": gin.H{
			"id":   handle.Restaurant.ID,
			"name": handle.Restaurant.Name,
		},
	})
}

// CloseSession -> tutup sesi; aman dipanggil berulang
func (sc *SessionController) CloseSession(c *gin.Context) {
	type ReqBody struct {
		SessionID uint `json:"session_id" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("session id required"))
		return
	}

	if err := sc.Sessions.Close(body.SessionID); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session closed", nil)
}
