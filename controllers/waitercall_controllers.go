package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/realtime"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type WaiterCallController struct {
	DB    *gorm.DB
	Calls *services.WaiterCallService
}

func NewWaiterCallController(db *gorm.DB, hub *realtime.Hub) *WaiterCallController {
	return &WaiterCallController{
		DB:    db,
		Calls: services.NewWaiterCallService(db, hub),
	}
}

// CreateCall -> customer memanggil waiter / minta bill (tanpa auth)
func (wc *WaiterCallController) CreateCall(c *gin.Context) {
	type ReqBody struct {
		TenantID     uint   `json:"tenant_id" binding:"required"`
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		TableID      uint   `json:"table_id" binding:"required"`
		Type         string `json:"type" binding:"required"`
		Note         string `json:"note"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("missing required fields"))
		return
	}

	result, err := wc.Calls.Create(body.TenantID, body.RestaurantID, body.TableID, body.Type, body.Note)
	if err != nil {
		// Conflict membawa ID panggilan lama supaya client bisa menampilkannya
		var pending *services.PendingCallError
		if errors.As(err, &pending) {
			utils.RespondJSON(c, http.StatusConflict, "Already have a pending call", gin.H{
				"call_id": pending.CallID,
			})
			return
		}
		respondDomainError(c, err)
		return
	}

	data := gin.H{
		"call_id":    result.Call.ID,
		"type":       result.Call.Type,
		"status":     result.Call.Status,
		"table_code": result.Call.Table.Code,
		"table_name": result.Call.Table.Name,
	}
	if result.AssignedWaiter != nil {
		data["assigned_waiter_id"] = result.AssignedWaiter.ID
	}

	utils.RespondJSON(c, http.StatusCreated, "Waiter call created", data)
}

// GetRestaurantCalls -> panggilan satu restoran (staff)
func (wc *WaiterCallController) GetRestaurantCalls(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, strings.TrimSpace(s))
		}
	}

	calls, err := wc.Calls.List(tenantFromContext(c), uint(restaurantID), statuses)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Waiter calls", calls)
}

// UpdateCallStatus -> staff acknowledge/complete/cancel panggilan
func (wc *WaiterCallController) UpdateCallStatus(c *gin.Context) {
	callID, err := strconv.ParseUint(c.Param("call_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid call id"))
		return
	}

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status required"))
		return
	}

	call, err := wc.Calls.UpdateStatus(tenantFromContext(c), uint(callID), body.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Waiter call updated", gin.H{
		"call_id":    call.ID,
		"status":     call.Status,
		"updated_at": call.UpdatedAt,
	})
}

// DeleteCall -> staff membatalkan panggilan lewat hard delete
func (wc *WaiterCallController) DeleteCall(c *gin.Context) {
	callID, err := strconv.ParseUint(c.Param("call_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid call id"))
		return
	}

	if err := wc.Calls.Delete(tenantFromContext(c), uint(callID)); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Waiter call deleted", gin.H{"call_id": callID})
}
