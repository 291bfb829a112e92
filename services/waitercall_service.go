package services

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/realtime"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// PendingCallError -> sudah ada panggilan PENDING dengan tipe sama di
// meja itu; ID panggilan lama ikut dikembalikan ke caller
type PendingCallError struct {
	CallID uint
}

func (e *PendingCallError) Error() string {
	return fmt.Sprintf("already have a pending call (call_id=%d)", e.CallID)
}

func (e *PendingCallError) Unwrap() error {
	return utils.ErrConflict
}

// WaiterCallService -> dispatcher panggilan waiter: dedup per (meja,
// tipe), penunjukan waiter, lifecycle acknowledge/complete
type WaiterCallService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewWaiterCallService(db *gorm.DB, hub *realtime.Hub) *WaiterCallService {
	return &WaiterCallService{db: db, hub: hub}
}

// CallResult -> panggilan yang dibuat plus waiter yang ditunjuk (nil
// kalau tenant belum punya waiter aktif)
type CallResult struct {
	Call           models.WaiterCall `json:"call"`
	AssignedWaiter *models.User      `json:"assigned_waiter,omitempty"`
}

// Create membuat panggilan waiter baru. Dedup guard: satu PENDING per
// (meja, tipe); bukan antrian.
func (s *WaiterCallService) Create(tenantID, restaurantID, tableID uint, callType, note string) (*CallResult, error) {
	if !models.IsValidCallType(callType) {
		return nil, utils.ErrInvalidInput
	}

	var table models.Table
	err := s.db.Where("id = ? AND tenant_id = ? AND restaurant_id = ?",
		tableID, tenantID, restaurantID).First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	var existing models.WaiterCall
	err = s.db.Where("table_id = ? AND type = ? AND status = ?",
		tableID, callType, models.CallPending).First(&existing).Error
	if err == nil {
		return nil, &PendingCallError{CallID: existing.ID}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	call := models.WaiterCall{
		TenantID:     tenantID,
		RestaurantID: restaurantID,
		TableID:      tableID,
		Type:         callType,
		Status:       models.CallPending,
		Note:         note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.Create(&call).Error; err != nil {
		return nil, err
	}
	call.Table = table

	assigned := s.pickWaiter(tenantID, call.ID)

	createdPayload := map[string]interface{}{
		"call_id":    call.ID,
		"table_code": table.Code,
		"table_name": table.Name,
		"type":       call.Type,
		"note":       call.Note,
		"created_at": call.CreatedAt,
	}
	if assigned != nil {
		createdPayload["assigned_waiter_id"] = assigned.ID
		createdPayload["assigned_waiter_name"] = assigned.Name
	}

	// Broadcast ke semua staff restoran
	s.hub.Publish(realtime.RestaurantGroup(restaurantID), realtime.EventWaiterCallCreated, createdPayload)

	// Notifikasi prioritas ke waiter yang ditunjuk
	if assigned != nil {
		s.hub.Publish(realtime.WaiterGroup(assigned.ID), realtime.EventWaiterCallAssigned, map[string]interface{}{
			"call_id":    call.ID,
			"table_code": table.Code,
			"table_name": table.Name,
			"type":       call.Type,
			"note":       call.Note,
			"priority":   true,
		})
	}

	return &CallResult{Call: call, AssignedWaiter: assigned}, nil
}

// pickWaiter memilih satu waiter aktif dengan hash ID panggilan modulo
// jumlah waiter. Ini pseudo-round-robin stateless: tidak ada pointer
// last-assigned yang dipersist, jadi pemerataan hanya statistik, bukan
// jaminan per shift.
func (s *WaiterCallService) pickWaiter(tenantID, callID uint) *models.User {
	var waiters []models.User
	err := s.db.Where("tenant_id = ? AND role = ? AND is_active = ?",
		tenantID, models.RoleWaiter, true).
		Order("id ASC").Find(&waiters).Error
	if err != nil || len(waiters) == 0 {
		return nil
	}

	h := fnv.New32a()
	h.Write([]byte(strconv.FormatUint(uint64(callID), 10)))
	idx := int(h.Sum32()) % len(waiters)
	if idx < 0 {
		idx = -idx
	}
	return &waiters[idx]
}

// UpdateStatus -> PENDING -> ACKNOWLEDGED -> COMPLETED, atau CANCELLED;
// stempel waktu mengikuti transisinya
func (s *WaiterCallService) UpdateStatus(tenantID, callID uint, status string) (*models.WaiterCall, error) {
	if !models.IsValidCallStatus(status) {
		return nil, utils.ErrInvalidState
	}

	var call models.WaiterCall
	err := s.db.Preload("Table").
		Where("id = ? AND tenant_id = ?", callID, tenantID).First(&call).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	switch status {
	case models.CallAcknowledged:
		updates["acknowledged_at"] = now
	case models.CallCompleted:
		updates["completed_at"] = now
	}

	if err := s.db.Model(&call).Updates(updates).Error; err != nil {
		return nil, err
	}
	call.Status = status

	s.hub.Publish(realtime.RestaurantGroup(call.RestaurantID), realtime.EventWaiterCallUpdated, map[string]interface{}{
		"call_id":    call.ID,
		"status":     call.Status,
		"table_code": call.Table.Code,
	})

	// Kabari meja kalau panggilannya selesai
	if status == models.CallCompleted {
		s.hub.Publish(realtime.TableGroup(call.TenantID, call.RestaurantID, call.TableID), realtime.EventWaiterCallDone, map[string]interface{}{
			"call_id": call.ID,
			"type":    call.Type,
		})
	}

	return &call, nil
}

// Delete -> hard delete oleh staff, di luar state machine status
func (s *WaiterCallService) Delete(tenantID, callID uint) error {
	var call models.WaiterCall
	err := s.db.Preload("Table").
		Where("id = ? AND tenant_id = ?", callID, tenantID).First(&call).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		return err
	}

	if err := s.db.Delete(&models.WaiterCall{}, call.ID).Error; err != nil {
		return err
	}

	s.hub.Publish(realtime.RestaurantGroup(call.RestaurantID), realtime.EventWaiterCallDeleted, map[string]interface{}{
		"call_id":    call.ID,
		"table_code": call.Table.Code,
	})
	return nil
}

// List -> panggilan satu restoran untuk staff; default hanya yang masih
// aktif (PENDING/ACKNOWLEDGED), paling lama dulu
func (s *WaiterCallService) List(tenantID, restaurantID uint, statuses []string) ([]models.WaiterCall, error) {
	if len(statuses) == 0 {
		statuses = []string{models.CallPending, models.CallAcknowledged}
	}

	var calls []models.WaiterCall
	err := s.db.Preload("Table").
		Where("restaurant_id = ? AND tenant_id = ? AND status IN ?",
			restaurantID, tenantID, statuses).
		Order("created_at ASC").
		Find(&calls).Error
	return calls, err
}
