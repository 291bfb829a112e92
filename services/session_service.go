package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// SessionService mengelola sesi meja hasil scan QR
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// SessionHandle -> hasil pembukaan sesi: row sesi + bearer token 30 menit
type SessionHandle struct {
	Session    models.TableSession `json:"session"`
	Token      string              `json:"token"`
	Table      models.Table        `json:"table"`
	Restaurant models.Restaurant   `json:"restaurant"`
}

// SessionContext -> scope hasil validasi token, dipakai semua operasi
// customer di bawahnya
type SessionContext struct {
	SessionID    uint `json:"session_id"`
	TenantID     uint `json:"tenant_id"`
	RestaurantID uint `json:"restaurant_id"`
	TableID      uint `json:"table_id"`
}

// Open membuka sesi baru untuk satu meja. Sesi aktif lama ditutup dan
// sesi baru dibuat dalam satu transaksi, supaya dua open bersamaan tidak
// pernah meninggalkan dua sesi aktif.
func (s *SessionService) Open(tenantID, restaurantID, tableID uint) (*SessionHandle, error) {
	var table models.Table
	err := s.db.Where("id = ? AND tenant_id = ? AND restaurant_id = ? AND is_active = ?",
		tableID, tenantID, restaurantID, true).First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	var restaurant models.Restaurant
	if err := s.db.Where("id = ? AND tenant_id = ?", restaurantID, tenantID).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	session := models.TableSession{
		TenantID:     tenantID,
		RestaurantID: restaurantID,
		TableID:      tableID,
		SessionToken: uuid.NewString(),
		Active:       true,
		OpenedAt:     now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Tutup semua sesi aktif lama untuk meja ini
		if err := tx.Model(&models.TableSession{}).
			Where("table_id = ? AND active = ?", tableID, true).
			Updates(map[string]interface{}{"active": false, "closed_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionToken(tenantID, restaurantID, tableID, session.SessionToken)
	if err != nil {
		return nil, err
	}

	return &SessionHandle{
		Session:    session,
		Token:      token,
		Table:      table,
		Restaurant: restaurant,
	}, nil
}

// Validate memverifikasi bearer token sesi dan memastikan row sesi yang
// dirujuk masih aktif (sesi lama yang tergeser open berikutnya ditolak).
func (s *SessionService) Validate(token string) (*SessionContext, error) {
	claims, err := utils.ParseSessionToken(token)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	var session models.TableSession
	err = s.db.Where("session_token = ? AND active = ?", claims.SessionToken, true).
		First(&session).Error
	if err != nil {
		return nil, utils.ErrUnauthorized
	}

	return &SessionContext{
		SessionID:    session.ID,
		TenantID:     session.TenantID,
		RestaurantID: session.RestaurantID,
		TableID:      session.TableID,
	}, nil
}

// Close menutup sesi; idempotent (sesi yang sudah tertutup tidak berubah)
func (s *SessionService) Close(sessionID uint) error {
	now := time.Now()
	return s.db.Model(&models.TableSession{}).
		Where("id = ? AND active = ?", sessionID, true).
		Updates(map[string]interface{}{"active": false, "closed_at": now}).Error
}
