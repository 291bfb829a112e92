package models

import "time"

// TableSession mengikat satu meja ke satu sesi browsing customer.
// Invariant: maksimal satu sesi aktif per meja pada satu waktu.
type TableSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TenantID     uint       `gorm:"not null;index" json:"tenant_id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	TableID      uint       `gorm:"not null;index" json:"table_id"`
	Table        Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SessionToken string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_token"`
	Active       bool       `gorm:"not null;index" json:"active"`
	OpenedAt     time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}
