package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	TenantID     uint         `gorm:"not null;index" json:"tenant_id"`
	RestaurantID uint         `gorm:"not null;index" json:"restaurant_id"`
	CategoryID   uint         `gorm:"not null;index" json:"category_id"`
	Category     MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	// Harga dan tarif PPN disimpan sebagai decimal, bukan float
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	VatRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18.00" json:"vat_rate"`
	SKU       string          `gorm:"type:varchar(50)" json:"sku"`
	// Tanpa default DB: gorm tidak mengirim zero value false kalau ada
	// default, jadi nilai selalu diset eksplisit dari kode
	IsActive  bool            `gorm:"not null" json:"is_active"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
