package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status per-item berjalan independen dari status order induknya.
const (
	ItemPending    = "PENDING"
	ItemFired      = "FIRED"
	ItemInProgress = "IN_PROGRESS"
	ItemReady      = "READY"
	ItemServed     = "SERVED"
)

var orderItemStatuses = map[string]bool{
	ItemPending:    true,
	ItemFired:      true,
	ItemInProgress: true,
	ItemReady:      true,
	ItemServed:     true,
}

// IsValidOrderItemStatus -> cek nilai status item dikenal atau tidak
func IsValidOrderItemStatus(status string) bool {
	return orderItemStatuses[status]
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order      Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`
	Qty        int      `gorm:"not null" json:"qty"`
	// Harga dan tarif PPN saat order dibuat (price snapshot)
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	VatRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
	Notes     string          `gorm:"type:text" json:"notes"`
	Status    string          `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}
