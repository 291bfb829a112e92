package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status order. Semua status enumerated bisa dicapai dari status lain
// (tidak ada guard transisi ketat), hanya nilai tak dikenal yang ditolak.
const (
	OrderPending    = "PENDING"
	OrderInProgress = "IN_PROGRESS"
	OrderReady      = "READY"
	OrderServed     = "SERVED"
	OrderClosed     = "CLOSED"
	OrderCancelled  = "CANCELLED"
)

var orderStatuses = map[string]bool{
	OrderPending:    true,
	OrderInProgress: true,
	OrderReady:      true,
	OrderServed:     true,
	OrderClosed:     true,
	OrderCancelled:  true,
}

// IsValidOrderStatus -> cek nilai status dikenal atau tidak
func IsValidOrderStatus(status string) bool {
	return orderStatuses[status]
}

type Order struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TenantID     uint   `gorm:"not null;index" json:"tenant_id"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`
	TableID      uint   `gorm:"not null;index" json:"table_id"`
	Table        Table  `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	Status       string `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	// Total di-snapshot saat order dibuat; perubahan harga menu
	// setelahnya tidak mempengaruhi order yang sudah ada.
	Subtotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	VatTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"vat_total"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00" json:"grand_total"`
	ClosedAt   *time.Time      `json:"closed_at,omitempty"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
	OrderItems []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
}
