package models

import "time"

const (
	CallWaiter  = "CALL_WAITER"
	RequestBill = "REQUEST_BILL"
)

const (
	CallPending      = "PENDING"
	CallAcknowledged = "ACKNOWLEDGED"
	CallCompleted    = "COMPLETED"
	CallCancelled    = "CANCELLED"
)

var waiterCallTypes = map[string]bool{
	CallWaiter:  true,
	RequestBill: true,
}

var waiterCallStatuses = map[string]bool{
	CallPending:      true,
	CallAcknowledged: true,
	CallCompleted:    true,
	CallCancelled:    true,
}

// IsValidCallType -> cek tipe panggilan dikenal atau tidak
func IsValidCallType(t string) bool {
	return waiterCallTypes[t]
}

// IsValidCallStatus -> cek status panggilan dikenal atau tidak
func IsValidCallStatus(status string) bool {
	return waiterCallStatuses[status]
}

// WaiterCall -> panggilan customer ke waiter dari satu meja.
// Invariant: maksimal satu panggilan PENDING per (meja, tipe).
type WaiterCall struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	TenantID       uint       `gorm:"not null;index" json:"tenant_id"`
	RestaurantID   uint       `gorm:"not null;index" json:"restaurant_id"`
	TableID        uint       `gorm:"not null;index" json:"table_id"`
	Table          Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"table"`
	Type           string     `gorm:"type:varchar(20);not null" json:"type"`
	Status         string     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Note           string     `gorm:"type:text" json:"note"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}
