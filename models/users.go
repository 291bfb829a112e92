package models

import "time"

const (
	RoleAdmin   = "ADMIN"
	RoleChef    = "CHEF"
	RoleWaiter  = "WAITER"
	RoleCashier = "CASHIER"
)

var userRoles = map[string]bool{
	RoleAdmin:   true,
	RoleChef:    true,
	RoleWaiter:  true,
	RoleCashier: true,
}

// IsValidRole -> cek role staff dikenal atau tidak
func IsValidRole(role string) bool {
	return userRoles[role]
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;index" json:"tenant_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Hash      string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
