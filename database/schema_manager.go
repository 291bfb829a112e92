package database

import (
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

// Index tambahan di luar yang dibuat AutoMigrate. Semua query hot-path
// difilter per tenant/restoran, jadi index komposit di sini.
var extraIndexes = []struct {
	Model interface{}
	Name  string
	SQL   string
}{
	{
		Model: &models.TableSession{},
		Name:  "idx_sessions_table_active",
		SQL:   "CREATE INDEX idx_sessions_table_active ON table_sessions (table_id, active)",
	},
	{
		Model: &models.Order{},
		Name:  "idx_orders_restaurant_status",
		SQL:   "CREATE INDEX idx_orders_restaurant_status ON orders (restaurant_id, status)",
	},
	{
		Model: &models.WaiterCall{},
		Name:  "idx_calls_table_type_status",
		SQL:   "CREATE INDEX idx_calls_table_type_status ON waiter_calls (table_id, type, status)",
	},
	{
		Model: &models.MenuItem{},
		Name:  "idx_menu_items_restaurant_active",
		SQL:   "CREATE INDEX idx_menu_items_restaurant_active ON menu_items (restaurant_id, is_active)",
	},
}

// EnsureIndexes memasang index komposit; yang sudah ada dilewati
func EnsureIndexes(db *gorm.DB) error {
	for _, idx := range extraIndexes {
		if db.Migrator().HasIndex(idx.Model, idx.Name) {
			continue
		}
		if err := db.Exec(idx.SQL).Error; err != nil {
			utils.ErrorLogger.Printf("Error creating index %s: %v", idx.Name, err)
			continue
		}
		utils.InfoLogger.Printf("Created index %s", idx.Name)
	}
	return nil
}
