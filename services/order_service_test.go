package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/realtime"
	"github.com/yeremiapane/qrmenu-app/utils"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:ordersvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Tenant{}, &models.Restaurant{}, &models.Table{},
		&models.MenuCategory{}, &models.MenuItem{},
		&models.Order{}, &models.OrderItem{},
	)
	if err != nil {
		t.Fatal(err)
	}
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM menu_items")
	db.Exec("DELETE FROM menu_categories")
	db.Exec("DELETE FROM tables")
	db.Exec("DELETE FROM restaurants")
	db.Exec("DELETE FROM tenants")
	db.Exec("DELETE FROM sqlite_sequence")

	tenant := models.Tenant{Name: "Demo Group"}
	db.Create(&tenant)
	restaurant := models.Restaurant{TenantID: tenant.ID, Name: "Demo Restaurant", Currency: "TRY"}
	db.Create(&restaurant)
	table := models.Table{TenantID: tenant.ID, RestaurantID: restaurant.ID, Code: "T01", Name: "Table 1", IsActive: true}
	db.Create(&table)
	category := models.MenuCategory{TenantID: tenant.ID, RestaurantID: restaurant.ID, Name: "Mains", IsActive: true}
	db.Create(&category)

	// Dua item: 45.00 dan 65.00, PPN 18%
	db.Create(&models.MenuItem{
		TenantID: tenant.ID, RestaurantID: restaurant.ID, CategoryID: category.ID,
		Name: "Grilled Chicken", Price: decimal.RequireFromString("45.00"),
		VatRate: decimal.RequireFromString("18.00"), IsActive: true,
	})
	db.Create(&models.MenuItem{
		TenantID: tenant.ID, RestaurantID: restaurant.ID, CategoryID: category.ID,
		Name: "Lamb Shish", Price: decimal.RequireFromString("65.00"),
		VatRate: decimal.RequireFromString("18.00"), IsActive: true,
	})
	return db
}

func orderTestScope() *SessionContext {
	return &SessionContext{SessionID: 1, TenantID: 1, RestaurantID: 1, TableID: 1}
}

func TestCreateOrderTotals(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	// 45.00 x1 + 65.00 x2, PPN 18% -> 175.00 / 31.50 / 206.50
	order, err := svc.Create(orderTestScope(), []CartLine{
		{MenuItemID: 1, Qty: 1},
		{MenuItemID: 2, Qty: 2, Notes: "no onions"},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "175.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "31.50", order.VatTotal.StringFixed(2))
	assert.Equal(t, "206.50", order.GrandTotal.StringFixed(2))
	assert.True(t, order.GrandTotal.Equal(order.Subtotal.Add(order.VatTotal)))

	assert.Len(t, order.OrderItems, 2)
	for _, item := range order.OrderItems {
		assert.Equal(t, models.ItemPending, item.Status)
	}
	assert.Equal(t, "no onions", order.OrderItems[1].Notes)
}

func TestCreateOrderSingleLine(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	db.Create(&models.MenuItem{
		TenantID: 1, RestaurantID: 1, CategoryID: 1,
		Name: "Ayran", Price: decimal.RequireFromString("30.00"),
		VatRate: decimal.RequireFromString("18.00"), IsActive: true,
	})

	var item models.MenuItem
	db.Where("name = ?", "Ayran").First(&item)

	order, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: item.ID, Qty: 2}})
	assert.NoError(t, err)
	assert.Equal(t, "60.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "10.80", order.VatTotal.StringFixed(2))
	assert.Equal(t, "70.80", order.GrandTotal.StringFixed(2))
}

func TestCreateOrderEmptyCart(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	_, err := svc.Create(orderTestScope(), nil)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Create(orderTestScope(), []CartLine{{MenuItemID: 1, Qty: 0}})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestCreateOrderRejectsUnknownItemsWholesale(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	// Satu item valid + satu tidak ada -> seluruh cart ditolak
	_, err := svc.Create(orderTestScope(), []CartLine{
		{MenuItemID: 1, Qty: 1},
		{MenuItemID: 999, Qty: 1},
	})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderRejectsInactiveItem(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	db.Model(&models.MenuItem{}).Where("id = ?", 2).Update("is_active", false)

	_, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: 2, Qty: 1}})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestOrderItemPriceIsSnapshotted(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	order, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: 1, Qty: 1}})
	assert.NoError(t, err)

	// Harga menu naik setelah order dibuat
	db.Model(&models.MenuItem{}).Where("id = ?", 1).Update("price", "99.00")

	var item models.OrderItem
	db.Where("order_id = ?", order.ID).First(&item)
	assert.Equal(t, "45.00", item.UnitPrice.StringFixed(2))
	assert.Equal(t, "18.00", item.VatRate.StringFixed(2))

	var stored models.Order
	db.First(&stored, order.ID)
	assert.Equal(t, "53.10", stored.GrandTotal.StringFixed(2))
}

func TestUpdateOrderStatus(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	order, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: 1, Qty: 1}})
	assert.NoError(t, err)

	updated, err := svc.UpdateStatus(1, order.ID, models.OrderClosed)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderClosed, updated.Status)

	var stored models.Order
	db.First(&stored, order.ID)
	assert.NotNil(t, stored.ClosedAt)

	// Status selain CLOSED menghapus closed_at lagi. Query ke struct
	// baru: gorm tidak menolkan pointer lama saat kolomnya NULL.
	_, err = svc.UpdateStatus(1, order.ID, models.OrderInProgress)
	assert.NoError(t, err)

	var reloaded models.Order
	db.First(&reloaded, order.ID)
	assert.Nil(t, reloaded.ClosedAt)

	var nullCount int64
	db.Model(&models.Order{}).Where("id = ? AND closed_at IS NULL", order.ID).Count(&nullCount)
	assert.Equal(t, int64(1), nullCount)
}

func TestUpdateOrderStatusInvalidValue(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	order, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: 1, Qty: 1}})
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(1, order.ID, "DELIVERED")
	assert.ErrorIs(t, err, utils.ErrInvalidState)
}

func TestUpdateOrderStatusWrongTenant(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	order, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: 1, Qty: 1}})
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(99, order.ID, models.OrderReady)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUpdateOrderItemStatus(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	order, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: 1, Qty: 1}})
	assert.NoError(t, err)

	var item models.OrderItem
	db.Where("order_id = ?", order.ID).First(&item)

	updated, err := svc.UpdateItemStatus(1, item.ID, models.ItemFired)
	assert.NoError(t, err)
	assert.Equal(t, models.ItemFired, updated.Status)

	_, err = svc.UpdateItemStatus(1, item.ID, "BURNT")
	assert.ErrorIs(t, err, utils.ErrInvalidState)

	// Status order induk tidak ikut berubah
	var stored models.Order
	db.First(&stored, order.ID)
	assert.Equal(t, models.OrderPending, stored.Status)
}

func TestListByTableExcludesClosed(t *testing.T) {
	utils.InitLogger()
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, realtime.NewHub())

	first, err := svc.Create(orderTestScope(), []CartLine{{MenuItemID: 1, Qty: 1}})
	assert.NoError(t, err)
	_, err = svc.Create(orderTestScope(), []CartLine{{MenuItemID: 2, Qty: 1}})
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(1, first.ID, models.OrderClosed)
	assert.NoError(t, err)

	orders, err := svc.ListByTable(orderTestScope())
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.NotEqual(t, first.ID, orders[0].ID)
}
