package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/realtime"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// DefaultStation -> order baru dirutekan ke display station ini.
// TODO: routing per-item ke station dari kategori menu.
const DefaultStation = "HOT"

var oneHundred = decimal.NewFromInt(100)

// OrderService -> order engine: validasi cart, hitung total, state
// machine order/item, emit event realtime
type OrderService struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewOrderService(db *gorm.DB, hub *realtime.Hub) *OrderService {
	return &OrderService{db: db, hub: hub}
}

// CartLine -> satu baris cart dari customer
type CartLine struct {
	MenuItemID uint   `json:"menu_item_id"`
	Qty        int    `json:"qty"`
	Notes      string `json:"notes"`
}

// Create membuat order dari cart. Harga dan tarif PPN di-snapshot dari
// menu saat ini; perhitungan seluruhnya decimal:
//
//	lineSubtotal = unitPrice * qty
//	lineVat      = lineSubtotal * vatRate / 100
//	grandTotal   = subtotal + vatTotal
func (s *OrderService) Create(scope *SessionContext, lines []CartLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, utils.ErrInvalidInput
	}
	for _, line := range lines {
		if line.Qty < 1 {
			return nil, utils.ErrInvalidInput
		}
	}

	// Kumpulkan ID unik lalu bandingkan dengan hasil fetch: satu saja
	// yang hilang/inaktif/di luar restoran -> seluruh cart ditolak
	idSet := make(map[uint]bool)
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		if !idSet[line.MenuItemID] {
			idSet[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	var menuItems []models.MenuItem
	err := s.db.Where("id IN ? AND tenant_id = ? AND restaurant_id = ? AND is_active = ?",
		ids, scope.TenantID, scope.RestaurantID, true).Find(&menuItems).Error
	if err != nil {
		return nil, err
	}
	if len(menuItems) != len(ids) {
		return nil, utils.ErrNotFound
	}

	byID := make(map[uint]models.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	var table models.Table
	if err := s.db.Where("id = ? AND tenant_id = ?", scope.TableID, scope.TenantID).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	subtotal := decimal.Zero
	vatTotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))

	for _, line := range lines {
		menuItem := byID[line.MenuItemID]
		qty := decimal.NewFromInt(int64(line.Qty))

		lineSubtotal := menuItem.Price.Mul(qty)
		lineVat := lineSubtotal.Mul(menuItem.VatRate).Div(oneHundred)

		subtotal = subtotal.Add(lineSubtotal)
		vatTotal = vatTotal.Add(lineVat)

		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Qty:        line.Qty,
			UnitPrice:  menuItem.Price,
			VatRate:    menuItem.VatRate,
			Notes:      line.Notes,
			Status:     models.ItemPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	order := models.Order{
		TenantID:     scope.TenantID,
		RestaurantID: scope.RestaurantID,
		TableID:      scope.TableID,
		Status:       models.OrderPending,
		Subtotal:     subtotal,
		VatTotal:     vatTotal,
		GrandTotal:   subtotal.Add(vatTotal),
		CreatedAt:    now,
		UpdatedAt:    now,
		OrderItems:   items,
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}
	order.Table = table

	kitchenItems := make([]map[string]interface{}, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		mi := byID[item.MenuItemID]
		kitchenItems = append(kitchenItems, map[string]interface{}{
			"name":  mi.Name,
			"qty":   item.Qty,
			"notes": item.Notes,
		})
	}

	s.hub.Publish(realtime.RestaurantGroup(scope.RestaurantID), realtime.EventOrderCreated, map[string]interface{}{
		"order_id":    order.ID,
		"table_code":  table.Code,
		"table_name":  table.Name,
		"status":      order.Status,
		"grand_total": order.GrandTotal,
		"item_count":  len(order.OrderItems),
		"created_at":  order.CreatedAt,
	})
	s.hub.Publish(realtime.KitchenGroup(scope.RestaurantID, DefaultStation), realtime.EventOrderCreated, map[string]interface{}{
		"order_id":   order.ID,
		"table_code": table.Code,
		"items":      kitchenItems,
	})

	return &order, nil
}

// UpdateStatus mengganti status order. Semua status enumerated dianggap
// reachable dari status manapun; hanya nilai tak dikenal yang ditolak.
// Update terakhir menang (tidak ada version check).
func (s *OrderService) UpdateStatus(tenantID, orderID uint, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, utils.ErrInvalidState
	}

	var order models.Order
	err := s.db.Preload("Table").
		Where("id = ? AND tenant_id = ?", orderID, tenantID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	// CLOSED menyetempel closed_at, status lain menghapusnya
	if status == models.OrderClosed {
		updates["closed_at"] = time.Now()
	} else {
		updates["closed_at"] = nil
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}
	order.Status = status

	s.hub.Publish(realtime.RestaurantGroup(order.RestaurantID), realtime.EventOrderUpdated, map[string]interface{}{
		"order_id":   order.ID,
		"status":     order.Status,
		"table_code": order.Table.Code,
	})
	s.hub.Publish(realtime.TableGroup(order.TenantID, order.RestaurantID, order.TableID), realtime.EventOrderUpdated, map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	return &order, nil
}

// UpdateItemStatus -> state machine per-item, independen dari order induk
func (s *OrderService) UpdateItemStatus(tenantID, itemID uint, status string) (*models.OrderItem, error) {
	if !models.IsValidOrderItemStatus(status) {
		return nil, utils.ErrInvalidState
	}

	var item models.OrderItem
	err := s.db.Preload("Order").Preload("Order.Table").Preload("MenuItem").
		First(&item, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if item.Order.TenantID != tenantID {
		return nil, utils.ErrNotFound
	}

	if err := s.db.Model(&item).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return nil, err
	}
	item.Status = status

	s.hub.Publish(realtime.RestaurantGroup(item.Order.RestaurantID), realtime.EventOrderItemUpdated, map[string]interface{}{
		"order_id":   item.OrderID,
		"item_id":    item.ID,
		"item_name":  item.MenuItem.Name,
		"status":     item.Status,
		"table_code": item.Order.Table.Code,
	})

	return &item, nil
}

// ListByTable -> order aktif (belum CLOSED) milik satu meja, terbaru dulu.
// Endpoint pull untuk client yang reconnect dan perlu resync.
func (s *OrderService) ListByTable(scope *SessionContext) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems").Preload("OrderItems.MenuItem").
		Where("table_id = ? AND tenant_id = ? AND status <> ?",
			scope.TableID, scope.TenantID, models.OrderClosed).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// ListByRestaurant -> order satu restoran untuk staff, filter status opsional
func (s *OrderService) ListByRestaurant(tenantID, restaurantID uint, status string, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}

	query := s.db.Preload("OrderItems").Preload("OrderItems.MenuItem").Preload("Table").
		Where("restaurant_id = ? AND tenant_id = ?", restaurantID, tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}
