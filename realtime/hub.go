package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// Event types
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderItemUpdated   = "orderitem.updated"
	EventWaiterCallCreated  = "waiter.call.created"
	EventWaiterCallAssigned = "waiter.call.assigned"
	EventWaiterCallUpdated  = "waiter.call.updated"
	EventWaiterCallDeleted  = "waiter.call.deleted"
	EventWaiterCallDone     = "waiter.call.completed"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Nama group subscriber. Membership hidup sebatas umur koneksi,
// tidak pernah dipersist.
func TableGroup(tenantID, restaurantID, tableID uint) string {
	return fmt.Sprintf("table:%d:%d:%d", tenantID, restaurantID, tableID)
}

func KitchenGroup(restaurantID uint, station string) string {
	return fmt.Sprintf("kitchen:%d:%s", restaurantID, station)
}

func RestaurantGroup(restaurantID uint) string {
	return fmt.Sprintf("restaurant:%d", restaurantID)
}

func WaiterGroup(userID uint) string {
	return fmt.Sprintf("waiter:%d", userID)
}

// Hub merutekan event domain ke group koneksi yang subscribe.
// Delivery best-effort at-most-once: tidak ada group yang join saat
// event terbit berarti event hilang untuk group itu (client resync
// lewat endpoint pull biasa).
type Hub struct {
	mu     sync.Mutex
	groups map[string]map[*websocket.Conn]struct{}
	conns  map[*websocket.Conn]map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[*websocket.Conn]struct{}),
		conns:  make(map[*websocket.Conn]map[string]struct{}),
	}
}

// Join -> masukkan koneksi ke sebuah group
func (h *Hub) Join(conn *websocket.Conn, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.groups[group] == nil {
		h.groups[group] = make(map[*websocket.Conn]struct{})
	}
	h.groups[group][conn] = struct{}{}

	if h.conns[conn] == nil {
		h.conns[conn] = make(map[string]struct{})
	}
	h.conns[conn][group] = struct{}{}
}

// Leave -> keluarkan koneksi dari satu group
func (h *Hub) Leave(conn *websocket.Conn, group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(conn, group)
}

// Disconnect -> bersihkan semua membership dan tutup koneksi
func (h *Hub) Disconnect(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(conn)
	conn.Close()
}

// GroupSize -> jumlah koneksi yang sedang join di group
func (h *Hub) GroupSize(group string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.groups[group])
}

// Publish mengirim satu event ke semua koneksi di group. Koneksi yang
// gagal ditulis dianggap mati dan dilepas; tidak ada retry/backlog.
func (h *Hub) Publish(group, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.groups[group]
	if len(members) == 0 {
		return
	}

	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event %s: %v", event, err)
		return
	}

	for conn := range members {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("Error sending %s to group %s: %v", event, group, err)
			h.dropLocked(conn)
			conn.Close()
		}
	}
}

// remove -> lepas satu membership (caller pegang lock)
func (h *Hub) remove(conn *websocket.Conn, group string) {
	if members, ok := h.groups[group]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
	if groups, ok := h.conns[conn]; ok {
		delete(groups, group)
		if len(groups) == 0 {
			delete(h.conns, conn)
		}
	}
}

// dropLocked -> lepas koneksi dari semua group (caller pegang lock)
func (h *Hub) dropLocked(conn *websocket.Conn) {
	for group := range h.conns[conn] {
		if members, ok := h.groups[group]; ok {
			delete(members, conn)
			if len(members) == 0 {
				delete(h.groups, group)
			}
		}
	}
	delete(h.conns, conn)
}
