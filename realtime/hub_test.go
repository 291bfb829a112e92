package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/qrmenu-app/utils"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestConn membuka pasangan koneksi lewat server httptest; sisi
// server langsung di-Join ke group yang diminta
func dialTestConn(t *testing.T, hub *Hub, group string) *websocket.Conn {
	joined := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Join(conn, group)
		close(joined)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	<-joined
	return client
}

func TestGroupNames(t *testing.T) {
	assert.Equal(t, "table:1:2:3", TableGroup(1, 2, 3))
	assert.Equal(t, "kitchen:2:HOT", KitchenGroup(2, "HOT"))
	assert.Equal(t, "restaurant:2", RestaurantGroup(2))
	assert.Equal(t, "waiter:7", WaiterGroup(7))
}

func TestJoinLeaveBookkeeping(t *testing.T) {
	hub := NewHub()
	conn := &websocket.Conn{}

	hub.Join(conn, "restaurant:1")
	hub.Join(conn, "kitchen:1:HOT")
	assert.Equal(t, 1, hub.GroupSize("restaurant:1"))
	assert.Equal(t, 1, hub.GroupSize("kitchen:1:HOT"))

	// Join ulang tidak menggandakan membership
	hub.Join(conn, "restaurant:1")
	assert.Equal(t, 1, hub.GroupSize("restaurant:1"))

	hub.Leave(conn, "restaurant:1")
	assert.Equal(t, 0, hub.GroupSize("restaurant:1"))
	assert.Equal(t, 1, hub.GroupSize("kitchen:1:HOT"))
}

func TestPublishToEmptyGroupIsNoop(t *testing.T) {
	utils.InitLogger()
	hub := NewHub()

	// Tidak ada subscriber: event hilang, tidak ada backlog, tidak panic
	hub.Publish("restaurant:99", EventOrderCreated, map[string]interface{}{"order_id": 1})
	assert.Equal(t, 0, hub.GroupSize("restaurant:99"))
}

func TestPublishDeliversToGroupMembers(t *testing.T) {
	utils.InitLogger()
	hub := NewHub()

	kitchen := dialTestConn(t, hub, "kitchen:1:HOT")
	other := dialTestConn(t, hub, "restaurant:2")

	hub.Publish("kitchen:1:HOT", EventOrderCreated, map[string]interface{}{
		"order_id": float64(10),
	})

	kitchen.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := kitchen.ReadMessage()
	assert.NoError(t, err)

	var msg Message
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventOrderCreated, msg.Event)
	data, ok := msg.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(10), data["order_id"])

	// Group lain tidak menerima apa-apa
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestDisconnectRemovesAllMemberships(t *testing.T) {
	utils.InitLogger()
	hub := NewHub()

	client := dialTestConn(t, hub, "restaurant:1")
	_ = client

	// Ambil koneksi sisi server dari bookkeeping hub
	hub.mu.Lock()
	var serverConn *websocket.Conn
	for conn := range hub.conns {
		serverConn = conn
	}
	hub.mu.Unlock()
	assert.NotNil(t, serverConn)

	hub.Join(serverConn, "waiter:5")
	assert.Equal(t, 1, hub.GroupSize("waiter:5"))

	hub.Disconnect(serverConn)
	assert.Equal(t, 0, hub.GroupSize("restaurant:1"))
	assert.Equal(t, 0, hub.GroupSize("waiter:5"))

	// Publish setelah disconnect tidak boleh menyentuh koneksi mati
	hub.Publish("restaurant:1", EventOrderUpdated, nil)
}
