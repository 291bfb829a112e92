package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/qrmenu-app/realtime"
	"github.com/yeremiapane/qrmenu-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS websocket sudah difilter di middleware
	},
}

type RealtimeController struct {
	Hub *realtime.Hub
}

func NewRealtimeController(hub *realtime.Hub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

type joinMessage struct {
	Event string `json:"event"`
	Data  struct {
		TenantID     uint   `json:"tenant_id"`
		RestaurantID uint   `json:"restaurant_id"`
		TableID      uint   `json:"table_id"`
		Station      string `json:"station"`
		Token        string `json:"token"`
	} `json:"data"`
}

// Handle -> endpoint WebSocket. Koneksi subscribe group lewat pesan
// join-*; membership hilang begitu koneksi putus.
func (rc *RealtimeController) Handle(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var msg joinMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Event {
		case "join-table":
			rc.Hub.Join(ws, realtime.TableGroup(msg.Data.TenantID, msg.Data.RestaurantID, msg.Data.TableID))
		case "join-kitchen":
			station := msg.Data.Station
			if station == "" {
				station = "HOT"
			}
			rc.Hub.Join(ws, realtime.KitchenGroup(msg.Data.RestaurantID, station))
		case "join-restaurant":
			rc.Hub.Join(ws, realtime.RestaurantGroup(msg.Data.RestaurantID))
		case "join-waiter":
			// Group personal; hanya boleh dengan token staff yang valid
			claims, err := utils.ParseStaffToken(msg.Data.Token)
			if err != nil {
				continue
			}
			rc.Hub.Join(ws, realtime.WaiterGroup(claims.UserID))
		}
	}

	rc.Hub.Disconnect(ws)
}
