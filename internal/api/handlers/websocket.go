package handlers

import (
	"log"
	"net/http"

	"github.com/dom/league-skinset-finder/internal/roster"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/websocket"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type WebSocketHandler struct {
	hub            *websocket.Hub
	shareService   *service.ShareService
	resolveService *service.ResolveService
}

func NewWebSocketHandler(hub *websocket.Hub, shareService *service.ShareService, resolveService *service.ResolveService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		shareService:   shareService,
		resolveService: resolveService,
	}
}

// Handle upgrades the connection and starts a live session. A share query
// parameter seeds the session with a shared roster.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var initial *roster.Roster
	if token := r.URL.Query().Get("share"); token != "" {
		spec, err := h.shareService.Parse(token)
		if err != nil {
			writeError(w, "websocket.Handle", err)
			return
		}
		initial, err = h.resolveService.BuildRoster(spec)
		if err != nil {
			writeError(w, "websocket.Handle", err)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.Register(client, initial)

	go client.WritePump()
	go client.ReadPump()
}
