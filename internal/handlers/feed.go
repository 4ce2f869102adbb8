package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bigwin-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedEvent is one message on the live feed: a bonus grant or a settled
// wager.
type FeedEvent struct {
	Type   string `json:"type"` // "bonus" or "wager"
	UserID string `json:"user_id"`
	Game   string `json:"game,omitempty"`
	Bet    int64  `json:"bet,omitempty"`
	Prize  int64  `json:"prize"`
	Win    bool   `json:"win"`
	TS     string `json:"ts"`
}

// FeedHandler pushes settled events to every connected websocket client. It
// satisfies services.Broadcaster; the engines publish into the hub and a
// single goroutine fans out, so slow clients never block settlement.
type FeedHandler struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	events     chan FeedEvent
}

func NewFeedHandler() *FeedHandler {
	h := &FeedHandler{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		events:     make(chan FeedEvent, 100),
	}

	go h.run()

	return h
}

func (h *FeedHandler) run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.unregister:
			if h.clients[conn] {
				delete(h.clients, conn)
				conn.Close()
			}
		case event := <-h.events:
			for conn := range h.clients {
				if err := conn.WriteJSON(event); err != nil {
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

func (h *FeedHandler) HandleFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	h.register <- conn

	defer func() {
		h.unregister <- conn
	}()

	// Read loop only detects disconnects; the feed is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *FeedHandler) BroadcastBonus(userID string, amount int64) {
	h.publish(FeedEvent{
		Type:   "bonus",
		UserID: userID,
		Prize:  amount,
		Win:    true,
		TS:     models.NowISO(),
	})
}

func (h *FeedHandler) BroadcastWager(userID, game string, bet, prize int64, win bool) {
	h.publish(FeedEvent{
		Type:   "wager",
		UserID: userID,
		Game:   game,
		Bet:    bet,
		Prize:  prize,
		Win:    win,
		TS:     models.NowISO(),
	})
}

func (h *FeedHandler) publish(event FeedEvent) {
	select {
	case h.events <- event:
	default:
		// Feed is best-effort; drop rather than stall a settlement.
	}
}
