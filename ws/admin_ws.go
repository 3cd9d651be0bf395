package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AdminHub は管理画面向けのイベント配信。新着の予約・お問い合わせを
// 接続中の管理者ダッシュボード全員に流す
type AdminHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// Event は配信する1件。Typeは new_reservation | new_contact
type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

func NewAdminHub() *AdminHub {
	return &AdminHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// register/unregister/broadcast を一手に処理するループ
func (h *AdminHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish はコントローラ側から呼ぶ。接続が無ければ何も起きない
func (h *AdminHub) Publish(eventType string, data any) {
	h.broadcast <- Event{Type: eventType, Data: data, At: time.Now()}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/admin （WSAuthMiddleware("admin") の後ろ）
func (h *AdminHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn

	go h.drain(conn)
}

// クライアントからの受信は捨てるだけだが、読み続けないと切断を検知できない
func (h *AdminHub) drain(conn *websocket.Conn) {
	defer func() { h.unregister <- conn }()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
