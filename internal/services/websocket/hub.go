package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"cancerdetect/internal/logger"
)

type subscription struct {
	session string
	conn    *websocket.Conn
}

type message struct {
	session string
	payload []byte
}

// HubService pushes session events to the browser tabs of that session only.
type HubService struct {
	clients    map[string]map[*websocket.Conn]bool
	broadcast  chan message
	register   chan subscription
	unregister chan subscription
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logger.Logger
}

func NewHubService(logger *logger.Logger) *HubService {
	return &HubService{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan message, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *HubService) Run(ctx context.Context) error {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case sub := <-h.register:
			h.mutex.Lock()
			conns, ok := h.clients[sub.session]
			if !ok {
				conns = make(map[*websocket.Conn]bool)
				h.clients[sub.session] = conns
			}
			conns[sub.conn] = true
			h.mutex.Unlock()
			h.logger.Info("Client connected for session %s. Total: %d", short(sub.session), h.ClientCount(sub.session))

		case sub := <-h.unregister:
			h.remove(sub.session, sub.conn)
			h.logger.Info("Client disconnected for session %s. Total: %d", short(sub.session), h.ClientCount(sub.session))

		case msg := <-h.broadcast:
			h.mutex.RLock()
			conns := make([]*websocket.Conn, 0, len(h.clients[msg.session]))
			for c := range h.clients[msg.session] {
				conns = append(conns, c)
			}
			h.mutex.RUnlock()

			for _, client := range conns {
				if err := client.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					h.logger.Error("Error sending message: %v", err)
					h.remove(msg.session, client)
				}
			}
		}
	}
}

// Register adds client to the audience of session. It returns false once the hub has stopped.
func (h *HubService) Register(session string, client *websocket.Conn) bool {
	select {
	case h.register <- subscription{session: session, conn: client}:
		return true
	case <-h.done:
		return false
	}
}

func (h *HubService) Unregister(session string, client *websocket.Conn) {
	select {
	case h.unregister <- subscription{session: session, conn: client}:
	case <-h.done:
	}
}

// Publish queues payload for the clients of session. It never blocks; when the queue is full the event is dropped.
func (h *HubService) Publish(session string, payload []byte) {
	select {
	case h.broadcast <- message{session: session, payload: payload}:
	default:
		h.logger.Warning("Event queue full, dropping event for session %s", short(session))
	}
}

func (h *HubService) ClientCount(session string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[session])
}

func (h *HubService) remove(session string, client *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	conns, ok := h.clients[session]
	if !ok {
		return
	}
	if _, ok := conns[client]; ok {
		delete(conns, client)
		client.Close()
	}
	if len(conns) == 0 {
		delete(h.clients, session)
	}
}

func (h *HubService) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for session, conns := range h.clients {
		for c := range conns {
			c.Close()
		}
		delete(h.clients, session)
	}
}

// short trims a session id for log lines.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
