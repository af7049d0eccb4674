package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"cancerdetect/internal/logger"
	"cancerdetect/internal/middleware"
	wshub "cancerdetect/internal/services/websocket"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventsReadTimeout drops a dashboard socket that sent nothing, not even its keepalive, for this long.
var eventsReadTimeout = 60 * time.Second

// EventsWebsocketHandler subscribes the dashboard to the state changes of its own session.
func EventsWebsocketHandler(hub *wshub.HubService, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.SessionID(r)
		if id == "" {
			http.Error(w, "No session", http.StatusBadRequest)
			return
		}

		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}
		connection.SetReadLimit(512)
		connection.SetReadDeadline(time.Now().Add(eventsReadTimeout))
		connection.SetPongHandler(func(appData string) error {
			connection.SetReadDeadline(time.Now().Add(eventsReadTimeout))
			return nil
		})

		if !hub.Register(id, connection) {
			connection.Close()
			return
		}
		defer hub.Unregister(id, connection)

		for {
			if _, _, err := connection.ReadMessage(); err != nil {
				break
			}
			connection.SetReadDeadline(time.Now().Add(eventsReadTimeout))
		}
	}
}
