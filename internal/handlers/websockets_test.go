package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"cancerdetect/internal/middleware"
	wshub "cancerdetect/internal/services/websocket"
)

func TestEventsWebsocketHandler_KeepaliveExtendsDeadline(t *testing.T) {
	previous := eventsReadTimeout
	eventsReadTimeout = 300 * time.Millisecond
	t.Cleanup(func() { eventsReadTimeout = previous })

	hub := wshub.NewHubService(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	events := EventsWebsocketHandler(hub, testLogger())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		events(w, middleware.WithSessionID(r, "s1"))
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("s1") == 1 }, 2*time.Second, 10*time.Millisecond)

	for i := 0; i < 10; i++ {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
		time.Sleep(100 * time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount("s1"))

	hub.Publish("s1", []byte(`{"state":"result_shown"}`))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.JSONEq(t, `{"state":"result_shown"}`, string(msg))
}

func TestEventsWebsocketHandler_SilentClientIsDropped(t *testing.T) {
	previous := eventsReadTimeout
	eventsReadTimeout = 400 * time.Millisecond
	t.Cleanup(func() { eventsReadTimeout = previous })

	hub := wshub.NewHubService(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	events := EventsWebsocketHandler(hub, testLogger())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		events(w, middleware.WithSessionID(r, "s1"))
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("s1") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool { return hub.ClientCount("s1") == 0 }, 2*time.Second, 20*time.Millisecond)
}
