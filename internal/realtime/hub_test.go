package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	hub := NewHub(logger)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) notifier.Envelope {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var env notifier.Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func TestHub_JoinViaQueryAndDeliver(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "?room=control-center")

	require.Eventually(t, func() bool { return hub.RoomSize("control-center") == 1 }, time.Second, 10*time.Millisecond)

	err := hub.Deliver(context.Background(), notifier.Envelope{
		Room:  "control-center",
		Event: notifier.EventStatusUpdate,
		Data:  json.RawMessage(`{"status":"Dispatched"}`),
	})
	require.NoError(t, err)

	env := readEnvelope(t, conn)
	assert.Equal(t, notifier.EventStatusUpdate, env.Event)
	assert.JSONEq(t, `{"status":"Dispatched"}`, string(env.Data))
}

func TestHub_JoinViaMessage(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "")

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "joinRoom", "room": "tok-123"}))
	require.Eventually(t, func() bool { return hub.RoomSize("tok-123") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Deliver(context.Background(), notifier.Envelope{Room: "tok-123", Event: "e", Data: json.RawMessage(`1`)}))
	assert.Equal(t, "tok-123", readEnvelope(t, conn).Room)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "leave", "room": "tok-123"}))
	require.Eventually(t, func() bool { return hub.RoomSize("tok-123") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_DeliverToEmptyRoomIsNoop(t *testing.T) {
	hub, _ := newTestHub(t)
	err := hub.Deliver(context.Background(), notifier.Envelope{Room: "nobody", Event: "e", Data: json.RawMessage(`{}`)})
	assert.NoError(t, err)
}

func TestHub_DisconnectLeavesRooms(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv, "?room=a&room=b")
	require.Eventually(t, func() bool { return hub.RoomSize("a") == 1 && hub.RoomSize("b") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool { return hub.RoomSize("a") == 0 && hub.RoomSize("b") == 0 }, 2*time.Second, 10*time.Millisecond)
}
