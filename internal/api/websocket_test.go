package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialWebSocket connects a test client to the server's /ws endpoint.
func dialWebSocket(t *testing.T, srv *Server) (*websocket.Conn, func()) {
	t.Helper()

	ts := httptest.NewServer(srv.buildRouter())
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}

	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

// readMessage reads one message with a deadline so a broken test fails
// instead of hanging.
func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()

	//nolint:errcheck // deadline errors surface as read errors
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return msg
}

func TestWebSocket_PingPong(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWebSocket(t, srv)
	defer cleanup()

	if err := conn.WriteJSON(WSMessage{Type: WSTypePing, ID: "p1"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Type != WSTypePong {
		t.Errorf("type = %q, want %q", msg.Type, WSTypePong)
	}
	if msg.ID != "p1" {
		t.Errorf("id = %q, want p1", msg.ID)
	}
}

func TestWebSocket_SubscribeAndBroadcast(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWebSocket(t, srv)
	defer cleanup()

	sub := WSMessage{
		Type:    WSTypeSubscribe,
		ID:      "s1",
		Payload: WSSubscribePayload{Channels: []string{"voice.events"}},
	}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("write: %v", err)
	}

	ack := readMessage(t, conn)
	if ack.Type != WSTypeResponse {
		t.Fatalf("type = %q, want %q", ack.Type, WSTypeResponse)
	}

	srv.hub.Broadcast("voice.events", map[string]string{"message": "hello"})

	msg := readMessage(t, conn)
	if msg.Type != WSTypeEvent {
		t.Errorf("type = %q, want %q", msg.Type, WSTypeEvent)
	}
	if msg.EventType != "voice.events" {
		t.Errorf("event_type = %q, want voice.events", msg.EventType)
	}
}

func TestWebSocket_UnsubscribedChannelNotDelivered(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWebSocket(t, srv)
	defer cleanup()

	// No subscription; broadcast should not reach this client.
	srv.hub.Broadcast("voice.events", map[string]string{"message": "hello"})

	//nolint:errcheck // expecting a timeout
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected no message for unsubscribed channel")
	}
}

func TestWebSocket_UnknownMessageType(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWebSocket(t, srv)
	defer cleanup()

	if err := conn.WriteJSON(WSMessage{Type: "shout", ID: "x"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	msg := readMessage(t, conn)
	if msg.Type != WSTypeError {
		t.Errorf("type = %q, want %q", msg.Type, WSTypeError)
	}
}

func TestHub_ClientCount(t *testing.T) {
	srv, _ := testServer(t)
	conn, cleanup := dialWebSocket(t, srv)
	defer cleanup()

	// Registration happens in the upgrade handler; poll briefly.
	deadline := time.Now().Add(time.Second)
	for srv.hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := srv.hub.ClientCount(); got != 1 {
		t.Errorf("ClientCount() = %d, want 1", got)
	}

	conn.Close()
	deadline = time.Now().Add(time.Second)
	for srv.hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := srv.hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() after close = %d, want 0", got)
	}
}
