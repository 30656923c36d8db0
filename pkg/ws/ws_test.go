package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tyabelawras/api/pkg/ws"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, hub *ws.Hub, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for hub.ClientCount() != want {
		select {
		case <-deadline:
			t.Fatalf("expected %d clients, have %d", want, hub.ClientCount())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	}))
	defer srv.Close()

	c1 := dial(t, srv)
	defer c1.Close()
	c2 := dial(t, srv)
	defer c2.Close()
	waitForClients(t, hub, 2)

	payload := map[string]interface{}{
		"type": "new_order",
		"order": map[string]interface{}{
			"id":          1,
			"totalAmount": 1300.0,
		},
	}
	if err := hub.BroadcastJSON(payload); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	for _, conn := range []*websocket.Conn{c1, c2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}

		var got map[string]interface{}
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["type"] != "new_order" {
			t.Errorf("expected type new_order, got %v", got["type"])
		}
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	}))
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestBroadcastWithNoClients(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	// Must not block or panic with nobody connected.
	if err := hub.BroadcastJSON(map[string]string{"type": "new_order"}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
}
