package ws

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEventServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.GET("/api/events", Handler(hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialEvents(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesConnectedClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	srv := newEventServer(t, hub)
	conn := dialEvents(t, srv)

	// The server registers the client just after the upgrade response,
	// so an immediate broadcast can race past an empty client set. Keep
	// re-broadcasting until the reader picks one up.
	gid := uint(7)
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				hub.Broadcast(Event{Type: "reordered", Scope: "sites", GroupID: &gid})
			}
		}
	}()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("unmarshal event %q: %v", data, err)
	}
	if ev.Type != "reordered" || ev.Scope != "sites" {
		t.Fatalf("event = %+v, want type reordered scope sites", ev)
	}
	if ev.GroupID == nil || *ev.GroupID != gid {
		t.Fatalf("event group_id = %v, want %d", ev.GroupID, gid)
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Upgrade by hand and register the client without starting its
	// pumps, so its send buffer never drains.
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })

	serverConn := <-serverConns
	hub.register <- newClient(hub, serverConn)

	// Overflow the stalled client's buffer; the hub must evict it and
	// close the connection rather than block the fan-out.
	for i := 0; i < sendBufferSize+8; i++ {
		hub.Broadcast(Event{Type: "updated", Scope: "groups"})
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
				t.Fatalf("connection still open after overflow: %v", err)
			}
			return
		}
	}
}

func TestHandlerWithoutHubIsUnavailable(t *testing.T) {
	srv := newEventServer(t, nil)
	resp, err := http.Get(srv.URL + "/api/events")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
