package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

func dialRoom(t *testing.T, room *Room) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		room.ServeViewer(w, r)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func waitForViewers(t *testing.T, room *Room, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for room.ViewerCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d viewers, have %d", n, room.ViewerCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesViewer(t *testing.T) {
	h := New()
	room := h.CreateRoom()
	conn := dialRoom(t, room)
	waitForViewers(t, room, 1)

	h.SendSlideUpdate(presenter.Payload{RoomID: room.ID, Pin: room.Pin})

	env := readEnvelope(t, conn)
	if env.Type != "slide_update" {
		t.Fatalf("expected slide_update, got %q", env.Type)
	}
	t.Logf("✅ Viewer received %s", env.Type)
}

func TestLateJoinerGetsLastFrame(t *testing.T) {
	h := New()
	room := h.CreateRoom()

	// Broadcast before anyone is connected
	h.SendSlideUpdate(presenter.Payload{RoomID: room.ID, Pin: room.Pin})

	conn := dialRoom(t, room)
	env := readEnvelope(t, conn)
	if env.Type != "slide_update" {
		t.Fatalf("late joiner should get the replayed frame, got %q", env.Type)
	}
}

func TestMediaStatusNotReplayed(t *testing.T) {
	h := New()
	room := h.CreateRoom()

	h.NotifyMediaStatus(room.ID, true)

	conn := dialRoom(t, room)
	waitForViewers(t, room, 1)

	// Only slide updates are replayed, so nothing should be waiting
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("media_status frames must not be replayed to late joiners")
	}
}

func TestUnknownRoomIsDropped(t *testing.T) {
	h := New()
	// Must not panic
	h.SendSlideUpdate(presenter.Payload{RoomID: "no-such-room"})
	h.NotifyMediaStatus("no-such-room", true)
}

func TestFindByPin(t *testing.T) {
	h := New()
	room := h.CreateRoom()

	found, ok := h.FindByPin(room.Pin)
	if !ok || found.ID != room.ID {
		t.Fatalf("expected to resolve pin %s to room %s", room.Pin, room.ID)
	}
	if _, ok := h.FindByPin("x"); ok {
		t.Fatal("bogus pin should not resolve")
	}
}

func TestCloseRoomDisconnectsViewers(t *testing.T) {
	h := New()
	room := h.CreateRoom()
	conn := dialRoom(t, room)
	waitForViewers(t, room, 1)

	h.CloseRoom(room.ID)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	if _, ok := h.GetRoom(room.ID); ok {
		t.Fatal("room should be gone after close")
	}
}
