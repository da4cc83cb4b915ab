package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/shilo-maker/solupresenter-sub003/internal/hub"
	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

// RoomHandler owns the live rooms: each room pairs a hub fan-out channel
// with a presenter session.
type RoomHandler struct {
	mu       sync.Mutex
	hub      *hub.Hub
	store    presenter.SetlistStore
	sessions map[string]*presenter.Session
}

func NewRoomHandler(h *hub.Hub, store presenter.SetlistStore) *RoomHandler {
	return &RoomHandler{
		hub:      h,
		store:    store,
		sessions: make(map[string]*presenter.Session),
	}
}

// session resolves the room id from the URL to its live session.
func (h *RoomHandler) session(c *gin.Context) (*presenter.Session, bool) {
	h.mu.Lock()
	sess, ok := h.sessions[c.Param("id")]
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return nil, false
	}
	return sess, true
}

// CreateRoom opens a room and its presentation session.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req struct {
		Background string `json:"background"`
	}
	c.ShouldBindJSON(&req) // body optional

	room := h.hub.CreateRoom()
	sess := presenter.NewSession(&presenter.Room{
		ID:         room.ID,
		Pin:        room.Pin,
		Background: req.Background,
	}, h.hub, nil, nil)

	h.mu.Lock()
	h.sessions[room.ID] = sess
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"id":  room.ID,
		"pin": room.Pin,
	})
}

// GetRoom reports the room's live state for an operator console reconnect.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	viewers := 0
	if hr, ok := h.hub.GetRoom(c.Param("id")); ok {
		viewers = hr.ViewerCount()
	}
	room := sess.Room()
	st := sess.Snapshot()
	entries := sess.Entries()

	items := make([]presenter.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.Item)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           room.ID,
		"pin":          room.Pin,
		"background":   room.Background,
		"viewers":      viewers,
		"setlist":      items,
		"setlist_name": sess.SetlistName(),
		"dirty":        sess.HasUnsavedChanges(),
		"state": gin.H{
			"current_index":  st.CurrentIndex,
			"slide_index":    st.SlideIndex,
			"combined_index": st.CombinedIndex,
			"display_mode":   st.Mode,
			"blank":          st.BlankActive,
		},
	})
}

// CloseRoom tears the room down and disconnects its viewers.
func (h *RoomHandler) CloseRoom(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	h.hub.CloseRoom(id)
	c.JSON(http.StatusOK, gin.H{"message": "Room closed"})
}

// JoinByPin is the public viewer entry point: resolve the pin, upgrade to a
// websocket and start receiving frames.
func (h *RoomHandler) JoinByPin(c *gin.Context) {
	room, ok := h.hub.FindByPin(c.Param("pin"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown pin"})
		return
	}
	room.ServeViewer(c.Writer, c.Request)
}
