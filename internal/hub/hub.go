package hub

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

// Envelope is the frame every viewer receives.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub routes broadcast payloads to the websocket viewers of each room.
// It satisfies presenter.Broadcaster, so one hub serves every live session.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// Room is the viewer side of a live session: the connected sockets plus the
// last frame sent, replayed to anyone who joins late.
type Room struct {
	ID  string
	Pin string

	mu          sync.Mutex
	clients     map[*client]struct{}
	lastPayload []byte
}

func New() *Hub {
	return &Hub{rooms: make(map[string]*Room)}
}

// CreateRoom allocates a room with a fresh id and a 4-digit viewer pin.
func (h *Hub) CreateRoom() *Room {
	room := &Room{
		ID:      uuid.NewString(),
		Pin:     fmt.Sprintf("%04d", rand.Intn(10000)),
		clients: make(map[*client]struct{}),
	}

	h.mu.Lock()
	h.rooms[room.ID] = room
	h.mu.Unlock()

	log.Printf("✅ Created room %s (pin %s)", room.ID, room.Pin)
	return room
}

func (h *Hub) GetRoom(id string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[id]
	return room, ok
}

// FindByPin resolves the viewer-facing pin to a room.
func (h *Hub) FindByPin(pin string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, room := range h.rooms {
		if room.Pin == pin {
			return room, true
		}
	}
	return nil, false
}

// CloseRoom disconnects every viewer and forgets the room.
func (h *Hub) CloseRoom(id string) {
	h.mu.Lock()
	room, ok := h.rooms[id]
	delete(h.rooms, id)
	h.mu.Unlock()
	if !ok {
		return
	}

	room.mu.Lock()
	for c := range room.clients {
		close(c.send)
		delete(room.clients, c)
	}
	room.mu.Unlock()

	log.Printf("✅ Closed room %s", id)
}

// SendSlideUpdate fans the payload out to the room's viewers. Payloads for
// unknown rooms are dropped; the session keeps running either way.
func (h *Hub) SendSlideUpdate(p presenter.Payload) {
	room, ok := h.GetRoom(p.RoomID)
	if !ok {
		return
	}
	room.broadcast(Envelope{Type: "slide_update", Data: p})
}

// NotifyMediaStatus tells viewers whether operator-local media is covering
// the output, so they can blank or restore their own rendering.
func (h *Hub) NotifyMediaStatus(roomID string, showing bool) {
	room, ok := h.GetRoom(roomID)
	if !ok {
		return
	}
	room.broadcast(Envelope{Type: "media_status", Data: map[string]bool{"showing": showing}})
}

func (r *Room) broadcast(env Envelope) {
	frame, err := json.Marshal(env)
	if err != nil {
		log.Printf("❌ Failed to encode frame for room %s: %v", r.ID, err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if env.Type == "slide_update" {
		r.lastPayload = frame
	}

	for c := range r.clients {
		select {
		case c.send <- frame:
		default:
			// Slow consumer: drop it rather than stall the service
			close(c.send)
			delete(r.clients, c)
			viewersGauge.WithLabelValues(r.ID).Dec()
		}
	}
}

func (r *Room) register(c *client) {
	r.mu.Lock()
	r.clients[c] = struct{}{}
	last := r.lastPayload
	r.mu.Unlock()

	viewersGauge.WithLabelValues(r.ID).Inc()

	// Replay the current frame so a late joiner is never blank
	if last != nil {
		c.send <- last
	}
}

func (r *Room) unregister(c *client) {
	r.mu.Lock()
	if _, ok := r.clients[c]; ok {
		delete(r.clients, c)
		close(c.send)
		viewersGauge.WithLabelValues(r.ID).Dec()
	}
	r.mu.Unlock()
}

// ViewerCount reports how many sockets are attached to the room.
func (r *Room) ViewerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
