package presenter

import (
	"time"
)

// fakeBroadcaster records every payload the encoder emits.
type fakeBroadcaster struct {
	payloads []Payload
	media    []bool
}

func (f *fakeBroadcaster) SendSlideUpdate(p Payload) {
	f.payloads = append(f.payloads, p)
}

func (f *fakeBroadcaster) NotifyMediaStatus(roomID string, showing bool) {
	f.media = append(f.media, showing)
}

func (f *fakeBroadcaster) last() *Payload {
	if len(f.payloads) == 0 {
		return nil
	}
	return &f.payloads[len(f.payloads)-1]
}

func (f *fakeBroadcaster) count() int {
	return len(f.payloads)
}

// newTestSession wires a session to a fake transport, a mock clock and a
// manual scheduler so timer behavior can be driven deterministically.
func newTestSession() (*Session, *fakeBroadcaster, *MockClock, *ManualScheduler) {
	out := &fakeBroadcaster{}
	clock := &MockClock{MockTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	sched := &ManualScheduler{}
	room := &Room{ID: "room-1", Pin: "4242", Background: "bg.jpg"}
	return NewSession(room, out, clock, sched), out, clock, sched
}

func testSong(id, title string, n int) Item {
	slides := make([]Slide, n)
	for i := range slides {
		slides[i] = Slide{OriginalText: title + " slide " + string(rune('A'+i))}
	}
	return NewSong(id, title, slides, "he")
}
