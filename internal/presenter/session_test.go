package presenter

import "testing"

// Room hands out a copy, so a caller's snapshot is immune to later
// background changes made under the session mutex.
func TestRoomReturnsCopy(t *testing.T) {
	s, out, _, _ := newTestSession()

	before := s.Room()
	s.SetBackground("stage.jpg")

	if before.Background != "bg.jpg" {
		t.Fatalf("earlier copy changed: %q", before.Background)
	}
	if got := s.Room().Background; got != "stage.jpg" {
		t.Fatalf("background = %q, want stage.jpg", got)
	}
	if out.count() != 1 || out.last().Background != "stage.jpg" {
		t.Fatalf("background change must rebroadcast, got %d payloads", out.count())
	}

	// Setting the same background again is a no-op.
	s.SetBackground("stage.jpg")
	if out.count() != 1 {
		t.Error("unchanged background must not broadcast")
	}
}

// Local media raises the media-status flag out of band; the next broadcast
// of any kind lowers it again.
func TestLocalMediaStatusLifecycle(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "Song", 1))

	s.ShowLocalMedia()
	if len(out.media) != 1 || !out.media[0] {
		t.Fatalf("media notifications = %v, want [true]", out.media)
	}
	if out.count() != 0 {
		t.Fatal("local media must not produce a slide payload")
	}

	_ = s.SelectItem(0)
	if len(out.media) != 2 || out.media[1] {
		t.Fatalf("media notifications = %v, want [true false]", out.media)
	}
	if out.last().Content.Kind != ContentSlide {
		t.Fatalf("content = %s, want slide", out.last().Content.Kind)
	}

	// No stale clear on later broadcasts.
	s.NextSlide()
	if len(out.media) != 2 {
		t.Errorf("media notifications = %v, want no extra clears", out.media)
	}
}
