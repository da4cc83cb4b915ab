package presenter

import (
	"testing"
	"time"
)

// P4: Countdown and Messages are mutually exclusive; starting one stops the
// other.
func TestExclusiveToolsDisplaceEachOther(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(NewCountdownTool("Pre-service", 300, "Starting soon"))
	s.Append(NewMessagesTool("Notices", []Message{
		{Text: "Welcome", Enabled: true},
		{Text: "Silence phones", Enabled: true},
	}, 5))

	if err := s.StartCountdown(0); err != nil {
		t.Fatalf("start countdown: %v", err)
	}
	ov := out.last().Overlay
	if ov == nil || ov.Countdown == nil || ov.Foreground != ToolCountdown {
		t.Fatalf("expected countdown overlay, got %+v", ov)
	}

	if err := s.StartMessages(1); err != nil {
		t.Fatalf("start messages: %v", err)
	}
	ov = out.last().Overlay
	if ov == nil || ov.Message == nil || ov.Countdown != nil {
		t.Fatalf("messages must displace countdown, got %+v", ov)
	}
	if ov.Foreground != ToolMessages {
		t.Errorf("foreground = %s, want messages", ov.Foreground)
	}

	// And the reverse.
	if err := s.StartCountdown(0); err != nil {
		t.Fatalf("restart countdown: %v", err)
	}
	ov = out.last().Overlay
	if ov == nil || ov.Countdown == nil || ov.Message != nil {
		t.Fatalf("countdown must displace messages, got %+v", ov)
	}
}

// Switching between exclusive tools transfers the restore snapshot forward,
// so stopping the second tool restores the true pre-tool content.
func TestSnapshotTransfersBetweenExclusiveTools(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "Song", 3))
	s.Append(NewCountdownTool("Countdown", 60, ""))
	s.Append(NewMessagesTool("Notices", []Message{{Text: "Hi", Enabled: true}}, 5))

	_ = s.SelectItem(0)
	s.NextSlide() // slide 1 is the baseline

	_ = s.StartCountdown(1)
	_ = s.StartMessages(2)
	s.StopMessages()

	st := s.Snapshot()
	if st.CurrentIndex != 0 || st.SlideIndex != 1 {
		t.Fatalf("restore lost the pre-tool baseline: %+v", st)
	}
	p := out.last()
	if p.Content.Kind != ContentSlide || p.Content.SlideIndex != 1 {
		t.Fatalf("restored payload = %+v, want slide 1", p.Content)
	}
	if p.Overlay != nil {
		t.Errorf("overlay should be gone after stop, got %+v", p.Overlay)
	}
	t.Logf("✅ snapshot survived countdown -> messages -> stop")
}

// E2E scenario B: the countdown ticks to zero, the timer stops, and the last
// broadcast still shows 0 remaining (no auto-clear).
func TestCountdownReachesZeroWithoutAutoClear(t *testing.T) {
	s, out, clock, sched := newTestSession()
	s.Append(NewCountdownTool("Go live", 5, "Starting soon"))

	_ = s.StartCountdown(0)
	if got := out.last().Overlay.Countdown.RemainingSeconds; got != 5 {
		t.Fatalf("initial remaining = %d, want 5", got)
	}

	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		if !sched.FireNext() {
			t.Fatalf("tick %d: no timer pending", i+1)
		}
	}

	ov := out.last().Overlay
	if ov == nil || ov.Countdown == nil {
		t.Fatal("countdown must stay broadcast at zero")
	}
	if ov.Countdown.RemainingSeconds != 0 {
		t.Errorf("remaining = %d, want 0", ov.Countdown.RemainingSeconds)
	}
	if ov.Countdown.Running {
		t.Error("countdown should report stopped at zero")
	}
	if sched.PendingCount() != 0 {
		t.Errorf("local timer must stop at zero, %d pending", sched.PendingCount())
	}
	if ov.Countdown.Message != "Starting soon" {
		t.Errorf("message = %q", ov.Countdown.Message)
	}
}

// P5 (first half) + E2E scenario C: an announcement takes the foreground but
// carries the live countdown underneath, and hiding it restores the countdown
// with current remaining time.
func TestAnnouncementOverCountdownRestoresLiveRemaining(t *testing.T) {
	s, out, clock, sched := newTestSession()
	s.Append(NewCountdownTool("Pre-service", 300, ""))

	_ = s.StartCountdown(0)
	s.ShowAnnouncement("Please be seated")

	ov := out.last().Overlay
	if ov.Foreground != ToolAnnouncement {
		t.Fatalf("foreground = %s, want announcement", ov.Foreground)
	}
	if ov.Countdown == nil {
		t.Fatal("payload must carry the countdown underneath the announcement")
	}

	// One countdown tick passes, then the announcement auto-hides two
	// seconds into the countdown.
	clock.Advance(time.Second)
	sched.FireNext() // countdown tick
	clock.Advance(time.Second)
	sched.FireNext() // announcement auto-hide

	ov = out.last().Overlay
	if ov == nil || ov.Foreground != ToolCountdown {
		t.Fatalf("after auto-hide, foreground = %+v, want countdown", ov)
	}
	if ov.Announcement != nil {
		t.Error("announcement must be gone after auto-hide")
	}
	if got := ov.Countdown.RemainingSeconds; got != 298 {
		t.Errorf("restored remaining = %d, want live value 298", got)
	}
	t.Logf("✅ restore-on-hide read live countdown state")
}

// Hiding an announcement with no countdown underneath reverts to no overlay.
func TestAnnouncementHideWithoutCountdown(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "Song", 2))
	_ = s.SelectItem(0)

	s.ShowAnnouncement("Offering next")
	s.HideAnnouncement()

	if out.last().Overlay != nil {
		t.Fatalf("overlay = %+v, want none", out.last().Overlay)
	}
}

// P5: a slide change preserves an active announcement but clears an active
// countdown.
func TestSlideChangeKeepsAnnouncementStopsCountdown(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "Song", 3))
	s.Append(NewCountdownTool("Countdown", 120, ""))

	_ = s.SelectItem(0)
	s.ShowAnnouncement("Welcome")
	s.NextSlide()

	ov := out.last().Overlay
	if ov == nil || ov.Announcement == nil || ov.Announcement.Text != "Welcome" {
		t.Fatalf("announcement must survive a slide change, got %+v", ov)
	}

	// Now the countdown case: content change clears it.
	_ = s.StartCountdown(1)
	s.HideAnnouncement()
	_ = s.SelectSlide(0, 0)

	if ov := out.last().Overlay; ov != nil && ov.Countdown != nil {
		t.Fatalf("countdown must not survive a content change, got %+v", ov)
	}
}

// Updating a visible announcement restarts its hide window.
func TestAnnouncementUpdateRestartsWindow(t *testing.T) {
	s, out, _, sched := newTestSession()
	s.Append(testSong("s1", "Song", 1))
	_ = s.SelectItem(0)

	s.ShowAnnouncement("First text")
	s.ShowAnnouncement("Second text")

	if got := sched.PendingCount(); got != 1 {
		t.Fatalf("pending auto-hide timers = %d, want 1 (old cancelled)", got)
	}
	if out.last().Overlay.Announcement.Text != "Second text" {
		t.Errorf("text = %q", out.last().Overlay.Announcement.Text)
	}

	sched.FireNext()
	if out.last().Overlay != nil {
		t.Error("expected overlay gone after the single auto-hide")
	}
}

// P6: stopping an idle tool is a no-op that neither mutates state nor
// broadcasts.
func TestIdempotentStops(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "Song", 2))
	_ = s.SelectItem(0)

	before := s.Snapshot()
	emitted := out.count()

	s.StopCountdown()
	s.StopMessages()
	s.HideAnnouncement()
	s.StopCountdown() // double stop

	if out.count() != emitted {
		t.Fatalf("idle stops emitted %d broadcasts", out.count()-emitted)
	}
	after := s.Snapshot()
	if after.CurrentIndex != before.CurrentIndex || after.SlideIndex != before.SlideIndex {
		t.Fatal("idle stop mutated state")
	}
}

// Messages rotate over enabled entries only, wrapping.
func TestMessagesRotationSkipsDisabled(t *testing.T) {
	s, out, _, sched := newTestSession()
	s.Append(NewMessagesTool("Notices", []Message{
		{Text: "one", Enabled: true},
		{Text: "two", Enabled: false},
		{Text: "three", Enabled: true},
	}, 5))

	_ = s.StartMessages(0)
	if got := out.last().Overlay.Message.Text; got != "one" {
		t.Fatalf("first message = %q", got)
	}

	sched.FireNext()
	if got := out.last().Overlay.Message.Text; got != "three" {
		t.Fatalf("second message = %q, want three (skipping disabled)", got)
	}

	sched.FireNext()
	if got := out.last().Overlay.Message.Text; got != "one" {
		t.Fatalf("wrap message = %q, want one", got)
	}
}

// An announcement displaces a rotating-messages banner (they want the same
// region) and the messages restore runs first.
func TestAnnouncementStopsMessages(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "Song", 2))
	s.Append(NewMessagesTool("Notices", []Message{{Text: "hi", Enabled: true}}, 5))

	_ = s.SelectItem(0)
	_ = s.StartMessages(1)
	s.ShowAnnouncement("Special notice")

	ov := out.last().Overlay
	if ov.Message != nil {
		t.Fatal("messages must stop when an announcement shows")
	}
	if ov.Announcement == nil {
		t.Fatal("announcement missing")
	}
	// The pre-tool selection came back underneath.
	if p := out.last(); p.Content.Kind != ContentSlide || p.Content.SlideIndex != 0 {
		t.Fatalf("content under announcement = %+v, want restored slide", p.Content)
	}
}

// A countdown may start while blank is active; blank stays the primary
// content and wins in the payload.
func TestCountdownOverBlank(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "Song", 2))
	s.Append(NewCountdownTool("Countdown", 60, ""))

	_ = s.SelectItem(0)
	s.ToggleBlank()
	_ = s.StartCountdown(1)

	p := out.last()
	if p.Content.Kind != ContentBlank {
		t.Fatalf("content = %s, want blank (blank always wins)", p.Content.Kind)
	}
	if p.Overlay == nil || p.Overlay.Countdown == nil {
		t.Fatal("countdown overlay missing")
	}

	// Stop restores the blank baseline, not some tool state.
	s.StopCountdown()
	st := s.Snapshot()
	if !st.BlankActive || st.CurrentIndex != 0 {
		t.Fatalf("restore should keep blank over the song, got %+v", st)
	}
}
