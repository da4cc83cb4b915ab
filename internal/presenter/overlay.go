package presenter

import "time"

// Overlay tool engine. Countdown and Messages are the two exclusive
// full-screen tools: starting one stops the other, transferring the restore
// snapshot forward so the eventual restore puts back the true pre-tool
// content rather than a tool-displaying state. Announcement is a transient
// banner: it auto-hides after a fixed window, survives slide changes and
// coexists with a countdown, but displaces a rotating-messages banner.

// AnnouncementWindow is the auto-hide window from each show/update call.
const AnnouncementWindow = 15 * time.Second

const countdownTick = time.Second

// startToolLocked dispatches a setlist tool entry to its engine.
func (s *Session) startToolLocked(index int) error {
	switch s.entries[index].Item.Tool {
	case ToolCountdown:
		return s.startCountdownLocked(index)
	case ToolAnnouncement:
		return s.showAnnouncementLocked(s.entries[index].Item.AnnouncementText, index)
	case ToolMessages:
		return s.startMessagesLocked(index)
	}
	return ErrNotATool
}

// StartCountdown starts (or restarts) the countdown tool at a setlist entry.
func (s *Session) StartCountdown(entryIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startCountdownLocked(entryIndex)
}

func (s *Session) startCountdownLocked(entryIndex int) error {
	if entryIndex < 0 || entryIndex >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	it := s.entries[entryIndex].Item
	if it.Kind != KindTool || it.Tool != ToolCountdown {
		return ErrNotATool
	}

	s.adoptExclusive(entryIndex)

	if s.countdown.cancel != nil {
		s.countdown.cancel()
	}
	s.countdown = countdownState{
		active:      true,
		running:     true,
		endAt:       s.clock.Now().Add(time.Duration(it.CountdownSeconds) * time.Second),
		message:     it.CountdownMessage,
		sourceIndex: entryIndex,
	}
	s.countdown.cancel = s.sched.After(countdownTick, s.onCountdownTick)

	overlayStartsTotal.WithLabelValues(string(ToolCountdown)).Inc()
	s.broadcast()
	return nil
}

// onCountdownTick fires once per second while the countdown runs. Reaching
// zero stops the local timer but does not clear the broadcast: the viewer
// keeps rendering 00:00 until the operator stops the tool explicitly.
func (s *Session) onCountdownTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.countdown.active || !s.countdown.running {
		return
	}
	if !s.countdown.endAt.After(s.clock.Now()) {
		s.countdown.running = false
	} else {
		s.countdown.cancel = s.sched.After(countdownTick, s.onCountdownTick)
	}
	s.broadcast()
}

// StopCountdown hides the countdown and restores the pre-tool content.
// Idempotent: stopping an idle countdown is a no-op with no broadcast.
func (s *Session) StopCountdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCountdownLocked()
}

func (s *Session) stopCountdownLocked() {
	if !s.countdown.active {
		return
	}
	if s.countdown.cancel != nil {
		s.countdown.cancel()
	}
	s.countdown = countdownState{sourceIndex: -1}
	s.restoreSnapshot()
	s.broadcast()
}

// StartMessages starts the rotating-messages tool at a setlist entry.
// The interval is reconfigurable mid-run only by restarting.
func (s *Session) StartMessages(entryIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startMessagesLocked(entryIndex)
}

func (s *Session) startMessagesLocked(entryIndex int) error {
	if entryIndex < 0 || entryIndex >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	it := s.entries[entryIndex].Item
	if it.Kind != KindTool || it.Tool != ToolMessages {
		return ErrNotATool
	}
	first := firstEnabled(it.Messages, 0)
	if first < 0 {
		return ErrNoMessages
	}

	s.adoptExclusive(entryIndex)

	if s.messages.cancel != nil {
		s.messages.cancel()
	}
	interval := time.Duration(it.MessageInterval) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	s.messages = messagesState{
		active:      true,
		items:       it.Messages,
		interval:    interval,
		pos:         first,
		sourceIndex: entryIndex,
	}
	s.messages.cancel = s.sched.After(interval, s.onMessagesTick)

	overlayStartsTotal.WithLabelValues(string(ToolMessages)).Inc()
	s.broadcast()
	return nil
}

// onMessagesTick advances to the next enabled message, wrapping, and
// re-broadcasts.
func (s *Session) onMessagesTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.messages.active {
		return
	}
	if next := firstEnabled(s.messages.items, s.messages.pos+1); next >= 0 {
		s.messages.pos = next
	}
	s.messages.cancel = s.sched.After(s.messages.interval, s.onMessagesTick)
	s.broadcast()
}

// StopMessages hides the rotation and restores the pre-tool content.
// Idempotent.
func (s *Session) StopMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopMessagesLocked(true)
}

func (s *Session) stopMessagesLocked(emit bool) {
	if !s.messages.active {
		return
	}
	if s.messages.cancel != nil {
		s.messages.cancel()
	}
	s.messages = messagesState{sourceIndex: -1}
	s.restoreSnapshot()
	if emit {
		s.broadcast()
	}
}

// adoptExclusive prepares the state for an exclusive tool at entryIndex:
// the other exclusive tool (or a previous entry of the same tool) is
// cancelled with its snapshot transferred forward, the baseline is captured
// if no tool held one yet, and the tool entry becomes the current selection.
func (s *Session) adoptExclusive(entryIndex int) {
	if s.countdown.active {
		if s.countdown.cancel != nil {
			s.countdown.cancel()
		}
		s.countdown = countdownState{sourceIndex: -1}
	}
	if s.messages.active {
		if s.messages.cancel != nil {
			s.messages.cancel()
		}
		s.messages = messagesState{sourceIndex: -1}
	}
	if s.snapshot == nil {
		s.snapshot = s.st.capture()
	}

	item := s.entries[entryIndex].Item
	s.st.Current = &item
	s.st.CurrentIndex = entryIndex
	s.st.SlideIndex = -1
	s.st.recomputeCombined()
}

// restoreSnapshot puts back the captured baseline, if any. With no snapshot
// the current live state simply stays in place.
func (s *Session) restoreSnapshot() {
	if s.snapshot == nil {
		// The tool entry is still selected; drop back to no selection so a
		// stale tool item is never left as current.
		if s.st.Current != nil && s.st.Current.Kind == KindTool {
			s.st.Current = nil
			s.st.CurrentIndex = -1
			s.st.SlideIndex = -1
			s.st.recomputeCombined()
		}
		return
	}
	s.st.restore(s.snapshot)
	s.snapshot = nil
}

// ShowAnnouncement shows (or updates) the auto-hide announcement banner.
// Any update while visible restarts the hide window. An announcement never
// stops a countdown, but displaces a rotating-messages banner.
func (s *Session) ShowAnnouncement(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.showAnnouncementLocked(text, -1)
}

func (s *Session) showAnnouncementLocked(text string, sourceIndex int) error {
	s.stopMessagesLocked(false)

	if s.announcement.cancel != nil {
		s.announcement.cancel()
	}
	s.announcement = announcementState{
		visible:     true,
		text:        text,
		sourceIndex: sourceIndex,
	}
	s.announcement.cancel = s.sched.After(AnnouncementWindow, s.onAnnouncementExpired)

	overlayStartsTotal.WithLabelValues(string(ToolAnnouncement)).Inc()
	s.broadcast()
	return nil
}

func (s *Session) onAnnouncementExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideAnnouncementLocked()
}

// HideAnnouncement hides the banner immediately. Idempotent.
func (s *Session) HideAnnouncement() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideAnnouncementLocked()
}

// hideAnnouncementLocked emits the restore-on-hide payload: overlay reverts
// to the live countdown if one is active underneath, otherwise to none.
func (s *Session) hideAnnouncementLocked() {
	if !s.announcement.visible {
		return
	}
	if s.announcement.cancel != nil {
		s.announcement.cancel()
	}
	s.announcement = announcementState{sourceIndex: -1}
	s.broadcast()
}

func firstEnabled(msgs []Message, from int) int {
	if len(msgs) == 0 {
		return -1
	}
	for i := 0; i < len(msgs); i++ {
		idx := (from + i) % len(msgs)
		if msgs[idx].Enabled {
			return idx
		}
	}
	return -1
}
