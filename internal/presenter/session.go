package presenter

import (
	"log"
	"sync"
	"time"
)

// Session owns the presentation state of one room. All operator requests and
// timer callbacks funnel through its mutex, so transitions are race-free and
// every state change synchronously reaches the encoder before returning.
type Session struct {
	mu sync.Mutex

	room  *Room
	out   Broadcaster
	clock Clock
	sched Scheduler

	entries     []Entry
	dirty       bool
	setlistName string
	linkedID    uint

	st State

	countdown    countdownState
	messages     messagesState
	announcement announcementState
	// snapshot is held while an exclusive tool (countdown/messages) is
	// active; transferred forward when switching tools without returning to
	// idle so the true pre-tool baseline is never lost.
	snapshot *contentSnapshot

	localMedia bool
}

type countdownState struct {
	active      bool
	running     bool
	endAt       time.Time
	message     string
	sourceIndex int
	cancel      CancelFunc
}

type messagesState struct {
	active      bool
	items       []Message
	interval    time.Duration
	pos         int
	sourceIndex int
	cancel      CancelFunc
}

type announcementState struct {
	visible     bool
	text        string
	sourceIndex int
	cancel      CancelFunc
}

// NewSession creates the presentation state machine for a room. clock and
// sched may be nil, in which case real time is used.
func NewSession(room *Room, out Broadcaster, clock Clock, sched Scheduler) *Session {
	if clock == nil {
		clock = RealClock{}
	}
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Session{
		room:  room,
		out:   out,
		clock: clock,
		sched: sched,
		st:    newState(),
	}
}

// Room returns a copy of the session's room identifiers. A copy, because
// SetBackground mutates the underlying struct under the session mutex.
func (s *Session) Room() Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room == nil {
		return Room{}
	}
	return *s.room
}

// Entries returns a copy of the current setlist.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Snapshot returns a copy of the live presentation state for read-only use.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// SelectItem makes setlist entry index the current selection and broadcasts
// it. Section headers are never broadcast; selecting a tool entry starts that
// tool instead.
func (s *Session) SelectItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	it := s.entries[index].Item

	switch it.Kind {
	case KindSection:
		return nil
	case KindTool:
		return s.startToolLocked(index)
	}

	s.applySelection(it, index)
	s.contentChanged()
	return nil
}

// applySelection points the state at an item without broadcasting.
func (s *Session) applySelection(it Item, index int) {
	item := it
	s.st.Current = &item
	s.st.CurrentIndex = index
	s.st.BlankActive = it.Kind == KindBlank

	switch {
	case it.HasSlides():
		s.st.SlideIndex = 0
	case it.Kind == KindPresentation && len(it.PresSlides) > 0:
		s.st.SlideIndex = 0
	default:
		s.st.SlideIndex = -1
	}
	s.st.recomputeCombined()
}

// SelectSlide broadcasts a specific slide of a setlist entry. An explicit
// slide click clears an active blank (unlike navigation, which blank
// freezes).
func (s *Session) SelectSlide(itemIndex, slideIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if itemIndex < 0 || itemIndex >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	it := s.entries[itemIndex].Item
	if !it.HasSlides() && it.Kind != KindPresentation {
		return s.selectItemContentLocked(it, itemIndex)
	}

	n := len(it.Slides)
	if it.Kind == KindPresentation {
		n = len(it.PresSlides)
	}
	if slideIndex < 0 {
		slideIndex = 0
	}
	if slideIndex >= n {
		slideIndex = n - 1
	}

	item := it
	s.st.Current = &item
	s.st.CurrentIndex = itemIndex
	s.st.SlideIndex = slideIndex
	s.st.BlankActive = false
	s.st.recomputeCombined()
	s.contentChanged()
	return nil
}

func (s *Session) selectItemContentLocked(it Item, index int) error {
	if it.Kind == KindSection {
		return nil
	}
	if it.Kind == KindTool {
		return s.startToolLocked(index)
	}
	s.applySelection(it, index)
	s.contentChanged()
	return nil
}

// SelectCombined broadcasts combined unit of a setlist entry in
// original-only mode. Falls back to SelectSlide semantics in bilingual mode.
func (s *Session) SelectCombined(itemIndex, unit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if itemIndex < 0 || itemIndex >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	it := s.entries[itemIndex].Item
	if !it.HasSlides() {
		return s.selectItemContentLocked(it, itemIndex)
	}

	item := it
	s.st.Current = &item
	s.st.CurrentIndex = itemIndex
	s.st.BlankActive = false
	s.st.SlideIndex = 0
	s.st.recomputeCombined()

	if s.st.combined != nil {
		if unit < 0 {
			unit = 0
		}
		if unit >= s.st.combined.Len() {
			unit = s.st.combined.Len() - 1
		}
		s.st.CombinedIndex = unit
		s.st.SlideIndex = s.st.combined.Indices(unit)[0]
	}
	s.contentChanged()
	return nil
}

// ToggleBlank flips the explicit "show nothing" state. Blank wins over any
// selected slide and freezes navigation until toggled back.
func (s *Session) ToggleBlank() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.BlankActive = !s.st.BlankActive
	s.contentChanged()
}

// SetDisplayMode switches between bilingual and original-only rendering,
// remapping the current position into or out of combined units. A mode
// switch re-presents the same content, so active overlays survive it.
func (s *Session) SetDisplayMode(mode DisplayMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.st.Mode {
		return
	}
	s.st.Mode = mode
	s.st.recomputeCombined()
	s.broadcast()
}

// SetBackground changes the room background and re-presents the current
// content on top of it.
func (s *Session) SetBackground(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room == nil || s.room.Background == url {
		return
	}
	s.room.Background = url
	s.broadcast()
}

// SetQuickSlide broadcasts an ad-hoc free-text slide that lives outside the
// setlist.
func (s *Session) SetQuickSlide(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := NewSong("", "Quick Slide", []Slide{{OriginalText: text}}, "")
	item.IsTemporary = true
	s.st.Current = &item
	s.st.CurrentIndex = -1
	s.st.SlideIndex = 0
	s.st.BlankActive = false
	s.st.recomputeCombined()
	s.contentChanged()
}

// ShowTransientItem broadcasts an item that is not part of the setlist, such
// as an ad-hoc Bible passage.
func (s *Session) ShowTransientItem(it Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applySelection(it, -1)
	s.contentChanged()
}

// ShowLocalMedia flags that the operator is playing media on the local HDMI
// output only, and tells the viewer-status channel so remote screens show a
// holding state. The next broadcast clears the flag.
func (s *Session) ShowLocalMedia() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.localMedia = true
	if s.out != nil && s.room != nil {
		s.out.NotifyMediaStatus(s.room.ID, true)
	}
}

// contentChanged emits a broadcast for a primary-content change: exclusive
// tools are stopped without restore (the new content supersedes the
// baseline), while an active announcement survives.
func (s *Session) contentChanged() {
	s.stopExclusiveSilent()
	s.broadcast()
}

// stopExclusiveSilent cancels countdown and messages without emitting and
// drops the restore snapshot.
func (s *Session) stopExclusiveSilent() {
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
	s.snapshot = nil
}

func (s *Session) logf(format string, args ...any) {
	if s.room != nil {
		log.Printf("[room %s] "+format, append([]any{s.room.ID}, args...)...)
		return
	}
	log.Printf(format, args...)
}
