package presenter

import "errors"

var (
	// ErrUnsavedChanges is returned by LoadFromStore when the setlist has
	// unsaved edits and the caller did not resolve the conflict. The UI turns
	// this into a save/discard/cancel prompt.
	ErrUnsavedChanges = errors.New("setlist has unsaved changes")

	ErrIndexOutOfRange = errors.New("setlist index out of range")
	ErrNotATool        = errors.New("entry is not an overlay tool")
	ErrNoMessages      = errors.New("messages tool has no enabled messages")
)

// Room holds the identifiers of the operator's live session. The Session
// keeps them opaquely and stamps them onto every payload.
type Room struct {
	ID         string
	Pin        string
	Background string
}

// Broadcaster is the outbound real-time transport. The Session never consumes
// an acknowledgement; delivery is at-least-once, last-write-wins.
type Broadcaster interface {
	SendSlideUpdate(p Payload)
	NotifyMediaStatus(roomID string, showing bool)
}

// Entry is one slot of the operator's ordered program.
type Entry struct {
	Item Item `json:"item"`
}

// State is the "currently on screen" snapshot, one per room. Mutated only
// through Session operations and timer callbacks; every mutation ends in a
// broadcast.
type State struct {
	Current *Item
	// CurrentIndex is Current's position in the setlist, or -1 for a
	// transient item (quick slide, ad-hoc Bible passage) or no selection.
	CurrentIndex int
	// SlideIndex is -1 while an item is selected but nothing broadcast yet.
	SlideIndex    int
	CombinedIndex int
	Mode          DisplayMode
	BlankActive   bool

	combined *CombinedSet
}

func newState() State {
	return State{
		CurrentIndex:  -1,
		SlideIndex:    -1,
		CombinedIndex: -1,
		Mode:          ModeBilingual,
	}
}

// contentSnapshot is the primary-content baseline captured when an exclusive
// tool starts, so hiding the tool can put back what was on screen before any
// tool was shown.
type contentSnapshot struct {
	current       *Item
	currentIndex  int
	slideIndex    int
	combinedIndex int
	blankActive   bool
	combined      *CombinedSet
}

func (s *State) capture() *contentSnapshot {
	return &contentSnapshot{
		current:       s.Current,
		currentIndex:  s.CurrentIndex,
		slideIndex:    s.SlideIndex,
		combinedIndex: s.CombinedIndex,
		blankActive:   s.BlankActive,
		combined:      s.combined,
	}
}

func (s *State) restore(snap *contentSnapshot) {
	s.Current = snap.current
	s.CurrentIndex = snap.currentIndex
	s.SlideIndex = snap.slideIndex
	s.CombinedIndex = snap.combinedIndex
	s.BlankActive = snap.blankActive
	s.combined = snap.combined
}

// recomputeCombined rebuilds the combined-slide tables for the current item.
// Only meaningful in original-only mode on items that carry slides.
func (s *State) recomputeCombined() {
	if s.Mode == ModeOriginalOnly && s.Current != nil && s.Current.HasSlides() {
		s.combined = BuildCombinedSet(s.Current.Slides)
		s.CombinedIndex = s.combined.UnitOf(s.SlideIndex)
	} else {
		s.combined = nil
		s.CombinedIndex = -1
	}
}
