package presenter

// Setlist mutation log: append, remove and splice-reorder are the only
// structural operations; each marks the setlist dirty. Load/save go through
// the external SetlistStore.

// DirtyResolution is the operator's answer to the unsaved-changes prompt
// raised by a destructive load.
type DirtyResolution int

const (
	// ResolveAsk surfaces ErrUnsavedChanges instead of loading.
	ResolveAsk DirtyResolution = iota
	// ResolveSave saves the current setlist before loading.
	ResolveSave
	// ResolveDiscard drops unsaved changes and loads.
	ResolveDiscard
)

// SetlistStore is the external persistent setlist collaborator.
type SetlistStore interface {
	LoadSetlist(id uint) (name string, items []Item, err error)
	SaveSetlist(roomID, name string, items []Item) (uint, error)
	LinkSetlist(roomID string, id uint) error
	UnlinkSetlist(roomID string) error
}

// Append adds an item to the end of the setlist.
func (s *Session) Append(it Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Item: it})
	s.dirty = true
}

// InsertAt places an item at the given position, shifting later entries.
func (s *Session) InsertAt(index int, it Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index > len(s.entries) {
		return ErrIndexOutOfRange
	}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[index+1:], s.entries[index:])
	s.entries[index] = Entry{Item: it}
	s.shiftIndexes(index, +1)
	s.dirty = true
	return nil
}

// RemoveAt deletes the entry at index. If the entry sources an active
// overlay, that overlay's stop sequence runs first (restoring prior state)
// so no broadcast is left referencing deleted setlist data; if it is the
// current selection, the selection is cleared and the clear is broadcast.
func (s *Session) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.entries) {
		return ErrIndexOutOfRange
	}

	if s.countdown.active && s.countdown.sourceIndex == index {
		s.stopCountdownLocked()
	}
	if s.messages.active && s.messages.sourceIndex == index {
		s.stopMessagesLocked(true)
	}
	if s.announcement.visible && s.announcement.sourceIndex == index {
		s.hideAnnouncementLocked()
	}

	// If an exclusive tool is holding this entry as its restore baseline,
	// the baseline must not come back after the delete: degrade it to a
	// cleared selection so the eventual restore broadcasts nothing stale.
	if s.snapshot != nil && s.snapshot.currentIndex == index {
		s.snapshot = &contentSnapshot{currentIndex: -1, slideIndex: -1, combinedIndex: -1}
	}

	deselected := false
	if s.st.CurrentIndex == index {
		s.st.Current = nil
		s.st.CurrentIndex = -1
		s.st.SlideIndex = -1
		s.st.BlankActive = false
		s.st.recomputeCombined()
		deselected = true
	}

	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	s.shiftIndexes(index, -1)
	s.dirty = true

	if deselected {
		s.broadcast()
	}
	return nil
}

// MoveTo reorders the setlist by moving the entry at from to position to
// (splice semantics, matching drag-and-drop).
func (s *Session) MoveTo(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 || from >= len(s.entries) || to < 0 || to >= len(s.entries) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	moved := s.entries[from]
	s.entries = append(s.entries[:from], s.entries[from+1:]...)
	s.entries = append(s.entries[:to], append([]Entry{moved}, s.entries[to:]...)...)

	remap := func(idx int) int {
		switch {
		case idx == from:
			return to
		case from < idx && idx <= to:
			return idx - 1
		case to <= idx && idx < from:
			return idx + 1
		}
		return idx
	}
	if s.st.CurrentIndex >= 0 {
		s.st.CurrentIndex = remap(s.st.CurrentIndex)
	}
	if s.countdown.active {
		s.countdown.sourceIndex = remap(s.countdown.sourceIndex)
	}
	if s.messages.active {
		s.messages.sourceIndex = remap(s.messages.sourceIndex)
	}
	if s.announcement.visible && s.announcement.sourceIndex >= 0 {
		s.announcement.sourceIndex = remap(s.announcement.sourceIndex)
	}
	if s.snapshot != nil && s.snapshot.currentIndex >= 0 {
		s.snapshot.currentIndex = remap(s.snapshot.currentIndex)
	}
	s.dirty = true
	return nil
}

// shiftIndexes adjusts every stored setlist position after an insert or
// delete at index.
func (s *Session) shiftIndexes(index, delta int) {
	adjust := func(idx int) int {
		if idx >= index {
			return idx + delta
		}
		return idx
	}
	if s.st.CurrentIndex > index || (delta > 0 && s.st.CurrentIndex == index) {
		s.st.CurrentIndex = adjust(s.st.CurrentIndex)
	}
	if s.countdown.active && s.countdown.sourceIndex >= index {
		s.countdown.sourceIndex = adjust(s.countdown.sourceIndex)
	}
	if s.messages.active && s.messages.sourceIndex >= index {
		s.messages.sourceIndex = adjust(s.messages.sourceIndex)
	}
	if s.announcement.visible && s.announcement.sourceIndex >= index {
		s.announcement.sourceIndex = adjust(s.announcement.sourceIndex)
	}
	if s.snapshot != nil && s.snapshot.currentIndex >= 0 &&
		(s.snapshot.currentIndex > index || (delta > 0 && s.snapshot.currentIndex == index)) {
		s.snapshot.currentIndex = adjust(s.snapshot.currentIndex)
	}
}

// HasUnsavedChanges reports whether structural edits happened since the last
// save or load.
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SetlistName returns the name of the loaded setlist, if any.
func (s *Session) SetlistName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setlistName
}

// LoadFromStore replaces the whole setlist from the store. A dirty setlist
// is guarded: with ResolveAsk the load fails with ErrUnsavedChanges, with
// ResolveSave the current list is saved first, with ResolveDiscard the edits
// are dropped. On success all overlays are stopped, the selection cleared,
// and the cleared state broadcast.
func (s *Session) LoadFromStore(store SetlistStore, id uint, res DirtyResolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		switch res {
		case ResolveSave:
			if err := s.saveLocked(store, s.setlistName); err != nil {
				return err
			}
		case ResolveDiscard:
			// fall through
		default:
			return ErrUnsavedChanges
		}
	}

	name, items, err := store.LoadSetlist(id)
	if err != nil {
		return err
	}

	s.stopExclusiveSilent()
	if s.announcement.cancel != nil {
		s.announcement.cancel()
	}
	s.announcement = announcementState{sourceIndex: -1}

	s.entries = make([]Entry, len(items))
	for i, it := range items {
		s.entries[i] = Entry{Item: it}
	}
	s.setlistName = name
	s.linkedID = id
	s.dirty = false

	s.st.Current = nil
	s.st.CurrentIndex = -1
	s.st.SlideIndex = -1
	s.st.BlankActive = false
	s.st.recomputeCombined()

	if s.room != nil {
		if err := store.LinkSetlist(s.room.ID, id); err != nil {
			s.logf("⚠️ link setlist %d: %v", id, err)
		}
	}
	s.broadcast()
	return nil
}

// SaveToStore persists the current setlist, including tool entries, so a
// saved program survives a reload intact.
func (s *Session) SaveToStore(store SetlistStore, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(store, name)
}

func (s *Session) saveLocked(store SetlistStore, name string) error {
	if name == "" {
		name = s.setlistName
	}
	items := make([]Item, len(s.entries))
	for i, e := range s.entries {
		items[i] = e.Item
	}
	roomID := ""
	if s.room != nil {
		roomID = s.room.ID
	}
	id, err := store.SaveSetlist(roomID, name, items)
	if err != nil {
		return err
	}
	s.linkedID = id
	s.setlistName = name
	s.dirty = false
	return nil
}
