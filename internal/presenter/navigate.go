package presenter

// Navigation resolver: computes the next/previous presentable unit, where a
// unit is either a slide within the current item or an adjacent setlist
// entry. All operations are no-ops with no current item, and while blank is
// active (the operator must explicitly un-blank before navigating).

// NextSlide advances one slide within the current item, falling through to
// the next setlist entry at the boundary. In original-only mode it advances
// one combined unit at a time.
func (s *Session) NextSlide() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.navFrozen() {
		return
	}
	cur := s.st.Current

	switch {
	case cur.HasSlides():
		if s.st.Mode == ModeOriginalOnly && s.st.combined != nil {
			if s.st.CombinedIndex+1 < s.st.combined.Len() {
				s.st.CombinedIndex++
				s.st.SlideIndex = s.st.combined.Indices(s.st.CombinedIndex)[0]
				s.contentChanged()
				return
			}
		} else if s.st.SlideIndex+1 < len(cur.Slides) {
			s.st.SlideIndex++
			s.contentChanged()
			return
		}
	case cur.Kind == KindPresentation:
		if s.st.SlideIndex+1 < len(cur.PresSlides) {
			s.st.SlideIndex++
			s.contentChanged()
			return
		}
	}
	s.moveItem(+1)
}

// PrevSlide is the mirror of NextSlide.
func (s *Session) PrevSlide() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.navFrozen() {
		return
	}
	cur := s.st.Current

	switch {
	case cur.HasSlides():
		if s.st.Mode == ModeOriginalOnly && s.st.combined != nil {
			if s.st.CombinedIndex > 0 {
				s.st.CombinedIndex--
				s.st.SlideIndex = s.st.combined.Indices(s.st.CombinedIndex)[0]
				s.contentChanged()
				return
			}
		} else if s.st.SlideIndex > 0 {
			s.st.SlideIndex--
			s.contentChanged()
			return
		}
	case cur.Kind == KindPresentation:
		if s.st.SlideIndex > 0 {
			s.st.SlideIndex--
			s.contentChanged()
			return
		}
	}
	s.moveItem(-1)
}

// NextItem jumps to the next navigable setlist entry regardless of remaining
// slides in the current item.
func (s *Session) NextItem() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.navFrozen() {
		return
	}
	s.moveItem(+1)
}

// PrevItem jumps to the previous navigable setlist entry.
func (s *Session) PrevItem() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.navFrozen() {
		return
	}
	s.moveItem(-1)
}

func (s *Session) navFrozen() bool {
	return s.st.Current == nil || s.st.BlankActive
}

// currentPosition locates the current item in the setlist, preferring the
// remembered index and falling back to identity search. Returns -1 for
// transient items.
func (s *Session) currentPosition() int {
	cur := s.st.Current
	if cur == nil {
		return -1
	}
	if i := s.st.CurrentIndex; i >= 0 && i < len(s.entries) {
		if SameItem(s.entries[i].Item, i, *cur, i) {
			return i
		}
	}
	for i, e := range s.entries {
		if SameItem(e.Item, i, *cur, s.st.CurrentIndex) {
			return i
		}
	}
	return -1
}

// moveItem lands on the adjacent navigable entry in the given direction.
// Section headers and tool entries are transparent. Landing on a song picks
// slide 0 going forward and the last slide going backward; landing on a
// blank entry activates blank.
func (s *Session) moveItem(dir int) {
	pos := s.currentPosition()
	if pos < 0 {
		return
	}
	for i := pos + dir; i >= 0 && i < len(s.entries); i += dir {
		if !s.entries[i].Item.IsNavigable() {
			continue
		}
		s.landOn(i, dir)
		return
	}
	// Already at the edge of the setlist: no-op.
}

func (s *Session) landOn(index, dir int) {
	it := s.entries[index].Item
	item := it
	s.st.Current = &item
	s.st.CurrentIndex = index
	s.st.BlankActive = it.Kind == KindBlank

	switch {
	case it.HasSlides():
		if dir > 0 {
			s.st.SlideIndex = 0
		} else {
			s.st.SlideIndex = len(it.Slides) - 1
		}
		s.st.recomputeCombined()
		if s.st.Mode == ModeOriginalOnly && s.st.combined != nil && dir < 0 {
			// Going backward lands on the last combined unit.
			s.st.CombinedIndex = s.st.combined.Len() - 1
			s.st.SlideIndex = s.st.combined.Indices(s.st.CombinedIndex)[0]
		}
	case it.Kind == KindPresentation && len(it.PresSlides) > 0:
		if dir > 0 {
			s.st.SlideIndex = 0
		} else {
			s.st.SlideIndex = len(it.PresSlides) - 1
		}
		s.st.recomputeCombined()
	default:
		s.st.SlideIndex = -1
		s.st.recomputeCombined()
	}
	s.contentChanged()
}
