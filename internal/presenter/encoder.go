package presenter

// Broadcast encoder: the single choke point producing the outbound "show
// this" message. Every state-affecting operation calls broadcast() while
// holding the session lock, so viewers converge to the latest state in call
// order.

// broadcast composes and sends the payload for the current state. A session
// without a room or transport is a guarded no-op: many callers are timer
// callbacks that cannot handle a failure.
func (s *Session) broadcast() {
	if s.room == nil || s.out == nil {
		s.logf("broadcast skipped: no active room")
		return
	}

	// Showing anything remotely supersedes local-HDMI-only media.
	if s.localMedia {
		s.localMedia = false
		s.out.NotifyMediaStatus(s.room.ID, false)
	}

	p := s.encode()
	broadcastsTotal.WithLabelValues(string(p.Content.Kind)).Inc()
	s.out.SendSlideUpdate(p)
}

// encode builds the wire payload from live state. Countdown remaining time is
// derived from the clock at emit time, never from a value captured when a
// timer was scheduled.
func (s *Session) encode() Payload {
	p := Payload{
		RoomID:      s.room.ID,
		Pin:         s.room.Pin,
		Background:  s.room.Background,
		DisplayMode: s.st.Mode,
		Content:     s.encodeContent(),
		Overlay:     s.encodeOverlay(),
		NextPreview: s.encodePreview(),
	}
	return p
}

func (s *Session) encodeContent() ContentBlock {
	// Blank always wins over slide content.
	if s.st.BlankActive {
		return ContentBlock{Kind: ContentBlank}
	}
	cur := s.st.Current
	if cur == nil {
		return ContentBlock{Kind: ContentNone}
	}

	switch cur.Kind {
	case KindBlank:
		return ContentBlock{Kind: ContentBlank}

	case KindSong, KindBible:
		if s.st.SlideIndex < 0 || s.st.SlideIndex >= len(cur.Slides) {
			// Selected but nothing broadcast yet.
			return ContentBlock{Kind: ContentNone}
		}
		cb := ContentBlock{
			Kind:       ContentSlide,
			ItemID:     cur.ID,
			Title:      cur.Title,
			Slide:      &cur.Slides[s.st.SlideIndex],
			SlideIndex: s.st.SlideIndex,
		}
		// A combined unit ships all underlying original indices; a lone
		// unpaired slide ships none.
		if s.st.Mode == ModeOriginalOnly && s.st.combined != nil {
			if idx := s.st.combined.Indices(s.st.CombinedIndex); len(idx) > 1 {
				cb.CombinedIndices = idx
			}
		}
		return cb

	case KindImage:
		return ContentBlock{Kind: ContentImage, ItemID: cur.ID, Title: cur.Name, URL: cur.URL}

	case KindPresentation:
		cb := ContentBlock{Kind: ContentPresentation, ItemID: cur.ID, Title: cur.Title}
		if s.st.SlideIndex >= 0 && s.st.SlideIndex < len(cur.PresSlides) {
			cb.Slide = nil
			cb.SlideIndex = s.st.SlideIndex
			cb.PresSlide = &cur.PresSlides[s.st.SlideIndex]
		}
		return cb

	case KindYoutube:
		return ContentBlock{Kind: ContentYoutube, ItemID: cur.VideoID, Title: cur.Title, URL: cur.Thumbnail}

	case KindTool:
		// An exclusive tool occupies the full screen; the overlay block
		// carries it, the content slot stays empty.
		return ContentBlock{Kind: ContentNone}
	}
	return ContentBlock{Kind: ContentNone}
}

// encodeOverlay applies the overlay precedence rules: an announcement takes
// the foreground slot, but a countdown active underneath is still carried so
// the viewer can resume showing it the instant the announcement hides.
func (s *Session) encodeOverlay() *OverlayBlock {
	var ob OverlayBlock

	if s.countdown.active {
		remaining := int(s.countdown.endAt.Sub(s.clock.Now()).Seconds() + 0.5)
		if remaining < 0 {
			remaining = 0
		}
		ob.Countdown = &CountdownOverlay{
			RemainingSeconds: remaining,
			Message:          s.countdown.message,
			EndsAtUnix:       s.countdown.endAt.Unix(),
			Running:          s.countdown.running,
		}
		ob.Foreground = ToolCountdown
	}
	if s.messages.active {
		ob.Message = &MessageOverlay{
			Text:            s.messages.items[s.messages.pos].Text,
			IntervalSeconds: int(s.messages.interval.Seconds()),
		}
		ob.Foreground = ToolMessages
	}
	if s.announcement.visible {
		ob.Announcement = &AnnouncementOverlay{Text: s.announcement.text}
		ob.Foreground = ToolAnnouncement
	}

	if ob.Countdown == nil && ob.Message == nil && ob.Announcement == nil {
		return nil
	}
	return &ob
}

// encodePreview peeks at the upcoming slide within the current item, if any.
func (s *Session) encodePreview() *PreviewBlock {
	cur := s.st.Current
	if cur == nil || s.st.BlankActive || !cur.HasSlides() {
		return nil
	}
	next := -1
	if s.st.Mode == ModeOriginalOnly && s.st.combined != nil {
		if s.st.CombinedIndex+1 < s.st.combined.Len() {
			next = s.st.combined.Indices(s.st.CombinedIndex + 1)[0]
		}
	} else if s.st.SlideIndex >= 0 && s.st.SlideIndex+1 < len(cur.Slides) {
		next = s.st.SlideIndex + 1
	}
	if next < 0 || next >= len(cur.Slides) {
		return nil
	}
	return &PreviewBlock{Text: cur.Slides[next].OriginalText}
}
