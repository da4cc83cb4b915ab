package presenter

// ContentKind tags the primary-content block of an outbound payload.
type ContentKind string

const (
	ContentNone         ContentKind = "none"
	ContentBlank        ContentKind = "blank"
	ContentSlide        ContentKind = "slide"
	ContentImage        ContentKind = "image"
	ContentPresentation ContentKind = "presentation"
	ContentYoutube      ContentKind = "youtube"
)

// DisplayMode selects how viewers render a slide.
type DisplayMode string

const (
	ModeBilingual    DisplayMode = "bilingual"
	ModeOriginalOnly DisplayMode = "original"
)

// ContentBlock is the "main thing on screen" part of a payload.
type ContentBlock struct {
	Kind       ContentKind `json:"kind"`
	ItemID     string      `json:"item_id,omitempty"`
	Title      string      `json:"title,omitempty"`
	Slide      *Slide      `json:"slide,omitempty"`
	SlideIndex int         `json:"slide_index,omitempty"`
	// CombinedIndices carries every underlying original slide index of a
	// combined unit so the viewer can render all of them. Nil for a single
	// unpaired slide and in bilingual mode.
	CombinedIndices []int              `json:"combined_indices,omitempty"`
	URL             string             `json:"url,omitempty"`
	PresSlide       *PresentationSlide `json:"pres_slide,omitempty"`
}

// CountdownOverlay is the countdown block of a payload. RemainingSeconds is
// read from the live clock at emit time, never from a captured value.
type CountdownOverlay struct {
	RemainingSeconds int    `json:"remaining_seconds"`
	Message          string `json:"message,omitempty"`
	EndsAtUnix       int64  `json:"ends_at"`
	Running          bool   `json:"running"`
}

type AnnouncementOverlay struct {
	Text string `json:"text"`
}

type MessageOverlay struct {
	Text            string `json:"text"`
	IntervalSeconds int    `json:"interval_seconds"`
}

// OverlayBlock composes what renders on top of the primary content.
// Foreground marks which tool is visibly in front; a countdown underneath an
// announcement still travels in the same payload so the viewer can resume it
// the instant the announcement hides.
type OverlayBlock struct {
	Foreground   ToolKind             `json:"foreground"`
	Countdown    *CountdownOverlay    `json:"countdown,omitempty"`
	Announcement *AnnouncementOverlay `json:"announcement,omitempty"`
	Message      *MessageOverlay      `json:"message,omitempty"`
}

// PreviewBlock gives viewers a peek at the upcoming slide.
type PreviewBlock struct {
	Text string `json:"text"`
}

// Payload is the Broadcast Encoder's output, pushed to every viewer in the
// room on each state-affecting action. Room identifiers ride along so the
// transport never needs a server-side lookup.
type Payload struct {
	RoomID      string        `json:"room_id"`
	Pin         string        `json:"pin"`
	Background  string        `json:"background,omitempty"`
	DisplayMode DisplayMode   `json:"display_mode"`
	Content     ContentBlock  `json:"content"`
	Overlay     *OverlayBlock `json:"overlay,omitempty"`
	NextPreview *PreviewBlock `json:"next_preview,omitempty"`
}
