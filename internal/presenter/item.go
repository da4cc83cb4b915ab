package presenter

// ItemKind discriminates everything that can occupy a setlist slot.
type ItemKind string

const (
	KindSong         ItemKind = "song"
	KindBible        ItemKind = "bible"
	KindImage        ItemKind = "image"
	KindBlank        ItemKind = "blank"
	KindPresentation ItemKind = "presentation"
	KindYoutube      ItemKind = "youtube"
	KindSection      ItemKind = "section"
	KindTool         ItemKind = "tool"
)

// ToolKind discriminates the overlay tool variants.
type ToolKind string

const (
	ToolCountdown    ToolKind = "countdown"
	ToolAnnouncement ToolKind = "announcement"
	ToolMessages     ToolKind = "messages"
)

// Slide is one screen's worth of text in a song or Bible passage.
// OriginalText is the only required field.
type Slide struct {
	OriginalText        string `json:"original_text"`
	Transliteration     string `json:"transliteration,omitempty"`
	Translation         string `json:"translation,omitempty"`
	TranslationOverflow string `json:"translation_overflow,omitempty"`
	VerseType           string `json:"verse_type,omitempty"`
	VerseNumber         int    `json:"verse_number,omitempty"`
}

// PresentationSlide is one canvas slide of an imported presentation.
type PresentationSlide struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Message is a single entry of a rotating-messages tool.
type Message struct {
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}

// Item is the tagged union behind every setlist entry. Kind decides which
// fields are meaningful; the rest stay at their zero value.
type Item struct {
	Kind  ItemKind `json:"kind"`
	ID    string   `json:"id,omitempty"`
	Title string   `json:"title,omitempty"`

	// Song / Bible
	Slides           []Slide `json:"slides,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	IsTemporary      bool    `json:"is_temporary,omitempty"`
	Book             string  `json:"book,omitempty"`
	Chapter          int     `json:"chapter,omitempty"`

	// Image
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`

	// Presentation
	PresSlides   []PresentationSlide `json:"pres_slides,omitempty"`
	CanvasWidth  int                 `json:"canvas_width,omitempty"`
	CanvasHeight int                 `json:"canvas_height,omitempty"`

	// Youtube
	VideoID   string `json:"video_id,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`

	// Tool
	Tool             ToolKind  `json:"tool,omitempty"`
	CountdownSeconds int       `json:"countdown_seconds,omitempty"`
	CountdownMessage string    `json:"countdown_message,omitempty"`
	AnnouncementText string    `json:"announcement_text,omitempty"`
	Messages         []Message `json:"messages,omitempty"`
	MessageInterval  int       `json:"message_interval,omitempty"`
}

// NewSong builds a song item. A song with no slides is degraded to a single
// empty slide so slide-index navigation always has at least one element.
func NewSong(id, title string, slides []Slide, originalLanguage string) Item {
	if len(slides) == 0 {
		slides = []Slide{{}}
	}
	return Item{
		Kind:             KindSong,
		ID:               id,
		Title:            title,
		Slides:           slides,
		OriginalLanguage: originalLanguage,
	}
}

// NewBiblePassage builds a Bible item. Structurally a song with book/chapter;
// passages fetched ad hoc are temporary and never persisted.
func NewBiblePassage(id, title, book string, chapter int, slides []Slide) Item {
	if len(slides) == 0 {
		slides = []Slide{{}}
	}
	return Item{
		Kind:        KindBible,
		ID:          id,
		Title:       title,
		Book:        book,
		Chapter:     chapter,
		Slides:      slides,
		IsTemporary: true,
	}
}

func NewImage(id, name, url string) Item {
	return Item{Kind: KindImage, ID: id, Name: name, URL: url}
}

func NewBlank() Item {
	return Item{Kind: KindBlank}
}

func NewSection(title string) Item {
	return Item{Kind: KindSection, Title: title}
}

func NewPresentation(id, title string, slides []PresentationSlide, w, h int) Item {
	return Item{
		Kind:         KindPresentation,
		ID:           id,
		Title:        title,
		PresSlides:   slides,
		CanvasWidth:  w,
		CanvasHeight: h,
	}
}

func NewYoutube(videoID, title, thumbnail string) Item {
	return Item{Kind: KindYoutube, ID: videoID, Title: title, VideoID: videoID, Thumbnail: thumbnail}
}

func NewCountdownTool(title string, seconds int, message string) Item {
	return Item{
		Kind:             KindTool,
		Tool:             ToolCountdown,
		Title:            title,
		CountdownSeconds: seconds,
		CountdownMessage: message,
	}
}

func NewAnnouncementTool(title, text string) Item {
	return Item{Kind: KindTool, Tool: ToolAnnouncement, Title: title, AnnouncementText: text}
}

func NewMessagesTool(title string, messages []Message, intervalSeconds int) Item {
	if intervalSeconds <= 0 {
		intervalSeconds = 10
	}
	return Item{
		Kind:            KindTool,
		Tool:            ToolMessages,
		Title:           title,
		Messages:        messages,
		MessageInterval: intervalSeconds,
	}
}

// HasSlides reports whether slide-index navigation applies to the item.
func (it Item) HasSlides() bool {
	return it.Kind == KindSong || it.Kind == KindBible
}

// IsNavigable reports whether setlist-level navigation may land on the item.
// Section headers are organizational markers and tools are overlays; both
// consume a slot but are skipped by next/previous item.
func (it Item) IsNavigable() bool {
	return it.Kind != KindSection && it.Kind != KindTool
}

// SameItem decides whether two setlist occupants are "the same thing".
// Tools and sections are identified by list position (two identical countdown
// tools at different positions are different things); everything else is
// identified by kind+id (the same song dragged elsewhere is still that song).
func SameItem(a Item, aPos int, b Item, bPos int) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindTool || a.Kind == KindSection {
		return aPos >= 0 && aPos == bPos
	}
	if a.Kind == KindBlank {
		return aPos == bPos
	}
	return a.ID != "" && a.ID == b.ID
}
