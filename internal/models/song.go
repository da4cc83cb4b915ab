package models

import (
	"time"

	"gorm.io/gorm"
)

// Song is a library song: freeform lyrics plus the metadata the presenter
// needs to build slides.
type Song struct {
	gorm.Model

	Title            string `gorm:"index;not null" json:"title"`
	Author           string `gorm:"index" json:"author"`
	OriginalLanguage string `gorm:"size:10;default:'he'" json:"original_language"`
	// Lyrics is the freeform source text; stanzas separated by blank lines,
	// optional [Verse 1] style markers, " || " for inline translations.
	Lyrics string `gorm:"type:text" json:"lyrics"`
	Tags   string `gorm:"index" json:"tags"`

	// Usage stats for the library view
	UseCount int        `gorm:"default:0" json:"use_count"`
	LastUsed *time.Time `gorm:"index" json:"last_used"`
}
