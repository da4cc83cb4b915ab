package models

import "gorm.io/gorm"

// Setlist is a saved program of presentable items.
type Setlist struct {
	gorm.Model

	Name string `gorm:"index;not null" json:"name"`
	// RoomID links the setlist to a live room while a session uses it.
	// Empty when unlinked.
	RoomID string `gorm:"index" json:"room_id"`

	Items []SetlistItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// SetlistItem is one ordered slot of a saved setlist. Position carries the
// user-controlled order; Kind mirrors the presenter item kind and Payload
// holds the full item JSON, so every variant (tools included) survives a
// save/reload cycle.
type SetlistItem struct {
	gorm.Model

	SetlistID uint   `gorm:"index" json:"setlist_id"`
	Position  int    `gorm:"not null" json:"position"`
	Kind      string `gorm:"size:20;not null" json:"kind"`
	// SongID references the library when the item came from it, so library
	// edits can be traced back. Inline items (bible, tools, sections) leave
	// it null.
	SongID  *uint  `gorm:"index" json:"song_id"`
	Payload string `gorm:"type:text" json:"payload"`
}
