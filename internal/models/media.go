package models

import "gorm.io/gorm"

// MediaFile is an uploaded asset: a slide background, a projected image, or a
// backing track for the worship team.
type MediaFile struct {
	gorm.Model

	// Key is the storage path inside the media bucket (images/... or audio/...)
	Key         string `gorm:"uniqueIndex;not null" json:"key"`
	Name        string `gorm:"index" json:"name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`

	// Audio tag metadata for backing tracks
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}
