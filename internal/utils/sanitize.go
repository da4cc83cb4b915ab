package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

// CleanFilename turns "what_a-friend.mp3" into "what a friend" for display.
func CleanFilename(filename string) string {
	ext := filepath.Ext(filename)
	clean := strings.TrimSuffix(filename, ext)
	clean = strings.ReplaceAll(clean, "_", " ")
	clean = strings.ReplaceAll(clean, "-", " ")
	return clean
}

// Sanitize makes text safe for use inside a storage key.
func Sanitize(text, def string) string {
	if text == "" {
		return def
	}
	reg, _ := regexp.Compile(`[^a-zA-Z0-9\-\s]+`)
	clean := reg.ReplaceAllString(text, "")
	return strings.ReplaceAll(strings.TrimSpace(clean), " ", "_")
}
