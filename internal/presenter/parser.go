package presenter

import (
	"strconv"
	"strings"
)

// ParseLyrics splits freeform song text into slides: stanzas are separated by
// blank lines, a leading [Verse 1] / [Chorus] style marker tags the stanza's
// verse type, and a line containing " || " splits into original text and
// translation.
func ParseLyrics(text string) []Slide {
	var slides []Slide

	for _, block := range strings.Split(normalizeNewlines(text), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		var slide Slide
		var original, translation []string

		lines := strings.Split(block, "\n")
		for i, line := range lines {
			line = strings.TrimSpace(line)
			if i == 0 && strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
				slide.VerseType, slide.VerseNumber = parseVerseMarker(line)
				continue
			}
			if left, right, ok := strings.Cut(line, " || "); ok {
				original = append(original, strings.TrimSpace(left))
				translation = append(translation, strings.TrimSpace(right))
				continue
			}
			original = append(original, line)
		}

		slide.OriginalText = strings.Join(original, "\n")
		slide.Translation = strings.Join(translation, "\n")
		if slide.OriginalText == "" && slide.Translation == "" {
			continue
		}
		slides = append(slides, slide)
	}
	return slides
}

// parseVerseMarker reads "[Verse 1]" into ("Verse 1", 1) and "[Chorus]" into
// ("Chorus", 0).
func parseVerseMarker(line string) (string, int) {
	label := strings.TrimSpace(strings.Trim(line, "[]"))
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return "", 0
	}
	if n, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
		return label, n
	}
	return label, 0
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
