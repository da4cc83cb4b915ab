package presenter

import "testing"

func TestParseLyricsStanzasAndMarkers(t *testing.T) {
	text := "[Verse 1]\nAmazing grace\nHow sweet the sound\n\n[Chorus]\nPraise God\n\n\nUnmarked stanza"
	slides := ParseLyrics(text)

	if len(slides) != 3 {
		t.Fatalf("slides = %d, want 3", len(slides))
	}
	if slides[0].VerseType != "Verse 1" || slides[0].VerseNumber != 1 {
		t.Errorf("slide 0 marker = %q/%d", slides[0].VerseType, slides[0].VerseNumber)
	}
	if slides[0].OriginalText != "Amazing grace\nHow sweet the sound" {
		t.Errorf("slide 0 text = %q", slides[0].OriginalText)
	}
	if slides[1].VerseType != "Chorus" || slides[1].VerseNumber != 0 {
		t.Errorf("slide 1 marker = %q/%d", slides[1].VerseType, slides[1].VerseNumber)
	}
	if slides[2].VerseType != "" {
		t.Errorf("unmarked stanza got verse type %q", slides[2].VerseType)
	}
}

func TestParseLyricsBilingualLines(t *testing.T) {
	slides := ParseLyrics("הללויה || Hallelujah\nשיר חדש || A new song")
	if len(slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(slides))
	}
	if slides[0].OriginalText != "הללויה\nשיר חדש" {
		t.Errorf("original = %q", slides[0].OriginalText)
	}
	if slides[0].Translation != "Hallelujah\nA new song" {
		t.Errorf("translation = %q", slides[0].Translation)
	}
}

func TestParseLyricsWindowsNewlinesAndEmpty(t *testing.T) {
	if got := ParseLyrics("  \r\n\r\n  "); got != nil {
		t.Errorf("blank input should yield no slides, got %v", got)
	}
	slides := ParseLyrics("line one\r\nline two\r\n\r\nstanza two")
	if len(slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(slides))
	}
}
