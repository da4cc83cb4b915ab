package presenter

import (
	"reflect"
	"testing"
)

// P3: a run of exactly two equal verse types round-trips through both lookup
// tables.
func TestCombinedPairRoundTrip(t *testing.T) {
	slides := []Slide{
		{OriginalText: "intro"},
		{OriginalText: "v1a", VerseType: "Verse 1"},
		{OriginalText: "v1b", VerseType: "Verse 1"},
		{OriginalText: "chorus", VerseType: "Chorus"},
	}
	cs := BuildCombinedSet(slides)

	if cs.Len() != 3 {
		t.Fatalf("units = %d, want 3", cs.Len())
	}
	if !reflect.DeepEqual(cs.Indices(1), []int{1, 2}) {
		t.Fatalf("unit 1 = %v, want [1 2]", cs.Indices(1))
	}
	for _, orig := range []int{1, 2} {
		if cs.UnitOf(orig) != 1 {
			t.Errorf("UnitOf(%d) = %d, want 1", orig, cs.UnitOf(orig))
		}
	}
}

// Empty verse types never pair, even when adjacent.
func TestCombinedEmptyVerseTypeNeverPairs(t *testing.T) {
	slides := []Slide{{OriginalText: "a"}, {OriginalText: "b"}, {OriginalText: "c"}}
	cs := BuildCombinedSet(slides)
	if cs.Len() != 3 {
		t.Fatalf("units = %d, want 3 singletons", cs.Len())
	}
}

// Runs of 3+ become a pair plus a trailing singleton.
func TestCombinedLongRunCapsAtPairs(t *testing.T) {
	slides := []Slide{
		{OriginalText: "a", VerseType: "Verse 1"},
		{OriginalText: "b", VerseType: "Verse 1"},
		{OriginalText: "c", VerseType: "Verse 1"},
	}
	cs := BuildCombinedSet(slides)
	if cs.Len() != 2 {
		t.Fatalf("units = %d, want 2", cs.Len())
	}
	if !reflect.DeepEqual(cs.Indices(0), []int{0, 1}) || !reflect.DeepEqual(cs.Indices(1), []int{2}) {
		t.Fatalf("units = %v / %v, want [0 1] / [2]", cs.Indices(0), cs.Indices(1))
	}
}

// E2E scenario D: combined units drive navigation and the broadcast payload
// in original-only mode.
func TestScenarioOriginalOnlyCombinedBroadcast(t *testing.T) {
	song := NewSong("s1", "Song", []Slide{
		{OriginalText: "V1a", VerseType: "Verse 1"},
		{OriginalText: "V1b", VerseType: "Verse 1"},
		{OriginalText: "Chorus", VerseType: "Chorus"},
	}, "he")

	s, out, _, _ := newTestSession()
	s.Append(song)
	s.SetDisplayMode(ModeOriginalOnly)
	_ = s.SelectItem(0)

	st := s.Snapshot()
	if st.CombinedIndex != 0 {
		t.Fatalf("combined index = %d, want 0", st.CombinedIndex)
	}
	if got := out.last().Content.CombinedIndices; !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("combined indices = %v, want [0 1]", got)
	}

	// Advance one combined unit: lands on the lone chorus, no indices.
	s.NextSlide()
	st = s.Snapshot()
	if st.CombinedIndex != 1 || st.SlideIndex != 2 {
		t.Fatalf("expected unit 1 (slide 2), got %+v", st)
	}
	if got := out.last().Content.CombinedIndices; got != nil {
		t.Fatalf("unpaired unit must ship nil combined indices, got %v", got)
	}

	// Past the last unit: no-op (single entry setlist).
	emitted := out.count()
	s.NextSlide()
	if out.count() != emitted {
		t.Error("advance past last unit must not broadcast")
	}
	t.Logf("✅ combined navigation: 2 units over 3 slides")
}

// Switching display mode mid-song remaps the current slide into its unit.
func TestDisplayModeSwitchRemapsPosition(t *testing.T) {
	song := NewSong("s1", "Song", []Slide{
		{OriginalText: "a", VerseType: "V1"},
		{OriginalText: "b", VerseType: "V1"},
		{OriginalText: "c", VerseType: "C"},
	}, "he")

	s, _, _, _ := newTestSession()
	s.Append(song)
	_ = s.SelectItem(0)
	s.NextSlide() // bilingual: slide 1

	s.SetDisplayMode(ModeOriginalOnly)
	st := s.Snapshot()
	if st.CombinedIndex != 0 {
		t.Fatalf("slide 1 should map to unit 0, got %d", st.CombinedIndex)
	}

	s.SetDisplayMode(ModeBilingual)
	st = s.Snapshot()
	if st.CombinedIndex != -1 || st.SlideIndex != 1 {
		t.Fatalf("bilingual mode should drop combined state, got %+v", st)
	}
}

// Going backward into a song in original-only mode lands on its last unit.
func TestPrevItemLandsOnLastCombinedUnit(t *testing.T) {
	first := NewSong("s1", "First", []Slide{
		{OriginalText: "a", VerseType: "V1"},
		{OriginalText: "b", VerseType: "V1"},
		{OriginalText: "c", VerseType: "C"},
	}, "he")

	s, _, _, _ := newTestSession()
	s.Append(first)
	s.Append(testSong("s2", "Second", 1))
	s.SetDisplayMode(ModeOriginalOnly)
	_ = s.SelectItem(1)

	s.PrevSlide()
	st := s.Snapshot()
	if st.CurrentIndex != 0 || st.CombinedIndex != 1 || st.SlideIndex != 2 {
		t.Fatalf("expected last unit of first song, got %+v", st)
	}
}
