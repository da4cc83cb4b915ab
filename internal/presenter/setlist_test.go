package presenter

import (
	"errors"
	"testing"
)

// fakeStore is an in-memory SetlistStore.
type fakeStore struct {
	name   string
	items  []Item
	nextID uint
	linked map[string]uint
	saves  int
}

func newFakeStore(name string, items []Item) *fakeStore {
	return &fakeStore{name: name, items: items, nextID: 1, linked: map[string]uint{}}
}

func (f *fakeStore) LoadSetlist(id uint) (string, []Item, error) {
	return f.name, f.items, nil
}

func (f *fakeStore) SaveSetlist(roomID, name string, items []Item) (uint, error) {
	f.name = name
	f.items = items
	f.saves++
	return f.nextID, nil
}

func (f *fakeStore) LinkSetlist(roomID string, id uint) error {
	f.linked[roomID] = id
	return nil
}

func (f *fakeStore) UnlinkSetlist(roomID string) error {
	delete(f.linked, roomID)
	return nil
}

func TestStructuralOpsMarkDirty(t *testing.T) {
	s, _, _, _ := newTestSession()
	if s.HasUnsavedChanges() {
		t.Fatal("fresh session should be clean")
	}

	s.Append(testSong("s1", "First", 1))
	if !s.HasUnsavedChanges() {
		t.Error("append must mark dirty")
	}

	store := newFakeStore("", nil)
	if err := s.SaveToStore(store, "Sunday AM"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.HasUnsavedChanges() {
		t.Error("save must clear dirty")
	}

	s.Append(testSong("s2", "Second", 1))
	_ = s.MoveTo(1, 0)
	if !s.HasUnsavedChanges() {
		t.Error("reorder must mark dirty")
	}
}

func TestMoveToRemapsSelection(t *testing.T) {
	s, _, _, _ := newTestSession()
	s.Append(testSong("a", "A", 1))
	s.Append(testSong("b", "B", 1))
	s.Append(testSong("c", "C", 1))
	_ = s.SelectItem(2)

	if err := s.MoveTo(2, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	st := s.Snapshot()
	if st.CurrentIndex != 0 {
		t.Fatalf("current index = %d, want 0 after drag to front", st.CurrentIndex)
	}
	entries := s.Entries()
	if entries[0].Item.ID != "c" || entries[1].Item.ID != "a" {
		t.Fatalf("order after move = %s,%s,%s", entries[0].Item.ID, entries[1].Item.ID, entries[2].Item.ID)
	}

	// The same song at a new position is still "the same song": navigation
	// continues from the remembered position.
	s.NextItem()
	if st := s.Snapshot(); st.Current.ID != "a" {
		t.Errorf("next item = %s, want a", st.Current.ID)
	}
}

// Removing the overlay's source entry runs the stop sequence first, so no
// broadcast references deleted setlist data.
func TestRemoveAtCascadesOverlayStop(t *testing.T) {
	s, out, _, sched := newTestSession()
	s.Append(testSong("s1", "Song", 2))
	s.Append(NewCountdownTool("Countdown", 60, ""))

	_ = s.SelectItem(0)
	_ = s.StartCountdown(1)

	if err := s.RemoveAt(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.Entries()) != 1 {
		t.Fatalf("entries = %d, want 1", len(s.Entries()))
	}
	p := out.last()
	if p.Overlay != nil {
		t.Fatalf("overlay still broadcast after source removal: %+v", p.Overlay)
	}
	if p.Content.Kind != ContentSlide || p.Content.SlideIndex != 0 {
		t.Fatalf("restore content = %+v, want pre-tool slide", p.Content)
	}
	if sched.PendingCount() != 0 {
		t.Error("countdown timer still pending after cascade stop")
	}
	t.Logf("✅ cascade stop before removal")
}

// Removing the current selection clears it and broadcasts the cleared state.
func TestRemoveAtDeselectsCurrent(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("s1", "First", 1))
	s.Append(testSong("s2", "Second", 1))
	_ = s.SelectItem(1)

	if err := s.RemoveAt(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	st := s.Snapshot()
	if st.Current != nil || st.CurrentIndex != -1 {
		t.Fatalf("selection not cleared: %+v", st)
	}
	if out.last().Content.Kind != ContentNone {
		t.Errorf("payload content = %s, want none", out.last().Content.Kind)
	}
}

// Removing an earlier entry shifts the remembered indexes.
func TestRemoveAtShiftsIndexes(t *testing.T) {
	s, _, _, _ := newTestSession()
	s.Append(testSong("a", "A", 1))
	s.Append(testSong("b", "B", 1))
	_ = s.SelectItem(1)

	_ = s.RemoveAt(0)
	if st := s.Snapshot(); st.CurrentIndex != 0 || st.Current.ID != "b" {
		t.Fatalf("index not shifted: %+v", st)
	}
}

// A dirty setlist guards a destructive load with a three-way resolution.
func TestLoadGuardsUnsavedChanges(t *testing.T) {
	s, _, _, _ := newTestSession()
	s.Append(testSong("draft", "Draft", 1))

	store := newFakeStore("Easter", []Item{testSong("x", "X", 1)})

	err := s.LoadFromStore(store, 1, ResolveAsk)
	if !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("err = %v, want ErrUnsavedChanges", err)
	}
	if len(s.Entries()) != 1 || s.Entries()[0].Item.ID != "draft" {
		t.Fatal("cancelled load must not touch the setlist")
	}

	if err := s.LoadFromStore(store, 1, ResolveDiscard); err != nil {
		t.Fatalf("discard load: %v", err)
	}
	if s.HasUnsavedChanges() {
		t.Error("load must reset dirty")
	}
	if got := s.Entries(); len(got) != 1 || got[0].Item.ID != "x" {
		t.Fatalf("load did not replace entries: %+v", got)
	}
	if store.linked["room-1"] != 1 {
		t.Error("load must link the setlist to the room")
	}
}

// ResolveSave persists the dirty list before loading the new one.
func TestLoadWithResolveSave(t *testing.T) {
	s, _, _, _ := newTestSession()
	s.Append(NewCountdownTool("Countdown", 120, "soon"))

	store := newFakeStore("Next week", []Item{testSong("n", "N", 1)})
	if err := s.LoadFromStore(store, 1, ResolveSave); err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
	// Tool entries are persisted too, so a saved program reloads intact.
	if len(store.items) != 1 || store.items[0].Tool != ToolCountdown {
		t.Fatalf("saved items = %+v, want the countdown tool", store.items)
	}
}

// Loading stops every overlay and clears the selection.
func TestLoadResetsLiveState(t *testing.T) {
	s, out, _, sched := newTestSession()
	s.Append(testSong("s1", "Song", 2))
	s.Append(NewCountdownTool("Countdown", 60, ""))
	_ = s.SelectItem(0)
	_ = s.StartCountdown(1)
	s.ShowAnnouncement("notice")

	store := newFakeStore("Clean", []Item{testSong("c", "C", 1)})
	if err := s.LoadFromStore(store, 2, ResolveDiscard); err != nil {
		t.Fatalf("load: %v", err)
	}

	p := out.last()
	if p.Overlay != nil || p.Content.Kind != ContentNone {
		t.Fatalf("post-load payload = %+v, want empty state", p)
	}
	if sched.PendingCount() != 0 {
		t.Error("timers survived the load")
	}
}

// Removing the entry an exclusive tool captured as its restore baseline must
// not bring that entry back: the stop restores a cleared selection instead of
// broadcasting deleted setlist data.
func TestRemoveRestoreBaselineEntry(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("victim", "Victim", 2))
	s.Append(NewCountdownTool("Countdown", 300, ""))

	_ = s.SelectItem(0)
	_ = s.StartCountdown(1)

	if err := s.RemoveAt(0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	s.StopCountdown()

	st := s.Snapshot()
	if st.Current != nil || st.CurrentIndex != -1 {
		t.Fatalf("restore resurrected the deleted entry: %+v", st)
	}
	p := out.last()
	if p.Content.Kind != ContentNone {
		t.Fatalf("restore content = %+v, want none after baseline removal", p.Content)
	}
	if p.Content.ItemID == "victim" {
		t.Fatal("broadcast references the deleted song")
	}
	t.Logf("✅ baseline removal degrades the restore")
}

// Setlist edits while an exclusive tool is live shift its restore baseline
// along, so the stop still lands on the same song at its new position.
func TestEditsRemapRestoreBaseline(t *testing.T) {
	s, out, _, _ := newTestSession()
	s.Append(testSong("a", "A", 1))
	s.Append(NewCountdownTool("Countdown", 60, ""))

	_ = s.SelectItem(0)
	_ = s.StartCountdown(1)

	if err := s.InsertAt(0, NewSection("Opening")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.MoveTo(0, 2); err != nil {
		t.Fatalf("move: %v", err)
	}
	// Order is now: song, countdown, section.

	s.StopCountdown()

	st := s.Snapshot()
	if st.Current == nil || st.Current.ID != "a" || st.CurrentIndex != 0 {
		t.Fatalf("restore baseline lost through edits: %+v", st)
	}
	p := out.last()
	if p.Content.Kind != ContentSlide || p.Content.ItemID != "a" {
		t.Fatalf("restore content = %+v, want song a", p.Content)
	}
}
