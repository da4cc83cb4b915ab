package bible

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

const sampleResponse = `{
	"reference": "John 3:16-18",
	"verses": [
		{"book_name": "John", "chapter": 3, "verse": 16, "text": "For God so loved the world "},
		{"book_name": "John", "chapter": 3, "verse": 17, "text": "For God did not send his Son "},
		{"book_name": "John", "chapter": 3, "verse": 18, "text": "Whoever believes in him "}
	]
}`

func TestLookupGroupsVersesIntoSlides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("translation") != "he" {
			t.Errorf("expected translation=he, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "he")
	passage, err := client.Lookup("John 3:16-18")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if passage.Book != "John" || passage.Chapter != 3 {
		t.Errorf("wrong passage identity: %+v", passage)
	}
	if len(passage.Verses) != 3 {
		t.Fatalf("expected 3 verses, got %d", len(passage.Verses))
	}
	if passage.Verses[0].Text != "For God so loved the world" {
		t.Errorf("verse text should be trimmed, got %q", passage.Verses[0].Text)
	}

	item := passage.ToItem()
	if item.Kind != presenter.KindBible {
		t.Fatalf("expected a bible item, got %s", item.Kind)
	}
	// 3 verses, 2 per slide -> 2 slides
	if len(item.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(item.Slides))
	}
	if item.Slides[1].VerseNumber != 18 {
		t.Errorf("second slide should start at verse 18, got %d", item.Slides[1].VerseNumber)
	}
}

func TestLookupErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.Lookup("Nonsense 99"); err == nil {
		t.Fatal("expected an error on 404")
	}
}
