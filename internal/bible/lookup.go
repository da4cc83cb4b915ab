package bible

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shilo-maker/solupresenter-sub003/internal/presenter"
)

// Passage is a fetched chapter-or-range, ready to be turned into slides.
type Passage struct {
	Reference string
	Book      string
	Chapter   int
	Verses    []Verse
}

type Verse struct {
	Number int
	Text   string
}

// Client fetches bible text from a bible-api.com compatible endpoint.
type Client struct {
	baseURL  string
	language string
	http     *http.Client
}

func NewClient(baseURL, language string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup fetches a reference like "John 3:16-18" or "Psalm 23".
func (c *Client) Lookup(reference string) (*Passage, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(reference))
	if c.language != "" {
		u += "?translation=" + url.QueryEscape(c.language)
	}

	resp, err := c.http.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var result struct {
		Reference string `json:"reference"`
		Verses    []struct {
			BookName string `json:"book_name"`
			Chapter  int    `json:"chapter"`
			Verse    int    `json:"verse"`
			Text     string `json:"text"`
		} `json:"verses"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Verses) == 0 {
		return nil, fmt.Errorf("no verses for '%s'", reference)
	}

	passage := &Passage{
		Reference: result.Reference,
		Book:      result.Verses[0].BookName,
		Chapter:   result.Verses[0].Chapter,
	}
	for _, v := range result.Verses {
		passage.Verses = append(passage.Verses, Verse{
			Number: v.Verse,
			Text:   strings.TrimSpace(v.Text),
		})
	}

	return passage, nil
}

// VersesPerSlide is how many verses share one screen before we break.
const VersesPerSlide = 2

// ToItem converts the passage into a presentable setlist item, grouping
// verses into slides.
func (p *Passage) ToItem() presenter.Item {
	var slides []presenter.Slide

	for i := 0; i < len(p.Verses); i += VersesPerSlide {
		end := i + VersesPerSlide
		if end > len(p.Verses) {
			end = len(p.Verses)
		}

		var lines []string
		for _, v := range p.Verses[i:end] {
			lines = append(lines, fmt.Sprintf("%d. %s", v.Number, v.Text))
		}

		slides = append(slides, presenter.Slide{
			OriginalText: strings.Join(lines, "\n"),
			VerseNumber:  p.Verses[i].Number,
		})
	}

	return presenter.NewBiblePassage("", p.Reference, p.Book, p.Chapter, slides)
}
