package natalie

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/brogergvhs/nataliefeed/internal/ui"
)

func fixedNow() time.Time {
	return time.Date(2024, time.July, 12, 9, 0, 0, 0, time.Local)
}

func card(title, href, img, date string) string {
	var b strings.Builder
	b.WriteString(`<div class="NA_card">`)
	if href != "" {
		b.WriteString(`<a href="` + href + `">`)
	}
	if img != "" {
		b.WriteString(`<div class="NA_thumb"><img ` + img + `></div>`)
	}
	if title != "" {
		b.WriteString(`<p class="NA_card_title">` + title + `</p>`)
	}
	if date != "" {
		b.WriteString(`<p class="NA_card_date">` + date + `</p>`)
	}
	if href != "" {
		b.WriteString(`</a>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func page(cards ...string) string {
	return `<html><body><div class="NA_card_wrapper">` + strings.Join(cards, "\n") + `</div></body></html>`
}

func newTestScraper(log *ui.Logger) *Scraper {
	if log == nil {
		log = ui.NewLoggerTo(io.Discard, false)
	}
	return NewScraper(nil, Options{Now: fixedNow, Log: log})
}

func TestExtract_SingleCardWithoutThumbnail(t *testing.T) {
	s := newTestScraper(nil)

	res, err := s.Extract(strings.NewReader(page(
		card("Example Title", "https://natalie.mu/comic/news/123", "", "7月11日"),
	)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(res.Entries))
	}

	e := res.Entries[0]
	if e.Title != "Example Title" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Link != "https://natalie.mu/comic/news/123" {
		t.Errorf("link = %q", e.Link)
	}
	if e.ImageURL != "" {
		t.Errorf("image_url = %q, want empty", e.ImageURL)
	}
	if e.Date.Label() != "7月11日" || e.Date.ISO() != "2024-07-11" {
		t.Errorf("date = %s / %s", e.Date.Label(), e.Date.ISO())
	}
}

func TestExtract_Thumbnail(t *testing.T) {
	tests := []struct {
		name string
		img  string
		want string
	}{
		{
			name: "query stripped",
			img:  `data-src="https://ogre.natalie.mu/media/news/comic/2024/0711/a.jpg?impolicy=thumb_fit&width=180"`,
			want: "https://ogre.natalie.mu/media/news/comic/2024/0711/a.jpg",
		},
		{
			name: "protocol relative",
			img:  `data-src="//ogre.natalie.mu/media/b.jpg?x=1"`,
			want: "https://ogre.natalie.mu/media/b.jpg",
		},
		{
			name: "src only is ignored",
			img:  `src="https://ogre.natalie.mu/media/c.jpg"`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScraper(nil)
			res, err := s.Extract(strings.NewReader(page(
				card("Title", "https://natalie.mu/comic/news/1", tt.img, "7月1日"),
			)))
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(res.Entries))
			}

			got := res.Entries[0].ImageURL
			if got != tt.want {
				t.Errorf("image_url = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "?") {
				t.Errorf("image_url still has a query: %q", got)
			}
		})
	}
}

func TestExtract_SkipsMalformedCards(t *testing.T) {
	var logBuf bytes.Buffer
	s := newTestScraper(ui.NewLoggerTo(&logBuf, false))

	res, err := s.Extract(strings.NewReader(page(
		card("Good one", "https://natalie.mu/comic/news/1", "", "7月11日"),
		card("", "https://natalie.mu/comic/news/2", "", "7月11日"),
		card("Wrong link", "https://natalie.mu/music/news/3", "", "7月11日"),
		card("Bad date", "https://natalie.mu/comic/news/4", "", "2024/07/11"),
		card("No date", "https://natalie.mu/comic/news/5", "", ""),
		card("Good two", "https://natalie.mu/comic/news/6", "", "7月10日"),
	)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Cards != 6 {
		t.Errorf("cards = %d, want 6", res.Cards)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	if res.Entries[0].Title != "Good one" || res.Entries[1].Title != "Good two" {
		t.Errorf("unexpected entries: %+v", res.Entries)
	}

	wantSkips := []int{1, 2, 3, 4}
	if len(res.Skipped) != len(wantSkips) {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	for i, idx := range wantSkips {
		if res.Skipped[i].Index != idx {
			t.Errorf("skip %d index = %d, want %d", i, res.Skipped[i].Index, idx)
		}
	}

	if strings.Count(logBuf.String(), "[WARN] Skipping card") != 4 {
		t.Errorf("expected 4 skip diagnostics, got:\n%s", logBuf.String())
	}

	for _, e := range res.Entries {
		if e.Title == "" || !strings.HasPrefix(e.Link, DefaultLinkPrefix) {
			t.Errorf("invalid entry in result: %+v", e)
		}
	}
}

func TestExtract_IgnoresCardsOutsideWrapper(t *testing.T) {
	s := newTestScraper(nil)

	html := `<html><body>` +
		card("Outside", "https://natalie.mu/comic/news/9", "", "7月11日") +
		page(card("Inside", "https://natalie.mu/comic/news/10", "", "7月11日")) +
		`</body></html>`

	res, err := s.Extract(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Title != "Inside" {
		t.Errorf("unexpected entries: %+v", res.Entries)
	}
}

func TestExtract_EmptyPage(t *testing.T) {
	var logBuf bytes.Buffer
	s := newTestScraper(ui.NewLoggerTo(&logBuf, false))

	res, err := s.Extract(strings.NewReader(`<html><body><p>maintenance</p></body></html>`))
	if err != nil {
		t.Fatalf("empty page should not be an error: %v", err)
	}
	if res.Cards != 0 || len(res.Entries) != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
	if !strings.Contains(logBuf.String(), "No news cards parsed") {
		t.Errorf("expected empty-result diagnostic, got %q", logBuf.String())
	}
}

type countingProgress struct {
	total, done int
	finished    bool
}

func (p *countingProgress) SetTotal(n int) { p.total = n }
func (p *countingProgress) Increment()     { p.done++ }
func (p *countingProgress) MarkDone()      { p.finished = true }

func TestExtract_ReportsProgress(t *testing.T) {
	p := &countingProgress{}
	s := NewScraper(nil, Options{Now: fixedNow, Progress: p})

	_, err := s.Extract(strings.NewReader(page(
		card("A", "https://natalie.mu/comic/news/1", "", "7月11日"),
		card("", "https://natalie.mu/comic/news/2", "", "7月11日"),
	)))
	if err != nil {
		t.Fatal(err)
	}

	if p.total != 2 || p.done != 2 || !p.finished {
		t.Errorf("progress = %+v", p)
	}
}
