package natalie

import (
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/nataliefeed/internal/news"
	"github.com/brogergvhs/nataliefeed/internal/providers"
)

const (
	selCard  = ".NA_card_wrapper .NA_card"
	selTitle = ".NA_card_title"
	selThumb = ".NA_thumb img"
	selDate  = ".NA_card_date"
)

var _ providers.Scraper = (*Scraper)(nil)

// cardResult is either an entry or the reason the card was dropped.
type cardResult struct {
	entry news.Entry
	skip  string
}

func (r cardResult) ok() bool {
	return r.skip == ""
}

func skipped(reason string) cardResult {
	return cardResult{skip: reason}
}

// Extract parses a listing page. Malformed cards are skipped and reported in
// Result.Skipped; only an unreadable document is an error.
func (s *Scraper) Extract(r io.Reader) (providers.Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return providers.Result{}, err
	}

	cards := doc.Find(selCard)
	res := providers.Result{Cards: cards.Length()}

	if s.opts.Progress != nil {
		s.opts.Progress.SetTotal(res.Cards)
		defer s.opts.Progress.MarkDone()
	}

	now := s.opts.Now()

	cards.Each(func(i int, card *goquery.Selection) {
		cr := s.extractCard(card, now)
		if s.opts.Progress != nil {
			s.opts.Progress.Increment()
		}

		if !cr.ok() {
			s.opts.Log.Warnf("Skipping card %d: %s\n", i+1, cr.skip)
			res.Skipped = append(res.Skipped, providers.Skip{Index: i, Reason: cr.skip})
			return
		}

		res.Entries = append(res.Entries, cr.entry)
	})

	if len(res.Entries) == 0 {
		s.opts.Log.Warnf("No news cards parsed (%d found on page)\n", res.Cards)
	} else {
		s.opts.Log.Debugf("Parsed %d/%d cards\n", len(res.Entries), res.Cards)
	}

	return res, nil
}

func (s *Scraper) extractCard(card *goquery.Selection, now time.Time) cardResult {
	titleSel := card.Find(selTitle).First()
	if titleSel.Length() == 0 {
		return skipped("missing title")
	}
	title := strings.TrimSpace(titleSel.Text())
	if title == "" {
		return skipped("empty title")
	}

	link, ok := s.findLink(card)
	if !ok {
		return skipped("missing link")
	}

	dateSel := card.Find(selDate).First()
	if dateSel.Length() == 0 {
		return skipped("missing date")
	}
	date, err := news.ParseDate(dateSel.Text(), now, s.opts.FutureTolerance)
	if err != nil {
		return skipped(err.Error())
	}

	return cardResult{entry: news.Entry{
		Title:    title,
		Link:     link,
		ImageURL: s.thumbnail(card),
		Date:     date,
	}}
}

func (s *Scraper) findLink(card *goquery.Selection) (string, bool) {
	var link string
	card.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if strings.HasPrefix(href, s.opts.LinkPrefix) {
			link = href
			return false
		}
		return true
	})

	return link, link != ""
}

func (s *Scraper) thumbnail(card *goquery.Selection) string {
	img := card.Find(selThumb).First()
	if img.Length() == 0 {
		return ""
	}

	src, ok := img.Attr("data-src")
	if !ok {
		return ""
	}

	src = strings.TrimSpace(src)
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	if src == "" {
		return ""
	}

	return resolve(s.opts.PageURL, src)
}

func resolve(pageURL, raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	if u.IsAbs() {
		return u.String()
	}

	base, err := url.Parse(pageURL)
	if err != nil || base == nil {
		return raw
	}

	return base.ResolveReference(u).String()
}
