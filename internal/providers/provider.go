package providers

import (
	"context"
	"io"

	"github.com/brogergvhs/nataliefeed/internal/news"
)

// Skip records a card that could not be turned into an entry.
type Skip struct {
	Index  int
	Reason string
}

type Result struct {
	Cards   int
	Entries []news.Entry
	Skipped []Skip
}

type Scraper interface {
	Fetch(ctx context.Context, url string) (string, error)
	Extract(r io.Reader) (Result, error)
}
