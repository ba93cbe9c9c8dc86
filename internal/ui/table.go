package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/brogergvhs/nataliefeed/internal/news"

	"github.com/mattn/go-runewidth"
)

const titleWidth = 60

// PrintEntries writes a fixed-width listing of entries. Titles are measured
// in terminal cells so full-width Japanese text lines up.
func PrintEntries(w io.Writer, entries []news.Entry) {
	dateWidth := 0
	for _, e := range entries {
		dateWidth = max(dateWidth, runewidth.StringWidth(e.Date.Label()))
	}

	for i, e := range entries {
		title := runewidth.Truncate(e.Title, titleWidth, "…")
		title = runewidth.FillRight(title, titleWidth)

		thumb := ""
		if e.HasImage() {
			thumb = " [img]"
		}

		_, _ = fmt.Fprintf(w, "%3d) %s  %s%s\n     %s\n",
			i+1,
			runewidth.FillRight(e.Date.Label(), dateWidth),
			title,
			thumb,
			e.Link,
		)
	}

	if len(entries) > 0 {
		_, _ = fmt.Fprintln(w, strings.Repeat("-", dateWidth+titleWidth+7))
	}
	_, _ = fmt.Fprintf(w, "%d entries\n", len(entries))
}
