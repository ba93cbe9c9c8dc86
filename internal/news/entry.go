// Package news holds the entries scraped from a listing page and the
// ordering and grouping applied to them before rendering.
package news

type Entry struct {
	Title    string
	Link     string
	ImageURL string // empty when the card has no thumbnail
	Date     Date
}

func (e Entry) HasImage() bool {
	return e.ImageURL != ""
}
