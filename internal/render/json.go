package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/brogergvhs/nataliefeed/internal/news"
	"github.com/brogergvhs/nataliefeed/internal/util"
)

type Document struct {
	LastUpdated string      `json:"last_updated"`
	News        []JSONEntry `json:"news"`
}

type JSONEntry struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	ImageURL  *string `json:"image_url"`
	Date      string  `json:"date"`
	Timestamp int64   `json:"timestamp"`
}

func NewDocument(entries []news.Entry, generatedAt time.Time) Document {
	doc := Document{
		LastUpdated: generatedAt.Truncate(time.Second).Format(time.RFC3339),
		News:        make([]JSONEntry, 0, len(entries)),
	}

	for _, e := range entries {
		je := JSONEntry{
			Title:     e.Title,
			Link:      e.Link,
			Date:      e.Date.ISO(),
			Timestamp: e.Date.Unix(),
		}
		if e.HasImage() {
			img := e.ImageURL
			je.ImageURL = &img
		}
		doc.News = append(doc.News, je)
	}

	return doc
}

// EncodeJSON produces the indented document with UTF-8 text left unescaped.
func EncodeJSON(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteJSON writes data/news.json and copies the viewer assets next to it.
func (r *Renderer) WriteJSON(entries []news.Entry, generatedAt time.Time) (Report, error) {
	var rep Report

	data, err := EncodeJSON(NewDocument(entries, generatedAt))
	if err != nil {
		return rep, err
	}

	if err := r.write(&rep, filepath.Join(r.OutputDir, "data", "news.json"), data); err != nil {
		return rep, err
	}

	if err := r.copyStatic(&rep); err != nil {
		return rep, err
	}

	shell := filepath.Join(r.TemplatesDir, "index.html")
	page := filepath.Join(r.OutputDir, "index.html")
	copied, n, err := util.CopyFileIfExists(shell, page)
	if err != nil {
		return rep, err
	}
	if copied {
		rep.add(page, n)
		return rep, nil
	}

	// A page left by an earlier html run would not match the new feed.
	r.debugf("Shell %s not found, removing stale %s\n", shell, page)
	if err := os.Remove(page); err != nil && !os.IsNotExist(err) {
		return rep, err
	}

	return rep, nil
}
