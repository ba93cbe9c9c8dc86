package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/brogergvhs/nataliefeed/internal/news"
)

//go:embed templates/page.html.tmpl
var templatesFS embed.FS

const defaultPageTemplate = "templates/page.html.tmpl"

// PageData is everything a page template sees. Grouping is done before
// rendering so templates only substitute values.
type PageData struct {
	Groups      []news.Group
	Entries     []news.Entry
	Count       int
	GeneratedAt string
	Year        int
}

func NewPageData(entries []news.Entry, generatedAt time.Time) PageData {
	return PageData{
		Groups:      news.GroupByDate(entries),
		Entries:     entries,
		Count:       len(entries),
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Year:        generatedAt.Year(),
	}
}

func (r *Renderer) pageTemplate() (*template.Template, error) {
	if r.PageTemplate == "" {
		return template.ParseFS(templatesFS, defaultPageTemplate)
	}

	raw, err := os.ReadFile(r.PageTemplate)
	if err != nil {
		return nil, fmt.Errorf("read page template: %w", err)
	}

	return template.New(filepath.Base(r.PageTemplate)).Parse(string(raw))
}

// RenderPage executes the page template into memory.
func (r *Renderer) RenderPage(entries []news.Entry, generatedAt time.Time) ([]byte, error) {
	tmpl, err := r.pageTemplate()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewPageData(entries, generatedAt)); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteHTML renders index.html and copies the stylesheet and script. The
// page shell is not copied in this mode since the page is rendered here.
func (r *Renderer) WriteHTML(entries []news.Entry, generatedAt time.Time) (Report, error) {
	var rep Report

	page, err := r.RenderPage(entries, generatedAt)
	if err != nil {
		return rep, err
	}

	if err := r.write(&rep, filepath.Join(r.OutputDir, "index.html"), page); err != nil {
		return rep, err
	}

	if err := r.copyStatic(&rep); err != nil {
		return rep, err
	}

	return rep, nil
}
