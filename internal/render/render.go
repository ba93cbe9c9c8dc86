// Package render writes a run's entries to disk, either as a JSON data feed
// for the static viewer or as a fully rendered HTML page.
package render

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/brogergvhs/nataliefeed/internal/news"
	"github.com/brogergvhs/nataliefeed/internal/util"
)

type Mode string

const (
	ModeJSON Mode = "json"
	ModeHTML Mode = "html"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeJSON, ModeHTML:
		return Mode(s), nil
	case "":
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("unknown output mode %q (want json or html)", s)
	}
}

type Logger interface {
	Debugf(format string, args ...any)
}

type Renderer struct {
	OutputDir    string
	StaticDir    string
	TemplatesDir string
	// PageTemplate replaces the built-in page template in HTML mode.
	PageTemplate string

	Log Logger
}

// Report lists what a render wrote.
type Report struct {
	Files []string
	Bytes int64
}

func (r *Report) add(path string, n int64) {
	r.Files = append(r.Files, path)
	r.Bytes += n
}

// Render dispatches to the writer for mode.
func (r *Renderer) Render(mode Mode, entries []news.Entry, generatedAt time.Time) (Report, error) {
	switch mode {
	case ModeHTML:
		return r.WriteHTML(entries, generatedAt)
	case ModeJSON:
		return r.WriteJSON(entries, generatedAt)
	default:
		return Report{}, fmt.Errorf("unknown output mode %q", mode)
	}
}

func (r *Renderer) write(rep *Report, path string, data []byte) error {
	n, err := util.WriteFile(path, data)
	if err != nil {
		util.RemovePartial(path, r.OutputDir)
		return fmt.Errorf("write %s: %w", path, err)
	}

	rep.add(path, n)
	return nil
}

// copyAsset copies an optional file. A missing source is skipped.
func (r *Renderer) copyAsset(rep *Report, src, dst string) error {
	copied, n, err := util.CopyFileIfExists(src, dst)
	if err != nil {
		return err
	}
	if !copied {
		r.debugf("Asset %s not found, skipping\n", src)
		return nil
	}

	rep.add(dst, n)
	return nil
}

func (r *Renderer) copyStatic(rep *Report) error {
	for _, name := range []string{"style.css", "script.js"} {
		src := filepath.Join(r.StaticDir, name)
		dst := filepath.Join(r.OutputDir, "static", name)
		if err := r.copyAsset(rep, src, dst); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) debugf(format string, args ...any) {
	if r.Log != nil {
		r.Log.Debugf(format, args...)
	}
}
