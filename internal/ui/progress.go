package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type MPBProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager(out io.Writer) *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(40),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

func (pm *MPBProgressManager) Register(prefix, unit string) *ProgressHandle {
	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
		unit:   unit,
	}
	h.initBar()
	return h
}

type ProgressHandle struct {
	pm     *MPBProgressManager
	prefix string
	unit   string
	bar    *mpb.Bar

	total atomic.Int64
	start time.Time

	elapsed atomic.Int64
	final   atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	h.bar = h.pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d "+h.unit, decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %dms", h.elapsed.Load())
				}
				return fmt.Sprintf(" | %dms", time.Since(h.start).Milliseconds())
			}),
		),
	)
}

func (h *ProgressHandle) SetTotal(total int) {
	if h.final.Load() {
		return
	}

	h.total.Store(int64(total))
	h.bar.SetTotal(int64(total), false)
}

func (h *ProgressHandle) Increment() {
	if h.final.Load() {
		return
	}

	h.bar.Increment()
}

func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(time.Since(h.start).Milliseconds())
	h.bar.SetCurrent(h.total.Load())
	h.bar.SetTotal(h.total.Load(), true)
}
