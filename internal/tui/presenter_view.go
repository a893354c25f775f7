package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/locale"
	"github.com/beamdeck/beam/internal/notify"
	"github.com/beamdeck/beam/internal/router"
	"github.com/beamdeck/beam/internal/theme"
)

// DualPreview is the presenter view's side-by-side current/next projection
// of router state. It holds no position of its own: every router change
// notification invalidates the panes and the next View pulls fresh state.
type DualPreview struct {
	rt      *router.Router
	current *PreviewPane
	next    *PreviewPane
	sub     *notify.Subscription
}

// NewDualPreview builds the projection and subscribes it to the router.
func NewDualPreview(rt *router.Router, loc *locale.Notifier, size deck.Size) *DualPreview {
	d := &DualPreview{
		rt:      rt,
		current: NewPreviewPane(rt, loc, size, false),
		next:    NewPreviewPane(rt, loc, size, true),
	}
	d.sub = rt.Subscribe(func(router.Position) {
		d.current.Invalidate()
		d.next.Invalidate()
	})
	return d
}

// Render draws both panes under a shared preview scope. The next pane gets
// no step annotation regardless of the current pane's step.
func (d *DualPreview) Render(ctx deck.RenderContext, st theme.Styles, width int) string {
	paneW := (width - 2) / 2
	pctx := ctx.WithPreview(true)

	p := d.rt.Position()
	steps := 1
	if cur, ok := d.rt.At(p.Index); ok {
		steps = cur.Steps()
	}

	left := d.current.Render(pctx, st, p.Index, p.Step, steps, true, paneW)
	right := d.next.Render(pctx, st, p.Index+1, 0, 0, false, paneW)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// Close releases the router subscription.
func (d *DualPreview) Close() {
	if d.sub != nil {
		d.sub.Close()
		d.sub = nil
	}
}

// slideTimings tracks seconds spent per slide during this session, feeding
// the presenter view's timing chart.
type slideTimings struct {
	seconds []float64
	lastIdx int
	entered time.Time
}

func newSlideTimings(count int) *slideTimings {
	return &slideTimings{seconds: make([]float64, count), entered: time.Now()}
}

// visit accounts time to the slide being left and starts the clock for idx.
func (t *slideTimings) visit(idx int, now time.Time) (left int, spent float64) {
	spent = now.Sub(t.entered).Seconds()
	left = t.lastIdx
	if left >= 0 && left < len(t.seconds) {
		t.seconds[left] += spent
	}
	t.lastIdx = idx
	t.entered = now
	return left, spent
}

// elapsed returns total presentation time so far, including the running
// visit to the current slide.
func (t *slideTimings) elapsed(now time.Time) time.Duration {
	total := now.Sub(t.entered)
	for _, s := range t.seconds {
		total += time.Duration(s * float64(time.Second))
	}
	return total
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func (t *slideTimings) resize(count int) {
	next := make([]float64, count)
	copy(next, t.seconds)
	t.seconds = next
	if t.lastIdx >= count {
		t.lastIdx = count - 1
	}
}

// renderTimingChart draws seconds-per-slide bars, highlighting the current
// slide.
func renderTimingChart(t *slideTimings, current int, st theme.Styles, width, height int) string {
	if len(t.seconds) == 0 || width < 8 || height < 2 {
		return ""
	}

	bc := barchart.New(width, height,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(2),
		barchart.WithNoAxis(),
	)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("39"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Background(lipgloss.Color("208"))

	maxBars := width / 3
	start := 0
	if len(t.seconds) > maxBars {
		start = len(t.seconds) - maxBars
	}
	for i := start; i < len(t.seconds); i++ {
		style := barStyle
		if i == current {
			style = activeStyle
		}
		bc.Push(barchart.BarData{
			Label: fmt.Sprintf("%d", i+1),
			Values: []barchart.BarValue{
				{Name: "seconds", Value: t.seconds[i], Style: style},
			},
		})
	}
	bc.Draw()
	return bc.View()
}
