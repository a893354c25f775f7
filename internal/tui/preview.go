package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/locale"
	"github.com/beamdeck/beam/internal/router"
	"github.com/beamdeck/beam/internal/theme"
)

// PreviewPane renders a labeled, aspect-correct thumbnail of one slide.
// Renders are memoized on the full input key, so identical re-renders never
// re-invoke the slide's render function.
type PreviewPane struct {
	rt   *router.Router
	loc  *locale.Notifier
	size deck.Size
	next bool // labels the pane "Next" instead of "Current"

	lastKey previewKey
	lastOut string
	valid   bool
}

// previewKey captures every input a pane render depends on.
type previewKey struct {
	ctx     deck.RenderContext
	index   int
	step    int
	steps   int
	hasStep bool
	width   int
	version int
	count   int
	dark    bool
	tag     language.Tag
}

// NewPreviewPane builds a pane over the router's slide collection.
func NewPreviewPane(rt *router.Router, loc *locale.Notifier, size deck.Size, next bool) *PreviewPane {
	return &PreviewPane{rt: rt, loc: loc, size: size, next: next}
}

// Invalidate drops the memoized render.
func (p *PreviewPane) Invalidate() { p.valid = false }

// Render draws the pane for the slide at index. step/steps annotate the
// header only when hasStep is set (the "next" pane passes false — a next
// slide conceptually starts at its first step, unannotated).
func (p *PreviewPane) Render(ctx deck.RenderContext, st theme.Styles, index, step, steps int, hasStep bool, width int) string {
	pos := p.rt.Position()
	key := previewKey{
		ctx:     ctx,
		index:   index,
		step:    step,
		steps:   steps,
		hasStep: hasStep,
		width:   width,
		version: pos.Version,
		count:   pos.Count,
		dark:    st.Dark,
		tag:     p.loc.Active(),
	}
	if p.valid && key == p.lastKey {
		return p.lastOut
	}

	out := p.render(ctx, st, key)
	p.lastKey = key
	p.lastOut = out
	p.valid = true
	return out
}

func (p *PreviewPane) render(ctx deck.RenderContext, st theme.Styles, key previewKey) string {
	innerW := key.width - 2 // border
	if innerW < 10 {
		innerW = 10
	}
	// Terminal cells are roughly twice as tall as wide.
	innerH := int(float64(innerW) / p.size.AspectRatio() / 2.0)
	if innerH < 3 {
		innerH = 3
	}

	total := p.rt.Len()
	if key.index >= total {
		// Past the last slide: headerless terminal placeholder.
		body := lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center,
			st.Placeholder.Render(p.loc.T("preview.end")))
		return st.PreviewBox.Render(body)
	}

	slide, _ := p.rt.At(key.index)

	label := p.loc.T("preview.current")
	if p.next {
		label = p.loc.T("preview.next")
	}
	header := p.loc.T("preview.slide_of", label, key.index+1, total)
	if key.hasStep && key.steps > 1 {
		header += p.loc.T("preview.step_of", key.step+1, key.steps)
	}

	pctx := ctx.WithPreview(true)
	if key.hasStep {
		pctx = pctx.WithStep(key.step)
	} else {
		pctx = pctx.WithStep(0)
	}

	var content string
	switch {
	case slide.Config.Preview != nil:
		content = slide.Config.Preview(pctx, innerW, innerH)
	case p.size.IsResponsive():
		// Responsive decks lay the slide out at the thumbnail size directly.
		content = slide.Render(pctx, innerW, innerH)
	default:
		// Fixed-size decks render at native size, anchored top-left and cut
		// to the thumbnail box.
		content = slide.Render(pctx, p.size.Width, p.size.Height)
	}
	content = fitTopLeft(content, innerW, innerH)

	box := st.PreviewBox.Render(content)
	return lipgloss.JoinVertical(lipgloss.Left,
		st.PreviewHeader.MaxWidth(key.width).Render(header),
		box,
	)
}

// fitTopLeft anchors content at the top-left of a width×height cell box,
// clipping overflow and padding shortfall.
func fitTopLeft(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	clip := lipgloss.NewStyle().MaxWidth(width)
	for i := range lines {
		lines[i] = clip.Render(lines[i])
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	block := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(block)
}
