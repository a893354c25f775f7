package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/beamdeck/beam/internal/theme"
)

const drawerWidth = 24

// View renders the themed, localized application frame.
func (s *Shell) View() string {
	if s.width <= 0 || s.height <= 0 {
		return "Initializing presentation..."
	}
	st := s.themes.Styles()

	if s.showHelp {
		return s.renderHelp(st)
	}
	if s.presenterView {
		return s.renderPresenter(st)
	}
	return s.renderLive(st)
}

func (s *Shell) renderLive(st theme.Styles) string {
	statusH := 1
	contentW := s.width
	drawerOpen := s.drawer.State().Open
	if drawerOpen {
		contentW -= drawerWidth
		if contentW < 20 {
			contentW = 20
		}
	}
	contentH := s.height - statusH

	body := s.renderActiveSlide(st, contentW, contentH)

	var main string
	if drawerOpen {
		main = lipgloss.JoinHorizontal(lipgloss.Top, s.renderDrawer(st, contentH), body)
	} else {
		main = body
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, s.renderStatusLine(st))
}

// renderActiveSlide draws the live slide inside the deck-themed box, or the
// terminal placeholder past the last slide.
func (s *Shell) renderActiveSlide(st theme.Styles, width, height int) string {
	innerW := width - 2
	innerH := height - 2

	box := st.SlideBox
	if m := s.marker.State(); m.Enabled {
		box = box.BorderForeground(lipgloss.Color(m.Color()))
	}

	slide, ok := s.rt.Current()
	if !ok {
		placeholder := lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center,
			st.Placeholder.Render(s.locales.T("preview.end")))
		return box.Render(placeholder)
	}

	ctx := deck.RenderContext{Dark: st.Dark, Step: s.rt.Step()}

	var content string
	if s.global.Size.IsResponsive() {
		content = slide.Render(ctx, innerW, innerH)
		content = fitTopLeft(content, innerW, innerH)
	} else {
		// Fixed-size decks render at native size and sit centered in the
		// window, clipped when the terminal is smaller than the deck.
		native := slide.Render(ctx, s.global.Size.Width, s.global.Size.Height)
		w := min(s.global.Size.Width, innerW)
		h := min(s.global.Size.Height, innerH)
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center,
			fitTopLeft(native, w, h))
	}

	return box.Render(content)
}

func (s *Shell) renderDrawer(st theme.Styles, height int) string {
	cursor := s.drawer.State().Cursor
	current := s.rt.Index()

	lines := []string{st.DrawerTitle.Render(s.locales.T("drawer.title")), ""}
	for i, slide := range s.rt.Slides() {
		label := fmt.Sprintf("%2d %s", i+1, slide.Route)
		switch {
		case i == cursor:
			lines = append(lines, st.DrawerSelected.Render("> "+label))
		case i == current:
			lines = append(lines, st.DrawerItem.Bold(true).Render("  "+label))
		default:
			lines = append(lines, st.DrawerItem.Render("  "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(drawerWidth).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

func (s *Shell) renderStatusLine(st theme.Styles) string {
	pos := s.rt.Position()

	left := st.StatusAccent.Render(" " + s.global.Title + " ")
	if s.global.Title == "" {
		left = ""
	}

	center := s.locales.T("status.slide", min(pos.Index+1, pos.Count), pos.Count)
	if cur, ok := s.rt.Current(); ok && cur.Steps() > 1 {
		center += "  " + s.locales.T("status.step", pos.Step+1, cur.Steps())
	}

	var tags []string
	if s.autoplay.State().Enabled {
		tags = append(tags, s.locales.T("status.autoplay"))
	}
	if s.marker.State().Enabled {
		tags = append(tags, s.locales.T("status.marker"))
	}
	if s.SyncActive() {
		tags = append(tags, s.locales.T("status.presenter"))
	}
	right := strings.Join(tags, " · ")
	if s.lastError != "" {
		right = st.Error.Render(s.lastError)
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + " " + center + strings.Repeat(" ", gap) + right + " "
	return st.StatusBar.MaxWidth(s.width).Render(line)
}

// renderPresenter draws the presenter view: current/next previews on top,
// speaker notes and the per-slide timing chart below.
func (s *Shell) renderPresenter(st theme.Styles) string {
	previews := s.dual.Render(deck.RenderContext{Dark: st.Dark}, st, s.width)

	lowerH := s.height - lipgloss.Height(previews) - 2
	if lowerH < 4 {
		lowerH = 4
	}
	notesW := s.width * 2 / 3
	chartW := s.width - notesW - 2

	notes := ""
	if cur, ok := s.rt.Current(); ok {
		notes = cur.Config.Notes
	}
	notesBox := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render(s.locales.T("presenter.notes")),
		st.Notes.Width(notesW).Render(notes),
	)

	chart := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render(s.locales.T("presenter.timing"))+"  "+
			st.StatusAccent.Render(" "+formatElapsed(s.timings.elapsed(time.Now()))+" "),
		renderTimingChart(s.timings, s.rt.Index(), st, chartW, lowerH-2),
	)

	lower := lipgloss.JoinHorizontal(lipgloss.Top, notesBox, "  ", chart)

	return lipgloss.JoinVertical(lipgloss.Left, previews, "", lower, s.renderStatusLine(st))
}

func (s *Shell) renderHelp(st theme.Styles) string {
	bindings := []key.Binding{
		s.keys.Next, s.keys.Prev, s.keys.NextSlide, s.keys.PrevSlide,
		s.keys.First, s.keys.Last, s.keys.Drawer, s.keys.Marker,
		s.keys.Autoplay, s.keys.Theme, s.keys.Locale, s.keys.Fullscreen,
		s.keys.Help, s.keys.Quit,
	}

	lines := []string{st.Title.Render(s.locales.T("help.title")), ""}
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("  %-14s %s", h.Key, st.Help.Render(h.Desc)))
	}
	lines = append(lines, "", st.Help.Render(s.locales.T("help.close")))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, modal)
}
