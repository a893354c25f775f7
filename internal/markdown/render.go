package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/beamdeck/beam/internal/deck"
)

var (
	h1Style     = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	h2Style     = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	quoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// renderFragments styles the visible markdown fragments into terminal
// output. Fenced code blocks are syntax highlighted; headings, quotes and
// bullets get lightweight styling. Lines are clipped to width.
func renderFragments(fragments []string, ctx deck.RenderContext, width, height int) string {
	var out []string

	for i, frag := range fragments {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, renderFragment(frag, ctx)...)
	}

	if height > 0 && len(out) > height {
		out = out[:height]
	}
	if width > 0 {
		clip := lipgloss.NewStyle().MaxWidth(width)
		for i, line := range out {
			out[i] = clip.Render(line)
		}
	}
	return strings.Join(out, "\n")
}

func renderFragment(src string, ctx deck.RenderContext) []string {
	var (
		out       []string
		codeLines []string
		codeLang  string
		inFence   bool
	)

	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				out = append(out, strings.Split(Highlight(strings.Join(codeLines, "\n"), codeLang, ctx.Dark), "\n")...)
				codeLines = codeLines[:0]
				inFence = false
			} else {
				codeLang = strings.TrimPrefix(trimmed, "```")
				inFence = true
			}
			continue
		}
		if inFence {
			codeLines = append(codeLines, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "# "):
			out = append(out, h1Style.Render(strings.TrimPrefix(trimmed, "# ")))
		case strings.HasPrefix(trimmed, "## "):
			out = append(out, h2Style.Render(strings.TrimPrefix(trimmed, "## ")))
		case strings.HasPrefix(trimmed, "> "):
			out = append(out, quoteStyle.Render("│ "+strings.TrimPrefix(trimmed, "> ")))
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			out = append(out, bulletStyle.Render("• ")+trimmed[2:])
		default:
			out = append(out, line)
		}
	}

	// An unterminated fence still renders its code.
	if inFence && len(codeLines) > 0 {
		out = append(out, strings.Split(Highlight(strings.Join(codeLines, "\n"), codeLang, ctx.Dark), "\n")...)
	}
	return out
}
