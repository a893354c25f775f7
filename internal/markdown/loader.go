// Package markdown loads slide decks from markdown files: YAML front matter
// for the deck-wide configuration, "---" separators between slides, HTML
// comment directives for per-slide configuration, and "<!-- step -->"
// markers for progressive reveal.
package markdown

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beamdeck/beam/internal/deck"
)

var (
	routeRe = regexp.MustCompile(`<!--\s*route:\s*(\S+)\s*-->`)
	notesRe = regexp.MustCompile(`<!--\s*notes:\s*(.*?)\s*-->`)
	hideRe  = regexp.MustCompile(`<!--\s*hidden\s*-->`)
	stepRe  = regexp.MustCompile(`^\s*<!--\s*step\s*-->\s*$`)
)

// frontMatter is the YAML header of a deck file.
type frontMatter struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Theme    string `yaml:"theme"`
	Locale   string `yaml:"locale"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Autoplay string `yaml:"autoplay"`
}

// Load reads and parses the deck file at path.
func Load(path string) (deck.GlobalConfig, []deck.Slide, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return deck.GlobalConfig{}, nil, fmt.Errorf("markdown: read deck: %w", err)
	}
	return Parse(src)
}

// Parse converts deck source into the deck-wide configuration and the
// declared slide list (hidden slides included; filtering happens when the
// router list is built).
func Parse(src []byte) (deck.GlobalConfig, []deck.Slide, error) {
	global, body, err := parseFrontMatter(src)
	if err != nil {
		return deck.GlobalConfig{}, nil, err
	}

	sources := splitSlides(body)
	slides := make([]deck.Slide, 0, len(sources))
	for _, s := range sources {
		slides = append(slides, buildSlide(s))
	}
	if len(slides) == 0 {
		return global, nil, deck.ErrNoSlides
	}
	return global, slides, nil
}

func parseFrontMatter(src []byte) (deck.GlobalConfig, string, error) {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	global := deck.GlobalConfig{Theme: deck.DefaultTheme}

	if !strings.HasPrefix(text, "---\n") {
		return global, text, nil
	}
	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return global, text, nil
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return global, "", fmt.Errorf("markdown: front matter: %w", err)
	}

	global.Title = fm.Title
	global.Author = fm.Author
	global.Locale = fm.Locale
	if fm.Theme != "" {
		global.Theme = fm.Theme
	}
	if fm.Width > 0 && fm.Height > 0 {
		global.Size = deck.Size{Width: fm.Width, Height: fm.Height}
	}
	if fm.Autoplay != "" {
		d, err := time.ParseDuration(fm.Autoplay)
		if err != nil {
			return global, "", fmt.Errorf("markdown: front matter autoplay: %w", err)
		}
		global.Autoplay = d
	}

	return global, rest[end+len("\n---\n"):], nil
}

// splitSlides cuts the body on lines that are exactly "---", honoring
// fenced code blocks so a horizontal rule inside a fence stays put.
func splitSlides(body string) []string {
	var (
		out     []string
		current []string
		inFence bool
	)
	flush := func() {
		s := strings.TrimSpace(strings.Join(current, "\n"))
		if s != "" {
			out = append(out, s)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence && strings.TrimSpace(line) == "---" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}

// buildSlide turns one slide's source into a deck.Slide: directives become
// the config, step markers split the body into progressively revealed
// fragments, and the render func styles the visible fragments.
func buildSlide(src string) deck.Slide {
	cfg := &deck.Config{}
	if m := routeRe.FindStringSubmatch(src); m != nil {
		cfg.Route = m[1]
	}
	if m := notesRe.FindStringSubmatch(src); m != nil {
		cfg.Notes = m[1]
	}
	cfg.Hidden = hideRe.MatchString(src)

	cleaned := routeRe.ReplaceAllString(src, "")
	cleaned = notesRe.ReplaceAllString(cleaned, "")
	cleaned = hideRe.ReplaceAllString(cleaned, "")

	fragments := splitFragments(cleaned)
	cfg.Steps = len(fragments)

	return deck.Slide{
		Config: cfg,
		Render: func(ctx deck.RenderContext, width, height int) string {
			visible := ctx.Step + 1
			if visible > len(fragments) {
				visible = len(fragments)
			}
			if visible < 1 {
				visible = 1
			}
			return renderFragments(fragments[:visible], ctx, width, height)
		},
	}
}

func splitFragments(src string) []string {
	var (
		fragments []string
		current   []string
	)
	flush := func() {
		s := strings.Trim(strings.Join(current, "\n"), "\n")
		fragments = append(fragments, s)
		current = current[:0]
	}

	for _, line := range strings.Split(src, "\n") {
		if stepRe.MatchString(line) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	// A slide of nothing but step markers still needs one fragment.
	if len(fragments) == 0 {
		fragments = []string{""}
	}
	return fragments
}
