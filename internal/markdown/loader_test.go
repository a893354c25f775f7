package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beamdeck/beam/internal/deck"
)

const sampleDeck = `---
title: Demo Deck
author: Ada
theme: dark
locale: de
width: 96
height: 27
autoplay: 10s
---

# Welcome
<!-- route: /welcome -->
<!-- notes: greet the audience -->

First point
<!-- step -->
Second point
<!-- step -->
Third point

---

<!-- hidden -->
# Scratch slide

---

## Code

` + "```go\nfunc main() {}\n```" + `
`

func TestParse_FrontMatter(t *testing.T) {
	t.Parallel()

	global, slides, err := Parse([]byte(sampleDeck))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if global.Title != "Demo Deck" || global.Author != "Ada" {
		t.Fatalf("global = %+v", global)
	}
	if global.Theme != "dark" || global.Locale != "de" {
		t.Fatalf("theme/locale = %q/%q", global.Theme, global.Locale)
	}
	if global.Size != (deck.Size{Width: 96, Height: 27}) {
		t.Fatalf("size = %+v", global.Size)
	}
	if global.Autoplay != 10*time.Second {
		t.Fatalf("autoplay = %v, want 10s", global.Autoplay)
	}
	if len(slides) != 3 {
		t.Fatalf("slides = %d, want 3", len(slides))
	}
}

func TestParse_SlideDirectivesAndSteps(t *testing.T) {
	t.Parallel()

	_, slides, err := Parse([]byte(sampleDeck))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	first := slides[0]
	if first.Config.Route != "/welcome" {
		t.Fatalf("route = %q", first.Config.Route)
	}
	if first.Config.Notes != "greet the audience" {
		t.Fatalf("notes = %q", first.Config.Notes)
	}
	if first.Config.Steps != 3 {
		t.Fatalf("steps = %d, want 3", first.Config.Steps)
	}
	if !slides[1].Config.Hidden {
		t.Fatal("second slide not hidden")
	}

	step0 := first.Render(deck.RenderContext{Step: 0}, 80, 24)
	if strings.Contains(step0, "Second point") {
		t.Fatal("step 0 reveals step 1 content")
	}
	step2 := first.Render(deck.RenderContext{Step: 2}, 80, 24)
	for _, want := range []string{"First point", "Second point", "Third point"} {
		if !strings.Contains(step2, want) {
			t.Fatalf("last step missing %q", want)
		}
	}
	// Directives never leak into rendered output.
	if strings.Contains(step2, "<!--") {
		t.Fatal("directive comment leaked into render")
	}
}

func TestParse_FenceProtectsSeparator(t *testing.T) {
	t.Parallel()

	src := "slide one\n\n```\n---\n```\n\n---\n\nslide two\n"
	_, slides, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("slides = %d, want 2 (separator inside fence split the slide)", len(slides))
	}
}

func TestParse_NoFrontMatter(t *testing.T) {
	t.Parallel()

	global, slides, err := Parse([]byte("# Only slide\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if global.Theme != deck.DefaultTheme {
		t.Fatalf("theme = %q, want default", global.Theme)
	}
	if len(slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(slides))
	}
}

func TestParse_RejectsEmptyBody(t *testing.T) {
	t.Parallel()

	if _, _, err := Parse([]byte("")); err == nil {
		t.Fatal("empty deck accepted")
	}
}

func TestHighlight_NeverBreaksSlides(t *testing.T) {
	t.Parallel()

	got := Highlight("func main() {}", "go", true)
	if !strings.Contains(got, "main") {
		t.Fatalf("highlighted output lost the code: %q", got)
	}
	if got := Highlight("plain text", "no-such-language", false); !strings.Contains(got, "plain text") {
		t.Fatalf("unknown language output = %q", got)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "deck.md")
	if err := os.WriteFile(path, []byte("# one\n"), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("# one\n\n---\n\n# two\n"), 0o644); err != nil {
		t.Fatalf("rewrite deck: %v", err)
	}

	select {
	case r := <-w.Reloads():
		if r.Err != nil {
			t.Fatalf("reload err: %v", r.Err)
		}
		if len(r.Slides) != 2 {
			t.Fatalf("reloaded slides = %d, want 2", len(r.Slides))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}
