package deck

import "time"

// RenderContext carries render-scoped information down to slide content.
// It replaces ambient lookup: hosts derive a context and pass it explicitly
// to every render call, so the innermost derivation always wins. The zero
// value is the live, interactive render at step 0.
type RenderContext struct {
	IsPreview bool // thumbnail render; slides should suppress interactive chrome
	Dark      bool // effective theme background
	Step      int  // current step within the slide, 0-based
}

// WithPreview returns a derived context with the preview flag set.
func (c RenderContext) WithPreview(preview bool) RenderContext {
	c.IsPreview = preview
	return c
}

// WithStep returns a derived context positioned at step.
func (c RenderContext) WithStep(step int) RenderContext {
	c.Step = step
	return c
}

// RenderFunc renders slide content into the given cell box.
type RenderFunc func(ctx RenderContext, width, height int) string

// PreviewFunc renders a custom thumbnail for a slide. When nil, previews
// fall back to the slide's RenderFunc scaled into the thumbnail box.
type PreviewFunc func(ctx RenderContext, width, height int) string

// Slide is a unit of presentable content as declared by the embedding
// application (or produced by the markdown loader).
type Slide struct {
	Render RenderFunc
	Config *Config // nil means all defaults
}

// Config holds per-slide overrides. Unset fields fall back to deck-wide
// defaults when merged with the GlobalConfig.
type Config struct {
	Route   string      // navigation route; default "/slide-<n>"
	Hidden  bool        // excluded from the router entirely
	Steps   int         // progressive-reveal step count; <=1 means single step
	Notes   string      // speaker notes, shown in the presenter view
	Preview PreviewFunc // optional custom thumbnail renderer
}

// Size is a fixed slide size in terminal cells. The zero value means the
// deck sizes responsively to the window.
type Size struct {
	Width  int
	Height int
}

// IsResponsive reports whether the deck has no fixed slide size.
func (s Size) IsResponsive() bool { return s.Width <= 0 || s.Height <= 0 }

// AspectRatio returns the deck's target width/height ratio. Responsive
// decks present at 16:9.
func (s Size) AspectRatio() float64 {
	if s.IsResponsive() {
		return 16.0 / 9.0
	}
	return float64(s.Width) / float64(s.Height)
}

// GlobalConfig holds deck-wide defaults merged under every slide's Config.
type GlobalConfig struct {
	Title    string        `yaml:"title"`
	Author   string        `yaml:"author"`
	Size     Size          `yaml:"size"`
	Theme    string        `yaml:"theme"`  // "auto", "dark" or "light"
	Locale   string        `yaml:"locale"` // BCP 47 tag; empty = system
	Autoplay time.Duration `yaml:"autoplay"`
}

// RouterSlide is the record handed to the router for one visible slide:
// its route, its merged configuration, and its content. Immutable once
// built; a slide-list change produces a fresh list.
type RouterSlide struct {
	Route  string
	Config Config
	Render RenderFunc
}

// Steps returns the slide's effective step count, never below 1.
func (r RouterSlide) Steps() int {
	if r.Config.Steps < 1 {
		return 1
	}
	return r.Config.Steps
}
