package deck

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNoSlides is returned when a deck has no visible slide to present.
var ErrNoSlides = errors.New("deck: at least one visible slide is required")

// Merge resolves a slide's effective configuration: per-slide fields win,
// unset fields fall back to the deck-wide defaults.
func Merge(global GlobalConfig, cfg *Config) Config {
	merged := Config{}
	if cfg != nil {
		merged = *cfg
	}
	if merged.Steps < 1 {
		merged.Steps = 1
	}
	merged.Route = strings.TrimSpace(merged.Route)
	_ = global // deck-wide fields (size, theme, locale) stay on GlobalConfig
	return merged
}

// BuildRouterSlides filters out hidden slides and converts the rest into
// router records. Slides without an explicit route get "/slide-<n>", with n
// counting visible slides from 1.
func BuildRouterSlides(global GlobalConfig, slides []Slide) ([]RouterSlide, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	out := make([]RouterSlide, 0, len(slides))
	seen := make(map[string]struct{}, len(slides))
	for _, s := range slides {
		if s.Config != nil && s.Config.Hidden {
			continue
		}
		if s.Render == nil {
			return nil, errors.New("deck: slide has no render function")
		}

		cfg := Merge(global, s.Config)
		if cfg.Route == "" {
			cfg.Route = fmt.Sprintf("/slide-%d", len(out)+1)
		}
		if _, dup := seen[cfg.Route]; dup {
			return nil, fmt.Errorf("deck: duplicate route %q", cfg.Route)
		}
		seen[cfg.Route] = struct{}{}

		out = append(out, RouterSlide{
			Route:  cfg.Route,
			Config: cfg,
			Render: s.Render,
		})
	}

	if len(out) == 0 {
		return nil, ErrNoSlides
	}
	return out, nil
}

// SameSlides reports whether two declared slide lists are element-wise
// identical (same config pointer, same render function). It is used to skip
// router rebuilds on no-op slide-list updates.
func SameSlides(a, b []Slide) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Config != b[i].Config {
			return false
		}
		if reflect.ValueOf(a[i].Render).Pointer() != reflect.ValueOf(b[i].Render).Pointer() {
			return false
		}
	}
	return true
}
