// Package locale resolves the active UI language and translates the deck
// chrome strings (preview headers, status bar, help). Slide content is the
// embedding application's business; only framework strings live here.
package locale

import (
	"fmt"

	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"

	"github.com/beamdeck/beam/internal/notify"
)

// Supported lists the locales the chrome is translated into. The first
// entry is the fallback.
var Supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
}

var matcher = language.NewMatcher(Supported)

// Notifier owns the active locale and notifies observers when it changes.
type Notifier struct {
	active *notify.Value[language.Tag]
}

// New resolves requested (a BCP 47 tag; empty means the system locale) to
// the best supported match and returns a notifier seeded with it.
func New(requested string) *Notifier {
	return &Notifier{active: notify.NewValue(Resolve(requested))}
}

// Resolve maps a requested tag to the closest supported locale. Unknown or
// empty input falls back to the system locale, then to English.
func Resolve(requested string) language.Tag {
	if requested == "" {
		if sys, err := golocale.GetLocale(); err == nil {
			requested = sys
		}
	}
	desired, err := language.Parse(requested)
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(desired)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// Active returns the current locale.
func (n *Notifier) Active() language.Tag { return n.active.Get() }

// Set switches the active locale to the best match for tag.
func (n *Notifier) Set(tag language.Tag) {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	n.active.Set(Supported[idx])
}

// Cycle advances to the next supported locale.
func (n *Notifier) Cycle() {
	cur := n.active.Get()
	for i, tag := range Supported {
		if tag == cur {
			n.active.Set(Supported[(i+1)%len(Supported)])
			return
		}
	}
	n.active.Set(Supported[0])
}

// Subscribe registers fn for locale changes.
func (n *Notifier) Subscribe(fn func(language.Tag)) *notify.Subscription {
	return n.active.Subscribe(fn)
}

// Close drops all subscribers.
func (n *Notifier) Close() { n.active.Close() }

// T translates key into the active locale, applying args with fmt.Sprintf.
// Missing keys fall back to English, then to the key itself.
func (n *Notifier) T(key string, args ...any) string {
	msg, ok := messages[n.active.Get()][key]
	if !ok {
		msg, ok = messages[language.English][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
