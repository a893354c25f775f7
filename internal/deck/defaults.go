package deck

import "time"

// Shared defaults used by both binaries.
const (
	DefaultAutoplayInterval = 5 * time.Second
	DefaultTheme            = "auto"
)
