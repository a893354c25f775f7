// Package presenter synchronizes deck position between a presenting process
// and presenter-view processes over WebSocket.
package presenter

// State is the wire snapshot of the presenting deck's position.
type State struct {
	Route          string  `json:"route"`
	Index          int     `json:"index"`
	Step           int     `json:"step"`
	SlideCount     int     `json:"slideCount"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

// Client is the transport the sync controller drives. Implementations:
// the in-process hub client of a Server, and the WebSocket Client of a
// remote presenter view.
type Client interface {
	// Start activates the transport (dials, registers). Must be called
	// before Publish.
	Start() error
	// Publish sends a state snapshot to the other side(s).
	Publish(State) error
	// Updates streams inbound state snapshots. The channel closes when the
	// client is closed or the transport drops.
	Updates() <-chan State
	// Close releases the transport. Safe to call more than once.
	Close() error
}
