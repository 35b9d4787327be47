// Package session implements the playback session controller shared by every player view.
package session

// Media is the playback engine a Session drives. Implementations own a single
// playback resource; loading a new locator replaces whatever was loaded before.
type Media interface {
	// Load replaces the current resource with the one at url, positioned at 0 and paused.
	Load(url string) error

	// Play resumes playback. It may block until the engine accepts or rejects
	// the request, so the session never calls it on the event loop.
	Play() error

	// Pause suspends playback, retaining the position.
	Pause() error

	// Position reports the playback position in seconds.
	Position() (float64, error)

	// SetPosition moves playback to an absolute position in seconds.
	SetPosition(seconds float64) error

	// Duration reports the total length of the loaded resource in seconds.
	Duration() (float64, error)

	// SetVolume applies a volume in the [0, 1] range.
	SetVolume(volume float64) error

	// SetRate applies a playback rate multiplier.
	SetRate(rate float64) error
}

// EventKind enumerates the notifications a Media backend delivers to the session.
type EventKind int

const (
	PositionChanged EventKind = iota + 1
	MetadataReady
	Ended
	Failed
	Paused
	Resumed
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case PositionChanged:
		return "PositionChanged"
	case MetadataReady:
		return "MetadataReady"
	case Ended:
		return "Ended"
	case Failed:
		return "Failed"
	case Paused:
		return "Paused"
	case Resumed:
		return "Resumed"
	default:
		return "Unknown"
	}
}

// Event is a single notification from the media backend.
type Event struct {
	Kind EventKind
	// Position is set for PositionChanged.
	Position float64
	// Duration is set for MetadataReady and, when known, PositionChanged.
	Duration float64
	// Err is set for Failed.
	Err error
}
