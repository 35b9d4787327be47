// Package player implements playback backends for the session.
// The primary implementation drives 'mpv' through its JSON-IPC interface.
package player

import (
	"fmt"
	"strings"

	"github.com/onair-cli/onair/session"
	"github.com/samber/lo"
)

// Player is a session.Media backend that also reports engine-side changes.
type Player interface {
	session.Media

	// Start brings the engine up so later calls only talk to it.
	// Hosts call it before their event loop runs, since it may block for seconds.
	Start() error

	// Subscribe installs the handler receiving engine events.
	// It is called from a backend goroutine, so hosts must hop onto their event loop.
	Subscribe(handler func(session.Event))

	// Close terminates the backend and releases its resources.
	Close() error
}

var available = map[string]func() Player{
	"mpv": func() Player { return NewMPV("mpv") },
}

// Available lists the registered backend names.
func Available() []string {
	names := lo.Keys(available)
	return names
}

// New returns the backend registered under name.
// A name that is a path to an mpv binary is accepted as well.
func New(name string) (Player, error) {
	if ctor, ok := available[name]; ok {
		return ctor(), nil
	}

	if strings.Contains(name, "mpv") {
		return NewMPV(name), nil
	}

	return nil, fmt.Errorf("unknown player %q, available: %s", name, strings.Join(Available(), ", "))
}
