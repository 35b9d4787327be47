package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/session"
)

// EventCallback is the function signature for mpv event notifications.
type EventCallback func(property string, data interface{})

// observed lists the properties the listener subscribes to.
var observed = []string{"time-pos", "duration", "pause", "eof-reached"}

// EventListener provides real-time mpv event monitoring via observe_property.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	done       chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start opens a persistent connection, registers the property observers on it and starts the read loop.
// mpv scopes observers to the client connection, so they must share the one that is read.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := dial(el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for id, name := range observed {
		payload, err := json.Marshal(ipcCommand{Command: []interface{}{"observe_property", id + 1, name}})
		if err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.done = make(chan struct{})
	el.listening = true

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s (observing: %v)", el.socketPath, observed)
	return nil
}

// Stop terminates the event listener and waits for the read loop to return.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.listening = false
	conn, done := el.conn, el.done
	el.mu.Unlock()

	conn.Close()
	<-done
}

// readLoop reads newline-delimited JSON events until the connection closes.
func (el *EventListener) readLoop(conn net.Conn, done chan<- struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, readBufSize), 1<<20)

	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

// processEvent parses and dispatches a single mpv event JSON line.
// Command replies carry no "event" field and are skipped.
func (el *EventListener) processEvent(line []byte) {
	var event map[string]interface{}
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	eventType, ok := event["event"].(string)
	if !ok || el.callback == nil {
		return
	}

	switch eventType {
	case "property-change":
		if name, _ := event["name"].(string); name != "" {
			el.callback(name, event["data"])
		}
	default:
		// Forward other events (e.g., "file-loaded", "end-file")
		el.callback(eventType, event)
	}
}

// translate maps an mpv notification onto a session event.
func translate(property string, data interface{}) (session.Event, bool) {
	switch property {
	case "time-pos":
		if pos, ok := data.(float64); ok {
			return session.Event{Kind: session.PositionChanged, Position: pos}, true
		}
	case "duration":
		if d, ok := data.(float64); ok && d > 0 {
			return session.Event{Kind: session.MetadataReady, Duration: d}, true
		}
	case "pause":
		if paused, ok := data.(bool); ok {
			if paused {
				return session.Event{Kind: session.Paused}, true
			}
			return session.Event{Kind: session.Resumed}, true
		}
	case "eof-reached":
		if eof, ok := data.(bool); ok && eof {
			return session.Event{Kind: session.Ended}, true
		}
	case "end-file":
		event, _ := data.(map[string]interface{})
		switch reason, _ := event["reason"].(string); reason {
		case "error":
			cause, _ := event["file_error"].(string)
			if cause == "" {
				cause = "unknown error"
			}
			return session.Event{Kind: session.Failed, Err: errors.New(cause)}, true
		case "eof":
			return session.Event{Kind: session.Ended}, true
		}
	}

	return session.Event{}, false
}
