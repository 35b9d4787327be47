package player

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/onair-cli/onair/constant"
	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// ErrNotRunning is returned when a property is queried before mpv was started.
var ErrNotRunning = errors.New("mpv is not running")

// MPV plays audio in a headless mpv process controlled over JSON-IPC.
// Hosts call Start before their event loop runs; Load starts mpv again only after it died.
type MPV struct {
	binary     string
	socketPath string // guarded by pathMu
	pathMu     sync.RWMutex
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	listener   *EventListener

	mu      sync.Mutex // Protects socket writes
	startMu sync.Mutex // Protects process startup

	handlerMu sync.RWMutex
	handler   func(session.Event)

	closing atomic.Bool
}

// NewMPV creates a new MPV instance for the given binary (does not start the process).
func NewMPV(binary string) *MPV {
	return &MPV{binary: binary}
}

// Subscribe installs the event handler.
func (m *MPV) Subscribe(handler func(session.Event)) {
	m.handlerMu.Lock()
	defer m.handlerMu.Unlock()
	m.handler = handler
}

func (m *MPV) emit(ev session.Event) {
	m.handlerMu.RLock()
	handler := m.handler
	m.handlerMu.RUnlock()

	if handler != nil {
		handler(ev)
	}
}

// Load replaces the current file with rawURL, paused at the start.
func (m *MPV) Load(rawURL string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := m.ensureStarted(); err != nil {
		return err
	}

	if err := m.Set("pause", true); err != nil {
		return err
	}

	_, err = m.sendCommand([]interface{}{"loadfile", target, "replace"})
	return err
}

// Play resumes playback.
func (m *MPV) Play() error {
	if !m.started() {
		return ErrNotRunning
	}
	return m.Set("pause", false)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	if !m.started() {
		return nil
	}
	return m.Set("pause", true)
}

// Position returns the current playback position in seconds.
func (m *MPV) Position() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// SetPosition moves playback to the given absolute position in seconds.
func (m *MPV) SetPosition(seconds float64) error {
	if !m.started() {
		return ErrNotRunning
	}
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// Duration returns the total duration of the current media in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// SetVolume applies a [0, 1] volume as mpv's 0-100 scale.
func (m *MPV) SetVolume(volume float64) error {
	if !m.started() {
		return ErrNotRunning
	}
	return m.Set("volume", volume*100)
}

// SetRate sets the playback speed multiplier.
func (m *MPV) SetRate(rate float64) error {
	if !m.started() {
		return ErrNotRunning
	}
	return m.Set("speed", rate)
}

// Set a property
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// Start spawns mpv and attaches the event listener if it is not running yet.
func (m *MPV) Start() error {
	return m.ensureStarted()
}

func (m *MPV) socket() string {
	m.pathMu.RLock()
	defer m.pathMu.RUnlock()
	return m.socketPath
}

func (m *MPV) setSocket(path string) {
	m.pathMu.Lock()
	defer m.pathMu.Unlock()
	m.socketPath = path
}

func (m *MPV) started() bool {
	m.startMu.Lock()
	defer m.startMu.Unlock()
	return m.cmd != nil
}

// ensureStarted spawns mpv in idle mode and attaches the event listener.
func (m *MPV) ensureStarted() error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.cmd != nil {
		select {
		case <-m.exited:
			log.Warn("mpv exited, restarting")
			m.cmd = nil
		default:
			return nil
		}
	}

	socket := filepath.Join(where.Temp(), fmt.Sprintf("%s-%s.sock", constant.Onair, uuid.NewString()[:8]))
	m.setSocket(socket)

	// Pass only what headless audio needs and respect the user's mpv.conf otherwise.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--no-video",
		"--idle=yes",
		"--keep-open=yes",
		"--pause",
		fmt.Sprintf("--input-ipc-server=%s", socket),
		fmt.Sprintf("--title=%s", constant.Onair),
	}

	cmd := exec.Command(m.binary, args...)

	// Detach from parent process group so terminal signals reach only us.
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binary, err)
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	m.cmd = cmd
	m.exited = exited

	if err := m.waitForSocket(socket, exited); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		m.cmd = nil
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(socket, func(property string, data interface{}) {
		if ev, ok := translate(property, data); ok {
			m.emit(ev)
		}
	})
	if err := m.listener.Start(); err != nil {
		// Without events the session would never see progress or the end of a track.
		log.Warnf("killing mpv: %v", err)
		_ = killProcess(cmd)
		<-exited
		_ = os.Remove(socket)
		m.cmd = nil
		return err
	}

	go m.watchExit(exited)

	log.Infof("mpv started with socket %s", socket)
	return nil
}

// watchExit reports an unexpected mpv exit as a resource failure.
func (m *MPV) watchExit(exited <-chan struct{}) {
	<-exited
	if m.closing.Load() {
		return
	}
	log.Warn("mpv exited unexpectedly")
	m.emit(session.Event{Kind: session.Failed, Err: errors.New("mpv exited unexpectedly")})
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket(socket string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-exited:
			return fmt.Errorf("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := dial(socket)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", socket, socketWaitRetries)
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.startMu.Lock()
	defer m.startMu.Unlock()

	if m.cmd == nil {
		return nil
	}

	m.closing.Store(true)
	if m.listener != nil {
		m.listener.Stop()
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socket())
	m.cmd = nil
	return nil
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	if !m.started() {
		return 0, ErrNotRunning
	}

	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a locator is safe to pass to mpv.
// Catalog entries are user-editable, so flag injection must be rejected.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}
