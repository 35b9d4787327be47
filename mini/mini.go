// Package mini implements a lightweight line-oriented player for terminals where the full TUI is unwanted.
package mini

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/player"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/util"
)

var (
	truncateAt = 100
)

// Options configures the mini host.
type Options struct {
	Catalog    *catalog.Catalog
	Player     player.Player
	Downloader session.Downloader
}

type mini struct {
	state state

	catalog *catalog.Catalog
	session *session.Session
	loop    *session.Loop
	status  *statusLine

	ctx context.Context
}

func (m *mini) setState(s state) {
	m.state = s
}

// call runs f on the session loop and waits for it.
func (m *mini) call(f func(s *session.Session)) error {
	return m.loop.Call(m.ctx, func() { f(m.session) })
}

// Run starts the session loop and drives it from interactive prompts until the user quits.
func Run(options *Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	m := newMini(ctx, options)

	stopped := make(chan struct{})
	go func() {
		m.loop.Run(ctx)
		close(stopped)
	}()

	// The loop must be gone before Close so player events cannot block on it.
	defer func() {
		cancel()
		<-stopped
		if err := m.session.Close(); err != nil {
			log.Warnf("close session: %v", err)
		}
	}()

	for m.state != quitState {
		if err := m.handleState(); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
	}

	return nil
}

func newMini(ctx context.Context, options *Options) *mini {
	m := &mini{
		catalog: options.Catalog,
		loop:    session.NewLoop(),
		status:  newStatusLine(),
		ctx:     ctx,
	}

	sessionOptions := session.DefaultOptions()
	sessionOptions.Scheduler = m.loop
	sessionOptions.Downloader = options.Downloader

	m.session = session.New(options.Player, sessionOptions)
	m.session.Transport().Attach(m.status)
	m.session.SetTriggers(options.Catalog.Triggers())
	m.session.Sync()

	options.Player.Subscribe(func(ev session.Event) {
		m.loop.Post(func() { m.session.HandleEvent(ev) })
	})

	m.state = episodeSelectState
	return m
}

func (m *mini) handleState() error {
	switch m.state {
	case episodeSelectState:
		return m.handleEpisodeSelectState()
	case controlState:
		return m.handleControlState()
	}

	return nil
}
