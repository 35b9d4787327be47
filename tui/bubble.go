package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/internal/ui"
	"github.com/onair-cli/onair/key"
	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/style"
	"github.com/onair-cli/onair/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// compactWidth is the terminal width below which the compact bar replaces the panel.
const compactWidth = 60

// panelHeight is the number of lines the transport occupies above the list.
const panelHeight = 4

// statefulBubble encapsulates the application state: the trigger list, the
// transport mirrors and the session driving them. Every session call happens
// inside Update, which makes the Bubble Tea loop the session's event loop.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	// components
	episodesC list.Model
	helpC     help.Model
	panel     *panel
	compact   *compactBar
	notifier  *ui.Model

	session *session.Session
	catalog *catalog.Catalog

	completionChannel chan func()
	eventChannel      chan session.Event
	catalogChannel    chan catalogMsg
	quitChannel       chan struct{}
	closeOnce         sync.Once

	lastError error

	width, height int

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	log.Error(err)
	b.lastError = err
	b.setState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// compactLayout reports whether the narrow transport is shown.
func (b *statefulBubble) compactLayout() bool {
	return viper.GetBool(key.TUICompactBar) || b.width < compactWidth
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	listWidth := width - xx
	listHeight := util.Max(height-yy-panelHeight, 3)

	b.episodesC.SetSize(listWidth, listHeight)
	b.episodesC.Help.Width = listWidth
	b.helpC.Width = listWidth

	b.panel.setWidth(b.width)
	b.compact.setWidth(b.width)
}

// RenderTrigger records the state the session rendered for t on its list item.
func (b *statefulBubble) RenderTrigger(t *session.Trigger, state session.TriggerState) {
	for _, item := range b.episodesC.Items() {
		if li, ok := item.(*listItem); ok && li.trigger == t {
			li.state = state
		}
	}
}

// Go implements session.Scheduler. The task runs on its own goroutine and
// its completion is delivered to Update as a completionMsg.
func (b *statefulBubble) Go(task func() error, done func(err error)) {
	go func() {
		err := task()
		select {
		case b.completionChannel <- func() { done(err) }:
		case <-b.quitChannel:
		}
	}()
}

// forward hands a player event to the Bubble Tea loop.
// Position updates are dropped rather than blocking the player when the loop lags.
func (b *statefulBubble) forward(ev session.Event) {
	if ev.Kind == session.PositionChanged {
		select {
		case b.eventChannel <- ev:
		default:
		}
		return
	}

	select {
	case b.eventChannel <- ev:
	case <-b.quitChannel:
	}
}

// setCatalog replaces the list items and the session triggers.
func (b *statefulBubble) setCatalog(c *catalog.Catalog) {
	b.catalog = c
	triggers := c.Triggers()

	items := lo.Map(triggers, func(t *session.Trigger, _ int) list.Item {
		return &listItem{trigger: t}
	})
	b.episodesC.SetItems(items)
	b.episodesC.SetStatusBarItemName("track", "tracks")
	b.session.SetTriggers(triggers)
}

// selectedTrigger returns the trigger under the list cursor.
func (b *statefulBubble) selectedTrigger() *session.Trigger {
	if item, ok := b.episodesC.SelectedItem().(*listItem); ok {
		return item.trigger
	}
	return nil
}

// close stops the background forwarders and releases the player.
func (b *statefulBubble) close() {
	b.closeOnce.Do(func() {
		close(b.quitChannel)
		if err := b.session.Close(); err != nil {
			log.Warnf("close session: %v", err)
		}
	})
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := &statefulBubble{
		keymap: keymap,

		panel:    newPanel(),
		compact:  newCompactBar(),
		notifier: &ui.Model{},

		completionChannel: make(chan func()),
		eventChannel:      make(chan session.Event, 256),
		catalogChannel:    make(chan catalogMsg),
		quitChannel:       make(chan struct{}),

		options: options,
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.episodesC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.episodesC.KeyMap = keymap.forList()
	bubble.episodesC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.episodesC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.episodesC.Title = "Episodes"
	bubble.episodesC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1)
	bubble.episodesC.Styles.NoItems = paddingStyle
	bubble.episodesC.StatusMessageLifetime = time.Hour * 999
	bubble.episodesC.SetShowPagination(false)
	bubble.episodesC.SetShowStatusBar(false)

	bubble.helpC = help.New()

	sessionOptions := session.DefaultOptions()
	sessionOptions.Scheduler = bubble
	sessionOptions.Downloader = options.Downloader

	bubble.session = session.New(options.Player, sessionOptions)
	bubble.session.Transport().Attach(bubble.panel, bubble.compact, bubble.notifier, bubble)
	options.Player.Subscribe(bubble.forward)

	if options.Catalog != nil {
		bubble.setCatalog(options.Catalog)
		bubble.episodesC.Title = fmt.Sprintf("Episodes (%s)", util.Quantify(len(options.Catalog.Episodes), "episode", "episodes"))
	}

	bubble.session.Sync()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(episodesState)
	return bubble
}
