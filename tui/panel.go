package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/style"
	"github.com/onair-cli/onair/util"
	"github.com/samber/lo"
)

// panel is the full transport view. It only records what the session writes
// into it and never calls back into the session.
type panel struct {
	playing  bool
	seek     float64
	volume   float64
	muted    bool
	title    string
	elapsed  string
	duration string
	rate     string

	href, filename  string
	downloadEnabled bool

	bar progress.Model
}

func newPanel() *panel {
	return &panel{
		title:    "Pick an episode",
		elapsed:  session.FormatTime(0),
		duration: session.FormatTime(0),
		rate:     session.FormatRate(1),
		volume:   100,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (p *panel) SetPlaying(playing bool) { p.playing = playing }
func (p *panel) SetSeek(percent float64) { p.seek = percent }
func (p *panel) SetVolume(percent float64) { p.volume = percent }
func (p *panel) SetMuted(muted bool) { p.muted = muted }
func (p *panel) SetTitle(text string) { p.title = text }
func (p *panel) SetElapsed(text string) { p.elapsed = text }
func (p *panel) SetDuration(text string) { p.duration = text }
func (p *panel) SetRate(text string) { p.rate = text }
func (p *panel) SetEnabled(enabled bool) { p.downloadEnabled = enabled }
func (p *panel) SetTarget(href, filename string) { p.href, p.filename = href, filename }

func (p *panel) setWidth(width int) {
	p.bar.Width = util.Max(width-len(p.elapsed)-len(p.duration)-2, 10)
}

func (p *panel) View(width int) string {
	title := style.Bold(truncate.StringWithTail(p.title, uint(util.Max(width, 1)), "…"))
	if p.title == session.ErrorTitle {
		title = style.Fg(style.ErrorColor)(p.title)
	}

	playPause := lo.Ternary(p.playing, icon.Get(icon.Pause)+" pause", icon.Get(icon.Play)+" play")

	volume := fmt.Sprintf("%s %3.0f%%", icon.Get(icon.Volume), p.volume)
	if p.muted {
		volume = style.Faint(icon.Get(icon.Mute) + " muted")
	}

	download := style.Faint(icon.Get(icon.Download) + " download")
	if p.downloadEnabled {
		download = icon.Get(icon.Download) + " " + p.filename
	}

	controls := strings.Join([]string{
		icon.Get(icon.Rewind),
		playPause,
		icon.Get(icon.Forward),
		style.Tag(style.Base, style.SecondaryColor)(p.rate),
		volume,
		download,
	}, "  ")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		fmt.Sprintf("%s %s %s", p.elapsed, p.bar.ViewAs(p.seek/100), p.duration),
		controls,
	)
}

// compactBar is the narrow transport: seek bar, rewind, play and forward.
type compactBar struct {
	playing bool
	seek    float64
	bar     progress.Model
}

func newCompactBar() *compactBar {
	return &compactBar{
		bar: progress.New(progress.WithSolidFill(string(style.AccentColor)), progress.WithoutPercentage()),
	}
}

func (c *compactBar) SetPlaying(playing bool) { c.playing = playing }
func (c *compactBar) SetSeek(percent float64) { c.seek = percent }

func (c *compactBar) setWidth(width int) {
	c.bar.Width = util.Max(width-12, 10)
}

func (c *compactBar) View() string {
	return fmt.Sprintf("%s %s %s %s",
		icon.Get(icon.Rewind),
		lo.Ternary(c.playing, icon.Get(icon.Pause), icon.Get(icon.Play)),
		icon.Get(icon.Forward),
		c.bar.ViewAs(c.seek/100),
	)
}
