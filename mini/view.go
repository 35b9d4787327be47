package mini

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/onair-cli/onair/color"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/session"
	"github.com/onair-cli/onair/style"
	"github.com/samber/lo"
)

const quitOption = "Quit"

func shorten(s string) string {
	return truncate.StringWithTail(s, uint(truncateAt), "…")
}

func title(text string) {
	fmt.Println(style.Fg(color.Purple)(style.Bold(text)))
}

func fail(text string) {
	fmt.Println(style.Fg(color.Red)(icon.Get(icon.Fail) + " " + text))
}

func success(text string) {
	fmt.Println(style.Fg(color.Green)(icon.Get(icon.Success) + " " + text))
}

// statusLine is the one-line transport view of the mini host.
// Notices are printed as they arrive since they may come from background downloads.
type statusLine struct {
	playing  bool
	seek     float64
	volume   float64
	muted    bool
	title    string
	elapsed  string
	duration string
	rate     string
	filename string
	enabled  bool
}

func newStatusLine() *statusLine {
	return &statusLine{
		elapsed:  session.FormatTime(0),
		duration: session.FormatTime(0),
		rate:     session.FormatRate(1),
	}
}

func (l *statusLine) SetPlaying(playing bool) { l.playing = playing }
func (l *statusLine) SetSeek(percent float64) { l.seek = percent }
func (l *statusLine) SetVolume(percent float64) { l.volume = percent }
func (l *statusLine) SetMuted(muted bool) { l.muted = muted }
func (l *statusLine) SetTitle(text string) { l.title = text }
func (l *statusLine) SetElapsed(text string) { l.elapsed = text }
func (l *statusLine) SetDuration(text string) { l.duration = text }
func (l *statusLine) SetRate(text string) { l.rate = text }
func (l *statusLine) SetTarget(_, filename string) { l.filename = filename }
func (l *statusLine) SetEnabled(enabled bool) { l.enabled = enabled }

func (l *statusLine) Notify(message string) {
	if strings.HasPrefix(message, "Download failed") {
		fail(message)
		return
	}
	success(message)
}

// String renders the line, e.g. "▶ Ep. 1  0:42 / 12:00 (5%)  1.0x  vol 100%".
func (l *statusLine) String() string {
	// The icon names the action the p command would take, as in the TUI.
	state := lo.Ternary(l.playing, icon.Get(icon.Pause), icon.Get(icon.Play))

	volume := fmt.Sprintf("vol %.0f%%", l.volume)
	if l.muted {
		volume = "muted"
	}

	return shorten(fmt.Sprintf("%s %s  %s / %s (%.0f%%)  %s  %s",
		state, l.title, l.elapsed, l.duration, l.seek, l.rate, volume))
}
