package mini

import (
	"context"
	"testing"
	"time"

	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/icon"
	"github.com/onair-cli/onair/key"
	"github.com/onair-cli/onair/session"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type fakePlayer struct {
	url     string
	playing bool
	pos     float64
	volume  float64
	handler func(session.Event)
}

func (p *fakePlayer) Load(url string) error { p.url = url; p.pos = 0; return nil }
func (p *fakePlayer) Play() error { p.playing = true; return nil }
func (p *fakePlayer) Pause() error { p.playing = false; return nil }
func (p *fakePlayer) Position() (float64, error) { return p.pos, nil }
func (p *fakePlayer) SetPosition(s float64) error { p.pos = s; return nil }
func (p *fakePlayer) Duration() (float64, error) { return 1200, nil }
func (p *fakePlayer) SetVolume(v float64) error { p.volume = v; return nil }
func (p *fakePlayer) SetRate(float64) error { return nil }
func (p *fakePlayer) Start() error { return nil }
func (p *fakePlayer) Subscribe(handler func(session.Event)) { p.handler = handler }
func (p *fakePlayer) Close() error { return nil }

func TestParseCommand(t *testing.T) {
	Convey("parseCommand", t, func() {
		Convey("Should parse single letter commands", func() {
			for input, kind := range map[string]commandKind{
				"p": cmdPlayPause, "<": cmdRewind, ">": cmdForward, "s": cmdRate,
				"m": cmdMute, "d": cmdDownload, "e": cmdEpisodes, "q": cmdQuit, "  ": cmdStatus,
			} {
				cmd, err := parseCommand(input)
				So(err, ShouldBeNil)
				So(cmd.kind, ShouldEqual, kind)
			}
		})

		Convey("Should parse percentages", func() {
			cmd, err := parseCommand("v 80")
			So(err, ShouldBeNil)
			So(cmd, ShouldResemble, command{kind: cmdVolume, arg: 80})

			cmd, err = parseCommand("SEEK 25%")
			So(err, ShouldBeNil)
			So(cmd, ShouldResemble, command{kind: cmdSeek, arg: 25})
		})

		Convey("Should reject bad input", func() {
			_, err := parseCommand("v 180")
			So(err, ShouldNotBeNil)
			_, err = parseCommand("seek half")
			So(err, ShouldNotBeNil)
			_, err = parseCommand("rewind now please")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMini(t *testing.T) {
	Convey("Given a mini host over a running loop", t, func() {
		viper.Set(key.PlayerVolume, 100)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		p := &fakePlayer{}
		m := newMini(ctx, &Options{
			Player: p,
			Catalog: &catalog.Catalog{Episodes: []*catalog.Episode{
				{Title: "Pilot", Slug: "pilot", Audio: catalog.Audio{En: "https://cdn.example.com/pilot-en.mp3"}},
			}},
		})
		go m.loop.Run(ctx)

		run := func(input string) string {
			cmd, err := parseCommand(input)
			So(err, ShouldBeNil)
			var line string
			So(m.call(func(s *session.Session) {
				cmd.apply(s)
				line = m.status.String()
			}), ShouldBeNil)
			return line
		}

		Convey("p should start the default trigger", func() {
			run("p")

			So(waitFor(func() bool {
				var playing bool
				_ = m.call(func(s *session.Session) { playing = s.Snapshot().Playing })
				return playing
			}), ShouldBeTrue)
			So(p.url, ShouldEqual, "https://cdn.example.com/pilot-en.mp3")

			Convey("and seek should move to a percentage", func() {
				line := run("seek 50")
				So(p.pos, ShouldEqual, 600)
				So(line, ShouldContainSubstring, "10:00 / 0:00")
			})

			Convey("and volume should be shown", func() {
				So(run("v 40"), ShouldContainSubstring, "vol 40%")
				So(run("m"), ShouldContainSubstring, "muted")
			})

			Convey("and player events should reach the session through the loop", func() {
				p.handler(session.Event{Kind: session.MetadataReady, Duration: 1200})
				So(waitFor(func() bool {
					var duration string
					_ = m.call(func(*session.Session) { duration = m.status.duration })
					return duration == "20:00"
				}), ShouldBeTrue)
			})
		})
	})
}

func TestStatusLine(t *testing.T) {
	Convey("Given a status line", t, func() {
		l := newStatusLine()
		l.SetTitle("Pilot")

		Convey("While paused it should offer play", func() {
			So(l.String(), ShouldStartWith, icon.Get(icon.Play)+" Pilot")
		})

		Convey("While playing it should offer pause like the TUI panel", func() {
			l.SetPlaying(true)
			So(l.String(), ShouldStartWith, icon.Get(icon.Pause)+" Pilot")
		})
	})
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
