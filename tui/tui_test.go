package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/onair-cli/onair/catalog"
	"github.com/onair-cli/onair/key"
	"github.com/onair-cli/onair/session"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	viper.Set(key.PlayerVolume, 100)
	viper.Set(key.PlayerLanguage, "ja")
}

type fakePlayer struct {
	url      string
	playing  bool
	position float64
	duration float64
	volume   float64
	rate     float64
	handler  func(session.Event)
	closed   bool
}

func (p *fakePlayer) Load(url string) error { p.url = url; p.position = 0; p.duration = 600; return nil }
func (p *fakePlayer) Play() error { p.playing = true; return nil }
func (p *fakePlayer) Pause() error { p.playing = false; return nil }
func (p *fakePlayer) Position() (float64, error) { return p.position, nil }
func (p *fakePlayer) SetPosition(s float64) error { p.position = s; return nil }
func (p *fakePlayer) Duration() (float64, error) { return p.duration, nil }
func (p *fakePlayer) SetVolume(v float64) error { p.volume = v; return nil }
func (p *fakePlayer) SetRate(r float64) error { p.rate = r; return nil }
func (p *fakePlayer) Start() error { return nil }
func (p *fakePlayer) Subscribe(handler func(session.Event)) { p.handler = handler }
func (p *fakePlayer) Close() error { p.closed = true; return nil }

type fakeDownloader struct {
	requested []string
}

func (d *fakeDownloader) Fetch(_ context.Context, url, filename string) (string, error) {
	d.requested = append(d.requested, url)
	return "/downloads/" + filename, nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Episodes: []*catalog.Episode{
			{Title: "Ep. 1 Morning Train", Slug: "ep1", Audio: catalog.Audio{Ja: "https://cdn.example.com/ep1-ja.mp3", En: "https://cdn.example.com/ep1-en.mp3"}},
			{Title: "Ep. 2 Tokyo Night", Slug: "ep2", Audio: catalog.Audio{Ja: "https://cdn.example.com/ep2-ja.mp3"}},
		},
	}
}

// press sends a key and runs the scheduled completion, if any.
func press(b *statefulBubble, keys ...string) {
	for _, k := range keys {
		b.Update(keyMsg(k))
		select {
		case f := <-b.completionChannel:
			b.Update(completionMsg(f))
		default:
		}
	}
}

// settle waits for the goroutine of a scheduled task and applies its completion.
func settle(b *statefulBubble) {
	msg := b.waitForCompletion()()
	b.Update(msg)
}

func TestBubble(t *testing.T) {
	Convey("Given the TUI over a catalog", t, func() {
		p := &fakePlayer{}
		d := &fakeDownloader{}
		b := newBubble(&Options{Catalog: testCatalog(), Player: p, Downloader: d})
		defer b.close()
		b.resize(120, 40)

		Convey("The list should hold one item per trigger", func() {
			So(b.episodesC.Items(), ShouldHaveLength, 4)
			So(p.handler, ShouldNotBeNil)
		})

		Convey("When the first trigger is activated", func() {
			b.Update(keyMsg("enter"))
			settle(b)

			Convey("Playback should start and every mirror should follow", func() {
				So(p.url, ShouldEqual, "https://cdn.example.com/ep1-ja.mp3")
				So(p.playing, ShouldBeTrue)
				So(b.panel.playing, ShouldBeTrue)
				So(b.compact.playing, ShouldBeTrue)
				So(b.panel.title, ShouldEqual, "Ep. 1 Morning Train")
				So(b.panel.filename, ShouldEqual, "Ep._1_Morning_Train_ja.mp3")
			})

			Convey("The list item should show Now Playing", func() {
				item := b.episodesC.Items()[0].(*listItem)
				So(item.state, ShouldEqual, session.TriggerPlaying)
				So(item.Title(), ShouldContainSubstring, session.NowPlayingLabel)
			})

			Convey("Space should pause", func() {
				press(b, " ")
				So(p.playing, ShouldBeFalse)
				So(b.panel.playing, ShouldBeFalse)
			})

			Convey("Digits should seek to tenths of the duration", func() {
				press(b, "5")
				So(p.position, ShouldEqual, 300)
				So(b.panel.seek, ShouldEqual, 50)
				So(b.compact.seek, ShouldEqual, 50)
				So(b.panel.elapsed, ShouldEqual, "5:00")
			})

			Convey("Arrows should rewind and forward", func() {
				press(b, "5", "right")
				So(p.position, ShouldEqual, 330)
				press(b, "left")
				So(p.position, ShouldEqual, 315)
			})

			Convey("s should cycle the rate", func() {
				press(b, "s")
				So(p.rate, ShouldEqual, 1.25)
				So(b.panel.rate, ShouldEqual, "1.25x")
			})

			Convey("m should mute and unmute", func() {
				press(b, "m")
				So(b.panel.muted, ShouldBeTrue)
				So(p.volume, ShouldEqual, 0)
				press(b, "m")
				So(b.panel.muted, ShouldBeFalse)
			})

			Convey("- should lower the volume", func() {
				press(b, "-")
				So(b.panel.volume, ShouldAlmostEqual, 90, 0.001)
			})

			Convey("d should download the bound source and notify", func() {
				b.Update(keyMsg("d"))
				settle(b)
				So(d.requested, ShouldResemble, []string{"https://cdn.example.com/ep1-ja.mp3"})
				So(b.notifier.Notification(), ShouldStartWith, "Saved /downloads/")
			})

			Convey("A forwarded end event should reset the transport", func() {
				p.handler(session.Event{Kind: session.PositionChanged, Position: 600, Duration: 600})
				b.Update(b.waitForEvent()())
				So(b.panel.seek, ShouldEqual, 100)

				p.handler(session.Event{Kind: session.Ended})
				b.Update(b.waitForEvent()())
				So(b.panel.playing, ShouldBeFalse)
				So(b.panel.seek, ShouldEqual, 0)
			})
		})

		Convey("A disabled trigger should not start playback", func() {
			press(b, "down", "down", "down", "enter")
			So(p.url, ShouldBeEmpty)
		})

		Convey("A reloaded catalog should keep the bound trigger playing", func() {
			b.Update(keyMsg("enter"))
			settle(b)

			b.Update(catalogMsg{catalog: testCatalog()})
			item := b.episodesC.Items()[0].(*listItem)
			So(item.state, ShouldEqual, session.TriggerPlaying)
			So(b.notifier.Notification(), ShouldEqual, "Catalog reloaded")
		})

		Convey("Narrow terminals should use the compact bar", func() {
			b.resize(40, 20)
			So(b.compactLayout(), ShouldBeTrue)
			b.resize(120, 40)
			So(b.compactLayout(), ShouldBeFalse)
		})

		Convey("Closing should release the player", func() {
			b.close()
			So(p.closed, ShouldBeTrue)
		})
	})
}
