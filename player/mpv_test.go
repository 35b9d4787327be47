package player

import (
	"encoding/json"
	"testing"

	"github.com/onair-cli/onair/session"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should accept http and https URLs", func() {
			for _, link := range []string{"https://cdn.example.com/ep1.mp3", "http://example.com/a.m4a"} {
				got, err := sanitizeMediaTarget(link)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, link)
			}
		})

		Convey("Should clean local paths", func() {
			got, err := sanitizeMediaTarget(" /srv/audio/../audio/ep1.mp3 ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "/srv/audio/ep1.mp3")
		})

		Convey("Should reject flags", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject control characters", func() {
			_, err := sanitizeMediaTarget("https://example.com/a\n.mp3")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unknown schemes", func() {
			_, err := sanitizeMediaTarget("ytdl://something")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject empty targets", func() {
			_, err := sanitizeMediaTarget("   ")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestTranslate(t *testing.T) {
	Convey("translate", t, func() {
		Convey("time-pos becomes PositionChanged", func() {
			ev, ok := translate("time-pos", 12.5)
			So(ok, ShouldBeTrue)
			So(ev.Kind, ShouldEqual, session.PositionChanged)
			So(ev.Position, ShouldEqual, 12.5)
		})

		Convey("A positive duration becomes MetadataReady", func() {
			ev, ok := translate("duration", 1800.0)
			So(ok, ShouldBeTrue)
			So(ev.Kind, ShouldEqual, session.MetadataReady)
			So(ev.Duration, ShouldEqual, 1800)

			_, ok = translate("duration", nil)
			So(ok, ShouldBeFalse)
		})

		Convey("pause maps to Paused and Resumed", func() {
			ev, _ := translate("pause", true)
			So(ev.Kind, ShouldEqual, session.Paused)
			ev, _ = translate("pause", false)
			So(ev.Kind, ShouldEqual, session.Resumed)
		})

		Convey("Only a true eof-reached ends playback", func() {
			ev, ok := translate("eof-reached", true)
			So(ok, ShouldBeTrue)
			So(ev.Kind, ShouldEqual, session.Ended)

			_, ok = translate("eof-reached", false)
			So(ok, ShouldBeFalse)
		})

		Convey("end-file with an error becomes Failed", func() {
			ev, ok := translate("end-file", map[string]interface{}{"reason": "error", "file_error": "loading failed"})
			So(ok, ShouldBeTrue)
			So(ev.Kind, ShouldEqual, session.Failed)
			So(ev.Err.Error(), ShouldEqual, "loading failed")
		})

		Convey("end-file caused by a replace is ignored", func() {
			_, ok := translate("end-file", map[string]interface{}{"reason": "stop"})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestProcessEvent(t *testing.T) {
	Convey("Given a listener recording callbacks", t, func() {
		var names []string
		el := NewEventListener("", func(property string, data interface{}) {
			names = append(names, property)
		})

		line := func(v map[string]interface{}) []byte {
			b, _ := json.Marshal(v)
			return b
		}

		el.processEvent(line(map[string]interface{}{"event": "property-change", "name": "pause", "data": true}))
		el.processEvent(line(map[string]interface{}{"event": "end-file", "reason": "eof"}))
		el.processEvent(line(map[string]interface{}{"error": "success", "request_id": 0}))
		el.processEvent([]byte("not json"))

		So(names, ShouldResemble, []string{"pause", "end-file"})
	})
}

func TestNew(t *testing.T) {
	Convey("New", t, func() {
		p, err := New("mpv")
		So(err, ShouldBeNil)
		So(p, ShouldNotBeNil)

		_, err = New("vlc")
		So(err, ShouldNotBeNil)
	})

	Convey("An unstarted MPV", t, func() {
		m := NewMPV("mpv")

		So(m.Pause(), ShouldBeNil)
		So(m.Play(), ShouldEqual, ErrNotRunning)
		_, err := m.Position()
		So(err, ShouldEqual, ErrNotRunning)
		So(m.Close(), ShouldBeNil)
	})
}
