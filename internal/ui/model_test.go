package ui

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notification model", t, func() {
		m := &Model{}

		Convey("Without a notification the view is untouched", func() {
			So(m.View("panel"), ShouldEqual, "panel")
			So(m.Update(nil), ShouldBeNil)
		})

		Convey("When notified", func() {
			m.Notify("Saved /tmp/ep1.mp3")

			Convey("The next update schedules the expiry once", func() {
				So(m.Update(nil), ShouldNotBeNil)
				So(m.Update(nil), ShouldBeNil)
			})

			Convey("The message is appended to the last line", func() {
				So(m.View("title\ncontrols"), ShouldStartWith, "title\ncontrols  ")
				So(m.View("title\ncontrols"), ShouldContainSubstring, "Saved /tmp/ep1.mp3")
			})

			Convey("A stale clear keeps a newer notification", func() {
				m.Update(ClearNotificationMsg{At: time.Now().Add(-time.Hour)})
				So(m.Notification(), ShouldEqual, "Saved /tmp/ep1.mp3")
			})

			Convey("The matching clear removes it", func() {
				m.Update(ClearNotificationMsg{At: m.notifiedAt})
				So(m.Notification(), ShouldBeEmpty)
			})
		})
	})
}
