package open

import (
	"testing"

	"github.com/onair-cli/onair/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given the downloads directory", t, func() {
		const dir = "/home/user/Downloads/onair"

		Convey("On Linux it should use xdg-open", func() {
			cmd, err := command(constant.Linux, dir)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", dir})
		})

		Convey("On macOS it should use open", func() {
			cmd, err := command(constant.Darwin, dir)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", dir})
		})

		Convey("On Android it should use termux-open", func() {
			cmd, err := command(constant.Android, dir)
			So(err, ShouldBeNil)
			So(cmd.Args[0], ShouldEqual, "termux-open")
		})

		Convey("On an unknown platform it should fail", func() {
			_, err := command("plan9", dir)
			So(err, ShouldNotBeNil)
		})
	})
}
