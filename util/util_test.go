package util

import (
	"testing"

	"github.com/onair-cli/onair/filesystem"
	"github.com/samber/lo"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
		Convey("Should turn episode titles into filenames", func() {
			So(SanitizeFilename("Episode 3: Tokyo Nights"), ShouldEqual, "Episode_3_Tokyo_Nights")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		So(fs.MkdirAll("/tmp/onair/sockets", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/onair/sockets/mpv.sock", []byte{}, 0o644), ShouldBeNil)
		So(fs.WriteFile("/tmp/onair/stale", []byte{}, 0o644), ShouldBeNil)

		Convey("When a file is deleted", func() {
			So(Delete("/tmp/onair/stale"), ShouldBeNil)

			Convey("Then only that file should be gone", func() {
				So(lo.Must(fs.Exists("/tmp/onair/stale")), ShouldBeFalse)
				So(lo.Must(fs.Exists("/tmp/onair/sockets")), ShouldBeTrue)
			})
		})

		Convey("When a directory is deleted", func() {
			So(Delete("/tmp/onair"), ShouldBeNil)

			Convey("Then its contents should be gone too", func() {
				So(lo.Must(fs.Exists("/tmp/onair/sockets/mpv.sock")), ShouldBeFalse)
			})
		})

		Convey("When the path does not exist", func() {
			Convey("Then an error should be returned", func() {
				So(Delete("/nope"), ShouldNotBeNil)
			})
		})
	})
}
