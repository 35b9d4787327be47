package filesystem

import (
	"testing"

	"github.com/spf13/afero"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should accept any backend", func() {
			SetFs(afero.NewReadOnlyFs(afero.NewMemMapFs()))
			So(API().WriteFile("/x", nil, 0o644), ShouldNotBeNil)
			SetOsFs()
		})
	})
}
