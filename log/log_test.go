package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/onair-cli/onair/filesystem"
	"github.com/onair-cli/onair/key"
	"github.com/onair-cli/onair/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Nothing is written", func() {
			So(Enabled(), ShouldBeFalse)
			Info("ignored")
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("Entries land in today's log file", func() {
			Infof("loaded %s", "a.mp3")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			content := lo.Must(filesystem.API().ReadFile(path))
			So(string(content), ShouldContainSubstring, "loaded a.mp3")
		})
	})
}
