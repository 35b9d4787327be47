package config

import (
	"testing"

	"github.com/onair-cli/onair/filesystem"
	"github.com/onair-cli/onair/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("Should populate every registered default", func() {
			for name := range Default {
				So(viper.IsSet(name), ShouldBeTrue)
			}
		})

		Convey("Should default playback to mpv in Japanese", func() {
			So(viper.GetString(key.Player), ShouldEqual, "mpv")
			So(viper.GetString(key.PlayerLanguage), ShouldEqual, "ja")
			So(viper.GetInt(key.PlayerRewind), ShouldEqual, 15)
			So(viper.GetInt(key.PlayerForward), ShouldEqual, 30)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.rewind_seconds"), ShouldEqual, "player_rewind_seconds")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.PlayerVolume]

		Convey("Env should be prefixed with the app name", func() {
			So(f.Env(), ShouldEqual, "ONAIR_PLAYER_VOLUME")
		})

		Convey("MarshalJSON should report the value type", func() {
			b, err := f.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"type":"int"`)
		})
	})
}
