package cmd

import (
	"testing"

	"github.com/onair-cli/onair/config"
	"github.com/onair-cli/onair/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given registered config fields", t, func() {
		Convey("When an int field receives a number", func() {
			v, err := parseValue(config.Default[key.PlayerRewind], []string{"10"})

			Convey("Then it should be parsed as int", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 10)
			})
		})

		Convey("When an int field receives text", func() {
			_, err := parseValue(config.Default[key.PlayerVolume], []string{"loud"})

			Convey("Then an error should name the key", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, key.PlayerVolume)
			})
		})

		Convey("When a bool field receives true", func() {
			v, err := parseValue(config.Default[key.CatalogWatch], []string{"true"})

			Convey("Then it should be parsed as bool", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, true)
			})
		})

		Convey("When a string field receives a value", func() {
			v, err := parseValue(config.Default[key.PlayerLanguage], []string{"en"})

			Convey("Then it should be kept as is", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "en")
			})
		})

		Convey("When no value is given", func() {
			_, err := parseValue(config.Default[key.Player], nil)

			Convey("Then an error should be returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Given a misspelled key", t, func() {
		err := errUnknownKey("player.rewind_second")

		Convey("Then the closest key should be suggested", func() {
			So(err.Error(), ShouldContainSubstring, key.PlayerRewind)
		})
	})
}
