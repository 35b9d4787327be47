package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/onair-cli/onair/filesystem"
	"github.com/onair-cli/onair/session"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const sample = `
[[episodes]]
title = "Ep. 1 Morning Train"
slug = "morning-train"

  [episodes.audio]
  ja = "https://cdn.example.com/ep1-ja.mp3"
  en = "https://cdn.example.com/ep1-en.mp3"

[[episodes]]
title = "Ep. 2 Tokyo Night"

  [episodes.audio]
  ja = "https://cdn.example.com/ep2-ja.mp3"
`

func init() {
	filesystem.SetMemMapFs()
}

func write(path, content string) {
	lo.Must0(filesystem.API().WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	Convey("Given a TOML catalog", t, func() {
		write("/catalog/episodes.toml", sample)

		c, err := Load("/catalog/episodes.toml")
		So(err, ShouldBeNil)

		Convey("It should keep episodes in file order", func() {
			So(c.Episodes, ShouldHaveLength, 2)
			So(c.Episodes[0].Title, ShouldEqual, "Ep. 1 Morning Train")
			So(c.Episodes[1].Audio.Ja, ShouldEqual, "https://cdn.example.com/ep2-ja.mp3")
		})

		Convey("A missing slug should be derived from the title", func() {
			So(c.Episodes[1].Slug, ShouldEqual, "ep-2-tokyo-night")
		})

		Convey("Derived slugs should transliterate accented titles", func() {
			write("/catalog/accents.toml", "[[episodes]]\ntitle = \"Café Ōsaka & Kyōto\"\n")
			accented, err := Load("/catalog/accents.toml")
			So(err, ShouldBeNil)
			So(accented.Episodes[0].Slug, ShouldEqual, "cafe-osaka-and-kyoto")
		})

		Convey("Triggers should come per episode, Japanese first", func() {
			triggers := c.Triggers()
			So(triggers, ShouldHaveLength, 4)

			So(triggers[0].LanguageTag, ShouldEqual, "ja")
			So(triggers[0].IdleLabel, ShouldEqual, "Ep. in Japanese")
			So(triggers[1].LanguageTag, ShouldEqual, "en")
			So(triggers[1].IdleLabel, ShouldEqual, "Ep. in English")
			So(triggers[1].DisplayTitle, ShouldEqual, "Ep. 1 Morning Train")
		})

		Convey("A language without audio should be a disabled Coming Soon trigger", func() {
			missing := c.Triggers()[3]
			So(missing.Disabled, ShouldBeTrue)
			So(missing.SourceURL, ShouldBeEmpty)
			So(missing.Label(session.TriggerIdle), ShouldEqual, session.ComingSoonLabel)
		})

		Convey("Find should match titles fuzzily and slugs exactly", func() {
			So(c.Find("tokyo"), ShouldHaveLength, 1)
			So(c.Find("morning-train")[0].Slug, ShouldEqual, "morning-train")
			So(c.Find(""), ShouldHaveLength, 2)
			So(c.Find("zzz"), ShouldBeEmpty)
		})

		Convey("Get should look up by slug", func() {
			So(c.Get("morning-train").IsPresent(), ShouldBeTrue)
			So(c.Get("evening").IsAbsent(), ShouldBeTrue)
		})

		Convey("Closest should suggest the nearest slug", func() {
			So(c.Closest("mornin-train"), ShouldEqual, "morning-train")
		})
	})

	Convey("Given a YAML catalog", t, func() {
		write("/catalog/episodes.yaml", `
episodes:
  - title: Pilot
    audio:
      en: /srv/audio/pilot.mp3
`)
		c, err := Load("/catalog/episodes.yaml")
		So(err, ShouldBeNil)

		triggers := c.Triggers()
		So(triggers[0].Disabled, ShouldBeTrue)
		So(triggers[1].SourceURL, ShouldEqual, "/srv/audio/pilot.mp3")
	})

	Convey("Invalid catalogs should be rejected", t, func() {
		Convey("Missing file", func() {
			_, err := Load("/catalog/none.toml")
			So(err, ShouldNotBeNil)
		})

		Convey("No episodes", func() {
			write("/catalog/empty.toml", "title = \"nothing\"\n")
			_, err := Load("/catalog/empty.toml")
			So(errors.Is(err, ErrNoEpisodes), ShouldBeTrue)
		})

		Convey("Episode without title", func() {
			write("/catalog/untitled.json", `{"episodes":[{"audio":{"ja":"a.mp3"}}]}`)
			_, err := Load("/catalog/untitled.json")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no title")
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Schema should describe the episodes list", t, func() {
		b, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(b), ShouldContainSubstring, "episodes")
		So(string(b), ShouldContainSubstring, "Display title of the episode.")
	})
}

func TestFormat(t *testing.T) {
	Convey("Format", t, func() {
		So(Format("/a/episodes.TOML"), ShouldEqual, "toml")
		So(Format("episodes.yml"), ShouldEqual, "yml")
	})
}

func TestWatch(t *testing.T) {
	Convey("Given a catalog file on disk being watched", t, func() {
		filesystem.SetOsFs()
		defer filesystem.SetMemMapFs()

		path := filepath.Join(t.TempDir(), "episodes.toml")
		So(os.WriteFile(path, []byte(sample), 0o644), ShouldBeNil)

		reloaded := make(chan *Catalog, 16)
		err := Watch(path, func(c *Catalog, err error) {
			// Editors may write the file in several steps, so partial reads are skipped.
			if err == nil {
				reloaded <- c
			}
		})
		So(err, ShouldBeNil)

		Convey("When a third episode is appended", func() {
			more := sample + `
[[episodes]]
title = "Ep. 3 Last Ferry"

  [episodes.audio]
  en = "https://cdn.example.com/ep3-en.mp3"
`
			So(os.WriteFile(path, []byte(more), 0o644), ShouldBeNil)

			Convey("Then onChange should receive the new episodes", func() {
				var got *Catalog
				timeout := time.After(5 * time.Second)
				for got == nil || len(got.Episodes) != 3 {
					select {
					case got = <-reloaded:
					case <-timeout:
						So(got, ShouldNotBeNil)
						So(got.Episodes, ShouldHaveLength, 3)
						return
					}
				}

				So(got.Episodes[2].Slug, ShouldEqual, "ep-3-last-ferry")
				So(got.Episodes[2].Audio.Ja, ShouldBeEmpty)
				So(got.Path, ShouldEqual, path)
			})
		})
	})
}
