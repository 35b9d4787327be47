// Package catalog loads the episode catalog and turns it into playback triggers.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gosimple/slug"
	"github.com/invopop/jsonschema"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/onair-cli/onair/filesystem"
	"github.com/onair-cli/onair/log"
	"github.com/onair-cli/onair/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// ErrNoEpisodes is returned when a catalog file lists no episodes.
var ErrNoEpisodes = errors.New("catalog has no episodes")

// Language is an audio language offered per episode, in display order.
type Language struct {
	Tag   string
	Label string
}

// Languages lists the supported languages. Every episode yields one trigger per entry.
var Languages = []Language{
	{Tag: "ja", Label: "Ep. in Japanese"},
	{Tag: "en", Label: "Ep. in English"},
}

// Audio holds the audio locator of an episode for each language.
type Audio struct {
	Ja string `mapstructure:"ja" json:"ja,omitempty" jsonschema:"description=URL or local path of the Japanese audio. Empty means coming soon."`
	En string `mapstructure:"en" json:"en,omitempty" jsonschema:"description=URL or local path of the English audio. Empty means coming soon."`
}

// For returns the locator for a language tag.
func (a Audio) For(tag string) string {
	switch tag {
	case "ja":
		return a.Ja
	case "en":
		return a.En
	default:
		return ""
	}
}

// Episode is a single catalog entry.
type Episode struct {
	Title string `mapstructure:"title" json:"title" jsonschema:"required,description=Display title of the episode."`
	Slug  string `mapstructure:"slug" json:"slug,omitempty" jsonschema:"description=Short identifier used on the command line."`
	Audio Audio  `mapstructure:"audio" json:"audio" jsonschema:"description=Audio locators per language."`
}

// Catalog is the parsed catalog file.
type Catalog struct {
	Path     string     `mapstructure:"-" json:"-"`
	Episodes []*Episode `mapstructure:"episodes" json:"episodes" jsonschema:"required,description=Episodes in display order."`
}

// Load reads the catalog at path. The format follows the extension: toml, yaml or json.
func Load(path string) (*Catalog, error) {
	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	return decode(v, path)
}

func decode(v *viper.Viper, path string) (*Catalog, error) {
	var c Catalog
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	c.Path = path
	c.Episodes = lo.Filter(c.Episodes, func(e *Episode, _ int) bool { return e != nil })
	if len(c.Episodes) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoEpisodes)
	}

	for i, e := range c.Episodes {
		e.Title = strings.TrimSpace(e.Title)
		if e.Title == "" {
			return nil, fmt.Errorf("%s: episode %d has no title", path, i+1)
		}
		if e.Slug == "" {
			e.Slug = slug.Make(e.Title)
		}
	}

	return &c, nil
}

// Triggers returns the playback triggers for every episode in catalog order.
// A language without a locator produces a disabled trigger.
func (c *Catalog) Triggers() []*session.Trigger {
	var triggers []*session.Trigger
	for _, e := range c.Episodes {
		triggers = append(triggers, e.Triggers()...)
	}
	return triggers
}

// Triggers returns one trigger per supported language.
func (e *Episode) Triggers() []*session.Trigger {
	return lo.Map(Languages, func(l Language, _ int) *session.Trigger {
		source := strings.TrimSpace(e.Audio.For(l.Tag))
		if source == "" {
			return &session.Trigger{
				DisplayTitle: e.Title,
				LanguageTag:  l.Tag,
				IdleLabel:    session.ComingSoonLabel,
				Disabled:     true,
			}
		}

		return &session.Trigger{
			SourceURL:    source,
			DisplayTitle: e.Title,
			LanguageTag:  l.Tag,
			IdleLabel:    l.Label,
		}
	})
}

// Find returns the episodes whose slug or title fuzzily matches query.
func (c *Catalog) Find(query string) []*Episode {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Episodes
	}

	return lo.Filter(c.Episodes, func(e *Episode, _ int) bool {
		return e.Slug == query || fuzzy.MatchNormalizedFold(query, e.Title) || fuzzy.MatchFold(query, e.Slug)
	})
}

// Get returns the episode with the exact slug.
func (c *Catalog) Get(slug string) mo.Option[*Episode] {
	e, ok := lo.Find(c.Episodes, func(e *Episode) bool { return e.Slug == slug })
	if !ok {
		return mo.None[*Episode]()
	}
	return mo.Some(e)
}

// Closest returns the slug nearest to query by edit distance, for "did you mean" hints.
func (c *Catalog) Closest(query string) string {
	closest := lo.MinBy(c.Episodes, func(a, b *Episode) bool {
		return levenshtein.Distance(query, a.Slug) < levenshtein.Distance(query, b.Slug)
	})
	if closest == nil {
		return ""
	}
	return closest.Slug
}

// Watch reloads the catalog whenever the file changes and passes the result to onChange.
// It needs the OS filesystem since change notifications come from fsnotify.
func Watch(path string, onChange func(*Catalog, error)) error {
	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read catalog %s: %w", path, err)
	}

	v.OnConfigChange(func(event fsnotify.Event) {
		log.Infof("catalog %s changed (%s), reloading", event.Name, event.Op)
		onChange(decode(v, path))
	})
	v.WatchConfig()
	return nil
}

// Schema returns the JSON schema of the catalog file.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	return reflector.Reflect(&Catalog{})
}

// Format returns the catalog format implied by the file extension.
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
