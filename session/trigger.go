package session

import (
	"net/url"
	"path"
	"strings"

	"github.com/onair-cli/onair/util"
)

// NowPlayingLabel is rendered on the trigger bound to the playing source.
const NowPlayingLabel = "Now Playing"

// ComingSoonLabel is rendered on triggers without a registered resource.
const ComingSoonLabel = "Coming Soon..."

// TriggerState is the rendered state of a trigger.
type TriggerState int

const (
	TriggerIdle TriggerState = iota
	TriggerPlaying
)

// Trigger starts or resumes playback of one resource.
// The session treats every field as read-only.
type Trigger struct {
	SourceURL    string `json:"source_url"`
	DisplayTitle string `json:"title"`
	LanguageTag  string `json:"lang"`
	IdleLabel    string `json:"label"`
	Disabled     bool   `json:"disabled"`
}

// Label returns the text a view should render for the given state.
func (t *Trigger) Label(state TriggerState) string {
	switch {
	case t.Disabled:
		return ComingSoonLabel
	case state == TriggerPlaying:
		return NowPlayingLabel
	default:
		return t.IdleLabel
	}
}

// DownloadFilename derives the suggested filename for the trigger's resource,
// e.g. "Episode_1_ja.mp3".
func (t *Trigger) DownloadFilename() string {
	name := util.SanitizeFilename(t.DisplayTitle)
	if name == "" {
		name = "episode"
	}

	if t.LanguageTag != "" {
		name += "_" + util.SanitizeFilename(t.LanguageTag)
	}

	return name + sourceExt(t.SourceURL)
}

func sourceExt(source string) string {
	p := source
	if u, err := url.Parse(source); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	if ext == "" || len(ext) > 5 {
		return ".mp3"
	}
	return ext
}

// TriggerView renders trigger state changes.
type TriggerView interface {
	RenderTrigger(t *Trigger, state TriggerState)
}
