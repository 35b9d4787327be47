package session

// Mirror is the set of rendered instances of one logical control.
// Every update for the role is applied to all of them.
type Mirror[T any] struct {
	views []T
}

// Add registers more instances.
func (m *Mirror[T]) Add(views ...T) {
	m.views = append(m.views, views...)
}

// Each applies f to every instance in registration order.
func (m *Mirror[T]) Each(f func(T)) {
	for _, v := range m.views {
		f(v)
	}
}

// Len returns the number of registered instances.
func (m *Mirror[T]) Len() int {
	return len(m.views)
}

// PlayPauseControl shows whether the session is playing.
type PlayPauseControl interface {
	SetPlaying(playing bool)
}

// Slider is a 0-100 range control. SetValue is a programmatic write and must
// not be reported back to the session as user input.
type Slider interface {
	SetValue(percent float64)
}

// TextLabel displays a single line of text.
type TextLabel interface {
	SetText(text string)
}

// MuteIndicator shows whether the volume is muted.
type MuteIndicator interface {
	SetMuted(muted bool)
}

// DownloadControl is the download affordance of the transport.
type DownloadControl interface {
	SetTarget(href, filename string)
	SetEnabled(enabled bool)
}

// Notifier surfaces user-visible notices.
type Notifier interface {
	Notify(message string)
}

// Transport groups the mirror sets for every transport role.
type Transport struct {
	PlayPause Mirror[PlayPauseControl]
	Seek      Mirror[Slider]
	Elapsed   Mirror[TextLabel]
	Duration  Mirror[TextLabel]
	Title     Mirror[TextLabel]
	Rate      Mirror[TextLabel]
	Volume    Mirror[Slider]
	Mute      Mirror[MuteIndicator]
	Download  Mirror[DownloadControl]
	Notice    Mirror[Notifier]
	Triggers  Mirror[TriggerView]
}

// Role views for views that render more than one role of the same shape.
// A view exposing one of these methods is registered for that role by Attach.
type (
	SeekSlider    interface{ SetSeek(percent float64) }
	VolumeSlider  interface{ SetVolume(percent float64) }
	ElapsedLabel  interface{ SetElapsed(text string) }
	DurationLabel interface{ SetDuration(text string) }
	TitleLabel    interface{ SetTitle(text string) }
	RateLabel     interface{ SetRate(text string) }
)

type seekSlider struct{ SeekSlider }

func (s seekSlider) SetValue(p float64) { s.SetSeek(p) }

type volumeSlider struct{ VolumeSlider }

func (s volumeSlider) SetValue(p float64) { s.SetVolume(p) }

type elapsedLabel struct{ ElapsedLabel }

func (l elapsedLabel) SetText(t string) { l.SetElapsed(t) }

type durationLabel struct{ DurationLabel }

func (l durationLabel) SetText(t string) { l.SetDuration(t) }

type titleLabel struct{ TitleLabel }

func (l titleLabel) SetText(t string) { l.SetTitle(t) }

type rateLabel struct{ RateLabel }

func (l rateLabel) SetText(t string) { l.SetRate(t) }

// Attach registers each view for every role it implements.
func (t *Transport) Attach(views ...any) {
	for _, v := range views {
		if c, ok := v.(PlayPauseControl); ok {
			t.PlayPause.Add(c)
		}
		if c, ok := v.(SeekSlider); ok {
			t.Seek.Add(seekSlider{c})
		}
		if c, ok := v.(VolumeSlider); ok {
			t.Volume.Add(volumeSlider{c})
		}
		if c, ok := v.(ElapsedLabel); ok {
			t.Elapsed.Add(elapsedLabel{c})
		}
		if c, ok := v.(DurationLabel); ok {
			t.Duration.Add(durationLabel{c})
		}
		if c, ok := v.(TitleLabel); ok {
			t.Title.Add(titleLabel{c})
		}
		if c, ok := v.(RateLabel); ok {
			t.Rate.Add(rateLabel{c})
		}
		if c, ok := v.(MuteIndicator); ok {
			t.Mute.Add(c)
		}
		if c, ok := v.(DownloadControl); ok {
			t.Download.Add(c)
		}
		if c, ok := v.(Notifier); ok {
			t.Notice.Add(c)
		}
		if c, ok := v.(TriggerView); ok {
			t.Triggers.Add(c)
		}
	}
}
