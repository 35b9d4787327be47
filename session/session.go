package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/onair-cli/onair/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Rates is the ordered sequence the rate control cycles through.
var Rates = []float64{1.0, 1.25, 1.5, 2.0}

const (
	// MuteEpsilon is the volume below which the session considers itself muted.
	MuteEpsilon = 0.01

	// DefaultRestoreVolume is used by ToggleMute when no audible volume was ever set.
	DefaultRestoreVolume = 0.5

	// ErrorTitle replaces the title label when the resource fails.
	ErrorTitle = "Error loading audio."
)

// Downloader retrieves a remote resource completely and saves it under filename.
type Downloader interface {
	Fetch(ctx context.Context, url, filename string) (path string, err error)
}

// Options configures a Session.
type Options struct {
	// Scheduler runs Play and downloads off the event loop. Defaults to Immediate.
	Scheduler Scheduler
	// Downloader is optional; without it RequestDownload is a no-op.
	Downloader Downloader
	// Language selects the trigger TogglePlayPause falls back to when nothing is loaded.
	Language string
	// RewindSeconds and ForwardSeconds are the relative seek steps. Default 15 and 30.
	RewindSeconds  float64
	ForwardSeconds float64
	// Volume is the initial volume in [0, 1]. Defaults to 1.
	Volume mo.Option[float64]
}

// Session is the single playback session of the process.
// All methods must be called from the event loop owning it.
type Session struct {
	media      Media
	scheduler  Scheduler
	downloader Downloader
	transport  *Transport

	language        string
	rewind, forward float64

	triggers []*Trigger
	bound    *Trigger

	sourceURL         string
	playing           bool
	rateIndex         int
	volume            float64
	lastNonZeroVolume float64
	position          float64
	duration          float64

	downloadHref     string
	downloadFilename string
	downloadEnabled  bool

	// generation is bumped whenever a pending playback start must be discarded.
	generation uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a session driving media. The session takes ownership of media
// and closes it on Close if it implements io.Closer.
func New(media Media, options Options) *Session {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		media:             media,
		scheduler:         options.Scheduler,
		downloader:        options.Downloader,
		transport:         &Transport{},
		language:          options.Language,
		rewind:            options.RewindSeconds,
		forward:           options.ForwardSeconds,
		lastNonZeroVolume: DefaultRestoreVolume,
		ctx:               ctx,
		cancel:            cancel,
	}

	if s.scheduler == nil {
		s.scheduler = Immediate{}
	}
	if s.rewind <= 0 {
		s.rewind = 15
	}
	if s.forward <= 0 {
		s.forward = 30
	}

	s.volume = lo.Clamp(options.Volume.OrElse(1), 0, 1)
	if s.volume >= MuteEpsilon {
		s.lastNonZeroVolume = s.volume
	}

	return s
}

// Transport returns the mirror sets views register with.
func (s *Session) Transport() *Transport {
	return s.transport
}

// Sync writes the complete current state to every registered view.
// Hosts call it once after attaching their views.
func (s *Session) Sync() {
	s.renderPlaying()
	s.transport.Rate.Each(func(l TextLabel) { l.SetText(FormatRate(s.rate())) })
	s.renderVolume()
	s.renderProgress()
	s.transport.Duration.Each(func(l TextLabel) { l.SetText(FormatTime(s.duration)) })
	s.renderDownload()

	for _, t := range s.triggers {
		s.renderTrigger(t, s.triggerState(t))
	}
}

// SetTriggers replaces the set of known triggers. If the bound trigger's
// source is still offered, the equivalent new trigger becomes bound.
func (s *Session) SetTriggers(triggers []*Trigger) {
	s.triggers = triggers

	if s.bound != nil {
		if t, ok := lo.Find(triggers, func(t *Trigger) bool {
			return !t.Disabled && t.SourceURL == s.bound.SourceURL && t.LanguageTag == s.bound.LanguageTag
		}); ok {
			s.bound = t
		}
	}

	for _, t := range triggers {
		s.renderTrigger(t, s.triggerState(t))
	}
}

// Triggers returns the registered triggers.
func (s *Session) Triggers() []*Trigger {
	return s.triggers
}

// ActivateTrigger starts, resumes or pauses playback of t.
// Activating the bound trigger while it plays pauses it.
func (s *Session) ActivateTrigger(t *Trigger) {
	if t == nil || t.Disabled {
		return
	}

	if s.bound == t && s.playing {
		s.pause()
		return
	}

	if t.SourceURL != s.sourceURL {
		if s.sourceURL != "" {
			s.pause()
		}
		if s.bound != nil {
			s.renderTrigger(s.bound, TriggerIdle)
		}
		s.bound = nil

		if err := s.load(t); err != nil {
			s.fail(err)
			return
		}
	} else if s.bound != nil && s.bound != t {
		s.renderTrigger(s.bound, TriggerIdle)
	}

	s.bound = t
	s.play()
}

// TogglePlayPause flips playback. With nothing loaded it activates the first
// enabled trigger of the configured language, or the first enabled one.
func (s *Session) TogglePlayPause() {
	if s.sourceURL == "" {
		s.ActivateTrigger(s.defaultTrigger())
		return
	}

	if s.playing {
		s.pause()
	} else {
		s.play()
	}
}

// Rewind seeks backwards by the configured rewind step.
func (s *Session) Rewind() {
	s.SeekRelative(-s.rewind)
}

// Forward seeks forwards by the configured forward step.
func (s *Session) Forward() {
	s.SeekRelative(s.forward)
}

// SeekRelative moves the position by delta seconds, clamped to [0, duration].
func (s *Session) SeekRelative(delta float64) {
	if s.sourceURL == "" {
		return
	}

	pos, err := s.media.Position()
	if err != nil {
		log.Warnf("seek: position unavailable: %v", err)
		pos = s.position
	}

	target := math.Max(0, pos+delta)
	if d := s.knownDuration(); d > 0 {
		target = math.Min(target, d)
	}

	if err := s.media.SetPosition(target); err != nil {
		log.Warnf("seek to %.1f: %v", target, err)
		return
	}
	s.position = target
}

// SeekAbsolute moves to fraction of the known duration and updates the
// elapsed label without waiting for the engine to report the new position.
func (s *Session) SeekAbsolute(fraction float64) {
	if s.sourceURL == "" || math.IsNaN(fraction) {
		return
	}

	d := s.knownDuration()
	if d <= 0 {
		return
	}

	fraction = lo.Clamp(fraction, 0, 1)
	target := d * fraction
	if err := s.media.SetPosition(target); err != nil {
		log.Warnf("seek to %.1f: %v", target, err)
		return
	}

	s.position = target
	s.transport.Seek.Each(func(v Slider) { v.SetValue(fraction * 100) })
	s.transport.Elapsed.Each(func(l TextLabel) { l.SetText(FormatTime(target)) })
}

// CyclePlaybackRate advances to the next rate in Rates, wrapping around.
func (s *Session) CyclePlaybackRate() {
	s.rateIndex = (s.rateIndex + 1) % len(Rates)
	rate := s.rate()

	// Without a source the rate is applied on the next load.
	if s.sourceURL != "" {
		if err := s.media.SetRate(rate); err != nil {
			log.Warnf("set rate %v: %v", rate, err)
		}
	}

	s.transport.Rate.Each(func(l TextLabel) { l.SetText(FormatRate(rate)) })
}

// SetVolume applies a volume in [0, 1].
func (s *Session) SetVolume(fraction float64) {
	if math.IsNaN(fraction) {
		return
	}
	s.applyVolume(lo.Clamp(fraction, 0, 1))
}

// ToggleMute mutes an audible session, or restores the last audible volume.
func (s *Session) ToggleMute() {
	if s.volume >= MuteEpsilon {
		s.lastNonZeroVolume = s.volume
		s.applyVolume(0)
		return
	}

	target := s.lastNonZeroVolume
	if target < MuteEpsilon {
		target = DefaultRestoreVolume
	}
	s.applyVolume(target)
}

// RequestDownload retrieves the bound source completely and saves it locally.
// Failures are surfaced as notices and never touch playback state.
func (s *Session) RequestDownload() {
	if s.bound == nil || !s.downloadEnabled || s.downloader == nil {
		return
	}

	href, filename := s.downloadHref, s.downloadFilename
	log.Infof("downloading %s as %s", href, filename)
	s.notify(fmt.Sprintf("Downloading %s...", filename))

	var saved string
	s.scheduler.Go(func() error {
		var err error
		saved, err = s.downloader.Fetch(s.ctx, href, filename)
		return err
	}, func(err error) {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrDownloadFetchFailed, err)
			log.Error(err)
			s.notify("Download failed: " + err.Error())
			return
		}

		log.Infof("saved %s", saved)
		s.notify("Saved " + saved)
	})
}

// HandleEvent applies a notification from the media backend.
func (s *Session) HandleEvent(ev Event) {
	switch ev.Kind {
	case PositionChanged:
		if s.sourceURL == "" {
			return
		}
		if ev.Duration > 0 {
			s.duration = ev.Duration
		}
		s.position = ev.Position
		s.renderProgress()
	case MetadataReady:
		s.duration = ev.Duration
		s.transport.Duration.Each(func(l TextLabel) { l.SetText(FormatTime(s.duration)) })
	case Ended:
		s.ended()
	case Failed:
		cause := ev.Err
		if cause == nil {
			cause = errors.New("media error")
		}
		s.fail(fmt.Errorf("%w: %w", ErrResourceLoad, cause))
	case Paused:
		if s.playing {
			s.generation++
			s.setPlaying(false)
		}
	case Resumed:
		if !s.playing && s.sourceURL != "" && s.bound != nil {
			s.generation++
			s.setPlaying(true)
		}
	}
}

// Close cancels in-flight downloads and releases the media backend.
func (s *Session) Close() error {
	s.cancel()
	if c, ok := s.media.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	SourceURL         string
	Playing           bool
	RateIndex         int
	Rate              float64
	Volume            float64
	LastNonZeroVolume float64
	Position          float64
	Duration          float64
	Bound             *Trigger
	DownloadEnabled   bool
	DownloadFilename  string
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SourceURL:         s.sourceURL,
		Playing:           s.playing,
		RateIndex:         s.rateIndex,
		Rate:              s.rate(),
		Volume:            s.volume,
		LastNonZeroVolume: s.lastNonZeroVolume,
		Position:          s.position,
		Duration:          s.duration,
		Bound:             s.bound,
		DownloadEnabled:   s.downloadEnabled,
		DownloadFilename:  s.downloadFilename,
	}
}

func (s *Session) rate() float64 {
	return Rates[s.rateIndex]
}

func (s *Session) load(t *Trigger) error {
	log.Infof("loading %q (%s) from %s", t.DisplayTitle, t.LanguageTag, t.SourceURL)

	if err := s.media.Load(t.SourceURL); err != nil {
		return fmt.Errorf("%w: load %s: %w", ErrResourceLoad, t.SourceURL, err)
	}

	s.sourceURL = t.SourceURL
	s.position, s.duration = 0, 0

	// Rate and volume carry over from the previous source.
	if err := s.media.SetRate(s.rate()); err != nil {
		log.Warnf("set rate: %v", err)
	}
	if err := s.media.SetVolume(s.volume); err != nil {
		log.Warnf("set volume: %v", err)
	}

	s.downloadHref = t.SourceURL
	s.downloadFilename = t.DownloadFilename()
	s.downloadEnabled = true

	s.transport.Title.Each(func(l TextLabel) { l.SetText(t.DisplayTitle) })
	s.transport.Duration.Each(func(l TextLabel) { l.SetText(FormatTime(0)) })
	s.renderProgress()
	s.renderDownload()
	return nil
}

// play asks the engine to start. The outcome is applied only if no newer
// start, pause or source change happened in the meantime.
func (s *Session) play() {
	s.generation++
	gen := s.generation

	s.scheduler.Go(s.media.Play, func(err error) {
		if gen != s.generation {
			log.Debugf("discarding superseded playback start")
			return
		}

		if err != nil {
			log.Error(fmt.Errorf("%w: %w", ErrPlaybackStartRejected, err))
			if perr := s.media.Pause(); perr != nil {
				log.Debugf("pause after rejected start: %v", perr)
			}
			s.setPlaying(false)
			return
		}

		s.setPlaying(true)
	})
}

func (s *Session) pause() {
	s.generation++
	if err := s.media.Pause(); err != nil {
		log.Warnf("pause: %v", err)
	}
	s.setPlaying(false)
}

func (s *Session) ended() {
	s.generation++
	s.setPlaying(false)

	// The slider and position go back to the start so the next play restarts the episode.
	s.position = 0
	if s.sourceURL != "" {
		if err := s.media.SetPosition(0); err != nil {
			log.Debugf("rewind after end: %v", err)
		}
	}
	s.renderProgress()
}

func (s *Session) fail(err error) {
	log.Error(err)

	s.generation++
	s.playing = false
	s.renderPlaying()

	if s.bound != nil {
		s.renderTrigger(s.bound, TriggerIdle)
	}
	s.bound = nil
	s.sourceURL = ""
	s.downloadEnabled = false

	s.transport.Title.Each(func(l TextLabel) { l.SetText(ErrorTitle) })
	s.renderDownload()
}

func (s *Session) setPlaying(playing bool) {
	s.playing = playing
	s.renderPlaying()

	if s.bound != nil {
		s.renderTrigger(s.bound, lo.Ternary(playing, TriggerPlaying, TriggerIdle))
	}
}

func (s *Session) applyVolume(v float64) {
	if s.sourceURL != "" {
		if err := s.media.SetVolume(v); err != nil {
			log.Warnf("set volume %v: %v", v, err)
		}
	}

	s.volume = v
	if v > 0 {
		s.lastNonZeroVolume = v
	}
	s.renderVolume()
}

func (s *Session) knownDuration() float64 {
	if d, err := s.media.Duration(); err == nil && d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0) {
		return d
	}
	return s.duration
}

func (s *Session) defaultTrigger() *Trigger {
	enabled := lo.Filter(s.triggers, func(t *Trigger, _ int) bool { return !t.Disabled })
	if t, ok := lo.Find(enabled, func(t *Trigger) bool { return t.LanguageTag == s.language }); ok {
		return t
	}
	if len(enabled) == 0 {
		return nil
	}
	return enabled[0]
}

func (s *Session) triggerState(t *Trigger) TriggerState {
	if t == s.bound && s.playing {
		return TriggerPlaying
	}
	return TriggerIdle
}

func (s *Session) notify(msg string) {
	s.transport.Notice.Each(func(n Notifier) { n.Notify(msg) })
}

func (s *Session) renderTrigger(t *Trigger, state TriggerState) {
	s.transport.Triggers.Each(func(v TriggerView) { v.RenderTrigger(t, state) })
}

func (s *Session) renderPlaying() {
	s.transport.PlayPause.Each(func(c PlayPauseControl) { c.SetPlaying(s.playing) })
}

func (s *Session) renderVolume() {
	muted := s.volume < MuteEpsilon
	s.transport.Volume.Each(func(v Slider) { v.SetValue(s.volume * 100) })
	s.transport.Mute.Each(func(m MuteIndicator) { m.SetMuted(muted) })
}

func (s *Session) renderProgress() {
	var percent float64
	if s.duration > 0 {
		percent = lo.Clamp(s.position/s.duration*100, 0, 100)
	}

	s.transport.Seek.Each(func(v Slider) { v.SetValue(percent) })
	s.transport.Elapsed.Each(func(l TextLabel) { l.SetText(FormatTime(s.position)) })
}

func (s *Session) renderDownload() {
	s.transport.Download.Each(func(d DownloadControl) {
		d.SetTarget(s.downloadHref, s.downloadFilename)
		d.SetEnabled(s.downloadEnabled)
	})
}
