package session

import "errors"

var (
	// ErrPlaybackStartRejected is reported when the engine refuses to start playback.
	// The session reverts to paused and keeps the loaded source.
	ErrPlaybackStartRejected = errors.New("playback start rejected")

	// ErrResourceLoad is reported when a source cannot be loaded or fails while playing.
	// The session is left without a usable source until another trigger is activated.
	ErrResourceLoad = errors.New("resource load error")

	// ErrDownloadFetchFailed is reported when the download retrieval fails.
	// Playback state is never affected by it.
	ErrDownloadFetchFailed = errors.New("download fetch failed")
)
