package mini

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/onair-cli/onair/session"
)

type commandKind int

const (
	cmdStatus commandKind = iota
	cmdPlayPause
	cmdRewind
	cmdForward
	cmdRate
	cmdVolume
	cmdMute
	cmdDownload
	cmdSeek
	cmdEpisodes
	cmdQuit
)

// command is a parsed control prompt entry.
type command struct {
	kind commandKind
	// arg is the percentage for cmdVolume and cmdSeek.
	arg float64
}

var simpleCommands = map[string]commandKind{
	"":         cmdStatus,
	"p":        cmdPlayPause,
	"play":     cmdPlayPause,
	"pause":    cmdPlayPause,
	"<":        cmdRewind,
	">":        cmdForward,
	"s":        cmdRate,
	"speed":    cmdRate,
	"m":        cmdMute,
	"mute":     cmdMute,
	"d":        cmdDownload,
	"download": cmdDownload,
	"e":        cmdEpisodes,
	"episodes": cmdEpisodes,
	"q":        cmdQuit,
	"quit":     cmdQuit,
}

// parseCommand parses prompt input such as "p", "v 80" or "seek 50".
func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.ToLower(input))

	if len(fields) <= 1 {
		name := strings.Join(fields, "")
		if kind, ok := simpleCommands[name]; ok {
			return command{kind: kind}, nil
		}
	}

	if len(fields) == 2 {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "%"), 64)
		if err != nil || percent < 0 || percent > 100 {
			return command{}, fmt.Errorf("%q is not a percentage between 0 and 100", fields[1])
		}

		switch fields[0] {
		case "v", "vol", "volume":
			return command{kind: cmdVolume, arg: percent}, nil
		case "seek", "g":
			return command{kind: cmdSeek, arg: percent}, nil
		}
	}

	return command{}, fmt.Errorf("unknown command %q", input)
}

// apply performs the command on s. It must run on the session loop.
func (c command) apply(s *session.Session) {
	switch c.kind {
	case cmdPlayPause:
		s.TogglePlayPause()
	case cmdRewind:
		s.Rewind()
	case cmdForward:
		s.Forward()
	case cmdRate:
		s.CyclePlaybackRate()
	case cmdVolume:
		s.SetVolume(c.arg / 100)
	case cmdMute:
		s.ToggleMute()
	case cmdDownload:
		s.RequestDownload()
	case cmdSeek:
		s.SeekAbsolute(c.arg / 100)
	}
}
