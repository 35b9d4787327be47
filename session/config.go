package session

import (
	"github.com/onair-cli/onair/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// DefaultOptions builds Options from the player.* configuration keys.
// Hosts fill in Scheduler and Downloader.
func DefaultOptions() Options {
	return Options{
		Language:       viper.GetString(key.PlayerLanguage),
		RewindSeconds:  viper.GetFloat64(key.PlayerRewind),
		ForwardSeconds: viper.GetFloat64(key.PlayerForward),
		Volume:         mo.Some(viper.GetFloat64(key.PlayerVolume) / 100),
	}
}
