// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/onair-cli/onair/constant"
	"github.com/onair-cli/onair/filesystem"
	"github.com/onair-cli/onair/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "ONAIR_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring ONAIR_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Onair))
}

// Cache resolves the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Onair))
}

// Logs resolves the diagnostic log directory.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Catalog resolves the episode catalog file: catalog.path if set, else episodes.toml in the config directory.
func Catalog() string {
	if path := viper.GetString(key.CatalogPath); path != "" {
		return path
	}
	return filepath.Join(Config(), "episodes.toml")
}

// Downloads resolves the directory downloaded episodes are written to.
// It is downloads.path if set, else ~/Downloads/onair.
func Downloads() string {
	if path := viper.GetString(key.DownloadsPath); path != "" {
		return ensureDir(path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ensureDir(filepath.Join(Cache(), "downloads"))
	}
	return ensureDir(filepath.Join(home, "Downloads", constant.Onair))
}

// Temp resolves a volatile directory for transient artifacts such as mpv sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Onair))
}
