package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/beamdeck/beam/internal/deck"
	"github.com/spf13/viper"
)

const defaultSyncAddr = "127.0.0.1:8765"

// cliConfig holds presentation-host configuration. Deck front matter takes
// precedence for deck-level settings; the config file and BEAM_* environment
// variables fill whatever the deck leaves unset.
type cliConfig struct {
	Theme      string        `mapstructure:"theme"`
	Locale     string        `mapstructure:"locale"`
	Autoplay   time.Duration `mapstructure:"autoplay"`
	SyncAddr   string        `mapstructure:"sync-addr"`
	Watch      bool          `mapstructure:"watch"`
	TimeLog    string        `mapstructure:"timelog"`
	Fullscreen bool          `mapstructure:"fullscreen"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("BEAM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("theme", deck.DefaultTheme)
	v.SetDefault("locale", "")
	v.SetDefault("autoplay", time.Duration(0))
	v.SetDefault("sync-addr", defaultSyncAddr)
	v.SetDefault("watch", true)
	v.SetDefault("timelog", "")
	v.SetDefault("fullscreen", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "beam", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// applyConfig fills deck-level settings the front matter left unset.
func applyConfig(global deck.GlobalConfig, cfg cliConfig) deck.GlobalConfig {
	if global.Theme == "" {
		global.Theme = cfg.Theme
	}
	if global.Locale == "" {
		global.Locale = cfg.Locale
	}
	if global.Autoplay == 0 {
		global.Autoplay = cfg.Autoplay
	}
	return global
}
