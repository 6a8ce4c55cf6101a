package game

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds host configuration. Everything here is presentation-side;
// simulation constants live with their owning systems.
type Config struct {
	ScreenWidth  int     `mapstructure:"screen_width"`
	ScreenHeight int     `mapstructure:"screen_height"`
	Fullscreen   bool    `mapstructure:"fullscreen"`
	WindowTitle  string  `mapstructure:"window_title"`
	MasterVolume float64 `mapstructure:"master_volume"` // [0,1]
	Muted        bool    `mapstructure:"muted"`
	StarCount    int     `mapstructure:"star_count"`
	Seed         int64   `mapstructure:"seed"` // 0 picks a time-based seed
	HomeSystem   string  `mapstructure:"home_system"`
}

// DefaultConfig returns the shipped defaults.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1280,
		ScreenHeight: 800,
		WindowTitle:  "NCC-1701-D",
		MasterVolume: 0.8,
		StarCount:    900,
		HomeSystem:   "sol-station",
	}
}

// LoadConfig reads ncc1701d.toml from the working directory when present,
// layered over the defaults. A missing file is not an error; a malformed
// one logs and falls back to defaults rather than aborting.
func LoadConfig() Config {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("ncc1701d")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.SetDefault("screen_width", cfg.ScreenWidth)
	v.SetDefault("screen_height", cfg.ScreenHeight)
	v.SetDefault("fullscreen", cfg.Fullscreen)
	v.SetDefault("window_title", cfg.WindowTitle)
	v.SetDefault("master_volume", cfg.MasterVolume)
	v.SetDefault("muted", cfg.Muted)
	v.SetDefault("star_count", cfg.StarCount)
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("home_system", cfg.HomeSystem)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Warn().Err(err).Msg("config file unreadable, using defaults")
			return cfg
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("loaded config")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		log.Warn().Err(err).Msg("config unmarshal failed, using defaults")
		return DefaultConfig()
	}
	if cfg.MasterVolume < 0 {
		cfg.MasterVolume = 0
	} else if cfg.MasterVolume > 1 {
		cfg.MasterVolume = 1
	}
	return cfg
}
