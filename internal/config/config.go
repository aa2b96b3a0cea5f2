// Package config handles viewer configuration loading and management.
package config

// Config holds all clipstage settings.
type Config struct {
	Playback  PlaybackConfig  `yaml:"playback"`
	Smoothing SmoothingConfig `yaml:"smoothing"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// PlaybackConfig holds the initial playback attributes applied to the
// controller before content loads.
type PlaybackConfig struct {
	Autoplay    bool    `yaml:"autoplay"`
	Animation   string  `yaml:"animation"`
	CrossfadeMs float64 `yaml:"crossfade_ms"`
	TimeScale   float64 `yaml:"time_scale"`
}

// SmoothingConfig holds orientation smoothing settings.
type SmoothingConfig struct {
	DurationMs float64 `yaml:"duration_ms"`
}

// GraphicsConfig holds viewer window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			Autoplay:    false,
			Animation:   "",
			CrossfadeMs: 300,
			TimeScale:   1.0,
		},
		Smoothing: SmoothingConfig{
			DurationMs: 750,
		},
		Graphics: GraphicsConfig{
			Width:      960,
			Height:     540,
			Fullscreen: false,
			VSync:      true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
