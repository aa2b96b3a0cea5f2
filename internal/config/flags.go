package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagAutoplay  = flag.Bool("autoplay", false, "Start playback as soon as content loads")
	flagAnimation = flag.String("animation", "", "Target animation clip name")
	flagTimeScale = flag.Float64("timescale", 0, "Playback rate multiplier")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAutoplay {
		cfg.Playback.Autoplay = true
	}
	if *flagAnimation != "" {
		cfg.Playback.Animation = *flagAnimation
	}
	if *flagTimeScale > 0 {
		cfg.Playback.TimeScale = *flagTimeScale
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
