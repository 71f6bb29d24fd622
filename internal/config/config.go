package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Particle field
	MaxParticles      = 100
	ParticleSpacing   = 10
	PointerRadius     = 100
	ConnectionRange   = 100
	ConnectionOpacity = 0.1
	ConnectionWidth   = 0.5
	RepelStrength     = 2

	// Prompt form
	MaxPromptLength = 200
	MinPromptLength = 5
	CounterWarning  = 150
	CounterDanger   = 180

	// Form layout
	FormX        = 40
	FormY        = 60
	FormWidth    = 420
	InputHeight  = 120
	ButtonWidth  = 130
	ButtonHeight = 40

	DownloadPrefix = "neuroforge"

	NotificationTTL = 5 * time.Second
	ToastWidth      = 360
	ToastHeight     = 44

	SampleRate = 44100
)

// Config holds the runtime-tunable settings. Fields are populated from
// Default, then NEUROFORGE_* environment variables, then command-line flags.
type Config struct {
	Width  int
	Height int

	Debug bool

	GenerateDelay time.Duration
	FetchTimeout  time.Duration

	AudioEnabled bool
	Volume       float64
	CuePath      string

	DesktopNotify bool
}

func Default() *Config {
	return &Config{
		Width:         WindowWidth,
		Height:        WindowHeight,
		GenerateDelay: 3 * time.Second,
		FetchTimeout:  15 * time.Second,
		AudioEnabled:  true,
		Volume:        0.5,
	}
}

// LoadEnv overrides cfg with any NEUROFORGE_* variables that parse.
// Malformed values are ignored.
func LoadEnv(cfg *Config) {
	if v := os.Getenv("NEUROFORGE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	if v := os.Getenv("NEUROFORGE_GENERATE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.GenerateDelay = d
		}
	}

	if v := os.Getenv("NEUROFORGE_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}

	if v := os.Getenv("NEUROFORGE_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AudioEnabled = b
		}
	}

	// 0-100 converted to 0.0-1.0
	if v := os.Getenv("NEUROFORGE_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Volume = clampVolume(float64(n) / 100.0)
		}
	}

	if v := os.Getenv("NEUROFORGE_CUE"); v != "" {
		cfg.CuePath = v
	}

	if v := os.Getenv("NEUROFORGE_DESKTOP_NOTIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DesktopNotify = b
		}
	}
}

// Bind registers flags on fs whose defaults are the current values of cfg,
// so flags win over the environment once fs is parsed.
func Bind(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Width, "width", cfg.Width, "initial window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "initial window height")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write debug log to logs/")
	fs.DurationVar(&cfg.GenerateDelay, "delay", cfg.GenerateDelay, "simulated generation latency")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "image fetch timeout")
	fs.BoolVar(&cfg.AudioEnabled, "audio", cfg.AudioEnabled, "play notification cues")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "cue volume 0.0-1.0")
	fs.StringVar(&cfg.CuePath, "cue", cfg.CuePath, "wav/mp3/flac file used as the success cue")
	fs.BoolVar(&cfg.DesktopNotify, "notify", cfg.DesktopNotify, "mirror toasts as desktop notifications")
}

// Load builds a Config from defaults, environment and args (without the
// program name).
func Load(args []string) (*Config, error) {
	cfg := Default()
	LoadEnv(cfg)

	fs := flag.NewFlagSet("neuroforge", flag.ContinueOnError)
	Bind(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Volume = clampVolume(cfg.Volume)
	if cfg.Width <= 0 {
		cfg.Width = WindowWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = WindowHeight
	}
	return cfg, nil
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
