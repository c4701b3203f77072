package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NALStudio/NDiscoPlus/internal/color"
	"github.com/NALStudio/NDiscoPlus/internal/effect"
	"github.com/NALStudio/NDiscoPlus/internal/light"
)

// Config represents the application configuration
type Config struct {
	Log             LogConfig         `yaml:"log"`
	Database        DatabaseConfig    `yaml:"database"`
	Player          PlayerConfig      `yaml:"player"`
	Effects         EffectsConfig     `yaml:"effects"`
	Track           TrackConfig       `yaml:"track"`
	Palette         string            `yaml:"palette"` // index into the built-in palettes, or "hdr"
	Lights          LightsConfig      `yaml:"lights"`
	Profile         ProfileConfig     `yaml:"profile"`
	Ledger          LedgerConfig      `yaml:"ledger"`
	Healthcheck     HealthcheckConfig `yaml:"healthcheck"`
	EventBus        EventBusConfig    `yaml:"eventbus"`
	ShutdownTimeout Duration          `yaml:"shutdown_timeout"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	Colors  bool   `yaml:"colors"`
	UseJSON bool   `yaml:"json"`
}

// GetLevel returns the log level with default
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// PlayerConfig contains update loop settings
type PlayerConfig struct {
	TickRate     float64  `yaml:"tick_rate"`      // Frames per second (default: 75)
	FPSLogPeriod Duration `yaml:"fps_log_period"` // Default 3s; negative disables frame rate logging
}

// FPSPeriod returns the frame rate logging period, zero when disabled.
func (c *PlayerConfig) FPSPeriod() time.Duration {
	return max(c.FPSLogPeriod.Duration(), 0)
}

// Interval returns the time between ticks
func (c *PlayerConfig) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// EffectsConfig contains the effect defaults shared by authors and the interpreter
type EffectsConfig struct {
	BaseBrightness       float64 `yaml:"base_brightness"`
	EffectBaseBrightness float64 `yaml:"effect_base_brightness"`
	ReducedMaxBrightness float64 `yaml:"reduced_max_brightness"`
	StrobeKelvin         float64 `yaml:"strobe_kelvin"`
	StrobeStyle          string  `yaml:"strobe_style"`
}

// EffectConfig converts the settings into an effect.Config
func (c *EffectsConfig) EffectConfig() (effect.Config, error) {
	strobe, err := color.BlackBody(c.StrobeKelvin, 1)
	if err != nil {
		return effect.Config{}, fmt.Errorf("effects.strobe_kelvin: %w", err)
	}
	style, err := effect.ParseStrobeStyle(c.StrobeStyle)
	if err != nil {
		return effect.Config{}, fmt.Errorf("effects.strobe_style: %w", err)
	}

	return effect.Config{
		BaseBrightness:       c.BaseBrightness,
		EffectBaseBrightness: c.EffectBaseBrightness,
		ReducedMaxBrightness: c.ReducedMaxBrightness,
		StrobeColor:          strobe,
		StrobeStyle:          style,
	}, nil
}

// TrackConfig describes the track to prepare and play
type TrackConfig struct {
	ID       string   `yaml:"id"`
	Duration Duration `yaml:"duration"`
	Script   string   `yaml:"script"` // Lua effect script, empty = built-in colour cycle
	Seed     uint64   `yaml:"seed"`
}

// LightsConfig lists the light handlers
type LightsConfig struct {
	Screen ScreenConfig `yaml:"screen"`
	Hue    HueConfig    `yaml:"hue"`
}

// ScreenConfig configures the on-screen gradient lights
type ScreenConfig struct {
	Count int `yaml:"count"`
}

// HueConfig contains Hue bridge connection settings
type HueConfig struct {
	Enabled             bool             `yaml:"enabled"`
	Bridge              string           `yaml:"bridge"`
	Token               string           `yaml:"token"`
	EntertainmentConfig string           `yaml:"entertainment_config"` // Entertainment configuration uuid
	RateLimitHz         float64          `yaml:"rate_limit_hz"`        // Max light updates per second (default: 25)
	Timeout             Duration         `yaml:"timeout"`
	Lights              []HueLightConfig `yaml:"lights"`
}

// HueLightConfig maps an entertainment channel to a bridge light
type HueLightConfig struct {
	Channel  uint8          `yaml:"channel"`
	Light    int            `yaml:"light"` // Bridge light number
	Model    string         `yaml:"model"` // Model id, used to pick the colour gamut
	Name     string         `yaml:"name"`
	Position light.Position `yaml:"position"`
	Latency  Duration       `yaml:"latency"`

	// PhysicalID is the bridge v2 light resource id, optional
	PhysicalID string `yaml:"physical_id"`
}

// ProfileConfig selects the light profile and its overrides
type ProfileConfig struct {
	Name      string                   `yaml:"name"`
	Overrides map[string]LightOverride `yaml:"overrides"` // Keyed by light id, e.g. "screen:4:1"
}

// LightOverride overrides a single light's channel and brightness
type LightOverride struct {
	Channel    string   `yaml:"channel"`
	Brightness *float64 `yaml:"brightness"`
}

// LedgerConfig contains event ledger settings
type LedgerConfig struct {
	CleanupInterval Duration `yaml:"cleanup_interval"`
	RetentionDays   int      `yaml:"retention_days"`
}

// HealthcheckConfig contains health check server settings
type HealthcheckConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// GetHost returns host with default
func (c *HealthcheckConfig) GetHost() string {
	if c.Host == "" {
		return "0.0.0.0"
	}
	return c.Host
}

// GetPort returns port with default
func (c *HealthcheckConfig) GetPort() int {
	if c.Port == 0 {
		return 9090
	}
	return c.Port
}

// EventBusConfig contains event bus settings
type EventBusConfig struct {
	Workers   int `yaml:"workers"`    // Number of worker goroutines (default: 2)
	QueueSize int `yaml:"queue_size"` // Event queue size (default: 256)
}

// GetWorkers returns worker count with default
func (c *EventBusConfig) GetWorkers() int {
	if c.Workers <= 0 {
		return 2
	}
	return c.Workers
}

// GetQueueSize returns queue size with default
func (c *EventBusConfig) GetQueueSize() int {
	if c.QueueSize <= 0 {
		return 256
	}
	return c.QueueSize
}

// GetShutdownTimeout returns the shutdown timeout with default
func (c *Config) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == 0 {
		return 5 * time.Second
	}
	return c.ShutdownTimeout.Duration()
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes and applies defaults
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if cfg.Player.TickRate < 0 {
		return nil, fmt.Errorf("player.tick_rate must be positive, got %v", cfg.Player.TickRate)
	}
	if _, err := cfg.Effects.EffectConfig(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./ndisco.sqlite"
	}

	// Player defaults
	if cfg.Player.TickRate == 0 {
		cfg.Player.TickRate = 75
	}
	if cfg.Player.FPSLogPeriod == 0 {
		cfg.Player.FPSLogPeriod = Duration(3 * time.Second)
	}

	// Effect defaults
	def := effect.DefaultConfig()
	if cfg.Effects.BaseBrightness == 0 {
		cfg.Effects.BaseBrightness = def.BaseBrightness
	}
	if cfg.Effects.EffectBaseBrightness == 0 {
		cfg.Effects.EffectBaseBrightness = def.EffectBaseBrightness
	}
	if cfg.Effects.ReducedMaxBrightness == 0 {
		cfg.Effects.ReducedMaxBrightness = def.ReducedMaxBrightness
	}
	if cfg.Effects.StrobeKelvin == 0 {
		cfg.Effects.StrobeKelvin = effect.DefaultStrobeKelvin
	}
	if cfg.Effects.StrobeStyle == "" {
		cfg.Effects.StrobeStyle = def.StrobeStyle.String()
	}

	// Track defaults
	if cfg.Track.ID == "" {
		cfg.Track.ID = "demo"
	}
	if cfg.Track.Duration == 0 {
		cfg.Track.Duration = Duration(3 * time.Minute)
	}
	if cfg.Palette == "" {
		cfg.Palette = "0"
	}

	// Light defaults
	if cfg.Lights.Hue.RateLimitHz == 0 {
		cfg.Lights.Hue.RateLimitHz = 25
	}
	if cfg.Lights.Hue.Timeout == 0 {
		cfg.Lights.Hue.Timeout = Duration(10 * time.Second)
	}
	if cfg.Profile.Name == "" {
		cfg.Profile.Name = "default"
	}

	// Ledger defaults
	if cfg.Ledger.CleanupInterval == 0 {
		cfg.Ledger.CleanupInterval = Duration(24 * time.Hour)
	}
	if cfg.Ledger.RetentionDays == 0 {
		cfg.Ledger.RetentionDays = 30
	}

	// Healthcheck defaults
	if cfg.Healthcheck.Port == 0 {
		cfg.Healthcheck.Port = 9090
	}
	if cfg.Healthcheck.Host == "" {
		cfg.Healthcheck.Host = "0.0.0.0"
	}

	// General shutdown timeout
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(5 * time.Second)
	}
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
