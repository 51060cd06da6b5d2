// Package config loads server settings from an optional .env file, an
// optional YAML file and NUDGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration struct
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Session   SessionConfig   `mapstructure:"session"`
	Radar     RadarConfig     `mapstructure:"radar"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Ambient   AmbientConfig   `mapstructure:"ambient"`
	Maps      MapsConfig      `mapstructure:"maps"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

// SessionConfig controls viewer session tokens and lifetime
type SessionConfig struct {
	Secret       string        `mapstructure:"secret"`
	TokenTTL     time.Duration `mapstructure:"tokenTTL"`
	IdleTTL      time.Duration `mapstructure:"idleTTL"`
	ReapInterval time.Duration `mapstructure:"reapInterval"`
	// Seed fixes the random source of every session; 0 means random.
	Seed uint64 `mapstructure:"seed"`
}

type RadarConfig struct {
	MinUsers             int           `mapstructure:"minUsers"`
	MaxUsers             int           `mapstructure:"maxUsers"`
	MinDistance          float64       `mapstructure:"minDistance"`
	MaxDistance          float64       `mapstructure:"maxDistance"`
	AngleJitter          float64       `mapstructure:"angleJitter"`
	NudgeAckProbability  float64       `mapstructure:"nudgeAckProbability"`
	PeerNudgeProbability float64       `mapstructure:"peerNudgeProbability"`
	JitterInterval       time.Duration `mapstructure:"jitterInterval"`
	JitterStep           float64       `mapstructure:"jitterStep"`
	CompassInterval      time.Duration `mapstructure:"compassInterval"`
	CompassStep          float64       `mapstructure:"compassStep"`
}

type ChatConfig struct {
	ReplyMinDelay time.Duration `mapstructure:"replyMinDelay"`
	ReplyMaxDelay time.Duration `mapstructure:"replyMaxDelay"`
}

type AmbientConfig struct {
	StatusInterval        time.Duration `mapstructure:"statusInterval"`
	Uptime                float64       `mapstructure:"uptime"`
	WindowFlickerInterval time.Duration `mapstructure:"windowFlickerInterval"`
	WindowFlickerChance   float64       `mapstructure:"windowFlickerChance"`
	Buildings             int           `mapstructure:"buildings"`
}

type MapsConfig struct {
	APIKey       string        `mapstructure:"apiKey"`
	BaseURL      string        `mapstructure:"baseURL"`
	ProbeTimeout time.Duration `mapstructure:"probeTimeout"`
	DefaultLat   float64       `mapstructure:"defaultLat"`
	DefaultLng   float64       `mapstructure:"defaultLng"`
	Zoom         int           `mapstructure:"zoom"`
}

type StorageConfig struct {
	DSN string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig limits nudges per session
type RateLimitConfig struct {
	PerSecond float64       `mapstructure:"perSecond"`
	Burst     int           `mapstructure:"burst"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type AdminConfig struct {
	Key string `mapstructure:"key"`
}

const defaultSecret = "default_secret_key"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)

	v.SetDefault("session.secret", defaultSecret)
	v.SetDefault("session.tokenTTL", 24*time.Hour)
	v.SetDefault("session.idleTTL", 30*time.Minute)
	v.SetDefault("session.reapInterval", time.Minute)
	v.SetDefault("session.seed", 0)

	v.SetDefault("radar.minUsers", 3)
	v.SetDefault("radar.maxUsers", 8)
	v.SetDefault("radar.minDistance", 50.0)
	v.SetDefault("radar.maxDistance", 170.0)
	v.SetDefault("radar.angleJitter", 0.5)
	v.SetDefault("radar.nudgeAckProbability", 0.3)
	v.SetDefault("radar.peerNudgeProbability", 0.0)
	v.SetDefault("radar.jitterInterval", 3*time.Second)
	v.SetDefault("radar.jitterStep", 4.0)
	v.SetDefault("radar.compassInterval", 5*time.Second)
	v.SetDefault("radar.compassStep", 15.0)

	v.SetDefault("chat.replyMinDelay", time.Second)
	v.SetDefault("chat.replyMaxDelay", 3*time.Second)

	v.SetDefault("ambient.statusInterval", 5*time.Second)
	v.SetDefault("ambient.uptime", 0.9)
	v.SetDefault("ambient.windowFlickerInterval", 3*time.Second)
	v.SetDefault("ambient.windowFlickerChance", 0.3)
	v.SetDefault("ambient.buildings", 16)

	v.SetDefault("maps.apiKey", "")
	v.SetDefault("maps.baseURL", "https://maps.googleapis.com/maps/api/staticmap")
	v.SetDefault("maps.probeTimeout", 3*time.Second)
	v.SetDefault("maps.defaultLat", 37.7749)
	v.SetDefault("maps.defaultLng", -122.4194)
	v.SetDefault("maps.zoom", 16)

	v.SetDefault("storage.dsn", "file:nudge_journal?mode=memory&cache=shared")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("rateLimit.perSecond", 5.0)
	v.SetDefault("rateLimit.burst", 10)
	v.SetDefault("rateLimit.ttl", time.Hour)

	v.SetDefault("admin.key", "")
}

// Load reads .env (if present), then cfgFile or ./configs/config.yaml, then
// NUDGE_* environment variables.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NUDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// names shared with other tooling
	_ = v.BindEnv("session.secret", "NUDGE_SESSION_SECRET", "JWT_SECRET_KEY")
	_ = v.BindEnv("maps.apiKey", "NUDGE_MAPS_APIKEY", "MAPS_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the session engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}
	if c.Radar.MinUsers <= 0 || c.Radar.MaxUsers < c.Radar.MinUsers {
		errs = append(errs, fmt.Errorf("radar user range [%d,%d] is invalid", c.Radar.MinUsers, c.Radar.MaxUsers))
	}
	if c.Radar.MaxDistance < c.Radar.MinDistance {
		errs = append(errs, fmt.Errorf("radar distance range [%v,%v] is invalid", c.Radar.MinDistance, c.Radar.MaxDistance))
	}
	for name, p := range map[string]float64{
		"radar.nudgeAckProbability":   c.Radar.NudgeAckProbability,
		"radar.peerNudgeProbability":  c.Radar.PeerNudgeProbability,
		"ambient.uptime":              c.Ambient.Uptime,
		"ambient.windowFlickerChance": c.Ambient.WindowFlickerChance,
	} {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, p))
		}
	}
	if c.Chat.ReplyMaxDelay < c.Chat.ReplyMinDelay {
		errs = append(errs, fmt.Errorf("chat reply delay range [%s,%s] is invalid", c.Chat.ReplyMinDelay, c.Chat.ReplyMaxDelay))
	}
	for name, d := range map[string]time.Duration{
		"radar.jitterInterval":          c.Radar.JitterInterval,
		"radar.compassInterval":         c.Radar.CompassInterval,
		"ambient.statusInterval":        c.Ambient.StatusInterval,
		"ambient.windowFlickerInterval": c.Ambient.WindowFlickerInterval,
		"session.reapInterval":          c.Session.ReapInterval,
		"session.idleTTL":               c.Session.IdleTTL,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if c.Ambient.Buildings < 0 {
		errs = append(errs, fmt.Errorf("ambient.buildings must not be negative, got %d", c.Ambient.Buildings))
	}
	return errors.Join(errs...)
}

// UsingDefaultSecret reports whether tokens are signed with the built-in key.
func (c *Config) UsingDefaultSecret() bool {
	return c.Session.Secret == "" || c.Session.Secret == defaultSecret
}
