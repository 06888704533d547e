// Package config provides Viper-based configuration loading for the
// session coordinator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP/WebSocket listener settings.
type ServerConfig struct {
	// Host is the bind address for the HTTP listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the HTTP listener.
	Port int `mapstructure:"port"`
	// StaticDir is the directory served at "/" for the bootstrap client.
	// Empty disables static file serving.
	StaticDir string `mapstructure:"static_dir"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File routes log output to a rolling file when non-empty;
	// empty logs to stderr.
	File string `mapstructure:"file"`
}

// GameConfig holds session rule timings.
type GameConfig struct {
	// ClassUnlockDelay is how long after game start class switching unlocks.
	ClassUnlockDelay time.Duration `mapstructure:"class_unlock_delay"`
	// LobbyResetDelay is how long a room stays in the post-game phase
	// before returning to the lobby.
	LobbyResetDelay time.Duration `mapstructure:"lobby_reset_delay"`
	// KillerCooldownSecs is the advisory attack cooldown reported to the
	// killer after each hit, in seconds.
	KillerCooldownSecs int `mapstructure:"killer_cooldown_secs"`
	// SpawnsFile is an optional YAML spawn layout override. Empty uses the
	// built-in layout.
	SpawnsFile string `mapstructure:"spawns_file"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateServer(c.Server); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) error {
	var errs []string
	if s.Host == "" {
		errs = append(errs, "server.host must not be empty")
	}
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", s.Port))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.ClassUnlockDelay <= 0 {
		errs = append(errs, fmt.Sprintf("game.class_unlock_delay must be > 0, got %s", g.ClassUnlockDelay))
	}
	if g.LobbyResetDelay <= 0 {
		errs = append(errs, fmt.Sprintf("game.lobby_reset_delay must be > 0, got %s", g.LobbyResetDelay))
	}
	if g.KillerCooldownSecs < 0 {
		errs = append(errs, fmt.Sprintf("game.killer_cooldown_secs must be >= 0, got %d", g.KillerCooldownSecs))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with CAMPBLOOD_ prefix
	v.SetEnvPrefix("CAMPBLOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.static_dir", "web")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("game.class_unlock_delay", "210s")
	v.SetDefault("game.lobby_reset_delay", "30s")
	v.SetDefault("game.killer_cooldown_secs", 4)
	v.SetDefault("game.spawns_file", "")
}
