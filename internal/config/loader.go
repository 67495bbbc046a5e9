package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envConfigDir      = "WIRECHAT_CONFIG_DIR"
	defaultConfigName = "client.yaml"
)

// Load builds configuration from defaults, optional config file, env vars and
// flags, and returns the resolved path. A missing file is created from the
// defaults; if that fails the client runs on defaults, env and flags alone.
// Precedence: defaults < config file < env vars < changed flags.
func Load(logger *zerolog.Logger, explicitPath string, flags *pflag.FlagSet) (Config, string, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	v.SetEnvPrefix("WIRECHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return cfg, "", err
		}
	}

	path := configFilePath(explicitPath)
	switch err := ensureConfigFile(path, cfg); {
	case err != nil:
		logger.Warn().Err(err).Str("path", path).Msg("config file unavailable, using defaults")
	default:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, path, fmt.Errorf("read config %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("config file loaded")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, path, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("validate config: %w", err)
	}
	return cfg, path, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	defaults := map[string]any{
		"server_url":     cfg.ServerURL,
		"username":       cfg.Username,
		"token":          cfg.Token,
		"token_secret":   cfg.TokenSecret,
		"token_issuer":   cfg.TokenIssuer,
		"token_audience": cfg.TokenAudience,
		"default_room":   cfg.DefaultRoom,
		"rooms":          cfg.Rooms,
		"replay_policy":  cfg.ReplayPolicy,
		"guard_reentry":  cfg.GuardReentry,
		"log_level":      cfg.LogLevel,
		"dial_timeout":   cfg.DialTimeout,
		"write_timeout":  cfg.WriteTimeout,
		"reconnect_min":  cfg.ReconnectMin,
		"reconnect_max":  cfg.ReconnectMax,
		"send_queue":     cfg.SendQueue,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"server":        "server_url",
	"user":          "username",
	"token":         "token",
	"room":          "default_room",
	"replay":        "replay_policy",
	"guard-reentry": "guard_reentry",
	"log-level":     "log_level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// configFilePath picks the explicit path, then $WIRECHAT_CONFIG_DIR, then the
// working directory.
func configFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir := os.Getenv(envConfigDir); dir != "" {
		return filepath.Join(dir, defaultConfigName)
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, defaultConfigName)
	}
	return defaultConfigName
}

// ensureConfigFile creates path from cfg when nothing exists there yet.
// Credentials are left blank in the generated file.
func ensureConfigFile(path string, cfg Config) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg.Token = ""
	cfg.TokenSecret = ""
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
