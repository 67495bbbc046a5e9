package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/wirechat-client/internal/core"
	"github.com/vovakirdan/wirechat-client/internal/identity"
)

// Config holds client configuration values. TokenIssuer and TokenAudience,
// when set, must match the token's claims.
type Config struct {
	ServerURL     string        `mapstructure:"server_url" yaml:"server_url"`
	Username      string        `mapstructure:"username" yaml:"username"`
	Token         string        `mapstructure:"token" yaml:"token"`
	TokenSecret   string        `mapstructure:"token_secret" yaml:"token_secret"`
	TokenIssuer   string        `mapstructure:"token_issuer" yaml:"token_issuer"`
	TokenAudience string        `mapstructure:"token_audience" yaml:"token_audience"`
	DefaultRoom   string        `mapstructure:"default_room" yaml:"default_room"`
	Rooms         []string      `mapstructure:"rooms" yaml:"rooms"`
	ReplayPolicy  string        `mapstructure:"replay_policy" yaml:"replay_policy"`
	GuardReentry  bool          `mapstructure:"guard_reentry" yaml:"guard_reentry"`
	LogLevel      string        `mapstructure:"log_level" yaml:"log_level"`
	DialTimeout   time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ReconnectMin  time.Duration `mapstructure:"reconnect_min" yaml:"reconnect_min"`
	ReconnectMax  time.Duration `mapstructure:"reconnect_max" yaml:"reconnect_max"`
	SendQueue     int           `mapstructure:"send_queue" yaml:"send_queue"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		ServerURL:    "ws://localhost:5000/ws",
		DefaultRoom:  "General",
		Rooms:        []string{"General", "Anime", "Movie", "Sports"},
		ReplayPolicy: core.ReplayDeduplicated.String(),
		GuardReentry: true,
		LogLevel:     "info",
		DialTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		ReconnectMin: 500 * time.Millisecond,
		ReconnectMax: 10 * time.Second,
		SendQueue:    32,
	}
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return errors.New("server_url is required")
	}
	if strings.TrimSpace(c.DefaultRoom) == "" {
		return errors.New("default_room is required")
	}
	if _, err := core.ParseReplayPolicy(c.ReplayPolicy); err != nil {
		return err
	}
	if c.SendQueue <= 0 {
		return fmt.Errorf("send_queue must be positive, got %d", c.SendQueue)
	}
	if c.ReconnectMin > c.ReconnectMax {
		return fmt.Errorf("reconnect_min (%s) exceeds reconnect_max (%s)", c.ReconnectMin, c.ReconnectMax)
	}
	return nil
}

// SessionOptions converts the policy settings for core.
func (c Config) SessionOptions() (core.Options, error) {
	policy, err := core.ParseReplayPolicy(c.ReplayPolicy)
	if err != nil {
		return core.Options{}, err
	}
	return core.Options{Replay: policy, GuardReentry: c.GuardReentry}, nil
}

// IdentityOptions returns the sources identity.Resolve reads from.
func (c Config) IdentityOptions() identity.Options {
	return identity.Options{
		Token:    c.Token,
		Secret:   c.TokenSecret,
		Issuer:   c.TokenIssuer,
		Audience: c.TokenAudience,
		Username: c.Username,
	}
}
