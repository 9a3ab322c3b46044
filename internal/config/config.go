package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/imposterctl/internal/transport"
)

// ClientConfig is everything the binary needs to run one session.
type ClientConfig struct {
	ServerURL string
	Name      string
	DebugAddr string
	Transport transport.Config
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ServerURL: "ws://localhost:5050/ws",
		Transport: transport.DefaultConfig(),
	}
}

type fileConfig struct {
	ServerURL         string  `toml:"server_url"`
	Name              string  `toml:"name"`
	DebugAddr         string  `toml:"debug_addr"`
	ConnectTimeout    string  `toml:"connect_timeout"`
	WriteTimeout      string  `toml:"write_timeout"`
	MaxAttempts       int     `toml:"max_connect_attempts"`
	ReconnectDelayMS  int64   `toml:"reconnect_delay_ms"`
	ReconnectMaxMS    int64   `toml:"reconnect_max_delay_ms"`
	BackoffMultiplier float64 `toml:"backoff_multiplier"`
	BackoffJitter     bool    `toml:"backoff_jitter"`
}

// LoadClientConfig reads path over the defaults; only keys present in the
// file override them.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}

	if meta.IsDefined("server_url") {
		cfg.ServerURL = strings.TrimSpace(raw.ServerURL)
	}
	if meta.IsDefined("name") {
		cfg.Name = strings.TrimSpace(raw.Name)
	}
	if meta.IsDefined("debug_addr") {
		cfg.DebugAddr = strings.TrimSpace(raw.DebugAddr)
	}
	if meta.IsDefined("connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ConnectTimeout))
		if err != nil {
			return ClientConfig{}, fmt.Errorf("parse connect_timeout: %w", err)
		}
		cfg.Transport.ConnectTimeout = d
	}
	if meta.IsDefined("write_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.WriteTimeout))
		if err != nil {
			return ClientConfig{}, fmt.Errorf("parse write_timeout: %w", err)
		}
		cfg.Transport.WriteTimeout = d
	}
	if meta.IsDefined("max_connect_attempts") {
		cfg.Transport.MaxConnectAttempts = raw.MaxAttempts
	}
	if meta.IsDefined("reconnect_delay_ms") {
		cfg.Transport.Backoff.InitialDelay = time.Duration(raw.ReconnectDelayMS) * time.Millisecond
	}
	if meta.IsDefined("reconnect_max_delay_ms") {
		cfg.Transport.Backoff.MaxDelay = time.Duration(raw.ReconnectMaxMS) * time.Millisecond
	}
	if meta.IsDefined("backoff_multiplier") {
		cfg.Transport.Backoff.Multiplier = raw.BackoffMultiplier
	}
	if meta.IsDefined("backoff_jitter") {
		cfg.Transport.Backoff.Jitter = raw.BackoffJitter
	}

	if err := ValidateClientConfig(cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func ValidateClientConfig(cfg ClientConfig) error {
	url := strings.TrimSpace(cfg.ServerURL)
	if url == "" {
		return fmt.Errorf("client config missing server_url")
	}
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return fmt.Errorf("server_url must use ws or wss scheme: %q", url)
	}
	if cfg.Transport.Backoff.InitialDelay < 0 {
		return fmt.Errorf("reconnect_delay_ms must not be negative")
	}
	return nil
}
