package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Relay formats understood by the fetcher.
const (
	RelayFormatJSON = "json"
	RelayFormatRaw  = "raw"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Fetcher FetcherConfig `toml:"fetcher"`
	Handle  HandleConfig  `toml:"handle"`
	Batch   BatchConfig   `toml:"batch"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// FetcherConfig contains relay fetcher settings.
type FetcherConfig struct {
	TimeoutSeconds int           `toml:"timeout_seconds"`
	MinBodyLength  int           `toml:"min_body_length"`
	MaxBodyBytes   int64         `toml:"max_body_bytes"`
	UserAgent      string        `toml:"user_agent"`
	AcceptLanguage string        `toml:"accept_language"`
	Relays         []RelayConfig `toml:"relays"`
}

// RelayConfig describes one relay endpoint template.
type RelayConfig struct {
	Name     string `toml:"name"`
	Template string `toml:"template"`
	Format   string `toml:"format"`
}

// HandleConfig contains the single-relay shortcuts used for @handle lookups.
type HandleConfig struct {
	DirectRelay RelayConfig `toml:"direct_relay"`
	FeedRelay   RelayConfig `toml:"feed_relay"`
}

// BatchConfig contains settings for resolving many inputs in one run.
type BatchConfig struct {
	Rate   float64 `toml:"rate"`
	Burst  int     `toml:"burst"`
	Format string  `toml:"format"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	md, err := toml.Decode(string(data), &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.fillDefaults(md, DefaultConfig())

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// fillDefaults copies every setting the file did not define from def.
func (c *Config) fillDefaults(md toml.MetaData, def *Config) {
	fields := []struct {
		key   []string
		apply func()
	}{
		{[]string{"log", "level"}, func() { c.Log.Level = def.Log.Level }},
		{[]string{"fetcher", "timeout_seconds"}, func() { c.Fetcher.TimeoutSeconds = def.Fetcher.TimeoutSeconds }},
		{[]string{"fetcher", "min_body_length"}, func() { c.Fetcher.MinBodyLength = def.Fetcher.MinBodyLength }},
		{[]string{"fetcher", "max_body_bytes"}, func() { c.Fetcher.MaxBodyBytes = def.Fetcher.MaxBodyBytes }},
		{[]string{"fetcher", "user_agent"}, func() { c.Fetcher.UserAgent = def.Fetcher.UserAgent }},
		{[]string{"fetcher", "accept_language"}, func() { c.Fetcher.AcceptLanguage = def.Fetcher.AcceptLanguage }},
		{[]string{"fetcher", "relays"}, func() { c.Fetcher.Relays = def.Fetcher.Relays }},
		{[]string{"handle", "direct_relay"}, func() { c.Handle.DirectRelay = def.Handle.DirectRelay }},
		{[]string{"handle", "feed_relay"}, func() { c.Handle.FeedRelay = def.Handle.FeedRelay }},
		{[]string{"batch", "rate"}, func() { c.Batch.Rate = def.Batch.Rate }},
		{[]string{"batch", "burst"}, func() { c.Batch.Burst = def.Batch.Burst }},
		{[]string{"batch", "format"}, func() { c.Batch.Format = def.Batch.Format }},
	}

	for _, f := range fields {
		if !md.IsDefined(f.key...) {
			f.apply()
		}
	}
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks relay definitions and numeric settings.
func (c *Config) Validate() error {
	if len(c.Fetcher.Relays) == 0 {
		return fmt.Errorf("%w: at least one [[fetcher.relays]] entry is required", ErrInvalidConfig)
	}
	for i, r := range c.Fetcher.Relays {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("fetcher.relays[%d]: %w", i, err)
		}
	}
	if err := c.Handle.DirectRelay.Validate(); err != nil {
		return fmt.Errorf("handle.direct_relay: %w", err)
	}
	if err := c.Handle.FeedRelay.Validate(); err != nil {
		return fmt.Errorf("handle.feed_relay: %w", err)
	}
	if c.Fetcher.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: fetcher.timeout_seconds must be positive", ErrInvalidConfig)
	}
	if c.Fetcher.MinBodyLength < 0 || c.Fetcher.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: fetcher values must not be negative", ErrInvalidConfig)
	}
	if c.Batch.Rate < 0 || c.Batch.Burst < 0 {
		return fmt.Errorf("%w: batch values must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Validate checks that the relay has a usable template and a known format.
func (r RelayConfig) Validate() error {
	if strings.TrimSpace(r.Template) == "" {
		return fmt.Errorf("%w: relay %q has no template", ErrInvalidConfig, r.Name)
	}
	if !strings.Contains(r.Template, "{url}") && !strings.Contains(r.Template, "{raw}") {
		return fmt.Errorf("%w: relay %q template needs a {url} or {raw} placeholder", ErrInvalidConfig, r.Name)
	}
	switch r.Format {
	case RelayFormatJSON, RelayFormatRaw:
		return nil
	default:
		return fmt.Errorf("%w: relay %q has unknown format %q", ErrInvalidConfig, r.Name, r.Format)
	}
}
