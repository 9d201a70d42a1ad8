package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	_ "time/tzdata" // the page's zone must resolve on hosts without zoneinfo

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
)

// Fixed parameters of the check. These are deliberately not read from the
// config file.
const (
	// SourceURL is the findstarlink.com page for Madrid, Spain
	SourceURL = "https://findstarlink.com/#3117735;3"
	// LaunchAPIURL lists upcoming launches from Launch Library 2
	LaunchAPIURL = "https://ll.thespacedevs.com/2.0.0/launch/upcoming/?format=json"
	// LaunchNameFilter selects Starlink deployment launches
	LaunchNameFilter = "Starlink Group"
	// TimeZone is the zone the prediction page displays its times in
	TimeZone = "Europe/Madrid"
	// HTTPTimeout bounds the launch API request
	HTTPTimeout = 30 * time.Second
	// DefaultPath is the optional config file looked up in the working directory
	DefaultPath = "starwatch.toml"
)

// Config is the complete, immutable configuration of one run
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Browser BrowserConfig `toml:"browser"`

	SourceURL        string         `toml:"-"`
	LaunchAPIURL     string         `toml:"-"`
	LaunchNameFilter string         `toml:"-"`
	HTTPTimeout      time.Duration  `toml:"-"`
	Location         *time.Location `toml:"-"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// BrowserConfig represents the headless browser configuration
type BrowserConfig struct {
	ExecPath               string `toml:"exec_path"` // empty lets chromedp find Chrome
	Headless               bool   `toml:"headless"`
	PageLoadTimeoutSeconds int    `toml:"page_load_timeout_seconds"`
	SettleDelaySeconds     int    `toml:"settle_delay_seconds"`
}

// PageLoadTimeout returns the navigation bound as a duration
func (b BrowserConfig) PageLoadTimeout() time.Duration {
	return time.Duration(b.PageLoadTimeoutSeconds) * time.Second
}

// SettleDelay returns how long to wait for client-side rendering
func (b BrowserConfig) SettleDelay() time.Duration {
	return time.Duration(b.SettleDelaySeconds) * time.Second
}

// DefaultLoggingConfig returns the default logging configuration
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "info",
		Format: "console",
	}
}

// DefaultBrowserConfig returns the default browser configuration
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:               true,
		PageLoadTimeoutSeconds: 60,
		SettleDelaySeconds:     5,
	}
}

// Default returns the configuration used when no file is present
func Default() (*Config, error) {
	loc, err := time.LoadLocation(TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %s: %w", TimeZone, err)
	}
	return &Config{
		Logging:          DefaultLoggingConfig(),
		Browser:          DefaultBrowserConfig(),
		SourceURL:        SourceURL,
		LaunchAPIURL:     LaunchAPIURL,
		LaunchNameFilter: LaunchNameFilter,
		HTTPTimeout:      HTTPTimeout,
		Location:         loc,
	}, nil
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		result = multierror.Append(result, fmt.Errorf("logging.format %q is not one of json, console", c.Logging.Format))
	}
	if c.Browser.PageLoadTimeoutSeconds < 1 {
		result = multierror.Append(result, fmt.Errorf("browser.page_load_timeout_seconds must be positive, got %d", c.Browser.PageLoadTimeoutSeconds))
	}
	if c.Browser.SettleDelaySeconds < 0 {
		result = multierror.Append(result, fmt.Errorf("browser.settle_delay_seconds must not be negative, got %d", c.Browser.SettleDelaySeconds))
	}
	if c.Browser.ExecPath != "" {
		if _, err := os.Stat(c.Browser.ExecPath); err != nil {
			result = multierror.Append(result, fmt.Errorf("browser.exec_path: %w", err))
		}
	}

	return result.ErrorOrNil()
}
