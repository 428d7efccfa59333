package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds exporter configuration.
type Config struct {
	BaseURL         string
	UserAgent       string
	Delay           time.Duration
	VenueTimeout    time.Duration
	ScheduleTimeout time.Duration
	BoxscoreTimeout time.Duration
	OutputDir       string
	MetricsAddr     string
	DedupeMaxSize   int
	Verbose         bool
}

// DefaultConfig returns defaults matching the public Stats API.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "https://statsapi.mlb.com/api/v1",
		UserAgent:       "Stadium-Season-Stats-Exporter/1.0",
		Delay:           100 * time.Millisecond,
		VenueTimeout:    10 * time.Second,
		ScheduleTimeout: 30 * time.Second,
		BoxscoreTimeout: 15 * time.Second,
		OutputDir:       ".",
		MetricsAddr:     "",
		DedupeMaxSize:   2048,
		Verbose:         false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	if c.VenueTimeout <= 0 {
		return fmt.Errorf("venue timeout must be positive")
	}
	if c.ScheduleTimeout <= 0 {
		return fmt.Errorf("schedule timeout must be positive")
	}
	if c.BoxscoreTimeout <= 0 {
		return fmt.Errorf("boxscore timeout must be positive")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.DedupeMaxSize <= 0 {
		return fmt.Errorf("dedupe size must be positive")
	}

	return nil
}
