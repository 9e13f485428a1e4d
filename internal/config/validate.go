package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateFont(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.Encoder == "" {
		return errors.New("ffmpeg.encoder must be set")
	}
	if c.FFmpeg.Quality < 0 || c.FFmpeg.Quality > 63 {
		return fmt.Errorf("ffmpeg.quality must be between 0 and 63, got %d", c.FFmpeg.Quality)
	}
	return nil
}

func (c *Config) validateFont() error {
	if c.Font.Name == "" {
		return errors.New("font.name must be set")
	}
	if c.Font.Size <= 0 || c.Font.Size > 200 {
		return fmt.Errorf("font.size must be between 1 and 200, got %d", c.Font.Size)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
