package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.FFmpeg.Encoder = strings.ToLower(strings.TrimSpace(c.FFmpeg.Encoder))
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = defaultEncoder
	}
	if c.FFmpeg.Quality == 0 {
		c.FFmpeg.Quality = defaultQuality
	}

	c.Font.Name = strings.TrimSpace(c.Font.Name)
	if c.Font.Name == "" {
		c.Font.Name = defaultFontName
	}
	if c.Font.Size == 0 {
		c.Font.Size = defaultFontSize
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
