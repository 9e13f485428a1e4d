package config

const (
	defaultEncoder   = "libx264"
	defaultQuality   = 23
	defaultFontName  = "Arial"
	defaultFontSize  = 24
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		FFmpeg: FFmpeg{
			Encoder: defaultEncoder,
			Quality: defaultQuality,
		},
		Font: Font{
			Name: defaultFontName,
			Size: defaultFontSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
