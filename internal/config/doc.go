// Package config loads, validates, and persists mk4 configuration.
//
// Sections by subsystem:
//   - FFmpeg: encoder name and quality value for the encode command
//   - Font: name and size burned into reformatted subtitles
//   - Logging: log format, level, and optional file output
//
// A loaded Config is treated as an immutable snapshot: conversions in
// flight keep the snapshot they were constructed with, and reloading the
// file only affects runs started afterwards.
package config
