// Package language maps the ISO language tags ffprobe reports on streams
// to human-readable names for track selection output.
package language
