// Package ffprobe queries media containers for their stream inventory.
//
// The structured probe (Probe) is the source of truth for track
// enumeration. A text scan of the ffmpeg banner (ScanStreams) remains as a
// cheap fallback for existence checks and for hosts where structured
// probing is unavailable.
package ffprobe
