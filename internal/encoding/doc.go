// Package encoding builds and drives the external ffmpeg encode, turning
// its progress side channel into a normalized fraction and applying a
// three-tier fallback ladder when a command fails.
package encoding
