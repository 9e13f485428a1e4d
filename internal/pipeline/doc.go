// Package pipeline runs one file through the full conversion sequence:
// probe, extract, strip, reformat, encode. A Runner owns the stage
// machinery and publishes progress events through a single Publisher so
// renderers never race each other for terminal output.
package pipeline
