// Package services defines the shared error taxonomy for pipeline stages
// and the wrapping helper that tags failures for terminal-state
// classification.
package services
