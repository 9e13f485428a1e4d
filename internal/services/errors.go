package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProbe marks prober failures: binary unavailable or malformed
	// stream metadata. Non-fatal to a batch; the file is skipped.
	ErrProbe = errors.New("probe error")
	// ErrExtract marks subtitle extraction failures after all methods
	// were attempted.
	ErrExtract = errors.New("extract error")
	// ErrUnsupportedSubtitle marks bitmap subtitle tracks that cannot be
	// converted to a text format.
	ErrUnsupportedSubtitle = errors.New("unsupported subtitle format")
	// ErrTransform marks malformed subtitle text the transformer could
	// not tolerate.
	ErrTransform = errors.New("transform error")
	// ErrEncodeFailed marks an encode that exhausted every fallback tier.
	ErrEncodeFailed = errors.New("encode failed")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later outcome classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrEncodeFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsCancellation reports whether err stems from a user-initiated
// cancellation rather than a stage failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
