package encoding

// Job describes one encode: where the input and burned subtitles come
// from, which tracks are mapped, and the codec/quality snapshot taken
// from configuration at construction time.
type Job struct {
	InputPath    string
	SubtitlePath string
	OutputPath   string
	AudioTrack   int
	Duration     float64 // container duration in seconds; 0 when unknown
	Encoder      string
	Quality      int
}

// Status is the terminal state of an encode attempt.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusDegraded means the encode succeeded only after dropping the
	// subtitle filter: the output has no burned subtitles.
	StatusDegraded  Status = "degraded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Outcome reports how an encode ended and which fallback tier produced
// the output.
type Outcome struct {
	Status Status
	Tier   string
}

// Succeeded reports whether an output file was produced, degraded or not.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess || o.Status == StatusDegraded
}
