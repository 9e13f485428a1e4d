package encoding

import (
	"strconv"
	"strings"
	"time"
)

const (
	// runningCap reserves the final 5% of the bar for process exit and
	// cleanup; observers only see 1.0 after the encoder has exited.
	runningCap = 0.95
	// stallInterval is how long the tracker waits for a real progress
	// line before synthesizing wall-clock progress.
	stallInterval = 2 * time.Second
)

// progressTracker converts the encoder's key=value progress lines into a
// monotonically non-decreasing fraction in [0, runningCap).
type progressTracker struct {
	duration   float64
	fraction   float64
	lastReal   time.Time
	syntheticT time.Time
}

func newProgressTracker(duration float64, now time.Time) *progressTracker {
	return &progressTracker{duration: duration, lastReal: now, syntheticT: now}
}

// ObserveLine consumes one side-channel line. It returns the updated
// fraction and whether the line carried an elapsed-time value.
func (t *progressTracker) ObserveLine(line string, now time.Time) (float64, bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return t.fraction, false
	}

	var elapsed float64
	switch key {
	case "out_time":
		var ok bool
		if elapsed, ok = parseClock(value); !ok {
			return t.fraction, false
		}
	case "out_time_us":
		us, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || us < 0 {
			return t.fraction, false
		}
		elapsed = float64(us) / 1e6
	case "out_time_ms":
		ms, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || ms < 0 {
			return t.fraction, false
		}
		elapsed = float64(ms) / 1e3
	default:
		return t.fraction, false
	}

	t.lastReal = now
	t.syntheticT = now
	if t.duration <= 0 {
		return t.fraction, true
	}
	t.advance(elapsed / t.duration)
	return t.fraction, true
}

// Synthesize advances the fraction from wall-clock time when the side
// channel has been silent past stallInterval, so observers never see a
// stalled bar. Synthetic progress crawls at a fraction of real time and
// stays below the running cap.
func (t *progressTracker) Synthesize(now time.Time) (float64, bool) {
	if now.Sub(t.lastReal) < stallInterval {
		return t.fraction, false
	}
	elapsed := now.Sub(t.syntheticT).Seconds()
	if elapsed <= 0 {
		return t.fraction, false
	}
	t.syntheticT = now

	reference := t.duration
	if reference <= 0 {
		reference = 3600
	}
	t.advance(t.fraction + elapsed/(reference*4))
	return t.fraction, true
}

// Fraction returns the current clamped fraction.
func (t *progressTracker) Fraction() float64 {
	return t.fraction
}

func (t *progressTracker) advance(candidate float64) {
	if candidate > runningCap {
		candidate = runningCap
	}
	if candidate > t.fraction {
		t.fraction = candidate
	}
}

// parseClock parses the encoder's HH:MM:SS.frac elapsed timestamps.
func parseClock(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == "N/A" {
		return 0, false
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err1 := strconv.ParseFloat(parts[0], 64)
	minutes, err2 := strconv.ParseFloat(parts[1], 64)
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return hours*3600 + minutes*60 + seconds, true
}
