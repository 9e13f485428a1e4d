package pipeline

import "sync"

// Stage identifies where a run currently is, or how it ended.
type Stage string

const (
	StageProbing      Stage = "probing"
	StageExtracting   Stage = "extracting"
	StageStripping    Stage = "stripping"
	StageReformatting Stage = "reformatting"
	StageEncoding     Stage = "encoding"
	StageDone         Stage = "done"
	StageSkipped      Stage = "skipped"
	StageFailed       Stage = "failed"
	StageCancelled    Stage = "cancelled"
)

// Terminal reports whether the stage ends a run.
func (s Stage) Terminal() bool {
	switch s {
	case StageDone, StageSkipped, StageFailed, StageCancelled:
		return true
	}
	return false
}

// Active stages in execution order; position feeds the overall
// progress formula.
var stageOrder = map[Stage]int{
	StageProbing:      0,
	StageExtracting:   1,
	StageStripping:    2,
	StageReformatting: 3,
	StageEncoding:     4,
}

const stageCount = 5

// overallFraction folds a stage-local fraction in [0, 1] into the run's
// overall scale: (completed stages + current stage fraction) / total.
// Terminal stages report 1.
func overallFraction(stage Stage, local float64) float64 {
	index, ok := stageOrder[stage]
	if !ok {
		return 1.0
	}
	if local < 0 {
		local = 0
	}
	if local > 1 {
		local = 1
	}
	return (float64(index) + local) / stageCount
}

// Event is one progress observation for a run. Fraction is on the
// overall [0, 1] scale; Message carries human-readable detail for
// terminal stages.
type Event struct {
	RunID    string
	Path     string
	Stage    Stage
	Fraction float64
	Message  string
}

// Publisher fans events out to any number of subscribers. Publishing
// never blocks: a subscriber that stops draining loses events rather
// than stalling the pipeline.
type Publisher struct {
	mu          sync.Mutex
	subscribers map[int]chan Event
	nextID      int
	closed      bool
}

// NewPublisher returns an empty publisher ready for subscriptions.
func NewPublisher() *Publisher {
	return &Publisher{subscribers: make(map[int]chan Event)}
}

// Subscribe registers a buffered listener and returns its channel plus
// an unsubscribe function. The channel is closed on unsubscribe or when
// the publisher closes.
func (p *Publisher) Subscribe() (<-chan Event, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch := make(chan Event, 64)
	if p.closed {
		close(ch)
		return ch, func() {}
	}

	id := p.nextID
	p.nextID++
	p.subscribers[id] = ch

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if sub, ok := p.subscribers[id]; ok {
			delete(p.subscribers, id)
			close(sub)
		}
	}
}

// Publish delivers event to every subscriber that has buffer room.
func (p *Publisher) Publish(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	for _, ch := range p.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close shuts the publisher down and closes all subscriber channels.
// Subsequent publishes are dropped.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for id, ch := range p.subscribers {
		delete(p.subscribers, id)
		close(ch)
	}
}
