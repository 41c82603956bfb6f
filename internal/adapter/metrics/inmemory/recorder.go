package inmemory

import (
	"sync"
	"time"
)

type SubsystemStats struct {
	Runs      uint64  `json:"runs"`
	Failures  uint64  `json:"failures"`
	LastMs    float64 `json:"last_ms"`
	MaxMs     float64 `json:"max_ms"`
	AverageMs float64 `json:"average_ms"`
}

type Snapshot struct {
	RunTotal     uint64                    `json:"run_total"`
	FailureTotal uint64                    `json:"failure_total"`
	EventTotal   uint64                    `json:"event_total"`
	Subsystems   map[string]SubsystemStats `json:"subsystems"`
	ByEvent      map[string]uint64         `json:"by_event"`
}

type subsystemCounters struct {
	runs     uint64
	failures uint64
	total    time.Duration
	last     time.Duration
	max      time.Duration
}

type Recorder struct {
	mu         sync.Mutex
	subsystems map[string]*subsystemCounters
	events     map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		subsystems: map[string]*subsystemCounters{},
		events:     map[string]uint64{},
	}
}

func (r *Recorder) counters(name string) *subsystemCounters {
	c, ok := r.subsystems[name]
	if !ok {
		c = &subsystemCounters{}
		r.subsystems[name] = c
	}
	return c
}

func (r *Recorder) RecordRun(subsystem string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.counters(subsystem)
	c.runs++
	c.total += elapsed
	c.last = elapsed
	if elapsed > c.max {
		c.max = elapsed
	}
}

func (r *Recorder) RecordFailure(subsystem string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters(subsystem).failures++
}

func (r *Recorder) RecordEvent(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[kind]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Subsystems: make(map[string]SubsystemStats, len(r.subsystems)),
		ByEvent:    make(map[string]uint64, len(r.events)),
	}
	for name, c := range r.subsystems {
		s := SubsystemStats{
			Runs:     c.runs,
			Failures: c.failures,
			LastMs:   ms(c.last),
			MaxMs:    ms(c.max),
		}
		if c.runs > 0 {
			s.AverageMs = ms(c.total) / float64(c.runs)
		}
		out.Subsystems[name] = s
		out.RunTotal += c.runs
		out.FailureTotal += c.failures
	}
	for k, v := range r.events {
		out.ByEvent[k] = v
		out.EventTotal += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
