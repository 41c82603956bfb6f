package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"survivalcore/internal/app/ports"
)

var ErrInvalidPeriod = errors.New("invalid subsystem period")

// Subsystem is one periodic simulation step. Run must finish before it
// returns; the scheduler never overlaps invocations.
type Subsystem interface {
	Name() string
	Run(ctx context.Context, tick uint64) error
}

// Func adapts a plain function to Subsystem.
type Func struct {
	Label string
	Fn    func(ctx context.Context, tick uint64) error
}

func (f Func) Name() string { return f.Label }

func (f Func) Run(ctx context.Context, tick uint64) error { return f.Fn(ctx, tick) }

type entry struct {
	sub    Subsystem
	period uint64
}

type Registration struct {
	Name   string `json:"name"`
	Period uint64 `json:"period"`
}

// Scheduler runs registered subsystems on ticks that are multiples of
// their period, in registration order. Ticks the driver skips are never
// replayed.
type Scheduler struct {
	mu      sync.Mutex
	entries []entry
	metrics ports.SchedulerMetrics
	logger  *slog.Logger
	lastRun map[int]uint64
}

func New(metrics ports.SchedulerMetrics, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{metrics: metrics, logger: logger, lastRun: map[int]uint64{}}
}

func (s *Scheduler) Register(sub Subsystem, period uint64) error {
	if sub == nil {
		return fmt.Errorf("register: nil subsystem")
	}
	if period == 0 {
		return fmt.Errorf("%w: %s period=0", ErrInvalidPeriod, sub.Name())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{sub: sub, period: period})
	return nil
}

func (s *Scheduler) Registrations() []Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Registration, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, Registration{Name: e.sub.Name(), Period: e.period})
	}
	return out
}

// Advance invokes every subsystem due on tick and returns how many ran.
// A failing subsystem is logged and counted; the rest still run.
func (s *Scheduler) Advance(ctx context.Context, tick uint64) int {
	s.mu.Lock()
	entries := append([]entry(nil), s.entries...)
	s.mu.Unlock()

	ran := 0
	for i, e := range entries {
		if tick%e.period != 0 {
			continue
		}
		name := e.sub.Name()
		s.mu.Lock()
		last, seen := s.lastRun[i]
		s.lastRun[i] = tick
		s.mu.Unlock()
		if seen && last == tick {
			continue
		}
		start := time.Now()
		err := s.invoke(ctx, e.sub, tick)
		ran++
		if s.metrics != nil {
			s.metrics.RecordRun(name, time.Since(start))
		}
		if err != nil {
			if s.metrics != nil {
				s.metrics.RecordFailure(name)
			}
			s.logger.Error("subsystem failed", "subsystem", name, "tick", tick, "err", err)
		}
	}
	return ran
}

func (s *Scheduler) invoke(ctx context.Context, sub Subsystem, tick uint64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return sub.Run(ctx, tick)
}
