package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type countingSub struct {
	name  string
	ticks []uint64
	err   error
	panic bool
}

func (c *countingSub) Name() string { return c.name }

func (c *countingSub) Run(_ context.Context, tick uint64) error {
	c.ticks = append(c.ticks, tick)
	if c.panic {
		panic("boom")
	}
	return c.err
}

type metricsSpy struct {
	mu       sync.Mutex
	runs     map[string]int
	failures map[string]int
}

func newMetricsSpy() *metricsSpy {
	return &metricsSpy{runs: map[string]int{}, failures: map[string]int{}}
}

func (m *metricsSpy) RecordRun(name string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[name]++
}

func (m *metricsSpy) RecordFailure(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[name]++
}

func TestAdvance_RunsOnMultiplesOnly(t *testing.T) {
	s := New(nil, nil)
	sub := &countingSub{name: "p7"}
	if err := s.Register(sub, 7); err != nil {
		t.Fatalf("register: %v", err)
	}
	for tick := uint64(1); tick <= 50; tick++ {
		s.Advance(context.Background(), tick)
	}
	want := []uint64{7, 14, 21, 28, 35, 42, 49}
	if len(sub.ticks) != len(want) {
		t.Fatalf("invocation count mismatch: got=%v want=%v", sub.ticks, want)
	}
	for i := range want {
		if sub.ticks[i] != want[i] {
			t.Fatalf("invocation %d mismatch: got=%d want=%d", i, sub.ticks[i], want[i])
		}
	}
}

func TestAdvance_SkippedTicksAreNotReplayed(t *testing.T) {
	s := New(nil, nil)
	sub := &countingSub{name: "p5"}
	_ = s.Register(sub, 5)
	for _, tick := range []uint64{3, 10, 11, 17, 40, 40, 41, 45} {
		s.Advance(context.Background(), tick)
	}
	want := []uint64{10, 40, 45}
	if len(sub.ticks) != len(want) {
		t.Fatalf("invocation mismatch: got=%v want=%v", sub.ticks, want)
	}
	for i := range want {
		if sub.ticks[i] != want[i] {
			t.Fatalf("invocation %d mismatch: got=%d want=%d", i, sub.ticks[i], want[i])
		}
	}
}

func TestAdvance_RegistrationOrder(t *testing.T) {
	s := New(nil, nil)
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		n := name
		_ = s.Register(Func{Label: n, Fn: func(context.Context, uint64) error {
			order = append(order, n)
			return nil
		}}, 1)
	}
	s.Advance(context.Background(), 1)
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("order mismatch: got=%v", order)
	}
}

func TestAdvance_FailuresAreIsolated(t *testing.T) {
	spy := newMetricsSpy()
	s := New(spy, nil)
	failing := &countingSub{name: "failing", err: errors.New("host down")}
	panicking := &countingSub{name: "panicking", panic: true}
	healthy := &countingSub{name: "healthy"}
	_ = s.Register(failing, 1)
	_ = s.Register(panicking, 1)
	_ = s.Register(healthy, 1)

	for tick := uint64(1); tick <= 3; tick++ {
		if ran := s.Advance(context.Background(), tick); ran != 3 {
			t.Fatalf("tick %d ran mismatch: got=%d want=3", tick, ran)
		}
	}
	if len(healthy.ticks) != 3 {
		t.Fatalf("healthy subsystem starved: got=%v", healthy.ticks)
	}
	if spy.failures["failing"] != 3 || spy.failures["panicking"] != 3 || spy.failures["healthy"] != 0 {
		t.Fatalf("failure metrics mismatch: got=%v", spy.failures)
	}
	if spy.runs["healthy"] != 3 {
		t.Fatalf("run metrics mismatch: got=%v", spy.runs)
	}
}

func TestRegister_RejectsZeroPeriod(t *testing.T) {
	s := New(nil, nil)
	if err := s.Register(&countingSub{name: "x"}, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got=%v", err)
	}
	if len(s.Registrations()) != 0 {
		t.Fatalf("expected nothing registered")
	}
}
