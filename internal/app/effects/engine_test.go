package effects

import (
	"context"
	"errors"
	"testing"

	"survivalcore/internal/adapter/world/mock"
	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
)

func TestEngine_DropsConsequencesForMissingOrDeadAgents(t *testing.T) {
	w := mock.New()
	e := NewEngine(w, w)
	ctx := context.Background()

	if err := e.Damage(ctx, "ghost", 2, survival.CauseFreezing); err != nil {
		t.Fatalf("expected no-op for unknown agent, got=%v", err)
	}
	w.PutAgent(ports.Agent{ID: "dead", Dead: true})
	if err := e.Apply(ctx, "dead", survival.ThirstSlowness); err != nil {
		t.Fatalf("expected no-op for dead agent, got=%v", err)
	}
	if err := e.Message(ctx, "dead", "hello"); err != nil {
		t.Fatalf("expected no-op message, got=%v", err)
	}
	if len(w.Damages) != 0 || len(w.Effects) != 0 || len(w.Messages) != 0 {
		t.Fatalf("expected nothing applied, got damages=%v effects=%v messages=%v", w.Damages, w.Effects, w.Messages)
	}
}

func TestEngine_SurfacesHostFailure(t *testing.T) {
	w := mock.New()
	w.PutAgent(ports.Agent{ID: "a-1"})
	w.FailEffects = errors.New("host busy")
	e := NewEngine(w, w)
	if err := e.Damage(context.Background(), "a-1", 1, survival.CauseDehydration); err == nil {
		t.Fatalf("expected host failure to propagate")
	}
}

func TestEngine_TitleThrottle(t *testing.T) {
	w := mock.New()
	w.PutAgent(ports.Agent{ID: "a-1"})
	e := NewEngine(w, w)
	for tick := uint64(20); tick <= 400; tick += 20 {
		_ = e.Title(context.Background(), "a-1", ports.Title{Title: "Dehydrated"}, tick, 100)
	}
	if len(w.Titles) != 4 {
		t.Fatalf("title count mismatch: got=%d want=4", len(w.Titles))
	}
}

func TestEngine_OnEnterFiresOncePerTransition(t *testing.T) {
	w := mock.New()
	w.PutAgent(ports.Agent{ID: "a-1"})
	e := NewEngine(w, w)
	ctx := context.Background()
	seq := []bool{false, true, true, true, false, true, true}
	for _, cond := range seq {
		_ = e.OnEnter(ctx, "a-1", "exhausted", cond, "tired")
	}
	if len(w.Messages) != 2 {
		t.Fatalf("edge message count mismatch: got=%d want=2", len(w.Messages))
	}
	e.Forget("a-1")
	if !e.Enter("a-1", "exhausted", true) {
		t.Fatalf("expected forgotten latch to fire again")
	}
}
