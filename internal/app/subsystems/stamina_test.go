package subsystems

import (
	"context"
	"testing"

	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

func TestStamina_SprintDrainsToZeroAndWarns(t *testing.T) {
	d, w := newDeps()
	a := standing("a-1")
	a.Sprinting = true
	a.Velocity = world.Vec3{X: 0.3}
	w.PutAgent(a)
	d.Store.SetStamina("a-1", 5)

	for tick := uint64(5); tick <= 40; tick += 5 {
		if err := (Stamina{d}).Run(context.Background(), tick); err != nil {
			t.Fatalf("run: %v", err)
		}
	}
	if got := d.Store.Stamina("a-1"); got != 0 {
		t.Fatalf("stamina mismatch: got=%v want=0", got)
	}
	if !w.HasMessage("a-1", survival.ExhaustedMessage) {
		t.Fatalf("expected exhausted message at tick 40")
	}
	if w.CountEffect("a-1", survival.EffectWeakness) != 8 {
		t.Fatalf("expected exhaustion effects every run, got=%d", w.CountEffect("a-1", survival.EffectWeakness))
	}
	if len(w.ActionBars) != 2 || w.ActionBars[0].Text != "Stamina: 0%" {
		t.Fatalf("hud mismatch: %+v", w.ActionBars)
	}
}

func TestStamina_RestRegenerates(t *testing.T) {
	d, w := newDeps()
	w.PutAgent(standing("a-1"))
	d.Store.SetStamina("a-1", 50)
	_ = (Stamina{d}).Run(context.Background(), 5)
	if got := d.Store.Stamina("a-1"); got != 53 {
		t.Fatalf("rest regen mismatch: got=%v want=53", got)
	}
	if len(w.Effects) != 0 || len(w.ActionBars) != 0 {
		t.Fatalf("unexpected feedback above thresholds")
	}
}
