package subsystems

import (
	"context"
	"testing"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

func TestInjury_FallFractureRoll(t *testing.T) {
	d, w := newDeps(0.39)
	w.PutAgent(standing("a-1"))
	i := Injury{d}
	if err := i.OnDamaged(context.Background(), ports.AgentDamaged{AgentID: "a-1", Amount: 3, Cause: survival.CauseFall}); err != nil {
		t.Fatalf("on damaged: %v", err)
	}
	if d.Store.BrokenLeg("a-1") {
		t.Fatalf("expected no fracture at damage threshold")
	}
	if err := i.OnDamaged(context.Background(), ports.AgentDamaged{AgentID: "a-1", Amount: 4, Cause: survival.CauseFall}); err != nil {
		t.Fatalf("on damaged: %v", err)
	}
	if !d.Store.BrokenLeg("a-1") || !w.HasMessage("a-1", survival.FractureMessage) {
		t.Fatalf("expected fracture")
	}
	if err := i.Run(context.Background(), 20); err != nil {
		t.Fatalf("run: %v", err)
	}
	if w.CountEffect("a-1", survival.EffectSlowness) != 1 {
		t.Fatalf("expected fracture slowness")
	}
}

func TestInjury_BleedingStacksCapsAndTicksDown(t *testing.T) {
	d, w := newDeps(0.1)
	w.PutAgent(standing("a-1"))
	i := Injury{d}
	for n := 0; n < 5; n++ {
		_ = i.OnDamaged(context.Background(), ports.AgentDamaged{AgentID: "a-1", Amount: 5, Cause: survival.CauseEntity})
	}
	if got := d.Store.BleedingTicks("a-1"); got != survival.MaxBleedingTicks {
		t.Fatalf("bleed cap mismatch: got=%d", got)
	}
	d.Store.Update("a-1", func(st *survival.State) { st.BleedingTicks = 3 })
	for tick := uint64(20); tick <= 120; tick += 20 {
		_ = i.Run(context.Background(), tick)
	}
	if got := d.Store.BleedingTicks("a-1"); got != 0 {
		t.Fatalf("bleeding not drained: got=%d", got)
	}
	if len(w.Damages) != 1 || w.Damages[0].Cause != survival.CauseBleeding {
		t.Fatalf("bleed damage mismatch: %+v", w.Damages)
	}
}

func TestInjury_TreatConsumesUnlessCreative(t *testing.T) {
	d, w := newDeps()
	a := standing("a-1")
	w.PutAgent(a)
	i := Injury{d}

	used, err := i.Treat(context.Background(), a, world.Item{Type: survival.Bandage, Amount: 1})
	if err != nil || used {
		t.Fatalf("expected bandage ignored without bleeding: used=%v err=%v", used, err)
	}
	d.Store.AddBleeding("a-1", 5)
	used, _ = i.Treat(context.Background(), a, world.Item{Type: survival.Bandage, Amount: 1})
	if !used || d.Store.BleedingTicks("a-1") != 0 || len(w.Consumed) != 1 {
		t.Fatalf("bandage mismatch: used=%v consumed=%v", used, w.Consumed)
	}

	a.Creative = true
	d.Store.SetBrokenLeg("a-1", true)
	used, _ = i.Treat(context.Background(), a, world.Item{Type: survival.Splint, Amount: 1})
	if !used || d.Store.BrokenLeg("a-1") || len(w.Consumed) != 1 {
		t.Fatalf("creative splint mismatch: used=%v consumed=%v", used, w.Consumed)
	}
}
