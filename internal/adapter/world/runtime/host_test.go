package runtime

import (
	"context"
	"errors"
	"testing"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

var (
	_ ports.Host        = (*Host)(nil)
	_ ports.TimeSetter  = (*Host)(nil)
	_ ports.EventSource = (*Host)(nil)
)

func kinds(evs []ports.Event) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Kind())
	}
	return out
}

func TestHost_SpawnEventsOnFirstAdvance(t *testing.T) {
	h := NewHost(Config{Seed: 3, Agents: 2})
	ctx := context.Background()

	evs := h.Advance(ctx)
	if got := kinds(evs); len(got) != 2 || got[0] != "agent_spawned" || got[1] != "agent_spawned" {
		t.Fatalf("first advance got=%v", got)
	}
	if evs := h.Advance(ctx); len(evs) != 0 {
		t.Fatalf("second advance got=%v want none", kinds(evs))
	}
	agents, _ := h.Agents(ctx)
	if len(agents) != 2 || agents[0].ID != "agent-1" || agents[1].ID != "agent-2" {
		t.Fatalf("agents got=%+v", agents)
	}
	if abs, _ := h.AbsoluteTime(ctx); abs != 2 {
		t.Fatalf("time got=%d want=2", abs)
	}
}

func TestHost_LethalDamageDiesThenRespawns(t *testing.T) {
	h := NewHost(Config{Seed: 3, Agents: 1})
	ctx := context.Background()
	h.Advance(ctx)

	if err := h.ApplyDamage(ctx, "agent-1", 25, survival.CauseFreezing); err != nil {
		t.Fatalf("damage: %v", err)
	}
	a, _ := h.Agent(ctx, "agent-1")
	if !a.Dead {
		t.Fatalf("expected dead agent")
	}
	if got := kinds(h.Advance(ctx)); len(got) != 2 || got[0] != "agent_died" || got[1] != "agent_spawned" {
		t.Fatalf("events got=%v want=[agent_died agent_spawned]", got)
	}
	if a, _ := h.Agent(ctx, "agent-1"); a.Dead {
		t.Fatalf("expected respawned agent")
	}
	if got := len(h.Journal().Filter(EntryDamage, "agent-1")); got != 1 {
		t.Fatalf("damage journal got=%d want=1", got)
	}
}

func TestHost_EffectsExpire(t *testing.T) {
	h := NewHost(Config{Seed: 3, Agents: 1})
	ctx := context.Background()
	if err := h.AddEffect(ctx, "agent-1", survival.EffectSpec{Effect: survival.EffectSlowness, DurationTicks: 5}); err != nil {
		t.Fatalf("effect: %v", err)
	}
	if ok, _ := h.HasEffect(ctx, "agent-1", survival.EffectSlowness); !ok {
		t.Fatalf("expected active effect")
	}
	for i := 0; i < 5; i++ {
		h.Advance(ctx)
	}
	if ok, _ := h.HasEffect(ctx, "agent-1", survival.EffectSlowness); ok {
		t.Fatalf("expected expired effect")
	}
	if _, err := h.HasEffect(ctx, "ghost", survival.EffectSlowness); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("unknown agent got=%v want=%v", err, ports.ErrNotFound)
	}
}

func TestHost_BlocksOutsideRadiusAreUnloaded(t *testing.T) {
	h := NewHost(Config{Seed: 3, Radius: 16})
	ctx := context.Background()
	if _, err := h.Block(ctx, world.DimensionOverworld, world.BlockPos{X: 17, Y: 64}); !errors.Is(err, ports.ErrRegionUnloaded) {
		t.Fatalf("got=%v want=%v", err, ports.ErrRegionUnloaded)
	}
	pos := world.BlockPos{X: 2, Y: 200, Z: 2}
	if err := h.SetBlock(ctx, world.DimensionOverworld, pos, world.Block{Type: world.BlockCampfire}); err != nil {
		t.Fatalf("set block: %v", err)
	}
	b, err := h.Block(ctx, world.DimensionOverworld, pos)
	if err != nil || b.Type != world.BlockCampfire {
		t.Fatalf("edited block got=(%+v,%v)", b, err)
	}
	if b, _ := h.Block(ctx, world.DimensionNether, pos); b.Type == world.BlockCampfire {
		t.Fatalf("edit leaked into another dimension")
	}
}

func TestHost_Inventory(t *testing.T) {
	h := NewHost(Config{Seed: 3, Agents: 1})
	ctx := context.Background()
	_ = h.Hold("agent-1", world.Item{Type: world.BlockIce, Amount: 2})

	if err := h.ConsumeHeld(ctx, "agent-1", 1); err != nil {
		t.Fatalf("consume: %v", err)
	}
	eq, _ := h.Equipment(ctx, "agent-1")
	if got := eq[world.SlotMainhand]; got.Amount != 1 {
		t.Fatalf("held got=%+v want amount 1", got)
	}
	_ = h.ConsumeHeld(ctx, "agent-1", 1)
	eq, _ = h.Equipment(ctx, "agent-1")
	if got := eq[world.SlotMainhand]; got.Type != world.BlockAir {
		t.Fatalf("held got=%+v want empty hand", got)
	}
	_ = h.Give(ctx, "agent-1", world.Item{Type: "openrealism:purified_water_bottle", Amount: 1})
	if bag := h.Bag("agent-1"); len(bag) != 1 {
		t.Fatalf("bag got=%+v", bag)
	}
}

func TestHost_SetAbsoluteTime(t *testing.T) {
	h := NewHost(Config{Seed: 3})
	ctx := context.Background()
	if err := h.SetAbsoluteTime(ctx, 24000*14); err != nil {
		t.Fatalf("set time: %v", err)
	}
	if abs, _ := h.AbsoluteTime(ctx); abs != 24000*14 {
		t.Fatalf("time got=%d", abs)
	}
	if err := h.SetAbsoluteTime(ctx, -1); err == nil {
		t.Fatalf("expected negative time rejected")
	}
}

func TestHost_LeaveQueuesRemoval(t *testing.T) {
	h := NewHost(Config{Seed: 3, Agents: 1})
	ctx := context.Background()
	h.Advance(ctx)
	h.Leave("agent-1")
	h.Leave("agent-1")
	if got := kinds(h.Advance(ctx)); len(got) != 1 || got[0] != "agent_removed" {
		t.Fatalf("events got=%v want=[agent_removed]", got)
	}
	if _, err := h.Agent(ctx, "agent-1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("got=%v want=%v", err, ports.ErrNotFound)
	}
}

func TestJournal_KeepsNewest(t *testing.T) {
	j := NewJournal(2)
	first := j.Add(1, EntryMessage, "a", "one")
	j.Add(2, EntryMessage, "a", "two")
	j.Add(3, EntryTitle, "b", "three")

	got := j.Entries()
	if len(got) != 2 || got[0].Text != "two" || got[1].Text != "three" {
		t.Fatalf("entries got=%+v", got)
	}
	if first.ID == "" || first.ID == got[0].ID {
		t.Fatalf("expected unique ids, got=%q and %q", first.ID, got[0].ID)
	}
	if msgs := j.Filter(EntryMessage, "a"); len(msgs) != 1 {
		t.Fatalf("filter got=%+v", msgs)
	}
}
