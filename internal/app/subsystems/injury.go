package subsystems

import (
	"context"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

const bleedCue = "minecraft:redstone_ore_dust_particle"

type Injury struct {
	Deps
}

func (Injury) Name() string { return "injury" }

func (i Injury) Run(ctx context.Context, tick uint64) error {
	agents, err := i.living(ctx)
	if err != nil {
		return err
	}
	for _, a := range agents {
		if i.Store.TickBleeding(a.ID) && tick%i.Tuning.BleedDamageEvery == 0 {
			if err := i.Effects.Damage(ctx, a.ID, i.Tuning.BleedDamage, survival.CauseBleeding); err != nil {
				return err
			}
			i.Host.Cue(ctx, a.Dimension, a.Position, bleedCue)
		}
		if i.Store.BrokenLeg(a.ID) {
			if err := i.Effects.Apply(ctx, a.ID, survival.FractureEffect); err != nil {
				return err
			}
		}
	}
	return nil
}

// OnDamaged rolls for a fracture or a bleeding wound after a hit.
func (i Injury) OnDamaged(ctx context.Context, ev ports.AgentDamaged) error {
	if survival.CanFracture(i.Tuning, ev.Cause, ev.Amount) && i.chance(i.Tuning.FractureChance) {
		i.Store.SetBrokenLeg(ev.AgentID, true)
		if err := i.Effects.Message(ctx, ev.AgentID, survival.FractureMessage); err != nil {
			return err
		}
	}
	if survival.CanBleed(i.Tuning, ev.Cause, ev.Amount) && i.chance(i.Tuning.BleedChance) {
		i.Store.AddBleeding(ev.AgentID, i.Tuning.BleedTicksPerWound)
		if err := i.Effects.Message(ctx, ev.AgentID, survival.BleedMessage); err != nil {
			return err
		}
	}
	return nil
}

// Treat applies a bandage or splint. Treating a condition the agent does
// not have leaves the item in hand.
func (i Injury) Treat(ctx context.Context, agent ports.Agent, item world.Item) (bool, error) {
	switch item.Type {
	case survival.Bandage:
		if !i.Store.StopBleeding(agent.ID) {
			return false, nil
		}
		if err := i.Effects.Message(ctx, agent.ID, survival.BandagedMessage); err != nil {
			return true, err
		}
	case survival.Splint:
		if !i.Store.SetBrokenLeg(agent.ID, false) {
			return false, nil
		}
		if err := i.Effects.Message(ctx, agent.ID, survival.SplintedMessage); err != nil {
			return true, err
		}
	default:
		return false, nil
	}
	return true, i.takeHeld(ctx, agent)
}
