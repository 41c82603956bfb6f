package subsystems

import (
	"context"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

const dehydratedMessage = "You are severely dehydrated!"

type Thirst struct {
	Deps
}

func (Thirst) Name() string { return "thirst" }

func (t Thirst) Run(ctx context.Context, tick uint64) error {
	agents, err := t.living(ctx)
	if err != nil {
		return err
	}
	for _, a := range agents {
		sample := t.Env.Get(ctx, a, tick)
		healing, err := t.Effects.Has(ctx, a.ID, survival.EffectRegeneration)
		if err != nil {
			return err
		}
		decay := survival.ThirstDecay(t.Tuning, survival.ThirstInput{
			Sprinting: a.Sprinting,
			HotBiome:  a.Dimension == world.DimensionOverworld && sample.Biome.Hot(),
			Healing:   healing,
		})
		thirst := t.Store.AddThirst(a.ID, -decay)
		if err := t.consequences(ctx, a.ID, thirst, tick); err != nil {
			return err
		}
	}
	return nil
}

func (t Thirst) consequences(ctx context.Context, agentID string, thirst float64, tick uint64) error {
	dehydrated := survival.Dehydrated(t.Tuning, thirst)
	if dehydrated {
		if err := t.Effects.Damage(ctx, agentID, t.Tuning.DehydrationDamage, survival.CauseDehydration); err != nil {
			return err
		}
		title := ports.Title{Title: survival.DehydrationTitle, Subtitle: survival.DehydrationSubtitle, Color: "red"}
		if err := t.Effects.Title(ctx, agentID, title, tick, t.Tuning.TitleEvery); err != nil {
			return err
		}
	}
	if err := t.Effects.OnEnter(ctx, agentID, "dehydrated", dehydrated, dehydratedMessage); err != nil {
		return err
	}
	if survival.ThirstImpaired(t.Tuning, thirst) {
		return t.Effects.Apply(ctx, agentID, survival.ThirstSlowness)
	}
	return nil
}

// ConsumeWater restores thirst by the drink's quality and rolls the
// contamination effects of dirty water.
func (t Thirst) ConsumeWater(ctx context.Context, agentID string, item world.Item) (survival.WaterQuality, error) {
	q := survival.ClassifyWater(item.Type)
	switch q {
	case survival.WaterDirty:
		if t.chance(t.Tuning.DirtyNauseaChance) {
			if err := t.Effects.Apply(ctx, agentID, survival.DirtyNausea); err != nil {
				return q, err
			}
		}
		if t.chance(t.Tuning.DirtyPoisonChance) {
			if err := t.Effects.Apply(ctx, agentID, survival.DirtyPoison); err != nil {
				return q, err
			}
			if err := t.Effects.Message(ctx, agentID, survival.ContaminatedMessage); err != nil {
				return q, err
			}
		}
	case survival.WaterPurified:
		if err := t.Effects.Message(ctx, agentID, survival.PurifiedMessage); err != nil {
			return q, err
		}
	case survival.WaterBoiled:
		if err := t.Effects.Message(ctx, agentID, survival.BoiledMessage); err != nil {
			return q, err
		}
		if err := t.Effects.Apply(ctx, agentID, survival.BoiledRegen); err != nil {
			return q, err
		}
	case survival.WaterDistilled:
		if err := t.Effects.Message(ctx, agentID, survival.DistilledMessage); err != nil {
			return q, err
		}
	}
	t.Store.AddThirst(agentID, q.Restores())
	return q, nil
}
