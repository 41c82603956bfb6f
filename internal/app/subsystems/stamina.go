package subsystems

import (
	"context"
	"fmt"
	"math"

	"survivalcore/internal/domain/survival"
)

type Stamina struct {
	Deps
}

func (Stamina) Name() string { return "stamina" }

func (s Stamina) Run(ctx context.Context, tick uint64) error {
	agents, err := s.living(ctx)
	if err != nil {
		return err
	}
	for _, a := range agents {
		m := survival.Movement{
			Sprinting: a.Sprinting,
			Swimming:  a.InWater,
			OnGround:  a.OnGround,
			Velocity:  a.Velocity,
		}
		stamina := s.Store.AddStamina(a.ID, survival.StaminaDelta(s.Tuning, m))
		if survival.Exhausted(s.Tuning, stamina) {
			if err := s.Effects.Apply(ctx, a.ID, survival.ExhaustionEffects...); err != nil {
				return err
			}
			if stamina == 0 && tick%s.Tuning.ExhaustedEvery == 0 {
				if err := s.Effects.Message(ctx, a.ID, survival.ExhaustedMessage); err != nil {
					return err
				}
			}
		}
		if stamina < survival.MaxStamina && stamina <= s.Tuning.StaminaDisplayBelow {
			text := fmt.Sprintf("Stamina: %d%%", int(math.Floor(stamina)))
			if err := s.Effects.ActionBar(ctx, a.ID, text, tick, s.Tuning.StaminaHUDEvery); err != nil {
				return err
			}
		}
	}
	return nil
}
