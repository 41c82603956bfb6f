package subsystems

import (
	"context"
	"fmt"
	"log/slog"

	"survivalcore/internal/app/climate"
	"survivalcore/internal/app/effects"
	"survivalcore/internal/app/environment"
	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

// Deps is what every agent subsystem borrows. None of them keeps survival
// state of its own.
type Deps struct {
	Store   *survival.Store
	Env     *environment.Sampler
	Climate *climate.Clock
	Effects *effects.Engine
	Host    ports.Host
	Tuning  survival.Tuning
	Rand    ports.Random
	Logger  *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d Deps) living(ctx context.Context) ([]ports.Agent, error) {
	agents, err := d.Host.Agents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	out := agents[:0:0]
	for _, a := range agents {
		if !a.Dead {
			out = append(out, a)
		}
	}
	return out, nil
}

// equipment reads worn items; an unreadable loadout counts as bare.
func (d Deps) equipment(ctx context.Context, agentID string) map[world.Slot]world.Item {
	eq, err := d.Host.Equipment(ctx, agentID)
	if err != nil {
		return map[world.Slot]world.Item{}
	}
	return eq
}

func (d Deps) weather(ctx context.Context) world.Weather {
	w, err := d.Host.Weather(ctx)
	if err != nil {
		return world.WeatherClear
	}
	return w
}

func (d Deps) chance(p float64) bool {
	return ports.Chance(d.Rand, p)
}

// takeHeld consumes one held item unless the agent is exempt.
func (d Deps) takeHeld(ctx context.Context, agent ports.Agent) error {
	if agent.Creative {
		return nil
	}
	return d.Host.ConsumeHeld(ctx, agent.ID, 1)
}
