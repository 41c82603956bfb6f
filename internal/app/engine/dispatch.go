package engine

import (
	"context"
	"errors"
	"fmt"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
)

var ErrUnknownEvent = errors.New("unknown event")

// Dispatch handles one host event synchronously. Events for agents the
// host no longer knows are dropped.
func (e *Engine) Dispatch(ctx context.Context, ev ports.Event) error {
	if ev == nil {
		return fmt.Errorf("%w: nil", ErrUnknownEvent)
	}
	if e.metrics != nil {
		e.metrics.RecordEvent(ev.Kind())
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev := ev.(type) {
	case ports.AgentSpawned:
		return e.onSpawn(ctx, ev.AgentID)
	case ports.AgentDamaged:
		return e.injury.OnDamaged(ctx, ev)
	case ports.AgentDied:
		e.Store.ResetThirst(ev.AgentID)
		e.saveThirst(ctx, ev.AgentID)
		return nil
	case ports.AgentRemoved:
		e.saveThirst(ctx, ev.AgentID)
		e.Store.Remove(ev.AgentID)
		e.Sampler.Forget(ev.AgentID)
		e.Effects.Forget(ev.AgentID)
		return nil
	case ports.ItemConsumed:
		return e.onConsumed(ctx, ev)
	case ports.ItemUsed:
		agent, err := e.host.Agent(ctx, ev.AgentID)
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		_, err = e.injury.Treat(ctx, agent, ev.Item)
		return err
	case ports.BlockPlaced:
		e.Devices.Place(ctx, ev.Dimension, ev.Pos, ev.Block.Type)
		return nil
	case ports.BlockBroken:
		if _, ok := e.Devices.KindForBlock(ev.Block.Type); ok {
			e.Devices.Break(ctx, ev.Dimension, ev.Pos)
		}
		return nil
	case ports.BlockInteracted:
		if _, ok := e.Devices.KindForBlock(ev.Block.Type); !ok {
			return nil
		}
		return e.Devices.Interact(ctx, ev)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Kind())
	}
}

func (e *Engine) onSpawn(ctx context.Context, agentID string) error {
	e.Store.Ensure(agentID)
	if e.persist == nil {
		return nil
	}
	v, ok, err := e.persist.GetScalar(ctx, agentID, ports.ScalarThirst)
	if err != nil {
		e.logger.Warn("load thirst failed", "agent", agentID, "err", err)
		return nil
	}
	if ok {
		e.Store.SetThirst(agentID, v)
	}
	return nil
}

func (e *Engine) onConsumed(ctx context.Context, ev ports.ItemConsumed) error {
	if survival.IsWater(ev.Item.Type) {
		_, err := e.thirst.ConsumeWater(ctx, ev.AgentID, ev.Item)
		return err
	}
	_, _, err := e.nutrition.Eat(ctx, ev.AgentID, ev.Item)
	return err
}
