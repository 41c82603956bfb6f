package effects

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
)

type AgentLookup interface {
	Agent(ctx context.Context, agentID string) (ports.Agent, error)
}

// Engine is the only path from survival state to visible consequences.
// Consequences aimed at agents that are gone or dead are dropped.
type Engine struct {
	host   ports.AgentEffects
	agents AgentLookup

	mu      sync.Mutex
	latches map[string]map[string]bool
}

func NewEngine(host ports.AgentEffects, agents AgentLookup) *Engine {
	return &Engine{host: host, agents: agents, latches: map[string]map[string]bool{}}
}

func (e *Engine) alive(ctx context.Context, agentID string) (bool, error) {
	a, err := e.agents.Agent(ctx, agentID)
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !a.Dead, nil
}

func (e *Engine) Damage(ctx context.Context, agentID string, amount float64, cause survival.DamageCause) error {
	if amount <= 0 {
		return nil
	}
	ok, err := e.alive(ctx, agentID)
	if err != nil || !ok {
		return err
	}
	if err := e.host.ApplyDamage(ctx, agentID, amount, cause); err != nil {
		return fmt.Errorf("apply damage %s: %w", cause, err)
	}
	return nil
}

func (e *Engine) Apply(ctx context.Context, agentID string, specs ...survival.EffectSpec) error {
	if len(specs) == 0 {
		return nil
	}
	ok, err := e.alive(ctx, agentID)
	if err != nil || !ok {
		return err
	}
	for _, spec := range specs {
		if err := e.host.AddEffect(ctx, agentID, spec); err != nil {
			return fmt.Errorf("add effect %s: %w", spec.Effect, err)
		}
	}
	return nil
}

func (e *Engine) Has(ctx context.Context, agentID string, effect survival.Effect) (bool, error) {
	return e.host.HasEffect(ctx, agentID, effect)
}

func (e *Engine) Message(ctx context.Context, agentID, text string) error {
	if text == "" {
		return nil
	}
	ok, err := e.alive(ctx, agentID)
	if err != nil || !ok {
		return err
	}
	return e.host.SendMessage(ctx, agentID, text)
}

func (e *Engine) Messages(ctx context.Context, agentID string, lines []string) error {
	for _, line := range lines {
		if err := e.Message(ctx, agentID, line); err != nil {
			return err
		}
	}
	return nil
}

// Title shows t when tick lands on every; damage paths never go through
// here, so throttling only affects what the agent reads.
func (e *Engine) Title(ctx context.Context, agentID string, t ports.Title, tick, every uint64) error {
	if every > 1 && tick%every != 0 {
		return nil
	}
	ok, err := e.alive(ctx, agentID)
	if err != nil || !ok {
		return err
	}
	return e.host.ShowTitle(ctx, agentID, t)
}

func (e *Engine) ActionBar(ctx context.Context, agentID, text string, tick, every uint64) error {
	if every > 1 && tick%every != 0 {
		return nil
	}
	ok, err := e.alive(ctx, agentID)
	if err != nil || !ok {
		return err
	}
	return e.host.ShowActionBar(ctx, agentID, text)
}

// Enter records whether condition holds for agentID under key and reports
// true only on the false to true edge.
func (e *Engine) Enter(agentID, key string, condition bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.latches[agentID]
	if m == nil {
		m = map[string]bool{}
		e.latches[agentID] = m
	}
	was := m[key]
	m[key] = condition
	return condition && !was
}

// OnEnter sends text once each time condition becomes true.
func (e *Engine) OnEnter(ctx context.Context, agentID, key string, condition bool, text string) error {
	if !e.Enter(agentID, key, condition) {
		return nil
	}
	return e.Message(ctx, agentID, text)
}

func (e *Engine) Forget(agentID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.latches, agentID)
}
