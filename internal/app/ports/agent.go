package ports

import (
	"context"

	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

type Title struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Color    string `json:"color,omitempty"`
}

type AgentEffects interface {
	ApplyDamage(ctx context.Context, agentID string, amount float64, cause survival.DamageCause) error
	AddEffect(ctx context.Context, agentID string, effect survival.EffectSpec) error
	HasEffect(ctx context.Context, agentID string, effect survival.Effect) (bool, error)
	ShowTitle(ctx context.Context, agentID string, title Title) error
	ShowActionBar(ctx context.Context, agentID, text string) error
	SendMessage(ctx context.Context, agentID, text string) error
}

// Inventory mutates the agent's held stack. Creative agents are exempt;
// callers check Agent.Creative before calling.
type Inventory interface {
	ConsumeHeld(ctx context.Context, agentID string, count int) error
	ReplaceHeld(ctx context.Context, agentID string, item world.Item) error
	Give(ctx context.Context, agentID string, item world.Item) error
}

// Host bundles every capability the engine needs from its host.
type Host interface {
	WorldQuery
	WorldWriter
	AgentEffects
	Inventory
}
