package ports

import (
	"context"

	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

// Event is one host notification. The engine handles them synchronously
// in arrival order.
type Event interface {
	Kind() string
}

// EventSource is a host that buffers its notifications. Advance moves
// the host forward one tick and drains the buffer.
type EventSource interface {
	Advance(ctx context.Context) []Event
}

type BlockPlaced struct {
	AgentID   string          `json:"agent_id"`
	Dimension world.Dimension `json:"dimension"`
	Pos       world.BlockPos  `json:"pos"`
	Block     world.Block     `json:"block"`
}

type BlockBroken struct {
	AgentID   string          `json:"agent_id"`
	Dimension world.Dimension `json:"dimension"`
	Pos       world.BlockPos  `json:"pos"`
	Block     world.Block     `json:"block"`
}

type BlockInteracted struct {
	AgentID   string          `json:"agent_id"`
	Dimension world.Dimension `json:"dimension"`
	Pos       world.BlockPos  `json:"pos"`
	Block     world.Block     `json:"block"`
	Held      world.Item      `json:"held"`
}

type AgentSpawned struct {
	AgentID string `json:"agent_id"`
}

type AgentDamaged struct {
	AgentID string               `json:"agent_id"`
	Amount  float64              `json:"amount"`
	Cause   survival.DamageCause `json:"cause"`
}

type AgentDied struct {
	AgentID string `json:"agent_id"`
}

// AgentRemoved means the agent left the world for good.
type AgentRemoved struct {
	AgentID string `json:"agent_id"`
}

type ItemConsumed struct {
	AgentID string     `json:"agent_id"`
	Item    world.Item `json:"item"`
}

// ItemUsed is a use that does not consume by itself, such as a bandage.
type ItemUsed struct {
	AgentID string     `json:"agent_id"`
	Item    world.Item `json:"item"`
}

func (BlockPlaced) Kind() string     { return "block_placed" }
func (BlockBroken) Kind() string     { return "block_broken" }
func (BlockInteracted) Kind() string { return "block_interacted" }
func (AgentSpawned) Kind() string    { return "agent_spawned" }
func (AgentDamaged) Kind() string    { return "agent_damaged" }
func (AgentDied) Kind() string       { return "agent_died" }
func (AgentRemoved) Kind() string    { return "agent_removed" }
func (ItemConsumed) Kind() string    { return "item_consumed" }
func (ItemUsed) Kind() string        { return "item_used" }
