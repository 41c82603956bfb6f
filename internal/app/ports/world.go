package ports

import (
	"context"

	"survivalcore/internal/domain/world"
)

// Agent is the host's view of one living entity at query time.
type Agent struct {
	ID        string          `json:"id"`
	Dimension world.Dimension `json:"dimension"`
	Position  world.Vec3      `json:"position"`
	Velocity  world.Vec3      `json:"velocity"`
	ViewDir   world.Vec3      `json:"view_dir"`
	OnGround  bool            `json:"on_ground"`
	Sprinting bool            `json:"sprinting"`
	InWater   bool            `json:"in_water"`
	Creative  bool            `json:"creative"`
	Dead      bool            `json:"dead"`
}

// WorldQuery reads host state. Block returns ErrRegionUnloaded for
// positions the host cannot resolve; Agent returns ErrNotFound for ids
// that are no longer in the world.
type WorldQuery interface {
	Block(ctx context.Context, dim world.Dimension, pos world.BlockPos) (world.Block, error)
	Weather(ctx context.Context) (world.Weather, error)
	AbsoluteTime(ctx context.Context) (int64, error)
	Agents(ctx context.Context) ([]Agent, error)
	Agent(ctx context.Context, agentID string) (Agent, error)
	Equipment(ctx context.Context, agentID string) (map[world.Slot]world.Item, error)
}

type WorldWriter interface {
	SetBlock(ctx context.Context, dim world.Dimension, pos world.BlockPos, block world.Block) error
	// Cue triggers a particle or sound. Hosts may drop cues freely.
	Cue(ctx context.Context, dim world.Dimension, at world.Vec3, cue string)
}

// TimeSetter is implemented by hosts that allow rewinding world time.
type TimeSetter interface {
	SetAbsoluteTime(ctx context.Context, ticks int64) error
}
