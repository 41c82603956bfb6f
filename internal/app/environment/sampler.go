package environment

import (
	"context"
	"errors"
	"math"
	"sync"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

const (
	DefaultTTL        = 60
	DefaultHeatRadius = 4
	DefaultColdRadius = 4
	SkyCeiling        = 320
	SkyProbeStep      = 5
	surfaceDepth      = 16
)

// Sample is the cached environment of one agent. EnvTemp excludes the
// season modifier.
type Sample struct {
	NearHeat   bool        `json:"near_heat"`
	NearCold   bool        `json:"near_cold"`
	SkyExposed bool        `json:"sky_exposed"`
	Biome      world.Biome `json:"biome"`
	EnvTemp    float64     `json:"env_temp"`
	TimeOfDay  int64       `json:"time_of_day"`
	SampledAt  uint64      `json:"sampled_at"`
}

type Config struct {
	TTL        uint64
	HeatRadius int
	ColdRadius int
}

type Sampler struct {
	world ports.WorldQuery
	cfg   Config

	mu    sync.Mutex
	cache map[string]Sample
}

func NewSampler(w ports.WorldQuery, cfg Config) *Sampler {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.HeatRadius <= 0 {
		cfg.HeatRadius = DefaultHeatRadius
	}
	if cfg.ColdRadius <= 0 {
		cfg.ColdRadius = DefaultColdRadius
	}
	return &Sampler{world: w, cfg: cfg, cache: map[string]Sample{}}
}

// Get returns the cached sample, refreshing it once it is older than TTL.
func (s *Sampler) Get(ctx context.Context, agent ports.Agent, tick uint64) Sample {
	s.mu.Lock()
	cached, ok := s.cache[agent.ID]
	s.mu.Unlock()
	if ok && tick >= cached.SampledAt && tick-cached.SampledAt < s.cfg.TTL {
		return cached
	}
	return s.Refresh(ctx, agent, tick)
}

// Peek returns the cached sample without touching the world.
func (s *Sampler) Peek(agentID string) (Sample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := s.cache[agentID]
	return out, ok
}

// Refresh recomputes every spatial fact for agent and stores the result.
func (s *Sampler) Refresh(ctx context.Context, agent ports.Agent, tick uint64) Sample {
	var tod int64
	if abs, err := s.world.AbsoluteTime(ctx); err == nil {
		tod = world.TimeOfDay(abs)
	}
	out := Sample{
		NearHeat:   s.SampleNearHeat(ctx, agent, s.cfg.HeatRadius),
		NearCold:   s.SampleNearCold(ctx, agent, s.cfg.ColdRadius),
		SkyExposed: s.SampleSkyExposure(ctx, agent),
		Biome:      s.SampleBiomeClass(ctx, agent),
		TimeOfDay:  tod,
		SampledAt:  tick,
	}
	out.EnvTemp = survival.EnvironmentTemp(survival.EnvTempInput{
		Dimension: agent.Dimension,
		Biome:     out.Biome,
		TimeOfDay: tod,
		Altitude:  agent.Position.Y,
		NearHeat:  out.NearHeat,
		NearCold:  out.NearCold,
	})
	s.mu.Lock()
	s.cache[agent.ID] = out
	s.mu.Unlock()
	return out
}

func (s *Sampler) Forget(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, agentID)
}

func (s *Sampler) SampleNearHeat(ctx context.Context, agent ports.Agent, radius int) bool {
	return s.scanCube(ctx, agent, radius, world.Block.IsHeatSource)
}

func (s *Sampler) SampleNearCold(ctx context.Context, agent ports.Agent, radius int) bool {
	return s.scanCube(ctx, agent, radius, world.Block.IsColdSource)
}

// SampleSkyExposure probes straight up from just above the agent. An
// unloaded region ends the probe and counts as open sky.
func (s *Sampler) SampleSkyExposure(ctx context.Context, agent ports.Agent) bool {
	p := agent.Position.Block()
	for y := int(math.Floor(agent.Position.Y + 2)); y <= SkyCeiling; y += SkyProbeStep {
		b, err := s.world.Block(ctx, agent.Dimension, world.BlockPos{X: p.X, Y: y, Z: p.Z})
		if err != nil {
			if errors.Is(err, ports.ErrRegionUnloaded) {
				break
			}
			continue
		}
		if b.Opaque() {
			return false
		}
	}
	return true
}

// SampleBiomeClass reads the surface under the agent. Unresolvable
// columns fall back to altitude alone.
func (s *Sampler) SampleBiomeClass(ctx context.Context, agent ports.Agent) world.Biome {
	feet := agent.Position.Block()
	if agent.InWater {
		return world.ClassifySurface(world.Block{Type: world.BlockWater}, feet.Y)
	}
	for dy := 0; dy <= surfaceDepth; dy++ {
		pos := feet.Offset(0, -dy, 0)
		b, err := s.world.Block(ctx, agent.Dimension, pos)
		if err != nil {
			if errors.Is(err, ports.ErrRegionUnloaded) {
				break
			}
			continue
		}
		if !b.IsAir() {
			return world.ClassifySurface(b, pos.Y)
		}
	}
	return world.ClassifySurface(world.Block{}, feet.Y)
}

func (s *Sampler) scanCube(ctx context.Context, agent ports.Agent, radius int, match func(world.Block) bool) bool {
	loc := agent.Position
	r := float64(radius)
	x0, x1 := int(math.Floor(loc.X-r)), int(math.Floor(loc.X+r))
	y0, y1 := int(math.Floor(loc.Y-r)), int(math.Floor(loc.Y+r))
	z0, z1 := int(math.Floor(loc.Z-r)), int(math.Floor(loc.Z+r))
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				if ctx.Err() != nil {
					return false
				}
				b, err := s.world.Block(ctx, agent.Dimension, world.BlockPos{X: x, Y: y, Z: z})
				if err != nil {
					continue
				}
				if match(b) {
					return true
				}
			}
		}
	}
	return false
}
