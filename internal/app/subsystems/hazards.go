package subsystems

import (
	"context"
	"math"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/climate"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

const (
	iceBreakCue = "block.glass.break"
	sneezeCue   = "mob.villager.no"
)

// Hazards rolls the per-season events for every living agent.
type Hazards struct {
	Deps
}

func (Hazards) Name() string { return "seasonal_hazards" }

func (h Hazards) Run(ctx context.Context, _ uint64) error {
	agents, err := h.living(ctx)
	if err != nil {
		return err
	}
	var tod int64
	if abs, err := h.Host.AbsoluteTime(ctx); err == nil {
		tod = world.TimeOfDay(abs)
	}
	season := h.Climate.Season()
	for _, a := range agents {
		if a.Dimension != world.DimensionOverworld {
			continue
		}
		var err error
		switch season {
		case climate.Summer:
			err = h.summer(ctx, a, tod)
		case climate.Winter:
			err = h.winter(ctx, a)
		case climate.Spring:
			err = h.spring(ctx, a)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h Hazards) summer(ctx context.Context, a ports.Agent, tod int64) error {
	if !world.IsDaylight(tod) || !h.chance(h.Tuning.WildfireChance) {
		return nil
	}
	target := world.Vec3{
		X: a.Position.X + (h.Rand.Float64()*2*survival.WildfireSpread - survival.WildfireSpread),
		Y: a.Position.Y,
		Z: a.Position.Z + (h.Rand.Float64()*2*survival.WildfireSpread - survival.WildfireSpread),
	}.Block()
	for dy := survival.WildfireScan; dy >= -survival.WildfireScan; dy-- {
		pos := target.Offset(0, dy, 0)
		b, err := h.Host.Block(ctx, a.Dimension, pos)
		if err != nil {
			continue
		}
		if b.IsAir() {
			continue
		}
		if !flammableSurface(b) {
			return nil
		}
		above := pos.Above()
		if top, err := h.Host.Block(ctx, a.Dimension, above); err != nil || !top.IsAir() {
			return nil
		}
		h.logger().Debug("wildfire ignited", "agent", a.ID, "pos", above.Key())
		return h.Host.SetBlock(ctx, a.Dimension, above, world.Block{Type: world.BlockFire})
	}
	return nil
}

func flammableSurface(b world.Block) bool {
	return b.Type == world.BlockGrass || b.Type == world.BlockJungleLeaves
}

func (h Hazards) winter(ctx context.Context, a ports.Agent) error {
	below := world.Vec3{X: a.Position.X, Y: a.Position.Y - 0.1, Z: a.Position.Z}.Block()
	b, err := h.Host.Block(ctx, a.Dimension, below)
	if err != nil || b.Type != world.BlockIce {
		return nil
	}
	feet := h.equipment(ctx, a.ID)[world.SlotFeet]
	if feet.Is(survival.IceSkates) {
		return h.Effects.Apply(ctx, a.ID, survival.SkateSpeed)
	}
	if !h.chance(h.Tuning.ThinIceChance) {
		return nil
	}
	h.Host.Cue(ctx, a.Dimension, a.Position, iceBreakCue)
	if err := h.Host.SetBlock(ctx, a.Dimension, below, world.Block{Type: world.BlockWater}); err != nil {
		return err
	}
	return h.Effects.Message(ctx, a.ID, survival.ThinIceMessage)
}

func (h Hazards) spring(ctx context.Context, a ports.Agent) error {
	if !h.chance(h.Tuning.SneezeChance) {
		return nil
	}
	if err := h.Effects.Message(ctx, a.ID, survival.SneezeMessage); err != nil {
		return err
	}
	h.Host.Cue(ctx, a.Dimension, a.Position, sneezeCue)
	return h.Effects.Apply(ctx, a.ID, survival.SneezeSlowness)
}

// Environment keeps every agent's sample within its TTL and lets agents
// catch rain in a bottle.
type Environment struct {
	Deps
}

func (Environment) Name() string { return "environment" }

func (e Environment) Run(ctx context.Context, tick uint64) error {
	agents, err := e.living(ctx)
	if err != nil {
		return err
	}
	raining := e.weather(ctx).Precipitating()
	for _, a := range agents {
		sample := e.Env.Get(ctx, a, tick)
		if !raining || !sample.SkyExposed || a.Dimension != world.DimensionOverworld {
			continue
		}
		if err := e.catchRain(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (e Environment) catchRain(ctx context.Context, a ports.Agent) error {
	if a.ViewDir.Y <= survival.RainLookUpMinDir || math.IsNaN(a.ViewDir.Y) {
		return nil
	}
	held := e.equipment(ctx, a.ID)[world.SlotMainhand]
	if !held.Is(device.ItemGlassBottle) || !e.chance(e.Tuning.RainCatchChance) {
		return nil
	}
	if err := e.Effects.Message(ctx, a.ID, survival.RainCaughtMsg); err != nil {
		return err
	}
	if a.Creative {
		return nil
	}
	if err := e.Host.ConsumeHeld(ctx, a.ID, 1); err != nil {
		return err
	}
	return e.Host.Give(ctx, a.ID, world.Item{Type: device.ItemDirtyWaterBottle, Amount: 1})
}
