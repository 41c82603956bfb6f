package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"sync"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

const (
	maxHealth     = 20.0
	walkEvery     = 20
	weatherEvery  = 1200
	defaultRadius = 512
)

type Config struct {
	Seed        int64
	Agents      int
	Radius      int
	JournalSize int
	Rand        *rand.Rand
	Logger      *slog.Logger
}

type agentState struct {
	ports.Agent
	health    float64
	equipment map[world.Slot]world.Item
	bag       []world.Item
	effects   map[survival.Effect]int64
	respawn   bool
}

// Host is a self-contained world the engine can run against when no real
// game server is attached. It implements ports.Host, ports.TimeSetter and
// feeds lifecycle events back through Advance.
type Host struct {
	mu      sync.Mutex
	terrain *Terrain
	radius  int
	edits   map[world.Dimension]map[world.BlockPos]world.Block
	weather world.Weather
	absTime int64
	agents  map[string]*agentState
	pending []ports.Event
	journal *Journal
	rnd     *rand.Rand
	logger  *slog.Logger
}

func NewHost(cfg Config) *Host {
	if cfg.Radius <= 0 {
		cfg.Radius = defaultRadius
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(cfg.Seed))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	h := &Host{
		terrain: NewTerrain(cfg.Seed),
		radius:  cfg.Radius,
		edits:   map[world.Dimension]map[world.BlockPos]world.Block{},
		weather: world.WeatherClear,
		agents:  map[string]*agentState{},
		journal: NewJournal(cfg.JournalSize),
		rnd:     cfg.Rand,
		logger:  cfg.Logger,
	}
	for i := 1; i <= cfg.Agents; i++ {
		h.Join(fmt.Sprintf("agent-%d", i), world.DimensionOverworld, i*8, i*-5)
	}
	return h
}

// Join places a new agent on the surface at x/z and queues its spawn event.
func (h *Host) Join(id string, dim world.Dimension, x, z int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	y := h.terrain.SurfaceY(dim, x, z)
	h.agents[id] = &agentState{
		Agent: ports.Agent{
			ID:        id,
			Dimension: dim,
			Position:  world.Vec3{X: float64(x) + 0.5, Y: float64(y), Z: float64(z) + 0.5},
			ViewDir:   world.Vec3{X: 1},
			OnGround:  true,
		},
		health:    maxHealth,
		equipment: map[world.Slot]world.Item{world.SlotMainhand: {Type: world.BlockAir}},
		effects:   map[survival.Effect]int64{},
	}
	h.pending = append(h.pending, ports.AgentSpawned{AgentID: id})
}

// Leave removes an agent for good.
func (h *Host) Leave(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.agents[id]; !ok {
		return
	}
	delete(h.agents, id)
	h.pending = append(h.pending, ports.AgentRemoved{AgentID: id})
}

// Hold puts an item in the agent's main hand.
func (h *Host) Hold(id string, item world.Item) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	a.equipment[world.SlotMainhand] = item
	return nil
}

func (h *Host) Wear(id string, slot world.Slot, item world.Item) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	a.equipment[slot] = item
	return nil
}

// Bag lists items handed to the agent beside the main hand.
func (h *Host) Bag(id string) []world.Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return nil
	}
	return append([]world.Item(nil), a.bag...)
}

func (h *Host) Journal() *Journal {
	return h.journal
}

// Advance moves the world forward one tick and returns the events raised
// since the previous call.
func (h *Host) Advance(context.Context) []ports.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.absTime++

	if h.absTime%weatherEvery == 0 {
		h.rollWeather()
	}
	ids := make([]string, 0, len(h.agents))
	for id := range h.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		a := h.agents[id]
		for e, until := range a.effects {
			if until <= h.absTime {
				delete(a.effects, e)
			}
		}
		if a.Dead {
			if a.respawn {
				h.revive(a)
			}
			continue
		}
		if h.absTime%walkEvery == 0 {
			h.wander(a)
		}
	}

	out := h.pending
	h.pending = nil
	return out
}

func (h *Host) rollWeather() {
	prev := h.weather
	switch h.weather {
	case world.WeatherClear:
		if h.rnd.Float64() < 0.2 {
			h.weather = world.WeatherRain
		}
	case world.WeatherRain:
		switch r := h.rnd.Float64(); {
		case r < 0.1:
			h.weather = world.WeatherThunder
		case r < 0.4:
			h.weather = world.WeatherClear
		}
	default:
		if h.rnd.Float64() < 0.5 {
			h.weather = world.WeatherRain
		}
	}
	if prev != h.weather {
		h.logger.Debug("weather changed", "from", prev, "to", h.weather, "time", h.absTime)
	}
}

func (h *Host) wander(a *agentState) {
	angle := h.rnd.Float64() * 2 * math.Pi
	a.Sprinting = h.rnd.Float64() < 0.3
	speed := 0.1
	if a.Sprinting {
		speed = 0.28
	}
	a.Velocity = world.Vec3{X: math.Cos(angle) * speed, Z: math.Sin(angle) * speed}
	a.ViewDir = world.Vec3{X: math.Cos(angle), Z: math.Sin(angle)}
	if h.rnd.Float64() < 0.1 {
		a.ViewDir = world.Vec3{Y: 1}
	}

	x := a.Position.X + a.Velocity.X*walkEvery
	z := a.Position.Z + a.Velocity.Z*walkEvery
	r := float64(h.radius - 1)
	x = math.Max(-r, math.Min(r, x))
	z = math.Max(-r, math.Min(r, z))
	bx, bz := int(math.Floor(x)), int(math.Floor(z))
	y := h.terrain.SurfaceY(a.Dimension, bx, bz)
	fall := int(a.Position.Y) - y

	a.Position = world.Vec3{X: x, Y: float64(y), Z: z}
	a.OnGround = true
	a.InWater = h.blockLocked(a.Dimension, world.BlockPos{X: bx, Y: y - 1, Z: bz}).Type == world.BlockWater
	if fall > 3 {
		h.pending = append(h.pending, ports.AgentDamaged{
			AgentID: a.ID,
			Amount:  float64(fall - 3),
			Cause:   survival.CauseFall,
		})
	}
}

func (h *Host) revive(a *agentState) {
	x, z := clampInt(int(a.Position.X), -h.radius, h.radius), clampInt(int(a.Position.Z), -h.radius, h.radius)
	a.Dead = false
	a.respawn = false
	a.health = maxHealth
	a.effects = map[survival.Effect]int64{}
	a.Position = world.Vec3{X: float64(x) + 0.5, Y: float64(h.terrain.SurfaceY(a.Dimension, x, z)), Z: float64(z) + 0.5}
	h.pending = append(h.pending, ports.AgentSpawned{AgentID: a.ID})
}

func (h *Host) loaded(pos world.BlockPos) bool {
	return pos.X >= -h.radius && pos.X <= h.radius && pos.Z >= -h.radius && pos.Z <= h.radius
}

func (h *Host) blockLocked(dim world.Dimension, pos world.BlockPos) world.Block {
	if b, ok := h.edits[dim][pos]; ok {
		return b
	}
	return h.terrain.Block(dim, pos)
}

func (h *Host) Block(_ context.Context, dim world.Dimension, pos world.BlockPos) (world.Block, error) {
	if !h.loaded(pos) {
		return world.Block{}, ports.ErrRegionUnloaded
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.blockLocked(dim, pos), nil
}

func (h *Host) Weather(context.Context) (world.Weather, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.weather, nil
}

func (h *Host) SetWeather(weather world.Weather) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.weather = weather
}

func (h *Host) AbsoluteTime(context.Context) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.absTime, nil
}

func (h *Host) SetAbsoluteTime(_ context.Context, ticks int64) error {
	if ticks < 0 {
		return fmt.Errorf("set time %d: negative", ticks)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.absTime = ticks
	return nil
}

func (h *Host) Agents(context.Context) ([]ports.Agent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ports.Agent, 0, len(h.agents))
	for _, a := range h.agents {
		out = append(out, a.Agent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (h *Host) Agent(_ context.Context, id string) (ports.Agent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return ports.Agent{}, fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	return a.Agent, nil
}

func (h *Host) Equipment(_ context.Context, id string) (map[world.Slot]world.Item, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return nil, fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	out := make(map[world.Slot]world.Item, len(a.equipment))
	for k, v := range a.equipment {
		out[k] = v
	}
	return out, nil
}

func (h *Host) SetBlock(_ context.Context, dim world.Dimension, pos world.BlockPos, b world.Block) error {
	if !h.loaded(pos) {
		return fmt.Errorf("set block %s: %w", pos.Key(), ports.ErrRegionUnloaded)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.edits[dim] == nil {
		h.edits[dim] = map[world.BlockPos]world.Block{}
	}
	h.edits[dim][pos] = b
	return nil
}

func (h *Host) Cue(_ context.Context, dim world.Dimension, at world.Vec3, cue string) {
	h.journal.Add(h.now(), EntryCue, "", fmt.Sprintf("%s %s %.1f,%.1f,%.1f", cue, dim, at.X, at.Y, at.Z))
}

func (h *Host) ApplyDamage(_ context.Context, id string, amount float64, cause survival.DamageCause) error {
	h.mu.Lock()
	a, ok := h.agents[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	if a.Dead {
		h.mu.Unlock()
		return nil
	}
	a.health -= amount
	died := a.health <= 0
	if died {
		a.health = 0
		a.Dead = true
		a.respawn = true
		h.pending = append(h.pending, ports.AgentDied{AgentID: id})
	}
	now := h.absTime
	h.mu.Unlock()

	h.journal.Add(now, EntryDamage, id, fmt.Sprintf("%.1f %s", amount, cause))
	if died {
		h.logger.Info("agent died", "agent", id, "cause", cause, "time", now)
	}
	return nil
}

func (h *Host) AddEffect(_ context.Context, id string, spec survival.EffectSpec) error {
	h.mu.Lock()
	a, ok := h.agents[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	until := h.absTime + int64(spec.DurationTicks)
	if until > a.effects[spec.Effect] {
		a.effects[spec.Effect] = until
	}
	now := h.absTime
	h.mu.Unlock()

	h.journal.Add(now, EntryEffect, id, fmt.Sprintf("%s %d %d", spec.Effect, spec.DurationTicks, spec.Amplifier))
	return nil
}

func (h *Host) HasEffect(_ context.Context, id string, effect survival.Effect) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return false, fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	return a.effects[effect] > h.absTime, nil
}

func (h *Host) ShowTitle(_ context.Context, id string, title ports.Title) error {
	text := title.Title
	if title.Subtitle != "" {
		text += " / " + title.Subtitle
	}
	h.journal.Add(h.now(), EntryTitle, id, text)
	return nil
}

func (h *Host) ShowActionBar(_ context.Context, id, text string) error {
	h.journal.Add(h.now(), EntryActionBar, id, text)
	return nil
}

func (h *Host) SendMessage(_ context.Context, id, text string) error {
	h.journal.Add(h.now(), EntryMessage, id, text)
	return nil
}

func (h *Host) ConsumeHeld(_ context.Context, id string, count int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	held := a.equipment[world.SlotMainhand]
	held.Amount -= count
	if held.Amount <= 0 {
		held = world.Item{Type: world.BlockAir}
	}
	a.equipment[world.SlotMainhand] = held
	return nil
}

func (h *Host) ReplaceHeld(_ context.Context, id string, item world.Item) error {
	return h.Hold(id, item)
}

func (h *Host) Give(_ context.Context, id string, item world.Item) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.agents[id]
	if !ok {
		return fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	a.bag = append(a.bag, item)
	return nil
}

func (h *Host) now() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.absTime
}
