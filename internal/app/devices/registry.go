package devices

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/world"
)

const (
	filterCue = "insert.filter"
	pourCue   = "bucket.empty_water"
	fillCue   = "bottle.fill"
)

type Messenger interface {
	Message(ctx context.Context, agentID, text string) error
	Messages(ctx context.Context, agentID string, lines []string) error
}

// Registry owns every placed device, keyed by position. Interaction
// rejections are reported to the agent and returned to the caller with
// the device left as it was.
type Registry struct {
	host     ports.Host
	messages Messenger
	repo     ports.DeviceRepository
	logger   *slog.Logger
	specs    map[device.Kind]device.Spec
	byBlock  map[string]device.Kind

	mu      sync.Mutex
	devices map[string]device.State
}

func NewRegistry(host ports.Host, messages Messenger, repo ports.DeviceRepository, logger *slog.Logger, specs ...device.Spec) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if len(specs) == 0 {
		specs = []device.Spec{device.PurifierSpec(), device.DistillerSpec()}
	}
	r := &Registry{
		host:     host,
		messages: messages,
		repo:     repo,
		logger:   logger,
		specs:    map[device.Kind]device.Spec{},
		byBlock:  map[string]device.Kind{},
		devices:  map[string]device.State{},
	}
	for _, s := range specs {
		r.specs[s.Kind] = s
		r.byBlock[s.Block] = s.Kind
	}
	return r
}

func (r *Registry) Specs() []device.Spec {
	out := make([]device.Spec, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

func (r *Registry) Spec(kind device.Kind) (device.Spec, bool) {
	s, ok := r.specs[kind]
	return s, ok
}

func (r *Registry) KindForBlock(blockType string) (device.Kind, bool) {
	k, ok := r.byBlock[blockType]
	return k, ok
}

// Load replaces the table with what the repository holds.
func (r *Registry) Load(ctx context.Context) error {
	if r.repo == nil {
		return nil
	}
	states, err := r.repo.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("load devices: %w", err)
	}
	r.Restore(states)
	return nil
}

func (r *Registry) Restore(states []device.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = make(map[string]device.State, len(states))
	for _, s := range states {
		if _, ok := r.specs[s.Kind]; !ok {
			continue
		}
		r.devices[s.Key()] = s
	}
}

func (r *Registry) Get(key string) (device.State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.devices[key]
	return s, ok
}

func (r *Registry) List() []device.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]device.State, 0, len(r.devices))
	for _, s := range r.devices {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Place registers a fresh device when blockType is a device block.
func (r *Registry) Place(ctx context.Context, dim world.Dimension, pos world.BlockPos, blockType string) (device.State, bool) {
	kind, ok := r.byBlock[blockType]
	if !ok {
		return device.State{}, false
	}
	s := device.New(kind, dim, pos)
	r.mu.Lock()
	r.devices[s.Key()] = s
	r.mu.Unlock()
	r.save(ctx, s)
	return s, true
}

// Break drops the device at pos in dim.
func (r *Registry) Break(ctx context.Context, dim world.Dimension, pos world.BlockPos) bool {
	key := device.Key(dim, pos)
	r.mu.Lock()
	_, ok := r.devices[key]
	delete(r.devices, key)
	r.mu.Unlock()
	if ok && r.repo != nil {
		if err := r.repo.DeleteDevice(ctx, key); err != nil {
			r.logger.Warn("delete device failed", "key", key, "err", err)
		}
	}
	return ok
}

func (r *Registry) Interact(ctx context.Context, ev ports.BlockInteracted) error {
	kind, ok := r.byBlock[ev.Block.Type]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrUnknownDevice, ev.Block.Type)
	}
	spec := r.specs[kind]
	key := device.Key(ev.Dimension, ev.Pos)

	r.mu.Lock()
	s, ok := r.devices[key]
	if !ok || s.Kind != kind {
		s = device.New(kind, ev.Dimension, ev.Pos)
	}
	r.mu.Unlock()

	agent, err := r.host.Agent(ctx, ev.AgentID)
	if err != nil {
		return err
	}

	next := s
	changed, err := r.apply(ctx, spec, &next, agent, ev)
	if err != nil {
		if msg := device.Message(spec, err); msg != "" {
			if merr := r.messages.Message(ctx, agent.ID, msg); merr != nil {
				r.logger.Warn("device message failed", "agent", agent.ID, "err", merr)
			}
		}
		return err
	}
	if changed || !ok {
		r.mu.Lock()
		r.devices[key] = next
		r.mu.Unlock()
		r.save(ctx, next)
	}
	return nil
}

func (r *Registry) apply(ctx context.Context, spec device.Spec, s *device.State, agent ports.Agent, ev ports.BlockInteracted) (bool, error) {
	held := ev.Held
	at := world.Vec3{X: float64(ev.Pos.X) + 0.5, Y: float64(ev.Pos.Y) + 0.5, Z: float64(ev.Pos.Z) + 0.5}

	if held.Is(device.ItemCharcoalFilter) {
		if err := s.InsertFilter(spec); err != nil {
			return false, err
		}
		if !agent.Creative {
			if err := r.host.ConsumeHeld(ctx, agent.ID, 1); err != nil {
				return false, err
			}
		}
		r.host.Cue(ctx, ev.Dimension, at, filterCue)
		if err := r.messages.Message(ctx, agent.ID, device.FilterInstalledMessage); err != nil {
			r.logger.Warn("device message failed", "agent", agent.ID, "err", err)
		}
		return true, nil
	}

	if in, ok := device.WaterInput(held.Type); ok {
		if err := s.AddWater(spec, in.Units); err != nil {
			return false, err
		}
		if !agent.Creative {
			if err := r.host.ReplaceHeld(ctx, agent.ID, world.Item{Type: in.Returned, Amount: 1}); err != nil {
				return false, err
			}
		}
		r.host.Cue(ctx, ev.Dimension, at, pourCue)
		return true, nil
	}

	if need, ok := device.ContainerNeed(held.Type); ok {
		if err := s.Collect(need); err != nil {
			return false, err
		}
		if !agent.Creative {
			filled := world.Item{Type: spec.Output(held.Type), Amount: 1}
			if err := r.handOver(ctx, agent.ID, held, filled); err != nil {
				return false, err
			}
		}
		r.host.Cue(ctx, ev.Dimension, at, fillCue)
		return true, nil
	}

	if held.Type == "" || held.Type == world.BlockAir {
		return false, r.messages.Messages(ctx, agent.ID, s.StatusLines(spec))
	}
	return false, nil
}

func (r *Registry) handOver(ctx context.Context, agentID string, held, filled world.Item) error {
	if held.Amount <= 1 {
		return r.host.ReplaceHeld(ctx, agentID, filled)
	}
	if err := r.host.ConsumeHeld(ctx, agentID, 1); err != nil {
		return err
	}
	if err := r.host.Give(ctx, agentID, filled); err != nil {
		if rerr := r.host.ReplaceHeld(ctx, agentID, held); rerr != nil {
			r.logger.Warn("container restore failed", "agent", agentID, "item", held.Type, "err", rerr)
		}
		return err
	}
	return nil
}

// Tick advances every device of kind by one device period.
func (r *Registry) Tick(ctx context.Context, kind device.Kind) error {
	spec, ok := r.specs[kind]
	if !ok {
		return fmt.Errorf("%w: %s", device.ErrUnknownDevice, kind)
	}
	r.mu.Lock()
	keys := make([]string, 0, len(r.devices))
	for k, s := range r.devices {
		if s.Kind == kind {
			keys = append(keys, k)
		}
	}
	r.mu.Unlock()
	sort.Strings(keys)

	for _, key := range keys {
		r.mu.Lock()
		s, ok := r.devices[key]
		r.mu.Unlock()
		if !ok {
			continue
		}
		heat := spec.HeatSatisfied(r.blockBelow(ctx, s))
		if !s.Working(spec, heat) {
			continue
		}
		r.host.Cue(ctx, s.Dimension, cueAt(s, spec), spec.Cue)
		done := s.Advance(spec, int(spec.Period), heat)

		r.mu.Lock()
		if _, still := r.devices[key]; still {
			r.devices[key] = s
		}
		r.mu.Unlock()
		if done {
			r.logger.Debug("device batch complete", "kind", kind, "key", key, "filter_uses_left", s.FilterUsesLeft)
			r.save(ctx, s)
		}
	}
	return nil
}

func (r *Registry) blockBelow(ctx context.Context, s device.State) world.Block {
	b, err := r.host.Block(ctx, s.Dimension, s.Position.Below())
	if err != nil {
		return world.Block{}
	}
	return b
}

func cueAt(s device.State, spec device.Spec) world.Vec3 {
	y := float64(s.Position.Y) + 0.1
	if spec.HeatBelow {
		y = float64(s.Position.Y) + 1.2
	}
	return world.Vec3{X: float64(s.Position.X) + 0.5, Y: y, Z: float64(s.Position.Z) + 0.5}
}

// Persist writes every device through the repository.
func (r *Registry) Persist(ctx context.Context) error {
	if r.repo == nil {
		return nil
	}
	for _, s := range r.List() {
		if err := r.repo.SaveDevice(ctx, s); err != nil {
			return fmt.Errorf("save device %s: %w", s.Key(), err)
		}
	}
	return nil
}

func (r *Registry) save(ctx context.Context, s device.State) {
	if r.repo == nil {
		return
	}
	if err := r.repo.SaveDevice(ctx, s); err != nil {
		r.logger.Warn("save device failed", "key", s.Key(), "err", err)
	}
}

// Ticker exposes one device kind as a scheduler subsystem.
type Ticker struct {
	Registry *Registry
	Kind     device.Kind
}

func (t Ticker) Name() string { return "device:" + string(t.Kind) }

func (t Ticker) Run(ctx context.Context, _ uint64) error {
	return t.Registry.Tick(ctx, t.Kind)
}
