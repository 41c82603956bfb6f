package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

type Damage struct {
	AgentID string
	Amount  float64
	Cause   survival.DamageCause
}

type AppliedEffect struct {
	AgentID string
	Spec    survival.EffectSpec
}

type Line struct {
	AgentID string
	Text    string
}

type ShownTitle struct {
	AgentID string
	Title   ports.Title
}

type SetBlock struct {
	Dimension world.Dimension
	Pos       world.BlockPos
	Block     world.Block
}

// World is an in-memory host for tests. Missing blocks read as air unless
// the position is listed in Unloaded.
type World struct {
	mu        sync.Mutex
	blocks    map[world.Dimension]map[world.BlockPos]world.Block
	Unloaded  map[world.BlockPos]bool
	weather   world.Weather
	absTime   int64
	agents    map[string]ports.Agent
	equipment map[string]map[world.Slot]world.Item
	active    map[string]map[survival.Effect]bool

	FailBlocks  error
	FailEffects error
	FailGive    error

	Damages      []Damage
	Effects      []AppliedEffect
	Messages     []Line
	ActionBars   []Line
	Titles       []ShownTitle
	Cues         []string
	BlockWrites  []SetBlock
	Consumed     []Line
	Replaced     []Line
	Given        []Line
	BlockQueries int
}

func New() *World {
	return &World{
		blocks:    map[world.Dimension]map[world.BlockPos]world.Block{},
		Unloaded:  map[world.BlockPos]bool{},
		weather:   world.WeatherClear,
		agents:    map[string]ports.Agent{},
		equipment: map[string]map[world.Slot]world.Item{},
		active:    map[string]map[survival.Effect]bool{},
	}
}

func (w *World) Put(dim world.Dimension, pos world.BlockPos, b world.Block) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.put(dim, pos, b)
}

func (w *World) put(dim world.Dimension, pos world.BlockPos, b world.Block) {
	if w.blocks[dim] == nil {
		w.blocks[dim] = map[world.BlockPos]world.Block{}
	}
	w.blocks[dim][pos] = b
}

func (w *World) PutAgent(a ports.Agent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a.Dimension == "" {
		a.Dimension = world.DimensionOverworld
	}
	w.agents[a.ID] = a
}

func (w *World) RemoveAgent(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.agents, id)
}

func (w *World) Equip(agentID string, slot world.Slot, item world.Item) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.equipment[agentID] == nil {
		w.equipment[agentID] = map[world.Slot]world.Item{}
	}
	w.equipment[agentID][slot] = item
}

func (w *World) SetWeather(weather world.Weather) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.weather = weather
}

func (w *World) SetTime(abs int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.absTime = abs
}

func (w *World) Activate(agentID string, effect survival.Effect) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active[agentID] == nil {
		w.active[agentID] = map[survival.Effect]bool{}
	}
	w.active[agentID][effect] = true
}

func (w *World) Block(_ context.Context, dim world.Dimension, pos world.BlockPos) (world.Block, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.BlockQueries++
	if w.FailBlocks != nil {
		return world.Block{}, w.FailBlocks
	}
	if w.Unloaded[pos] {
		return world.Block{}, ports.ErrRegionUnloaded
	}
	if b, ok := w.blocks[dim][pos]; ok {
		return b, nil
	}
	return world.Block{Type: world.BlockAir}, nil
}

func (w *World) Weather(context.Context) (world.Weather, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.weather, nil
}

func (w *World) AbsoluteTime(context.Context) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.absTime, nil
}

func (w *World) SetAbsoluteTime(_ context.Context, ticks int64) error {
	w.SetTime(ticks)
	return nil
}

func (w *World) Agents(context.Context) ([]ports.Agent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]ports.Agent, 0, len(w.agents))
	for _, a := range w.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (w *World) Agent(_ context.Context, id string) (ports.Agent, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.agents[id]
	if !ok {
		return ports.Agent{}, fmt.Errorf("agent %s: %w", id, ports.ErrNotFound)
	}
	return a, nil
}

func (w *World) Equipment(_ context.Context, id string) (map[world.Slot]world.Item, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := map[world.Slot]world.Item{}
	for k, v := range w.equipment[id] {
		out[k] = v
	}
	return out, nil
}

func (w *World) SetBlock(_ context.Context, dim world.Dimension, pos world.BlockPos, b world.Block) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.put(dim, pos, b)
	w.BlockWrites = append(w.BlockWrites, SetBlock{Dimension: dim, Pos: pos, Block: b})
	return nil
}

func (w *World) Cue(_ context.Context, _ world.Dimension, _ world.Vec3, cue string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Cues = append(w.Cues, cue)
}

func (w *World) ApplyDamage(_ context.Context, id string, amount float64, cause survival.DamageCause) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailEffects != nil {
		return w.FailEffects
	}
	w.Damages = append(w.Damages, Damage{AgentID: id, Amount: amount, Cause: cause})
	return nil
}

func (w *World) AddEffect(_ context.Context, id string, spec survival.EffectSpec) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailEffects != nil {
		return w.FailEffects
	}
	w.Effects = append(w.Effects, AppliedEffect{AgentID: id, Spec: spec})
	return nil
}

func (w *World) HasEffect(_ context.Context, id string, effect survival.Effect) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active[id][effect], nil
}

func (w *World) ShowTitle(_ context.Context, id string, title ports.Title) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Titles = append(w.Titles, ShownTitle{AgentID: id, Title: title})
	return nil
}

func (w *World) ShowActionBar(_ context.Context, id, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ActionBars = append(w.ActionBars, Line{AgentID: id, Text: text})
	return nil
}

func (w *World) SendMessage(_ context.Context, id, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Messages = append(w.Messages, Line{AgentID: id, Text: text})
	return nil
}

func (w *World) ConsumeHeld(_ context.Context, id string, count int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Consumed = append(w.Consumed, Line{AgentID: id, Text: fmt.Sprintf("%d", count)})
	return nil
}

func (w *World) ReplaceHeld(_ context.Context, id string, item world.Item) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Replaced = append(w.Replaced, Line{AgentID: id, Text: item.Type})
	return nil
}

func (w *World) Give(_ context.Context, id string, item world.Item) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailGive != nil {
		return w.FailGive
	}
	w.Given = append(w.Given, Line{AgentID: id, Text: item.Type})
	return nil
}

// HasMessage reports whether text was sent to agentID.
func (w *World) HasMessage(agentID, text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range w.Messages {
		if m.AgentID == agentID && m.Text == text {
			return true
		}
	}
	return false
}

func (w *World) CountEffect(agentID string, effect survival.Effect) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, e := range w.Effects {
		if e.AgentID == agentID && e.Spec.Effect == effect {
			n++
		}
	}
	return n
}

// Reset clears every journal but keeps world contents.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Damages, w.Effects, w.Messages, w.ActionBars, w.Titles = nil, nil, nil, nil, nil
	w.Cues, w.BlockWrites, w.Consumed, w.Replaced, w.Given = nil, nil, nil, nil, nil
	w.BlockQueries = 0
}

// Scripted returns the given values in order, then repeats the last one.
type Scripted struct {
	mu     sync.Mutex
	values []float64
	i      int
}

func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0.99
	}
	v := s.values[s.i]
	if s.i < len(s.values)-1 {
		s.i++
	}
	return v
}
