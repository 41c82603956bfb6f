package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"survivalcore/internal/app/climate"
	"survivalcore/internal/app/devices"
	"survivalcore/internal/app/effects"
	"survivalcore/internal/app/environment"
	"survivalcore/internal/app/ports"
	"survivalcore/internal/app/scheduler"
	"survivalcore/internal/app/subsystems"
	"survivalcore/internal/domain/device"
	"survivalcore/internal/domain/survival"
)

type Metrics interface {
	ports.SchedulerMetrics
	ports.EventMetrics
}

type Options struct {
	Host        ports.Host
	Events      ports.EventSource
	Persistence ports.Persistence
	Metrics     Metrics
	Tuning      survival.Tuning
	Settings    Settings
	Rand        ports.Random
	Logger      *slog.Logger
	Interval    time.Duration
}

// Engine owns every survival component and drives them from one tick
// counter. Ticks and host events are serialized under one lock.
type Engine struct {
	Store     *survival.Store
	Sampler   *environment.Sampler
	Climate   *climate.Clock
	Effects   *effects.Engine
	Devices   *devices.Registry
	Scheduler *scheduler.Scheduler

	host     ports.Host
	events   ports.EventSource
	persist  ports.Persistence
	metrics  Metrics
	logger   *slog.Logger
	interval time.Duration

	thirst    subsystems.Thirst
	injury    subsystems.Injury
	nutrition subsystems.Nutrition

	mu   sync.Mutex
	tick uint64
}

func New(opts Options) (*Engine, error) {
	if opts.Host == nil {
		return nil, errors.New("engine: host is required")
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}

	var scalars ports.ScalarStore
	var deviceRepo ports.DeviceRepository
	if opts.Persistence != nil {
		scalars, deviceRepo = opts.Persistence, opts.Persistence
	}
	var schedMetrics ports.SchedulerMetrics
	if opts.Metrics != nil {
		schedMetrics = opts.Metrics
	}

	st := opts.Settings
	e := &Engine{
		Store:     survival.NewStore(),
		Sampler:   environment.NewSampler(opts.Host, environment.Config{TTL: st.SampleTTL, HeatRadius: st.HeatRadius, ColdRadius: st.ColdRadius}),
		Climate:   climate.NewClock(opts.Host, scalars, st.SeasonLength, opts.Logger),
		Effects:   effects.NewEngine(opts.Host, opts.Host),
		Scheduler: scheduler.New(schedMetrics, opts.Logger),
		host:      opts.Host,
		events:    opts.Events,
		persist:   opts.Persistence,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		interval:  opts.Interval,
	}
	e.Devices = devices.NewRegistry(opts.Host, e.Effects, deviceRepo, opts.Logger, deviceSpecs(st)...)

	deps := subsystems.Deps{
		Store:   e.Store,
		Env:     e.Sampler,
		Climate: e.Climate,
		Effects: e.Effects,
		Host:    opts.Host,
		Tuning:  opts.Tuning,
		Rand:    opts.Rand,
		Logger:  opts.Logger,
	}
	e.thirst = subsystems.Thirst{Deps: deps}
	e.injury = subsystems.Injury{Deps: deps}
	e.nutrition = subsystems.Nutrition{Deps: deps}

	c := st.Cadences
	regs := []struct {
		sub    scheduler.Subsystem
		period uint64
	}{
		{subsystems.Environment{Deps: deps}, c.Environment},
		{e.thirst, c.Thirst},
		{subsystems.Temperature{Deps: deps}, c.Temperature},
		{subsystems.Stamina{Deps: deps}, c.Stamina},
		{e.injury, c.Injury},
		{subsystems.Hazards{Deps: deps}, c.Hazards},
		{e.Climate, c.Climate},
		{devices.Ticker{Registry: e.Devices, Kind: device.KindPurifier}, c.Purifier},
		{devices.Ticker{Registry: e.Devices, Kind: device.KindDistiller}, c.Distiller},
		{scheduler.Func{Label: "persist", Fn: func(ctx context.Context, _ uint64) error { return e.Persist(ctx) }}, c.Persist},
	}
	for _, r := range regs {
		if err := e.Scheduler.Register(r.sub, r.period); err != nil {
			return nil, fmt.Errorf("register %s: %w", r.sub.Name(), err)
		}
	}

	e.Climate.Subscribe(e.announce)
	return e, nil
}

func deviceSpecs(st Settings) []device.Spec {
	purifier, distiller := device.PurifierSpec(), device.DistillerSpec()
	purifier.ProcessTicks, distiller.ProcessTicks = st.ProcessTicks, st.ProcessTicks
	purifier.FilterDurability = st.FilterUses
	purifier.Period, distiller.Period = st.Cadences.Purifier, st.Cadences.Distiller
	return []device.Spec{purifier, distiller}
}

// Load restores the persisted day and device table.
func (e *Engine) Load(ctx context.Context) error {
	if err := e.Climate.Load(ctx); err != nil {
		return err
	}
	return e.Devices.Load(ctx)
}

func (e *Engine) Tick() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tick
}

// Step advances one tick and returns how many subsystems ran.
func (e *Engine) Step(ctx context.Context) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tick++
	return e.Scheduler.Advance(ctx, e.tick)
}

// StepTo jumps straight to tick, running only the subsystems due on it.
func (e *Engine) StepTo(ctx context.Context, tick uint64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tick <= e.tick {
		return 0
	}
	e.tick = tick
	return e.Scheduler.Advance(ctx, tick)
}

// Run ticks at the configured interval until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	t := time.NewTicker(e.interval)
	defer t.Stop()
	e.logger.Info("survival engine started", "tick", e.Tick(), "interval", e.interval)
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("survival engine stopped", "tick", e.Tick())
			return nil
		case <-t.C:
			e.Pump(ctx)
			e.Step(ctx)
		}
	}
}

// Pump dispatches whatever the event source raised since the last call.
// Dispatch failures are logged and do not stop the remaining events.
func (e *Engine) Pump(ctx context.Context) int {
	if e.events == nil {
		return 0
	}
	evs := e.events.Advance(ctx)
	for _, ev := range evs {
		if err := e.Dispatch(ctx, ev); err != nil {
			e.logger.Warn("event dispatch failed", "event", ev.Kind(), "err", err)
		}
	}
	return len(evs)
}

// SetSeason is the manual override, serialized with ticks.
func (e *Engine) SetSeason(ctx context.Context, id int) (climate.SeasonChanged, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Climate.SetSeason(ctx, id)
}

func (e *Engine) announce(ctx context.Context, ev climate.SeasonChanged) {
	agents, err := e.host.Agents(ctx)
	if err != nil {
		e.logger.Warn("season announcement skipped", "err", err)
		return
	}
	a := ev.To.Announcement()
	title := ports.Title{Title: a.Title, Subtitle: a.Subtitle, Color: a.Color}
	for _, agent := range agents {
		if err := e.Effects.Title(ctx, agent.ID, title, 0, 0); err != nil {
			e.logger.Warn("season announcement failed", "agent", agent.ID, "err", err)
		}
	}
}

// Persist writes agent thirst, the current day and every device in one
// transaction.
func (e *Engine) Persist(ctx context.Context) error {
	if e.persist == nil {
		return nil
	}
	return e.persist.RunInTx(ctx, func(ctx context.Context) error {
		for _, id := range e.Store.IDs() {
			if err := e.persist.SetScalar(ctx, id, ports.ScalarThirst, e.Store.Thirst(id)); err != nil {
				return fmt.Errorf("persist thirst %s: %w", id, err)
			}
		}
		if err := e.persist.SetScalar(ctx, ports.ScopeWorld, ports.ScalarCurrentDay, float64(e.Climate.Day())); err != nil {
			return fmt.Errorf("persist current day: %w", err)
		}
		return e.Devices.Persist(ctx)
	})
}

func (e *Engine) saveThirst(ctx context.Context, agentID string) {
	if e.persist == nil {
		return
	}
	if err := e.persist.SetScalar(ctx, agentID, ports.ScalarThirst, e.Store.Thirst(agentID)); err != nil {
		e.logger.Warn("persist thirst failed", "agent", agentID, "err", err)
	}
}
