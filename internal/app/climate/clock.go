package climate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"survivalcore/internal/app/ports"
	domain "survivalcore/internal/domain/climate"
	"survivalcore/internal/domain/world"
)

type SeasonChanged struct {
	From domain.Season `json:"from"`
	To   domain.Season `json:"to"`
	Day  int64         `json:"day"`
}

type Listener func(ctx context.Context, ev SeasonChanged)

type TimeSource interface {
	AbsoluteTime(ctx context.Context) (int64, error)
}

type Info struct {
	Day          int64         `json:"day"`
	Season       domain.Season `json:"season"`
	SeasonID     int           `json:"season_id"`
	DayInSeason  int           `json:"day_in_season"`
	SeasonLength int           `json:"season_length"`
	Modifier     float64       `json:"modifier"`
	Forecast     []string      `json:"forecast"`
}

// Clock owns the global day and season. Only Check, SetSeason and Load
// change them.
type Clock struct {
	time      TimeSource
	store     ports.ScalarStore
	length    int
	logger    *slog.Logger
	mu        sync.Mutex
	day       int64
	season    domain.Season
	listeners []Listener
}

func NewClock(time TimeSource, store ports.ScalarStore, seasonLength int, logger *slog.Logger) *Clock {
	if seasonLength <= 0 {
		seasonLength = domain.DefaultSeasonLength
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Clock{time: time, store: store, length: seasonLength, logger: logger}
}

func (c *Clock) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Load restores the persisted day. A missing value keeps day zero.
func (c *Clock) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	v, ok, err := c.store.GetScalar(ctx, ports.ScopeWorld, ports.ScalarCurrentDay)
	if err != nil {
		return fmt.Errorf("load current day: %w", err)
	}
	if !ok || v < 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = int64(v)
	c.season = domain.SeasonForDay(c.day, c.length)
	return nil
}

// Restore sets the day without notifying listeners.
func (c *Clock) Restore(day int64) {
	if day < 0 {
		day = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.day = day
	c.season = domain.SeasonForDay(day, c.length)
}

func (c *Clock) Name() string { return "climate" }

func (c *Clock) Run(ctx context.Context, _ uint64) error {
	_, err := c.Check(ctx)
	return err
}

// Check advances the day from world time. The day never moves backwards
// here; only SetSeason rewinds it.
func (c *Clock) Check(ctx context.Context) (bool, error) {
	abs, err := c.time.AbsoluteTime(ctx)
	if err != nil {
		return false, fmt.Errorf("read world time: %w", err)
	}
	derived := world.DayIndex(abs)

	c.mu.Lock()
	if derived <= c.day {
		c.mu.Unlock()
		return false, nil
	}
	prev := c.season
	c.day = derived
	c.season = domain.SeasonForDay(derived, c.length)
	next := c.season
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	c.persist(ctx, derived)
	if next == prev {
		return false, nil
	}
	c.emit(ctx, listeners, SeasonChanged{From: prev, To: next, Day: derived})
	return true, nil
}

// SetSeason jumps to the first day of season id and always notifies.
func (c *Clock) SetSeason(ctx context.Context, id int) (SeasonChanged, error) {
	day, err := domain.OverrideDay(id, c.length)
	if err != nil {
		return SeasonChanged{}, err
	}
	if setter, ok := c.time.(ports.TimeSetter); ok {
		if err := setter.SetAbsoluteTime(ctx, day*world.TicksPerDay); err != nil {
			c.logger.Warn("world time rewind failed", "day", day, "err", err)
		}
	}

	c.mu.Lock()
	prev := c.season
	c.day = day
	c.season = domain.SeasonForDay(day, c.length)
	ev := SeasonChanged{From: prev, To: c.season, Day: day}
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	c.persist(ctx, day)
	c.emit(ctx, listeners, ev)
	return ev, nil
}

func (c *Clock) Season() domain.Season {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.season
}

func (c *Clock) Day() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

func (c *Clock) Modifier() float64 {
	return c.Season().Modifier()
}

func (c *Clock) SeasonLength() int {
	return c.length
}

func (c *Clock) Info() Info {
	c.mu.Lock()
	day, season := c.day, c.season
	c.mu.Unlock()
	return Info{
		Day:          day,
		Season:       season,
		SeasonID:     int(season),
		DayInSeason:  domain.DayInSeason(day, c.length),
		SeasonLength: c.length,
		Modifier:     season.Modifier(),
		Forecast:     season.Forecast(),
	}
}

func (c *Clock) persist(ctx context.Context, day int64) {
	if c.store == nil {
		return
	}
	if err := c.store.SetScalar(ctx, ports.ScopeWorld, ports.ScalarCurrentDay, float64(day)); err != nil {
		c.logger.Warn("persist current day failed", "day", day, "err", err)
	}
}

func (c *Clock) emit(ctx context.Context, listeners []Listener, ev SeasonChanged) {
	c.logger.Info("season changed", "from", ev.From.String(), "to", ev.To.String(), "day", ev.Day)
	for _, l := range listeners {
		l(ctx, ev)
	}
}
