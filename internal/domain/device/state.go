package device

import (
	"errors"
	"fmt"

	"survivalcore/internal/domain/world"
)

var (
	ErrNotReady          = errors.New("device not ready")
	ErrFull              = errors.New("device full")
	ErrEmpty             = errors.New("device empty")
	ErrInsufficientWater = errors.New("insufficient water")
	ErrFilterPresent     = errors.New("filter already installed")
	ErrFilterUnsupported = errors.New("device takes no filter")
	ErrUnknownDevice     = errors.New("unknown device")
)

type Phase string

const (
	PhaseEmpty         Phase = "empty"
	PhaseDirty         Phase = "dirty"
	PhaseProcessing    Phase = "processing"
	PhaseClean         Phase = "clean"
	PhasePartiallyFull Phase = "partially_full"
)

// State is one placed device. Only its own methods mutate it; every
// rejected operation leaves it untouched.
type State struct {
	Kind           Kind            `json:"kind"`
	Dimension      world.Dimension `json:"dimension"`
	Position       world.BlockPos  `json:"position"`
	WaterLevel     int             `json:"water_level"`
	IsDirty        bool            `json:"is_dirty"`
	HasFilter      bool            `json:"has_filter"`
	FilterUsesLeft int             `json:"filter_uses_left"`
	ProgressTicks  int             `json:"progress_ticks"`
}

func New(kind Kind, dim world.Dimension, pos world.BlockPos) State {
	return State{Kind: kind, Dimension: dim, Position: pos}
}

// Key identifies a device by position and dimension.
func Key(dim world.Dimension, pos world.BlockPos) string {
	return pos.Key() + "," + string(dim)
}

func (s State) Key() string {
	return Key(s.Dimension, s.Position)
}

func (s *State) InsertFilter(spec Spec) error {
	if !spec.RequiresFilter {
		return ErrFilterUnsupported
	}
	if s.HasFilter {
		return ErrFilterPresent
	}
	s.HasFilter = true
	s.FilterUsesLeft = spec.FilterDurability
	return nil
}

// AddWater pours dirty water in. Any pour restarts processing.
func (s *State) AddWater(spec Spec, units int) error {
	if units <= 0 {
		return fmt.Errorf("add water: non-positive units %d", units)
	}
	if s.WaterLevel+units > spec.Capacity {
		return fmt.Errorf("%w: level=%d add=%d capacity=%d", ErrFull, s.WaterLevel, units, spec.Capacity)
	}
	s.WaterLevel += units
	s.IsDirty = true
	s.ProgressTicks = 0
	return nil
}

// Working reports whether a device tick would make progress.
func (s State) Working(spec Spec, heatOK bool) bool {
	if s.WaterLevel <= 0 || !s.IsDirty || !heatOK {
		return false
	}
	return !spec.RequiresFilter || s.HasFilter
}

// Advance adds elapsed ticks of progress and reports whether the batch
// finished on this call.
func (s *State) Advance(spec Spec, elapsed int, heatOK bool) bool {
	if elapsed <= 0 || !s.Working(spec, heatOK) {
		return false
	}
	s.ProgressTicks += elapsed
	if s.ProgressTicks < spec.ProcessTicks {
		return false
	}
	s.IsDirty = false
	s.ProgressTicks = 0
	if spec.RequiresFilter {
		s.FilterUsesLeft--
		if s.FilterUsesLeft <= 0 {
			s.FilterUsesLeft = 0
			s.HasFilter = false
		}
	}
	return true
}

// Collect draws need units of clean water.
func (s *State) Collect(need int) error {
	switch {
	case s.WaterLevel <= 0:
		return ErrEmpty
	case s.IsDirty:
		return ErrNotReady
	case s.WaterLevel < need:
		return fmt.Errorf("%w: level=%d need=%d", ErrInsufficientWater, s.WaterLevel, need)
	}
	s.WaterLevel -= need
	return nil
}

func (s State) Phase(spec Spec) Phase {
	switch {
	case s.WaterLevel <= 0:
		return PhaseEmpty
	case s.IsDirty && spec.RequiresFilter && !s.HasFilter:
		return PhaseDirty
	case s.IsDirty:
		return PhaseProcessing
	case s.WaterLevel < spec.Capacity:
		return PhasePartiallyFull
	default:
		return PhaseClean
	}
}

// StatusLines is the readout shown on an empty-hand interaction.
func (s State) StatusLines(spec Spec) []string {
	status := "Clean"
	switch {
	case s.WaterLevel == 0:
		status = "Empty"
	case s.IsDirty:
		status = spec.WorkingLabel
	}
	lines := []string{
		spec.Name + " Status:",
		fmt.Sprintf("Water Level: %d/%d", s.WaterLevel, spec.Capacity),
		"Status: " + status,
	}
	if spec.RequiresFilter {
		if s.HasFilter {
			lines = append(lines, fmt.Sprintf("Filter: %d uses left", s.FilterUsesLeft))
		} else {
			lines = append(lines, "Filter: None installed")
		}
	}
	return lines
}

// Message is the agent-facing text for a rejected operation.
func Message(spec Spec, err error) string {
	switch {
	case errors.Is(err, ErrFull):
		return spec.Name + " is full."
	case errors.Is(err, ErrFilterPresent):
		return spec.Name + " already has a filter."
	case errors.Is(err, ErrFilterUnsupported):
		return spec.Name + " does not use a filter."
	case errors.Is(err, ErrNotReady):
		if spec.RequiresFilter {
			return "Water is still purifying..."
		}
		return "Water is still distilling..."
	case errors.Is(err, ErrInsufficientWater):
		if spec.RequiresFilter {
			return "Not enough purified water."
		}
		return "Not enough distilled water."
	case errors.Is(err, ErrEmpty):
		return spec.Name + " is empty."
	default:
		return ""
	}
}

const FilterInstalledMessage = "Charcoal filter installed."
