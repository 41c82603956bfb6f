package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidSettings = errors.New("invalid engine settings")

// Cadences are subsystem periods in ticks.
type Cadences struct {
	Environment uint64 `yaml:"environment"`
	Thirst      uint64 `yaml:"thirst"`
	Temperature uint64 `yaml:"temperature"`
	Stamina     uint64 `yaml:"stamina"`
	Injury      uint64 `yaml:"injury"`
	Hazards     uint64 `yaml:"hazards"`
	Climate     uint64 `yaml:"climate"`
	Purifier    uint64 `yaml:"purifier"`
	Distiller   uint64 `yaml:"distiller"`
	Persist     uint64 `yaml:"persist"`
}

// Settings are the engine-level tunables next to survival.Tuning.
type Settings struct {
	Cadences     Cadences `yaml:"cadences"`
	SampleTTL    uint64   `yaml:"sample_ttl"`
	HeatRadius   int      `yaml:"heat_radius"`
	ColdRadius   int      `yaml:"cold_radius"`
	SeasonLength int      `yaml:"season_length"`
	ProcessTicks int      `yaml:"device_process_ticks"`
	FilterUses   int      `yaml:"filter_uses"`
}

func DefaultSettings() Settings {
	return Settings{
		Cadences: Cadences{
			Environment: 20,
			Thirst:      20,
			Temperature: 40,
			Stamina:     5,
			Injury:      20,
			Hazards:     100,
			Climate:     200,
			Purifier:    20,
			Distiller:   40,
			Persist:     1200,
		},
		SampleTTL:    60,
		HeatRadius:   4,
		ColdRadius:   4,
		SeasonLength: 14,
		ProcessTicks: 600,
		FilterUses:   8,
	}
}

func (s Settings) Validate() error {
	periods := map[string]uint64{
		"environment": s.Cadences.Environment,
		"thirst":      s.Cadences.Thirst,
		"temperature": s.Cadences.Temperature,
		"stamina":     s.Cadences.Stamina,
		"injury":      s.Cadences.Injury,
		"hazards":     s.Cadences.Hazards,
		"climate":     s.Cadences.Climate,
		"purifier":    s.Cadences.Purifier,
		"distiller":   s.Cadences.Distiller,
		"persist":     s.Cadences.Persist,
	}
	for name, p := range periods {
		if p == 0 {
			return fmt.Errorf("%w: %s period must be positive", ErrInvalidSettings, name)
		}
	}
	switch {
	case s.SampleTTL <= s.Cadences.Thirst || s.SampleTTL <= s.Cadences.Temperature:
		return fmt.Errorf("%w: sample_ttl must exceed the thirst and temperature periods", ErrInvalidSettings)
	case s.SeasonLength <= 0:
		return fmt.Errorf("%w: season_length must be positive", ErrInvalidSettings)
	case s.HeatRadius < 0 || s.ColdRadius < 0:
		return fmt.Errorf("%w: scan radii must not be negative", ErrInvalidSettings)
	case s.ProcessTicks <= 0:
		return fmt.Errorf("%w: device_process_ticks must be positive", ErrInvalidSettings)
	case s.FilterUses <= 0:
		return fmt.Errorf("%w: filter_uses must be positive", ErrInvalidSettings)
	}
	return nil
}
