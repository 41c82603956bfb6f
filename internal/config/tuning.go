package config

import (
	"fmt"
	"os"

	"survivalcore/internal/app/engine"
	"survivalcore/internal/domain/survival"

	"gopkg.in/yaml.v3"
)

// Tuning is the optional YAML balance file. Keys left out keep their
// defaults.
type Tuning struct {
	Survival survival.Tuning `yaml:"survival"`
	Engine   engine.Settings `yaml:"engine"`
}

func DefaultTuning() Tuning {
	return Tuning{Survival: survival.DefaultTuning(), Engine: engine.DefaultSettings()}
}

// LoadTuning reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.Survival.Validate(); err != nil {
		return t, err
	}
	if err := t.Engine.Validate(); err != nil {
		return t, err
	}
	return t, nil
}
