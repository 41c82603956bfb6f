package survival

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidTuning = errors.New("invalid survival tuning")

// Tuning holds every numeric knob of the meter rules, including the
// Bernoulli probabilities, so one file controls the whole balance.
type Tuning struct {
	ThirstBaseDecay      float64 `yaml:"thirst_base_decay"`
	ThirstSprintDecay    float64 `yaml:"thirst_sprint_decay"`
	ThirstHotBiomeDecay  float64 `yaml:"thirst_hot_biome_decay"`
	ThirstHealingDecay   float64 `yaml:"thirst_healing_decay"`
	DehydrationThreshold float64 `yaml:"dehydration_threshold"`
	ThirstImpairBelow    float64 `yaml:"thirst_impair_below"`
	DehydrationDamage    float64 `yaml:"dehydration_damage"`

	RegulationRate float64 `yaml:"regulation_rate"`

	StaminaSprintCost   float64 `yaml:"stamina_sprint_cost"`
	StaminaJumpCost     float64 `yaml:"stamina_jump_cost"`
	StaminaSwimCost     float64 `yaml:"stamina_swim_cost"`
	StaminaRestRegen    float64 `yaml:"stamina_rest_regen"`
	StaminaWalkRegen    float64 `yaml:"stamina_walk_regen"`
	ExhaustionThreshold float64 `yaml:"exhaustion_threshold"`
	StaminaDisplayBelow float64 `yaml:"stamina_display_below"`
	MovingSpeed         float64 `yaml:"moving_speed"`

	FractureMinDamage  float64 `yaml:"fracture_min_damage"`
	FractureChance     float64 `yaml:"fracture_chance"`
	BleedMinDamage     float64 `yaml:"bleed_min_damage"`
	BleedChance        float64 `yaml:"bleed_chance"`
	BleedTicksPerWound int     `yaml:"bleed_ticks_per_wound"`
	BleedDamage        float64 `yaml:"bleed_damage"`
	BleedDamageEvery   uint64  `yaml:"bleed_damage_every"`

	WildfireChance    float64 `yaml:"wildfire_chance"`
	ThinIceChance     float64 `yaml:"thin_ice_chance"`
	SneezeChance      float64 `yaml:"sneeze_chance"`
	RainCatchChance   float64 `yaml:"rain_catch_chance"`
	DirtyNauseaChance float64 `yaml:"dirty_nausea_chance"`
	DirtyPoisonChance float64 `yaml:"dirty_poison_chance"`

	TitleEvery      uint64 `yaml:"title_every"`
	ExhaustedEvery  uint64 `yaml:"exhausted_every"`
	StaminaHUDEvery uint64 `yaml:"stamina_hud_every"`
}

func DefaultTuning() Tuning {
	return Tuning{
		ThirstBaseDecay:      0.05,
		ThirstSprintDecay:    0.1,
		ThirstHotBiomeDecay:  0.05,
		ThirstHealingDecay:   0.05,
		DehydrationThreshold: 6,
		ThirstImpairBelow:    10,
		DehydrationDamage:    1,

		RegulationRate: 0.05,

		StaminaSprintCost:   2.5,
		StaminaJumpCost:     5,
		StaminaSwimCost:     1.5,
		StaminaRestRegen:    3,
		StaminaWalkRegen:    1,
		ExhaustionThreshold: 10,
		StaminaDisplayBelow: 40,
		MovingSpeed:         0.05,

		FractureMinDamage:  3,
		FractureChance:     0.4,
		BleedMinDamage:     2,
		BleedChance:        0.3,
		BleedTicksPerWound: 5,
		BleedDamage:        1,
		BleedDamageEvery:   40,

		WildfireChance:    0.001,
		ThinIceChance:     0.1,
		SneezeChance:      0.005,
		RainCatchChance:   0.1,
		DirtyNauseaChance: 0.8,
		DirtyPoisonChance: 0.5,

		TitleEvery:      100,
		ExhaustedEvery:  40,
		StaminaHUDEvery: 20,
	}
}

func (t Tuning) Validate() error {
	probs := map[string]float64{
		"fracture_chance":     t.FractureChance,
		"bleed_chance":        t.BleedChance,
		"wildfire_chance":     t.WildfireChance,
		"thin_ice_chance":     t.ThinIceChance,
		"sneeze_chance":       t.SneezeChance,
		"rain_catch_chance":   t.RainCatchChance,
		"dirty_nausea_chance": t.DirtyNauseaChance,
		"dirty_poison_chance": t.DirtyPoisonChance,
	}
	for name, p := range probs {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%w: %s=%v outside [0,1]", ErrInvalidTuning, name, p)
		}
	}
	rates := map[string]float64{
		"thirst_base_decay":      t.ThirstBaseDecay,
		"thirst_sprint_decay":    t.ThirstSprintDecay,
		"thirst_hot_biome_decay": t.ThirstHotBiomeDecay,
		"thirst_healing_decay":   t.ThirstHealingDecay,
		"dehydration_threshold":  t.DehydrationThreshold,
		"thirst_impair_below":    t.ThirstImpairBelow,
		"dehydration_damage":     t.DehydrationDamage,
		"stamina_sprint_cost":    t.StaminaSprintCost,
		"stamina_jump_cost":      t.StaminaJumpCost,
		"stamina_swim_cost":      t.StaminaSwimCost,
		"stamina_rest_regen":     t.StaminaRestRegen,
		"stamina_walk_regen":     t.StaminaWalkRegen,
		"exhaustion_threshold":   t.ExhaustionThreshold,
		"stamina_display_below":  t.StaminaDisplayBelow,
		"moving_speed":           t.MovingSpeed,
		"fracture_min_damage":    t.FractureMinDamage,
		"bleed_min_damage":       t.BleedMinDamage,
		"bleed_damage":           t.BleedDamage,
	}
	for name, v := range rates {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s=%v must be a finite non-negative number", ErrInvalidTuning, name, v)
		}
	}
	if t.BleedTicksPerWound < 0 {
		return fmt.Errorf("%w: bleed_ticks_per_wound=%d is negative", ErrInvalidTuning, t.BleedTicksPerWound)
	}
	if !(t.RegulationRate > 0 && t.RegulationRate < 1) {
		return fmt.Errorf("%w: regulation_rate=%v outside (0,1)", ErrInvalidTuning, t.RegulationRate)
	}
	if t.TitleEvery == 0 || t.ExhaustedEvery == 0 || t.StaminaHUDEvery == 0 || t.BleedDamageEvery == 0 {
		return fmt.Errorf("%w: feedback intervals must be positive", ErrInvalidTuning)
	}
	return nil
}
