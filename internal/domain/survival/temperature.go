package survival

import (
	"math"
	"strings"

	"survivalcore/internal/domain/world"
)

const (
	TempFreezing     = 30.0
	TempHypothermia  = 34.0
	TempCold         = 35.5
	TempNormalLow    = 36.5
	TempNormalHigh   = 37.5
	TempHot          = 38.0
	TempHyperthermia = 39.5
	TempHeatstroke   = 41.0
)

type TempBand int

const (
	BandFreezing TempBand = iota
	BandHypothermia
	BandCold
	BandMild
	BandNormal
	BandHot
	BandHyperthermia
	BandHeatstroke
)

// BandFor classifies a body temperature. The narrow gaps between the
// comfortable range and the first warning bands read as Mild.
func BandFor(temp float64) TempBand {
	switch {
	case temp <= TempFreezing:
		return BandFreezing
	case temp <= TempHypothermia:
		return BandHypothermia
	case temp <= TempCold:
		return BandCold
	case temp >= TempHeatstroke:
		return BandHeatstroke
	case temp >= TempHyperthermia:
		return BandHyperthermia
	case temp >= TempHot:
		return BandHot
	case temp >= TempNormalLow && temp <= TempNormalHigh:
		return BandNormal
	default:
		return BandMild
	}
}

type BandPolicy struct {
	Label   string
	Color   string
	Damage  float64
	Cause   DamageCause
	Effects []EffectSpec
}

var bandPolicies = map[TempBand]BandPolicy{
	BandFreezing: {
		Label:  "FREEZING TO DEATH",
		Color:  "aqua",
		Damage: 2,
		Cause:  CauseFreezing,
		Effects: []EffectSpec{
			{Effect: EffectSlowness, DurationTicks: 60, Amplifier: 2},
			{Effect: EffectBlindness, DurationTicks: 60, Amplifier: 0},
		},
	},
	BandHypothermia: {
		Label:   "HYPOTHERMIA",
		Color:   "dark_aqua",
		Damage:  1,
		Cause:   CauseFreezing,
		Effects: []EffectSpec{{Effect: EffectSlowness, DurationTicks: 60, Amplifier: 1}},
	},
	BandCold: {
		Label:   "Chilly",
		Color:   "blue",
		Effects: []EffectSpec{{Effect: EffectSlowness, DurationTicks: 60, Amplifier: 0}},
	},
	BandMild:   {Label: "Mild", Color: "white"},
	BandNormal: {Label: "Normal", Color: "green"},
	BandHot: {
		Label:   "Overheating",
		Color:   "gold",
		Effects: []EffectSpec{{Effect: EffectWeakness, DurationTicks: 60, Amplifier: 0}},
	},
	BandHyperthermia: {
		Label:  "HYPERTHERMIA",
		Color:  "red",
		Damage: 1,
		Cause:  CauseOverheat,
		Effects: []EffectSpec{
			{Effect: EffectNausea, DurationTicks: 60, Amplifier: 0},
			{Effect: EffectWeakness, DurationTicks: 60, Amplifier: 1},
		},
	},
	BandHeatstroke: {
		Label:  "HEATSTROKE",
		Color:  "dark_red",
		Damage: 2,
		Cause:  CauseOverheat,
		Effects: []EffectSpec{
			{Effect: EffectNausea, DurationTicks: 100, Amplifier: 1},
			{Effect: EffectWeakness, DurationTicks: 60, Amplifier: 2},
		},
	},
}

func PolicyFor(band TempBand) BandPolicy {
	return bandPolicies[band]
}

func (b TempBand) String() string {
	return bandPolicies[b].Label
}

// Alerting bands carry a HUD readout.
func (b TempBand) Alerting() bool {
	return b != BandMild && b != BandNormal
}

type Insulation struct {
	Warmth float64
	Weight float64
}

const IceSkates = "openrealism:ice_skates"

// ItemInsulation maps an equipped item to its warmth and weight. Material
// is matched by substring, so modded leather or iron pieces count too.
func ItemInsulation(itemType string) Insulation {
	switch {
	case strings.Contains(itemType, "leather"):
		return Insulation{Warmth: 1.0, Weight: 0.5}
	case strings.Contains(itemType, "iron"):
		return Insulation{Warmth: 0.2, Weight: 1.5}
	case strings.Contains(itemType, "gold"):
		return Insulation{Warmth: 0.8, Weight: 1.0}
	case strings.Contains(itemType, "diamond"):
		return Insulation{Warmth: 0.5, Weight: 2.0}
	case strings.Contains(itemType, "netherite"):
		return Insulation{Warmth: 0.5, Weight: 2.5}
	case itemType == IceSkates:
		return Insulation{Warmth: 0.5, Weight: 0.5}
	default:
		return Insulation{Warmth: 0.5, Weight: 1.0}
	}
}

// ClothingInsulation sums insulation over the filled armor slots.
func ClothingInsulation(equipment map[world.Slot]world.Item) Insulation {
	var total Insulation
	for _, slot := range world.ArmorSlots {
		item, ok := equipment[slot]
		if !ok || item.Type == "" {
			continue
		}
		ins := ItemInsulation(item.Type)
		total.Warmth += ins.Warmth
		total.Weight += ins.Weight
	}
	return total
}

const (
	coldEnvBelow = 10.0
	hotEnvAbove  = 30.0
)

// TargetBodyTemp is where body temperature drifts under the given
// conditions. Wetness only matters in the cold.
func TargetBodyTemp(envTemp float64, ins Insulation, wetness float64) float64 {
	switch {
	case envTemp < coldEnvBelow:
		return BaseBodyTemp - (coldEnvBelow-envTemp)*0.1 + ins.Warmth*0.5 - wetness*2.0
	case envTemp > hotEnvAbove:
		return BaseBodyTemp + (envTemp-hotEnvAbove)*0.1 + ins.Weight*0.3
	default:
		return BaseBodyTemp
	}
}

// SmoothBodyTemp moves current a fixed fraction of the way to target.
func SmoothBodyTemp(current, target, rate float64) float64 {
	if math.IsNaN(current) {
		current = BaseBodyTemp
	}
	return current + (target-current)*rate
}

type EnvTempInput struct {
	Dimension world.Dimension
	Biome     world.Biome
	TimeOfDay int64
	Altitude  float64
	NearHeat  bool
	NearCold  bool
}

const (
	NetherTemp        = 50.0
	EndTemp           = -10.0
	NightCooling      = 10.0
	DesertNightCool   = 20.0
	AltitudeBaseline  = 100.0
	HeatSourceBonus   = 15.0
	ColdSourcePenalty = 10.0
)

// EnvironmentTemp is the ambient temperature before the season modifier.
func EnvironmentTemp(in EnvTempInput) float64 {
	switch in.Dimension {
	case world.DimensionNether:
		return NetherTemp
	case world.DimensionEnd:
		return EndTemp
	}
	temp := in.Biome.BaseTemperature()
	if world.IsNight(in.TimeOfDay) {
		if in.Biome == world.BiomeDesert {
			temp -= DesertNightCool
		} else {
			temp -= NightCooling
		}
	}
	if in.Altitude > AltitudeBaseline {
		temp -= (in.Altitude - AltitudeBaseline) / 10
	}
	if in.NearHeat {
		temp += HeatSourceBonus
	}
	if in.NearCold {
		temp -= ColdSourcePenalty
	}
	return temp
}
