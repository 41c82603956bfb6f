package survival

import "strings"

type WaterQuality string

const (
	WaterDirty     WaterQuality = "dirty"
	WaterPurified  WaterQuality = "purified"
	WaterBoiled    WaterQuality = "boiled"
	WaterDistilled WaterQuality = "distilled"
)

const (
	ContaminatedMessage = "You drank contaminated water and feel sick..."
	PurifiedMessage     = "Refreshing purified water."
	BoiledMessage       = "Warm boiled water."
	DistilledMessage    = "Pure distilled water."
)

// IsWater reports whether a consumed item is a drink handled by the
// thirst rules rather than the diet rules.
func IsWater(itemType string) bool {
	if strings.Contains(itemType, "canteen") {
		return !strings.Contains(itemType, "empty")
	}
	return strings.Contains(itemType, "water") && !strings.Contains(itemType, "bucket")
}

func ClassifyWater(itemType string) WaterQuality {
	switch {
	case strings.Contains(itemType, "dirty"):
		return WaterDirty
	case strings.Contains(itemType, "purified"), strings.Contains(itemType, "canteen_clean"):
		return WaterPurified
	case strings.Contains(itemType, "boiled"):
		return WaterBoiled
	case strings.Contains(itemType, "distilled"):
		return WaterDistilled
	default:
		return WaterDirty
	}
}

func (q WaterQuality) Restores() float64 {
	switch q {
	case WaterPurified, WaterBoiled:
		return 6
	case WaterDistilled:
		return 8
	default:
		return 4
	}
}

var (
	DirtyNausea = EffectSpec{Effect: EffectNausea, DurationTicks: 400, Amplifier: 1}
	DirtyPoison = EffectSpec{Effect: EffectPoison, DurationTicks: 200, Amplifier: 0}
	BoiledRegen = EffectSpec{Effect: EffectRegeneration, DurationTicks: 100, Amplifier: 0}
)
