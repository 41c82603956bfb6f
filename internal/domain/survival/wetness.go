package survival

const (
	SubmergedWetRate = 0.1
	RainWetRate      = 0.05
	RainWetCeiling   = 0.8
	DryRate          = 0.02
	HeatDryRate      = 0.1
)

type WetnessInput struct {
	InWater    bool
	Raining    bool
	SkyExposed bool
	NearHeat   bool
}

// NextWetness advances wetness one step. Rain never pushes wetness past
// RainWetCeiling but also never lowers a value soaked above it.
func NextWetness(current float64, in WetnessInput) float64 {
	switch {
	case in.InWater:
		return clamp(current+SubmergedWetRate, 0, MaxWetness)
	case in.Raining && in.SkyExposed:
		if current >= RainWetCeiling {
			return current
		}
		return clamp(current+RainWetRate, 0, RainWetCeiling)
	case in.NearHeat:
		return clamp(current-HeatDryRate, 0, MaxWetness)
	default:
		return clamp(current-DryRate, 0, MaxWetness)
	}
}

// SteamCue reports whether heat-assisted drying is visibly happening.
func SteamCue(before float64, in WetnessInput) bool {
	return before > 0 && in.NearHeat && !in.InWater && !(in.Raining && in.SkyExposed)
}
