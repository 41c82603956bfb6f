package survival

type ThirstInput struct {
	Sprinting bool
	HotBiome  bool
	Healing   bool
}

// ThirstDecay is the amount removed from thirst in one thirst tick.
func ThirstDecay(t Tuning, in ThirstInput) float64 {
	decay := t.ThirstBaseDecay
	if in.Sprinting {
		decay += t.ThirstSprintDecay
	}
	if in.HotBiome {
		decay += t.ThirstHotBiomeDecay
	}
	if in.Healing {
		decay += t.ThirstHealingDecay
	}
	return decay
}

func Dehydrated(t Tuning, thirst float64) bool {
	return thirst <= t.DehydrationThreshold
}

func ThirstImpaired(t Tuning, thirst float64) bool {
	return thirst < t.ThirstImpairBelow
}

var ThirstSlowness = EffectSpec{Effect: EffectSlowness, DurationTicks: 40, Amplifier: 0, HideParticles: true}

const (
	DehydrationTitle    = "Dehydrated"
	DehydrationSubtitle = "Find clean water soon."
)
