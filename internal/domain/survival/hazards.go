package survival

const (
	ThinIceMessage   = "The thin ice broke beneath you!"
	SneezeMessage    = "*Achoo!*"
	RainCaughtMsg    = "Caught some rain water!"
	WildfireSpread   = 10.0
	WildfireScan     = 10
	RainLookUpMinDir = 0.5
)

var (
	SkateSpeed     = EffectSpec{Effect: EffectSpeed, DurationTicks: 40, Amplifier: 1}
	SneezeSlowness = EffectSpec{Effect: EffectSlowness, DurationTicks: 40, Amplifier: 0}
)
