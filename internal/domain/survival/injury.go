package survival

const (
	Bandage = "openrealism:bandage"
	Splint  = "openrealism:splint"
)

const (
	FractureMessage = "*SNAP* You broke your leg!"
	BleedMessage    = "You are bleeding! Use a bandage."
	BandagedMessage = "You bandaged your wounds and stopped the bleeding."
	SplintedMessage = "You applied a splint to your broken leg."
)

var FractureEffect = EffectSpec{Effect: EffectSlowness, DurationTicks: 40, Amplifier: 2, HideParticles: true}

// CanFracture reports whether a hit qualifies for the fracture roll.
func CanFracture(t Tuning, cause DamageCause, damage float64) bool {
	return cause == CauseFall && damage > t.FractureMinDamage
}

// CanBleed reports whether a hit qualifies for the bleeding roll.
func CanBleed(t Tuning, cause DamageCause, damage float64) bool {
	return (cause == CauseEntity || cause == CauseProjectile) && damage > t.BleedMinDamage
}
