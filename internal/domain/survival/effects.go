package survival

type Effect string

const (
	EffectSlowness     Effect = "slowness"
	EffectWeakness     Effect = "weakness"
	EffectBlindness    Effect = "blindness"
	EffectNausea       Effect = "nausea"
	EffectPoison       Effect = "poison"
	EffectRegeneration Effect = "regeneration"
	EffectHunger       Effect = "hunger"
	EffectSpeed        Effect = "speed"
)

type DamageCause string

const (
	CauseDehydration DamageCause = "dehydration"
	CauseFreezing    DamageCause = "freezing"
	CauseOverheat    DamageCause = "fireTick"
	CauseBleeding    DamageCause = "magic"
	CauseFall        DamageCause = "fall"
	CauseEntity      DamageCause = "entityAttack"
	CauseProjectile  DamageCause = "projectile"
)

// EffectSpec is one timed status effect application.
type EffectSpec struct {
	Effect        Effect `json:"effect"`
	DurationTicks int    `json:"duration_ticks"`
	Amplifier     int    `json:"amplifier"`
	HideParticles bool   `json:"hide_particles,omitempty"`
}
