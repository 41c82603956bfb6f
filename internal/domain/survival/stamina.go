package survival

import "survivalcore/internal/domain/world"

type Movement struct {
	Sprinting bool
	Swimming  bool
	OnGround  bool
	Velocity  world.Vec3
}

const jumpVelocity = 0.1

// Jumping is rising while airborne.
func (m Movement) Jumping() bool {
	return m.Velocity.Y > jumpVelocity && !m.OnGround
}

// StaminaDelta is the change applied in one stamina tick. The first
// matching activity wins: sprint, jump, swim, rest, then walk.
func StaminaDelta(t Tuning, m Movement) float64 {
	speed := m.Velocity.HorizontalSpeed()
	switch {
	case m.Sprinting:
		return -t.StaminaSprintCost
	case m.Jumping():
		return -t.StaminaJumpCost
	case m.Swimming && speed > t.MovingSpeed:
		return -t.StaminaSwimCost
	case speed < t.MovingSpeed:
		return t.StaminaRestRegen
	default:
		return t.StaminaWalkRegen
	}
}

func Exhausted(t Tuning, stamina float64) bool {
	return stamina <= t.ExhaustionThreshold
}

var ExhaustionEffects = []EffectSpec{
	{Effect: EffectSlowness, DurationTicks: 20, Amplifier: 1, HideParticles: true},
	{Effect: EffectWeakness, DurationTicks: 20, Amplifier: 0, HideParticles: true},
}

const ExhaustedMessage = "You are completely exhausted!"
