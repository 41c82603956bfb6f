package survival

import "strings"

type DietVerdict int

const (
	DietFresh DietVerdict = iota
	DietTired
	DietSick
)

const (
	SickRepeats  = 3
	TiredRepeats = 1
)

const (
	FreshMessage = "That tasted great! A varied diet keeps you healthy."
	TiredMessage = "You are getting tired of eating the same food."
	SickMessage  = "You are sick of eating this. Your body craves a varied diet."
)

var nonFood = []string{"potion", "bow", "shield", "bottle", "canteen", "salve", "pack"}

// IsFood filters consumables that never count toward the diet window.
func IsFood(itemType string) bool {
	for _, frag := range nonFood {
		if strings.Contains(itemType, frag) {
			return false
		}
	}
	return itemType != ""
}

// Verdict grades a meal by how many times its kind already appears in the
// diet window.
func Verdict(priorCount int) DietVerdict {
	switch {
	case priorCount >= SickRepeats:
		return DietSick
	case priorCount >= TiredRepeats:
		return DietTired
	default:
		return DietFresh
	}
}

var (
	SickEffects  = []EffectSpec{{Effect: EffectHunger, DurationTicks: 200, Amplifier: 0}, {Effect: EffectWeakness, DurationTicks: 200, Amplifier: 0}}
	FreshEffects = []EffectSpec{{Effect: EffectRegeneration, DurationTicks: 60, Amplifier: 0}}
)

func (v DietVerdict) Message() string {
	switch v {
	case DietSick:
		return SickMessage
	case DietTired:
		return TiredMessage
	default:
		return FreshMessage
	}
}

func (v DietVerdict) Effects() []EffectSpec {
	switch v {
	case DietSick:
		return SickEffects
	case DietFresh:
		return FreshEffects
	default:
		return nil
	}
}
