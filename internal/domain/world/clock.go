package world

type Phase string

const (
	PhaseDay   Phase = "day"
	PhaseNight Phase = "night"
)

const TicksPerDay = 24000

const (
	nightStart    = 13000
	nightEnd      = 23000
	daylightStart = 1000
	daylightEnd   = 12000
)

// TimeOfDay folds an absolute tick count into [0, TicksPerDay).
func TimeOfDay(absolute int64) int64 {
	if absolute < 0 {
		return 0
	}
	return absolute % TicksPerDay
}

// DayIndex is the floor-divided count of whole in-game days.
func DayIndex(absolute int64) int64 {
	if absolute < 0 {
		return 0
	}
	return absolute / TicksPerDay
}

func IsNight(timeOfDay int64) bool {
	return timeOfDay > nightStart && timeOfDay < nightEnd
}

// IsDaylight is the narrower full-sun window used by heat hazards.
func IsDaylight(timeOfDay int64) bool {
	return timeOfDay > daylightStart && timeOfDay < daylightEnd
}

func PhaseAt(timeOfDay int64) Phase {
	if IsNight(timeOfDay) {
		return PhaseNight
	}
	return PhaseDay
}
