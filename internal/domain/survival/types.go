package survival

const (
	MaxThirst        = 20.0
	MaxStamina       = 100.0
	MaxWetness       = 1.0
	MaxBleedingTicks = 20
	BaseBodyTemp     = 37.0
	DietHistorySize  = 5
)

type FoodKind string

// State is the survival record for one agent. Bounded fields are only
// ever written through Store, which clamps after every mutation.
type State struct {
	Thirst        float64    `json:"thirst"`
	BodyTemp      float64    `json:"body_temp"`
	Wetness       float64    `json:"wetness"`
	Stamina       float64    `json:"stamina"`
	BleedingTicks int        `json:"bleeding_ticks"`
	BrokenLeg     bool       `json:"broken_leg"`
	DietHistory   []FoodKind `json:"diet_history"`
}

func DefaultState() State {
	return State{
		Thirst:   MaxThirst,
		BodyTemp: BaseBodyTemp,
		Stamina:  MaxStamina,
	}
}

func (s State) clamped() State {
	s.Thirst = clamp(s.Thirst, 0, MaxThirst)
	s.Wetness = clamp(s.Wetness, 0, MaxWetness)
	s.Stamina = clamp(s.Stamina, 0, MaxStamina)
	if s.BleedingTicks < 0 {
		s.BleedingTicks = 0
	}
	if s.BleedingTicks > MaxBleedingTicks {
		s.BleedingTicks = MaxBleedingTicks
	}
	if n := len(s.DietHistory); n > DietHistorySize {
		s.DietHistory = append([]FoodKind(nil), s.DietHistory[n-DietHistorySize:]...)
	}
	return s
}

func (s State) clone() State {
	out := s
	if s.DietHistory != nil {
		out.DietHistory = append([]FoodKind(nil), s.DietHistory...)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
