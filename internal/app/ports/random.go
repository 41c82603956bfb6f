package ports

// Random is the source for every Bernoulli trial in the engine.
type Random interface {
	Float64() float64
}

func Chance(r Random, p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}
