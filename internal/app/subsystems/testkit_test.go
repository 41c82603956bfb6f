package subsystems

import (
	"survivalcore/internal/adapter/world/mock"
	"survivalcore/internal/app/climate"
	"survivalcore/internal/app/effects"
	"survivalcore/internal/app/environment"
	"survivalcore/internal/app/ports"
	"survivalcore/internal/domain/survival"
	"survivalcore/internal/domain/world"
)

func newDeps(rolls ...float64) (Deps, *mock.World) {
	w := mock.New()
	store := survival.NewStore()
	return Deps{
		Store:   store,
		Env:     environment.NewSampler(w, environment.Config{TTL: 60}),
		Climate: climate.NewClock(w, nil, 14, nil),
		Effects: effects.NewEngine(w, w),
		Host:    w,
		Tuning:  survival.DefaultTuning(),
		Rand:    mock.NewScripted(rolls...),
	}, w
}

func standing(id string) ports.Agent {
	return ports.Agent{
		ID:        id,
		Dimension: world.DimensionOverworld,
		Position:  world.Vec3{X: 0.5, Y: 64, Z: 0.5},
		OnGround:  true,
	}
}
