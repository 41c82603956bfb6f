package ports

import (
	"context"

	"survivalcore/internal/domain/device"
)

const (
	ScopeWorld       = "world"
	ScalarThirst     = "thirst"
	ScalarCurrentDay = "current_day"
)

// ScalarStore keeps small durable values keyed by scope and name. Agent
// values use the agent id as scope.
type ScalarStore interface {
	GetScalar(ctx context.Context, scope, key string) (float64, bool, error)
	SetScalar(ctx context.Context, scope, key string, value float64) error
}

type DeviceRepository interface {
	SaveDevice(ctx context.Context, state device.State) error
	DeleteDevice(ctx context.Context, key string) error
	ListDevices(ctx context.Context) ([]device.State, error)
}

// Persistence is what a storage backend provides to the engine.
type Persistence interface {
	ScalarStore
	DeviceRepository
	TxManager
}
