package memory

import (
	"sync"

	"survivalcore/internal/domain/device"
)

// Store is a process-local Persistence backend. Nothing survives a
// restart unless the engine snapshot is used.
type Store struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	scalars map[string]float64
	devices map[string]device.State
}

func NewStore() *Store {
	return &Store{
		scalars: make(map[string]float64),
		devices: make(map[string]device.State),
	}
}

func scalarKey(scope, key string) string {
	return scope + "::" + key
}
