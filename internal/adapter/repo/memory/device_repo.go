package memory

import (
	"context"
	"sort"

	"survivalcore/internal/domain/device"
)

func (s *Store) SaveDevice(_ context.Context, state device.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[state.Key()] = state
	return nil
}

func (s *Store) DeleteDevice(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.devices, key)
	return nil
}

func (s *Store) ListDevices(context.Context) ([]device.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]device.State, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out, nil
}
