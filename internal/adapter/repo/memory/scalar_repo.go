package memory

import "context"

func (s *Store) GetScalar(_ context.Context, scope, key string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.scalars[scalarKey(scope, key)]
	return v, ok, nil
}

func (s *Store) SetScalar(_ context.Context, scope, key string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scalars[scalarKey(scope, key)] = value
	return nil
}
