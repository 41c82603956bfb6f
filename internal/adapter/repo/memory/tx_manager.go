package memory

import "context"

// RunInTx serializes transactions against each other. Writes inside fn
// are applied immediately; there is no rollback.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}
