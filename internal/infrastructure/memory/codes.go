package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-email-otp/internal/domain"
)

// CodeStore keeps pending verification codes in process memory.
// Key: address. Nothing survives a restart.
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]domain.PendingCode
}

func NewCodeStore() *CodeStore {
	return &CodeStore{codes: make(map[string]domain.PendingCode)}
}

// Put stores p, replacing any pending code for the same address.
func (s *CodeStore) Put(ctx context.Context, p *domain.PendingCode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[p.Address] = *p
	return nil
}

func (s *CodeStore) Get(ctx context.Context, address string) (*domain.PendingCode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.codes[address]
	if !ok {
		return nil, fmt.Errorf("pending code not found: %w", domain.ErrNotFound)
	}
	return &p, nil
}

// Delete removes the pending code for address. Deleting a missing key is a no-op.
func (s *CodeStore) Delete(ctx context.Context, address string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, address)
	return nil
}
