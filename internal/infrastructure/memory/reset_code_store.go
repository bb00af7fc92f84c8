package memory

import (
	"context"
	"sync"

	"github.com/sitewatch/sitewatch-backend/internal/application/auth"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// ResetCodeStore is the reference auth.ResetCodeStore: a mutex-guarded
// map keyed by email. Entries are not evicted on expiry; the service
// checks ExpiresAt and deletes, which keeps the expired/absent
// distinction observable.
type ResetCodeStore struct {
	mu      sync.Mutex
	byEmail map[string]auth.PendingReset
}

func NewResetCodeStore() *ResetCodeStore {
	return &ResetCodeStore{byEmail: map[string]auth.PendingReset{}}
}

func (s *ResetCodeStore) Put(ctx context.Context, email string, pr auth.PendingReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byEmail[normalizeEmail(email)] = pr
	return nil
}

func (s *ResetCodeStore) Get(ctx context.Context, email string) (auth.PendingReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pr, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return auth.PendingReset{}, domain.ErrNoResetRequest()
	}
	return pr, nil
}

func (s *ResetCodeStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byEmail, normalizeEmail(email))
	return nil
}
