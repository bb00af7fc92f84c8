package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sitewatch/sitewatch-backend/internal/application/auth"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const resetKeyPrefix = "auth:reset:"

// Keys outlive the business expiry by this much so an expired code is
// still distinguishable from an absent one when the service checks
// ExpiresAt. After the grace window redis evicts the key and the flow
// degrades to "no reset request", which is acceptable that late.
const resetKeyGrace = time.Hour

// ResetCodeStore keeps pending password-reset codes in redis so they
// survive restarts and are shared across replicas.
type ResetCodeStore struct {
	client *goredis.Client
}

func NewResetCodeStore(client *goredis.Client) *ResetCodeStore {
	return &ResetCodeStore{client: client}
}

type resetEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func resetKey(email string) string {
	return resetKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (s *ResetCodeStore) Put(ctx context.Context, email string, pr auth.PendingReset) error {
	payload, err := json.Marshal(resetEntry{Code: pr.Code, ExpiresAt: pr.ExpiresAt})
	if err != nil {
		return domain.ErrInternal(err)
	}

	ttl := time.Until(pr.ExpiresAt) + resetKeyGrace
	if ttl <= 0 {
		ttl = resetKeyGrace
	}

	// SET overwrites any pending code for the same email.
	if err := s.client.Set(ctx, resetKey(email), payload, ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (s *ResetCodeStore) Get(ctx context.Context, email string) (auth.PendingReset, error) {
	raw, err := s.client.Get(ctx, resetKey(email)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return auth.PendingReset{}, domain.ErrNoResetRequest()
	}
	if err != nil {
		return auth.PendingReset{}, domain.ErrRedisUnavailable(err)
	}

	var entry resetEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Unreadable entry: treat as absent rather than wedging the flow.
		_ = s.client.Del(ctx, resetKey(email)).Err()
		return auth.PendingReset{}, domain.ErrNoResetRequest()
	}
	return auth.PendingReset{Code: entry.Code, ExpiresAt: entry.ExpiresAt}, nil
}

func (s *ResetCodeStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, resetKey(email)).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}
