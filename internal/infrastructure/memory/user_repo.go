package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// UserRepo is an in-memory auth.UserRepo used when the service runs
// without a database (local development, transport tests). Semantics
// mirror the postgres adapter: case-insensitive unique emails,
// updated_at bumped on every mutation.
type UserRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]int64
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		nextID:  1,
		byID:    map[int64]domain.User{},
		byEmail: map[string]int64{},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalizeEmail(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return domain.User{}, domain.ErrDuplicateUser()
	}

	u.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	u.Email = key
	u.CreatedAt = now
	u.UpdatedAt = now

	r.byID[u.ID] = u
	r.byEmail[key] = u.ID
	return u, nil
}

func (r *UserRepo) update(id int64, fn func(*domain.User)) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u
	return nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(userID, func(u *domain.User) { u.PasswordHash = newHash })
}

func (r *UserRepo) SetVerified(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(userID, func(u *domain.User) { u.IsVerified = true })
}

func (r *UserRepo) SetRememberMe(ctx context.Context, userID int64, remember bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(userID, func(u *domain.User) { u.RememberMe = remember })
}

func (r *UserRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(userID, func(u *domain.User) { u.IsActive = active })
}
