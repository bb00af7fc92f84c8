package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]int64

	// injected errors (if set, method returns error)
	getByIDErr    error
	getByEmailErr error
	createErr     error
	updatePwdErr  error
	setVerifyErr  error
	setActiveErr  error

	// record calls
	updatedPwd    []struct {
		id   int64
		hash string
	}
	verifiedIDs []int64
	rememberSet []struct {
		id       int64
		remember bool
	}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID:  1,
		byID:    map[int64]domain.User{},
		byEmail: map[string]int64{},
	}
}

func (f *fakeUserRepo) seed(u domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	id, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrDuplicateUser()
	}
	u.ID = f.nextID
	f.nextID++
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u, nil
}

func (f *fakeUserRepo) mutate(id int64, fn func(*domain.User)) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	f.byID[id] = u
	f.byEmail[u.Email] = id
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updatePwdErr != nil {
		return f.updatePwdErr
	}
	if err := f.mutate(userID, func(u *domain.User) { u.PasswordHash = newHash }); err != nil {
		return err
	}
	f.updatedPwd = append(f.updatedPwd, struct {
		id   int64
		hash string
	}{userID, newHash})
	return nil
}

func (f *fakeUserRepo) SetVerified(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setVerifyErr != nil {
		return f.setVerifyErr
	}
	if err := f.mutate(userID, func(u *domain.User) { u.IsVerified = true }); err != nil {
		return err
	}
	f.verifiedIDs = append(f.verifiedIDs, userID)
	return nil
}

func (f *fakeUserRepo) SetRememberMe(ctx context.Context, userID int64, remember bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.mutate(userID, func(u *domain.User) { u.RememberMe = remember }); err != nil {
		return err
	}
	f.rememberSet = append(f.rememberSet, struct {
		id       int64
		remember bool
	}{userID, remember})
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setActiveErr != nil {
		return f.setActiveErr
	}
	return f.mutate(userID, func(u *domain.User) { u.IsActive = active })
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type fakeSigner struct {
	mu     sync.Mutex
	seq    int
	signFn func(userID int64, role string, ttl time.Duration) (string, error)
}

func (s *fakeSigner) SignAccessToken(userID int64, role string, ttl time.Duration) (string, error) {
	if s.signFn != nil {
		return s.signFn(userID, role, ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("jwt(%d,%s,%d)", userID, role, s.seq), nil
}

func (s *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	return TokenClaims{}, nil
}

type fakeResets struct {
	mu sync.Mutex

	byEmail map[string]PendingReset

	putErr    error
	getErr    error
	deleteErr error

	deleted []string
}

func newFakeResets() *fakeResets {
	return &fakeResets{byEmail: map[string]PendingReset{}}
}

func (f *fakeResets) Put(ctx context.Context, email string, pr PendingReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.putErr != nil {
		return f.putErr
	}
	f.byEmail[email] = pr
	return nil
}

func (f *fakeResets) Get(ctx context.Context, email string) (PendingReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return PendingReset{}, f.getErr
	}
	pr, ok := f.byEmail[email]
	if !ok {
		return PendingReset{}, domain.ErrNoResetRequest()
	}
	return pr, nil
}

func (f *fakeResets) Delete(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byEmail, email)
	f.deleted = append(f.deleted, email)
	return nil
}

type fakePublisher struct {
	verifyErr error
	resetErr  error
	loginErr  error

	verifyEvts []VerifyEmailEvent
	resetEvts  []ResetCodeEvent
	loginEvts  []LoginEvent
}

func (p *fakePublisher) PublishVerifyEmail(ctx context.Context, evt VerifyEmailEvent) error {
	if p.verifyErr != nil {
		return p.verifyErr
	}
	p.verifyEvts = append(p.verifyEvts, evt)
	return nil
}

func (p *fakePublisher) PublishResetCode(ctx context.Context, evt ResetCodeEvent) error {
	if p.resetErr != nil {
		return p.resetErr
	}
	p.resetEvts = append(p.resetEvts, evt)
	return nil
}

func (p *fakePublisher) PublishLogin(ctx context.Context, evt LoginEvent) error {
	if p.loginErr != nil {
		return p.loginErr
	}
	p.loginEvts = append(p.loginEvts, evt)
	return nil
}

/*
Service factory for tests
*/

func newSvcForTest(t *testing.T) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakeResets, *fakePublisher, *[]auditEntry) {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	resets := newFakeResets()
	pub := &fakePublisher{}

	audits := &[]auditEntry{}
	cfg := Config{
		AccessTTL:    15 * time.Minute,
		ResetCodeTTL: 15 * time.Minute,
	}

	svc := NewService(users, hasher, signer, resets, pub, cfg).
		WithAudit(func(action string, fields map[string]string) {
			cp := map[string]string{}
			for k, v := range fields {
				cp[k] = v
			}
			*audits = append(*audits, auditEntry{action: action, fields: cp})
		})

	return svc, users, hasher, signer, resets, pub, audits
}

/*
Small assertions
*/

func domainCode(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func requireErrCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected domain code %q, got nil error", wantCode)
	}
	if got := domainCode(err); got != wantCode {
		t.Fatalf("expected domain code %q, got %q (err=%v)", wantCode, got, err)
	}
}
