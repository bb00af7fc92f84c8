package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewatch/sitewatch-backend/internal/application/auth"
	"github.com/sitewatch/sitewatch-backend/internal/infrastructure/memory"
	"github.com/sitewatch/sitewatch-backend/internal/infrastructure/security"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/handlers"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/middleware"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/response"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/router"
)

// capturingPublisher records events so tests can fish out the reset
// code and verification token that would normally travel by email.
type capturingPublisher struct {
	mu     sync.Mutex
	verify []auth.VerifyEmailEvent
	resets []auth.ResetCodeEvent
	logins []auth.LoginEvent
}

func (p *capturingPublisher) PublishVerifyEmail(_ context.Context, evt auth.VerifyEmailEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verify = append(p.verify, evt)
	return nil
}

func (p *capturingPublisher) PublishResetCode(_ context.Context, evt auth.ResetCodeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets = append(p.resets, evt)
	return nil
}

func (p *capturingPublisher) PublishLogin(_ context.Context, evt auth.LoginEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logins = append(p.logins, evt)
	return nil
}

func (p *capturingPublisher) lastVerifyToken(t *testing.T) string {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.verify, "no verification event published")
	return p.verify[len(p.verify)-1].Token
}

func (p *capturingPublisher) lastResetCode(t *testing.T) string {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.resets, "no reset event published")
	return p.resets[len(p.resets)-1].Code
}

// Stub handlers for the CRUD surfaces; routing and middleware are
// what this file exercises, the handlers have their own tests.
type stubFacility struct{}

func stubOK(w http.ResponseWriter, _ *http.Request) { response.OK(w, map[string]string{"stub": "ok"}) }

func (stubFacility) CreateBuilding(w http.ResponseWriter, r *http.Request)  { stubOK(w, r) }
func (stubFacility) GetBuilding(w http.ResponseWriter, r *http.Request)     { stubOK(w, r) }
func (stubFacility) ListBuildings(w http.ResponseWriter, r *http.Request)   { stubOK(w, r) }
func (stubFacility) UpdateBuilding(w http.ResponseWriter, r *http.Request)  { stubOK(w, r) }
func (stubFacility) DeleteBuilding(w http.ResponseWriter, r *http.Request)  { stubOK(w, r) }
func (stubFacility) CreateRoom(w http.ResponseWriter, r *http.Request)      { stubOK(w, r) }
func (stubFacility) ListRooms(w http.ResponseWriter, r *http.Request)       { stubOK(w, r) }
func (stubFacility) GetRoom(w http.ResponseWriter, r *http.Request)         { stubOK(w, r) }
func (stubFacility) UpdateRoom(w http.ResponseWriter, r *http.Request)      { stubOK(w, r) }
func (stubFacility) DeleteRoom(w http.ResponseWriter, r *http.Request)      { stubOK(w, r) }
func (stubFacility) CreateCamera(w http.ResponseWriter, r *http.Request)    { stubOK(w, r) }
func (stubFacility) ListCameras(w http.ResponseWriter, r *http.Request)     { stubOK(w, r) }
func (stubFacility) GetCamera(w http.ResponseWriter, r *http.Request)       { stubOK(w, r) }
func (stubFacility) UpdateCamera(w http.ResponseWriter, r *http.Request)    { stubOK(w, r) }
func (stubFacility) SetCameraStatus(w http.ResponseWriter, r *http.Request) { stubOK(w, r) }
func (stubFacility) DeleteCamera(w http.ResponseWriter, r *http.Request)    { stubOK(w, r) }

type stubMessaging struct{}

func (stubMessaging) CreateContact(w http.ResponseWriter, r *http.Request)        { stubOK(w, r) }
func (stubMessaging) ListContacts(w http.ResponseWriter, r *http.Request)         { stubOK(w, r) }
func (stubMessaging) GetContact(w http.ResponseWriter, r *http.Request)           { stubOK(w, r) }
func (stubMessaging) UpdateContact(w http.ResponseWriter, r *http.Request)        { stubOK(w, r) }
func (stubMessaging) DeleteContact(w http.ResponseWriter, r *http.Request)        { stubOK(w, r) }
func (stubMessaging) CreateMessage(w http.ResponseWriter, r *http.Request)        { stubOK(w, r) }
func (stubMessaging) ListMessages(w http.ResponseWriter, r *http.Request)         { stubOK(w, r) }
func (stubMessaging) DeleteMessage(w http.ResponseWriter, r *http.Request)        { stubOK(w, r) }
func (stubMessaging) ListMyNotifications(w http.ResponseWriter, r *http.Request)  { stubOK(w, r) }
func (stubMessaging) MarkNotificationRead(w http.ResponseWriter, r *http.Request) { stubOK(w, r) }
func (stubMessaging) DeleteNotification(w http.ResponseWriter, r *http.Request)   { stubOK(w, r) }
func (stubMessaging) CreateNotification(w http.ResponseWriter, r *http.Request)   { stubOK(w, r) }

type stubDashboard struct{}

func (stubDashboard) Summary(w http.ResponseWriter, r *http.Request) { stubOK(w, r) }

type stubHealth struct{}

func (stubHealth) Healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
func (stubHealth) Readyz(w http.ResponseWriter, r *http.Request)  { w.WriteHeader(http.StatusOK) }

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(context.Context, string) bool { return false }

type testEnv struct {
	handler http.Handler
	pub     *capturingPublisher
}

func newTestEnv(t *testing.T, opts router.Deps) *testEnv {
	t.Helper()

	pub := &capturingPublisher{}
	signer := security.NewJWTSigner("test-secret-at-least-32-bytes-long!", "sitewatch-test")
	svc := auth.NewService(
		memory.NewUserRepo(),
		security.NewPBKDF2Hasher(),
		signer,
		memory.NewResetCodeStore(),
		pub,
		auth.Config{},
	)

	deps := router.Deps{
		Health:    stubHealth{},
		Auth:      handlers.NewAuthHandler(svc),
		Facility:  stubFacility{},
		Messaging: stubMessaging{},
		Dashboard: stubDashboard{},

		AuthMW:  middleware.Auth(signer, svc, response.WriteError),
		AdminMW: middleware.RequireAdmin(response.WriteError),

		LoginLimitMW:  opts.LoginLimitMW,
		ForgotLimitMW: opts.ForgotLimitMW,
	}

	handler, err := router.New(deps)
	require.NoError(t, err)

	return &testEnv{handler: handler, pub: pub}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func dataOf(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func errCodeOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

type userData struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	IsActive   bool   `json:"is_active"`
	Role       string `json:"role"`
}

type authData struct {
	User   userData `json:"user"`
	Tokens struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	} `json:"tokens"`
}

func register(t *testing.T, env *testEnv, email, password, role string) userData {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":             "Test Person",
		"email":            email,
		"password":         password,
		"password_confirm": password,
		"role":             role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		User    userData `json:"user"`
		Message string   `json:"message"`
	}
	dataOf(t, rec, &data)
	assert.Equal(t, auth.MsgRegistered, data.Message)
	return data.User
}

func login(t *testing.T, env *testEnv, email, password string) authData {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data authData
	dataOf(t, rec, &data)
	require.NotEmpty(t, data.Tokens.AccessToken)
	return data
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t, router.Deps{})

	u := register(t, env, "dana@example.com", "hunter2hunter2", "")
	assert.Positive(t, u.ID)
	assert.False(t, u.IsVerified)
	assert.Equal(t, "USER", u.Role)

	// duplicate email
	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":             "Someone Else",
		"email":            "DANA@example.com",
		"password":         "hunter2hunter2",
		"password_confirm": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_user", errCodeOf(t, rec))

	// wrong password
	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "dana@example.com",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errCodeOf(t, rec))

	session := login(t, env, "dana@example.com", "hunter2hunter2")

	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", session.Tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me userData
	dataOf(t, rec, &me)
	assert.Equal(t, u.ID, me.ID)
	assert.Equal(t, "dana@example.com", me.Email)
}

func TestRouter_ValidationErrors(t *testing.T) {
	env := newTestEnv(t, router.Deps{})

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"email":`))
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_json", errCodeOf(t, rec))
	})

	t.Run("missing field", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": "a@b.com"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "missing_field", errCodeOf(t, rec))
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"name":             "Mismatch",
			"email":            "mm@example.com",
			"password":         "hunter2hunter2",
			"password_confirm": "different-thing",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "password_mismatch", errCodeOf(t, rec))
	})
}

func TestRouter_EmailVerification(t *testing.T) {
	env := newTestEnv(t, router.Deps{})

	register(t, env, "vera@example.com", "hunter2hunter2", "")
	token := env.pub.lastVerifyToken(t)

	// mail-link style GET
	rec := env.do(t, http.MethodGet, "/api/v1/auth/verify-email?token="+token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Message string `json:"message"`
	}
	dataOf(t, rec, &data)
	assert.Equal(t, auth.MsgEmailVerified, data.Message)

	// second use is idempotent
	rec = env.do(t, http.MethodPost, "/api/v1/auth/verify-email", "", map[string]any{"token": token})
	require.Equal(t, http.StatusOK, rec.Code)
	dataOf(t, rec, &data)
	assert.Equal(t, auth.MsgAlreadyVerified, data.Message)

	// garbage token
	rec = env.do(t, http.MethodPost, "/api/v1/auth/verify-email", "", map[string]any{"token": "verify_email_abc"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", errCodeOf(t, rec))
}

func TestRouter_PasswordResetFlow(t *testing.T) {
	env := newTestEnv(t, router.Deps{})

	register(t, env, "rita@example.com", "originalpass123", "")

	rec := env.do(t, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]any{
		"email": "rita@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	code := env.pub.lastResetCode(t)
	require.Len(t, code, 6)

	// wrong code keeps the request pending
	rec = env.do(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]any{
		"email":        "rita@example.com",
		"code":         "000000",
		"new_password": "brandnewpass123",
	})
	if code == "000000" {
		t.Skip("random code collided with the deliberately wrong guess")
	}
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_reset_code", errCodeOf(t, rec))

	// right code consumes it
	rec = env.do(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]any{
		"email":        "rita@example.com",
		"code":         code,
		"new_password": "brandnewpass123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// old password dead, new one works
	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "rita@example.com",
		"password": "originalpass123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login(t, env, "rita@example.com", "brandnewpass123")

	// replay of the consumed code
	rec = env.do(t, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]any{
		"email":        "rita@example.com",
		"code":         code,
		"new_password": "yetanotherpass1",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no_reset_request", errCodeOf(t, rec))
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t, router.Deps{})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/buildings"},
		{http.MethodGet, "/api/v1/rooms/1"},
		{http.MethodGet, "/api/v1/cameras/1"},
		{http.MethodGet, "/api/v1/contacts"},
		{http.MethodGet, "/api/v1/notifications"},
		{http.MethodGet, "/api/v1/dashboard/summary"},
	}
	for _, p := range paths {
		rec := env.do(t, p.method, p.path, "", nil)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestRouter_AdminGate(t *testing.T) {
	env := newTestEnv(t, router.Deps{})

	user := register(t, env, "plain@example.com", "hunter2hunter2", "")
	register(t, env, "boss@example.com", "hunter2hunter2", "ADMIN")

	userTok := login(t, env, "plain@example.com", "hunter2hunter2").Tokens.AccessToken
	adminTok := login(t, env, "boss@example.com", "hunter2hunter2").Tokens.AccessToken

	body := map[string]any{"is_active": false}
	target := "/api/v1/admin/users/" + strconv.FormatInt(user.ID, 10) + "/status"

	rec := env.do(t, http.MethodPatch, target, userTok, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin_only", errCodeOf(t, rec))

	rec = env.do(t, http.MethodPatch, target, adminTok, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated userData
	dataOf(t, rec, &updated)
	assert.False(t, updated.IsActive)

	// deactivated user is cut off immediately, token or not
	rec = env.do(t, http.MethodGet, "/api/v1/auth/me", userTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "account_deactivated", errCodeOf(t, rec))

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "plain@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_LoginRateLimit(t *testing.T) {
	env := newTestEnv(t, router.Deps{
		LoginLimitMW: middleware.RateLimit(denyAllLimiter{}, "login", response.WriteError),
	})

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "a@b.com",
		"password": "whatever123",
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limited", errCodeOf(t, rec))

	// register is not behind the login budget
	register(t, env, "free@example.com", "hunter2hunter2", "")
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	env := newTestEnv(t, router.Deps{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "trace-me-1")

	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-me-1", rec.Header().Get("X-Request-Id"))
}
