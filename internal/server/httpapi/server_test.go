package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/dmitrijs2005/accounts/internal/cryptox"
	"github.com/dmitrijs2005/accounts/internal/logging"
	"github.com/dmitrijs2005/accounts/internal/server/auth"
	"github.com/dmitrijs2005/accounts/internal/server/metrics"
	"github.com/dmitrijs2005/accounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/accounts/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

type fixture struct {
	handler http.Handler
	clock   *testClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &testClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	issuer, err := auth.NewTokenIssuer("secret", auth.WithClock(clock.Now))
	require.NoError(t, err)
	h, err := cryptox.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	store := repomanager.NewMemoryRepositoryManager()
	svc, err := services.NewAccountService(store, h, issuer)
	require.NoError(t, err)

	s := NewHTTPServer(":0", logging.Nop{}, svc, issuer, store, metrics.New(prometheus.NewRegistry()))
	s.now = clock.Now
	return &fixture{handler: s.Handler(), clock: clock}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	out := map[string]any{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func creds(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func TestExampleFlow(t *testing.T) {
	f := newFixture(t)

	code, reg := f.do(t, http.MethodPost, "/auth/register", "", creds("a@x.com", "Passw0rd"))
	require.Equal(t, http.StatusCreated, code)
	id := reg["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "a@x.com", reg["email"])
	assert.NotEmpty(t, reg["token"])
	assert.NotContains(t, reg, "password")
	assert.NotContains(t, reg, "secret")

	code, _ = f.do(t, http.MethodPost, "/auth/login", "", creds("a@x.com", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, login := f.do(t, http.MethodPost, "/auth/login", "", creds("a@x.com", "Passw0rd"))
	require.Equal(t, http.StatusOK, code)
	token := login["token"].(string)
	assert.Equal(t, map[string]any{"id": id, "email": "a@x.com"}, login["user"])

	code, me := f.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"id": id, "email": "a@x.com"}, me)

	code, me = f.do(t, http.MethodPut, "/auth/me", token, map[string]string{"email": "b@x.com"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "b@x.com", me["email"])

	code, out := f.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, out["message"])

	code, _ = f.do(t, http.MethodDelete, "/auth/users/"+id, token, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodPost, "/auth/register", "", creds("bad", "short"))
	assert.Equal(t, http.StatusBadRequest, code)
	errs, ok := body["errors"].([]any)
	require.True(t, ok, "field errors are listed: %v", body)
	assert.Len(t, errs, 2)

	code, body = f.do(t, http.MethodPost, "/auth/register", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid request", body["error"])
}

func TestRegister_DuplicateIsGeneric(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodPost, "/auth/register", "", creds("a@x.com", "Passw0rd"))
	require.Equal(t, http.StatusCreated, code)

	code, body := f.do(t, http.MethodPost, "/auth/register", "", creds("A@X.com", "Passw0rd"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "registration failed", body["error"])
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	f := newFixture(t)

	code, _ := f.do(t, http.MethodPost, "/auth/register", "", creds("a@x.com", "Passw0rd"))
	require.Equal(t, http.StatusCreated, code)

	c1, b1 := f.do(t, http.MethodPost, "/auth/login", "", creds("a@x.com", "Wrong1"))
	c2, b2 := f.do(t, http.MethodPost, "/auth/login", "", creds("ghost@x.com", "Passw0rd"))
	assert.Equal(t, c1, c2)
	assert.Equal(t, b1, b2)
}

func TestProtectedRoutes_Tokens(t *testing.T) {
	f := newFixture(t)

	_, reg := f.do(t, http.MethodPost, "/auth/register", "", creds("a@x.com", "Passw0rd"))
	token := reg["token"].(string)

	code, body := f.do(t, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing token", body["error"])

	code, invalid := f.do(t, http.MethodGet, "/auth/me", token[:len(token)-3]+"abc", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	f.clock.t = f.clock.t.Add(61 * time.Minute)
	code, expired := f.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, invalid, expired, "expired and invalid tokens look the same")
}

func TestDelete_OtherAccountForbidden(t *testing.T) {
	f := newFixture(t)

	_, a := f.do(t, http.MethodPost, "/auth/register", "", creds("a@x.com", "Passw0rd"))
	_, b := f.do(t, http.MethodPost, "/auth/register", "", creds("b@x.com", "Passw0rd"))

	code, _ := f.do(t, http.MethodDelete, "/auth/users/"+b["id"].(string), a["token"].(string), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = f.do(t, http.MethodGet, "/auth/me", b["token"].(string), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestUpdate_Rules(t *testing.T) {
	f := newFixture(t)

	_, a := f.do(t, http.MethodPost, "/auth/register", "", creds("a@x.com", "Passw0rd"))
	f.do(t, http.MethodPost, "/auth/register", "", creds("b@x.com", "Passw0rd"))
	token := a["token"].(string)

	code, _ := f.do(t, http.MethodPut, "/auth/me", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := f.do(t, http.MethodPut, "/auth/me", token, map[string]string{"email": "b@x.com"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "update failed", body["error"])

	code, _ = f.do(t, http.MethodPut, "/auth/me", token, map[string]string{"password": "N3wPassword"})
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodPost, "/auth/login", "", creds("a@x.com", "N3wPassword"))
	assert.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, code, "old token outlives the password change")
}

func TestHealthAndNotFound(t *testing.T) {
	f := newFixture(t)

	code, body := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "2025-01-01T12:00:00Z", body["timestamp"])

	code, body = f.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "route not found", body["error"])
}

type downStore struct{}

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealth_StoreDown(t *testing.T) {
	s := NewHTTPServer(":0", logging.Nop{}, nil, nil, downStore{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/auth/login", "", creds("ghost@x.com", "Passw0rd"))

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `accounts_requests_total{method="POST /auth/login",outcome="unauthorized",transport="http"} 1`)
}

type brokenService struct{ AccountService }

func (brokenService) Authenticate(context.Context, string, string) (*services.Session, error) {
	return nil, errors.Join(common.ErrorInternal, errors.New("db exploded"))
}

func TestInternalErrorsAreMasked(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("secret")
	require.NoError(t, err)
	s := NewHTTPServer(":0", logging.Nop{}, brokenService{}, issuer, nil, nil)
	f := &fixture{handler: s.Handler()}

	code, body := f.do(t, http.MethodPost, "/auth/login", "", creds("a@x.com", "Passw0rd"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]any{"error": "internal error"}, body)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := NewHTTPServer("127.0.0.1:0", logging.Nop{}, nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}
