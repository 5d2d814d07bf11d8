package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/student-service/internal/api/http"
	"github.com/spec-kit/student-service/internal/api/http/handlers"
	"github.com/spec-kit/student-service/internal/auth"
	"github.com/spec-kit/student-service/internal/config"
	"github.com/spec-kit/student-service/internal/domain"
	"github.com/spec-kit/student-service/internal/events"
	"github.com/spec-kit/student-service/internal/observability"
	"github.com/spec-kit/student-service/internal/persistence"
	"github.com/spec-kit/student-service/internal/service"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
	seq   int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]domain.User)}
}

func (r *memoryUserRepo) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.ID = strconv.Itoa(r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Email] = *user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[email]; ok {
		copied := user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	repo := newMemoryUserRepo()
	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:      "handler-test-secret",
		TokenTTLMillis: 60_000,
		BcryptCost:     4,
	}, repo, events.NewInMemoryDispatcher(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:           handlers.NewAuthHandler(authService),
		Catalog:        handlers.NewCatalogHandler(),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), repo),
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (*http.Response, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func getWithToken(t *testing.T, app *fiber.App, path, token string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return body
}

type authBody struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Token string `json:"token"`
}

func register(t *testing.T, app *fiber.App, name, email, password string) authBody {
	t.Helper()
	resp, body := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var parsed authBody
	require.NoError(t, json.Unmarshal(body, &parsed))
	return parsed
}

func TestRegisterReturnsUserAndToken(t *testing.T) {
	app := newTestApp(t)

	parsed := register(t, app, "Ann", "a@x.com", "p1")
	assert.Equal(t, "a@x.com", parsed.User.Email)
	assert.Equal(t, "Ann", parsed.User.Name)
	assert.NotEmpty(t, parsed.User.ID)
	assert.NotEmpty(t, parsed.Token)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "Ann", "a@x.com", "p1")

	resp, body := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "Mallory", "email": "a@x.com", "password": "p2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"error":{"code":"CONFLICT","message":"email already registered"}}`, string(body))
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	resp, _ := postJSON(t, app, "/api/auth/register", fiber.Map{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)
	registered := register(t, app, "Ann", "a@x.com", "p1")

	// wrong password first
	resp, wrongBody := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// unknown email must produce a byte-identical error body
	resp, unknownBody := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "nobody@x.com", "password": "p1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, string(wrongBody), string(unknownBody))

	// correct credentials
	resp, body := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "a@x.com", "password": "p1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var parsed authBody
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, registered.User.ID, parsed.User.ID)
	assert.NotEmpty(t, parsed.Token)
	assert.NotEqual(t, registered.Token, parsed.Token)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	app := newTestApp(t)

	resp, body := postJSON(t, app, "/api/auth/logout", fiber.Map{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Logged out successfully"}`, string(body))
}

func TestTokenRemainsValidAfterLogout(t *testing.T) {
	app := newTestApp(t)
	registered := register(t, app, "Ann", "a@x.com", "p1")

	resp, _ := postJSON(t, app, "/api/auth/logout", fiber.Map{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = getWithToken(t, app, "/api/auth/me", registered.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "logout must not revoke outstanding tokens")
}

func TestMeWithToken(t *testing.T) {
	app := newTestApp(t)
	registered := register(t, app, "Ann", "a@x.com", "p1")

	resp, body := getWithToken(t, app, "/api/auth/me", registered.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, registered.User.ID, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestMeWithoutTokenIsUnauthorized(t *testing.T) {
	app := newTestApp(t)

	resp, body := getWithToken(t, app, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestMeWithTamperedTokenIsUnauthorized(t *testing.T) {
	app := newTestApp(t)
	registered := register(t, app, "Ann", "a@x.com", "p1")

	tampered := registered.Token[:len(registered.Token)-2] + "xx"
	resp, _ := getWithToken(t, app, "/api/auth/me", tampered)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogEndpointsAreAnonymous(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/courses", "/api/fees", "/api/fees/summary", "/api/students", "/api/health"} {
		resp, _ := getWithToken(t, app, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
