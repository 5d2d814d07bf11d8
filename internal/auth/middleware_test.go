package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/student-service/internal/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.Email] = user
	}
	return repo
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

func newTestApp(m *Middleware, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{}, extra...)
	chain = append(chain, m.Handle, func(c *fiber.Ctx) error {
		if principal, ok := PrincipalFromContext(c); ok {
			return c.SendString("subject:" + principal.Subject)
		}
		return c.SendString("anonymous")
	})
	app.Get("/probe", chain...)
	return app
}

func probe(t *testing.T, app *fiber.App, authorization string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddlewarePassesThroughWithoutHeader(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", testTTLMillis)
	m := NewMiddleware(tm, newStubUserRepo())

	assert.Equal(t, "anonymous", probe(t, newTestApp(m), ""))
}

func TestMiddlewarePassesThroughMalformedScheme(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", testTTLMillis)
	user := &domain.User{ID: "1", Email: "a@x.com"}
	m := NewMiddleware(tm, newStubUserRepo(user))

	token, _, err := tm.Issue("a@x.com")
	require.NoError(t, err)

	assert.Equal(t, "anonymous", probe(t, newTestApp(m), "Basic "+token))
	assert.Equal(t, "anonymous", probe(t, newTestApp(m), token))
}

func TestMiddlewareEstablishesPrincipal(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", testTTLMillis)
	user := &domain.User{ID: "1", Email: "a@x.com", Name: "Ann"}
	m := NewMiddleware(tm, newStubUserRepo(user))

	token, _, err := tm.Issue("a@x.com")
	require.NoError(t, err)

	assert.Equal(t, "subject:a@x.com", probe(t, newTestApp(m), "Bearer "+token))
}

func TestMiddlewareRejectsNothingOnBadToken(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", testTTLMillis)
	m := NewMiddleware(tm, newStubUserRepo())

	assert.Equal(t, "anonymous", probe(t, newTestApp(m), "Bearer not.a.token"))
}

func TestMiddlewareAnonymousForUnknownSubject(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", testTTLMillis)
	m := NewMiddleware(tm, newStubUserRepo())

	token, _, err := tm.Issue("ghost@x.com")
	require.NoError(t, err)

	assert.Equal(t, "anonymous", probe(t, newTestApp(m), "Bearer "+token))
}

func TestMiddlewareKeepsExistingPrincipal(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", testTTLMillis)
	user := &domain.User{ID: "1", Email: "a@x.com"}
	m := NewMiddleware(tm, newStubUserRepo(user))

	preset := func(c *fiber.Ctx) error {
		c.Locals(principalKey, &Principal{Subject: "upstream@x.com"})
		return c.Next()
	}

	token, _, err := tm.Issue("a@x.com")
	require.NoError(t, err)

	assert.Equal(t, "subject:upstream@x.com", probe(t, newTestApp(m, preset), "Bearer "+token))
}

func TestRequireAuthenticatedBlocksAnonymous(t *testing.T) {
	tm := NewTokenManager("unit-test-secret", testTTLMillis)
	m := NewMiddleware(tm, newStubUserRepo())

	app := fiber.New()
	app.Get("/guarded", m.Handle, RequireAuthenticated(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
