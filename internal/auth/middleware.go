package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/student-service/internal/domain"
	"github.com/spec-kit/student-service/internal/repository"
)

const principalKey = "auth_principal"

// Principal is the request-scoped authenticated identity. It is created
// by the middleware when a bearer token validates and discarded with the
// request; nothing about it survives across requests.
type Principal struct {
	Subject string
	User    *domain.User
}

// Middleware authenticates bearer tokens without enforcing authorization.
// Requests without a usable token pass through anonymous; blocking is
// left to route-level guards.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle extracts and validates an Authorization bearer token and, on
// success, binds a Principal to the request. A principal established
// upstream is kept as is. Token failures of any kind (missing header,
// wrong scheme, bad signature, expiry) all pass through identically.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if _, ok := PrincipalFromContext(c); ok {
		return c.Next()
	}

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Next()
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}
	token := parts[1]

	subject, ok := m.tokens.ExtractSubject(token)
	if !ok || !m.tokens.IsValid(token, subject) {
		return c.Next()
	}

	user, err := m.users.FindByEmail(c.Context(), subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			// token subject no longer resolves to an account
			return c.Next()
		}
		return err
	}

	c.Locals(principalKey, &Principal{Subject: subject, User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
