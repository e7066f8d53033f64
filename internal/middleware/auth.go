package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
)

// AuthMiddleware verifies bearer tokens issued by the configured OIDC
// provider. With no issuer configured the middleware passes every request
// through, which is the local development mode.
type AuthMiddleware struct {
	verifier *oidc.IDTokenVerifier
}

// NewAuthMiddleware discovers the OIDC provider and builds a token
// verifier. An empty issuer disables verification.
func NewAuthMiddleware(ctx context.Context, issuer, clientID string) (*AuthMiddleware, error) {
	if issuer == "" {
		return &AuthMiddleware{}, nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	verifier := provider.Verifier(&oidc.Config{ClientID: clientID})
	return &AuthMiddleware{verifier: verifier}, nil
}

// Enabled reports whether token verification is active.
func (m *AuthMiddleware) Enabled() bool {
	return m.verifier != nil
}

// RequireAuth rejects requests without a valid bearer token. The verified
// subject is stored in c.Locals("subject") for handlers and access logs.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	if m.verifier == nil {
		return c.Next()
	}

	token := bearerToken(c)
	if token == "" {
		return unauthorized(c, "missing bearer token")
	}

	idToken, err := m.verifier.Verify(c.Context(), token)
	if err != nil {
		return unauthorized(c, "invalid bearer token")
	}

	c.Locals("subject", idToken.Subject)
	return c.Next()
}

// OptionalAuth records the subject of a valid bearer token but never
// rejects the request. Used on the dashboard, which stays reachable from a
// browser without a token.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if m.verifier == nil {
		return c.Next()
	}

	if token := bearerToken(c); token != "" {
		if idToken, err := m.verifier.Verify(c.Context(), token); err == nil {
			c.Locals("subject", idToken.Subject)
		}
	}
	return c.Next()
}

func bearerToken(c fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": "error",
		"error":  msg,
	})
}
