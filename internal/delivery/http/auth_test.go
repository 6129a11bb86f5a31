package http_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpdelivery "github.com/mutugading/goapps-backend/services/uom/internal/delivery/http"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
)

const testSecret = "test-secret"

type blacklist struct {
	revoked map[string]bool
	err     error
}

func (b blacklist) IsBlacklisted(_ context.Context, id string) (bool, error) {
	return b.revoked[id], b.err
}

func withAuth(bl httpdelivery.TokenBlacklistChecker) func(*httpdelivery.RouterOptions) {
	return func(o *httpdelivery.RouterOptions) {
		o.Config.JWT = config.JWTConfig{Enabled: true, AccessTokenSecret: testSecret, Issuer: "goapps-iam"}
		o.Blacklist = bl
	}
}

func signToken(t *testing.T, secret, tokenType string, mutate func(*httpdelivery.JWTClaims)) string {
	t.Helper()

	claims := httpdelivery.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Issuer:    "goapps-iam",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: tokenType,
		UserID:    "user-1",
		Username:  "alice",
	}
	if mutate != nil {
		mutate(&claims)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}

func TestAuth(t *testing.T) {
	srv := newTestServer(t, withAuth(blacklist{revoked: map[string]bool{"revoked": true}}))
	allowed := func(c *httpdelivery.JWTClaims) {
		c.Permissions = []string{httpdelivery.PermStatusView}
	}

	t.Run("missing token", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil)
		assertError(t, rec, http.StatusUnauthorized, 1002, "Provided data is invalid: A valid bearer token is required")
	})

	t.Run("wrong secret", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil, bearer(signToken(t, "other", "access", allowed))...)
		assertError(t, rec, http.StatusUnauthorized, 1002, "")
	})

	t.Run("refresh token", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil, bearer(signToken(t, testSecret, "refresh", allowed))...)
		assertError(t, rec, http.StatusUnauthorized, 1002, "")
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, "access", func(c *httpdelivery.JWTClaims) {
			allowed(c)
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		})
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil, bearer(token)...)
		assertError(t, rec, http.StatusUnauthorized, 1002, "")
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := signToken(t, testSecret, "access", func(c *httpdelivery.JWTClaims) {
			allowed(c)
			c.Issuer = "someone-else"
		})
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil, bearer(token)...)
		assertError(t, rec, http.StatusUnauthorized, 1002, "")
	})

	t.Run("revoked token", func(t *testing.T) {
		token := signToken(t, testSecret, "access", func(c *httpdelivery.JWTClaims) {
			allowed(c)
			c.ID = "revoked"
		})
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil, bearer(token)...)
		assertError(t, rec, http.StatusUnauthorized, 1002, "Provided data is invalid: Token has been revoked")
	})

	t.Run("permitted", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil, bearer(signToken(t, testSecret, "access", allowed))...)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("missing permission", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{"name": "Active"},
			bearer(signToken(t, testSecret, "access", allowed))...)
		assertError(t, rec, http.StatusForbidden, 1002, "Provided data is invalid: Permission uom.master.status.create is required")
	})

	t.Run("super admin bypasses permissions", func(t *testing.T) {
		token := signToken(t, testSecret, "access", func(c *httpdelivery.JWTClaims) {
			c.Roles = []string{httpdelivery.SuperAdminRole}
		})
		rec := srv.do(t, http.MethodPost, "/api/v1/uom-status", map[string]any{"name": "Active"}, bearer(token)...)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("health stays public", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuth_BlacklistFailureFailsOpen(t *testing.T) {
	srv := newTestServer(t, withAuth(blacklist{err: errors.New("redis down")}))

	token := signToken(t, testSecret, "access", func(c *httpdelivery.JWTClaims) {
		c.Permissions = []string{httpdelivery.PermStatusView}
	})
	rec := srv.do(t, http.MethodGet, "/api/v1/uom-status", nil, bearer(token)...)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
