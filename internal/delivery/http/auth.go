package http

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/audit"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/uom/pkg/i18n"
)

const claimsKey = "auth_claims"

// SuperAdminRole bypasses permission checks.
const SuperAdminRole = "SUPER_ADMIN"

// JWTClaims mirrors the IAM service JWT claims structure.
type JWTClaims struct {
	jwt.RegisteredClaims
	TokenType   string   `json:"token_type"`
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// TokenBlacklistChecker checks if a token has been revoked.
type TokenBlacklistChecker interface {
	IsBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates bearer tokens issued by the IAM service. blacklist is
// optional; when it is nil or fails, revocation is not enforced.
func Auth(cfg *config.JWTConfig, blacklist TokenBlacklistChecker, t *ErrorTranslator) gin.HandlerFunc {
	secret := []byte(cfg.AccessTokenSecret)

	var opts []jwt.ParserOption
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected request without token")
			t.Abort(c, http.StatusUnauthorized, shared.KindInvalidData, i18n.KeyUnauthorized)
			return
		}

		claims, err := validateAccessToken(token, secret, opts...)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected invalid token")
			t.Abort(c, http.StatusUnauthorized, shared.KindInvalidData, i18n.KeyUnauthorized)
			return
		}

		if blacklist != nil && claims.ID != "" {
			blacklisted, blErr := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if blErr != nil {
				// Fail open: access tokens are short-lived.
				log.Warn().Err(blErr).Msg("Failed to check token blacklist")
			}
			if blacklisted {
				t.Abort(c, http.StatusUnauthorized, shared.KindInvalidData, i18n.KeyTokenRevoked)
				return
			}
		}

		c.Set(claimsKey, claims)

		performer := claims.Username
		if performer == "" {
			performer = claims.UserID
		}
		c.Request = c.Request.WithContext(audit.WithPerformer(c.Request.Context(), performer))

		c.Next()
	}
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("no authorization header")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errors.New("invalid authorization format")
	}
	return token, nil
}

func validateAccessToken(tokenString string, secret []byte, opts ...jwt.ParserOption) (*JWTClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token expired")
		}
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims.TokenType != "access" {
		return nil, errors.New("not an access token")
	}

	return claims, nil
}

// ClaimsFrom returns the verified claims of the request, if any.
func ClaimsFrom(c *gin.Context) (*JWTClaims, bool) {
	claims, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	typed, ok := claims.(*JWTClaims)
	return typed, ok
}

// RequirePermission rejects callers whose token lacks permission. It is a
// no-op when the request carries no verified claims, so it only takes effect
// behind Auth.
func RequirePermission(permission string, t *ErrorTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || slices.Contains(claims.Roles, SuperAdminRole) || slices.Contains(claims.Permissions, permission) {
			c.Next()
			return
		}

		log.Warn().
			Str("route", route(c)).
			Str("required", permission).
			Str("user_id", claims.UserID).
			Msg("Permission denied")
		t.Abort(c, http.StatusForbidden, shared.KindInvalidData, i18n.KeyForbidden, permission)
	}
}
