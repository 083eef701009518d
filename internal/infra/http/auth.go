// File: internal/infra/http/auth.go
package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Chakis0/multibot-service/internal/config"
)

// AuthManager issues and verifies the short-lived admin-API tokens. Login
// exchanges the shared operator token for an HS256 JWT; every guarded route
// expects it as a bearer header.
type AuthManager struct {
	token      string
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewAuthManager(cfg config.AdminConfig) *AuthManager {
	return &AuthManager{
		token:      cfg.Token,
		jwtSecret:  []byte(cfg.JWTSecret),
		sessionTTL: cfg.SessionTTL,
	}
}

// Enabled reports whether the admin API is configured at all.
func (a *AuthManager) Enabled() bool {
	return a.token != "" && len(a.jwtSecret) > 0
}

// Login checks the operator token and returns a signed session JWT.
func (a *AuthManager) Login(token string) (string, error) {
	if !a.Enabled() {
		return "", errors.New("admin api disabled")
	}
	if token != a.token {
		return "", errors.New("invalid token")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
}

// Verify parses a bearer JWT and returns an error unless it is valid and live.
func (a *AuthManager) Verify(tokenString string) error {
	if !a.Enabled() {
		return errors.New("admin api disabled")
	}
	tok, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if !tok.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// RequireAuth guards a subtree with bearer-JWT auth.
func (a *AuthManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(h, prefix) {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if err := a.Verify(strings.TrimPrefix(h, prefix)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
