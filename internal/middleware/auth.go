package middleware

import (
	"net/http"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/golang-jwt/jwt/v5"
)

// Authorizer decides whether a request may mutate stored images.
type Authorizer interface {
	Authorize(r *http.Request) bool
}

// AuthorizerFunc adapts a plain function to Authorizer.
type AuthorizerFunc func(r *http.Request) bool

func (f AuthorizerFunc) Authorize(r *http.Request) bool {
	return f(r)
}

// AllowAll is the permissive default used when no token secret is configured.
var AllowAll Authorizer = AuthorizerFunc(func(*http.Request) bool { return true })

// JWTAuthorizer accepts HS256 bearer tokens signed with secret whose role
// claim is one of allowedRoles. An empty role list accepts any valid token.
type JWTAuthorizer struct {
	secret       []byte
	allowedRoles []string
	logger       log.Logger
}

func NewJWTAuthorizer(secret string, logger log.Logger, allowedRoles ...string) *JWTAuthorizer {
	return &JWTAuthorizer{secret: []byte(secret), allowedRoles: allowedRoles, logger: logger}
}

func (a *JWTAuthorizer) Authorize(r *http.Request) bool {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		level.Debug(a.logger).Log("msg", "authorization denied", "reason", "missing token")
		return false
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		level.Debug(a.logger).Log("msg", "authorization denied", "reason", "invalid token format")
		return false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		level.Debug(a.logger).Log("msg", "authorization denied", "reason", "token validation failed", "err", err)
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	if len(a.allowedRoles) == 0 {
		return true
	}
	role, _ := claims["role"].(string)
	for _, allowed := range a.allowedRoles {
		if role == allowed {
			return true
		}
	}
	level.Debug(a.logger).Log("msg", "authorization denied", "reason", "role", "role", role)
	return false
}
