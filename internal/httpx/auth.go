package httpx

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/policy"
	"shop-backend/internal/session"
	"shop-backend/internal/user"
)

// UserKey is the gin context key holding the authenticated *user.User.
const UserKey = "auth.user"

// TokenResolver resolves a bearer token to a user id. *session.Store
// satisfies it; tests substitute their own.
type TokenResolver interface {
	UserID(ctx context.Context, token string) (string, error)
}

// Identity resolves the Authorization header when present and attaches the
// user to the request context. Requests without a token pass through as
// anonymous; a token that fails to resolve is rejected.
func Identity(tokens TokenResolver, users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.Next()
			return
		}
		token := strings.TrimPrefix(h, "Bearer ")
		if token == h || token == "" {
			Unauthorized(c, "malformed authorization header")
			return
		}
		uid, err := tokens.UserID(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				Unauthorized(c, "invalid or expired token")
				return
			}
			Internal(c, "session lookup failed")
			return
		}
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			Unauthorized(c, "invalid or expired token")
			return
		}
		c.Set(UserKey, u)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}

// Require gates a route on the policy table. Anonymous requesters are
// treated as guests and get 401 when denied; authenticated ones get 403.
func Require(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		role := policy.RoleGuest
		if u != nil {
			role = u.Role
		}
		if !policy.Allow(role, resource, action) {
			if u == nil {
				Unauthorized(c, "authentication required")
				return
			}
			Forbidden(c, "not allowed")
			return
		}
		c.Next()
	}
}
