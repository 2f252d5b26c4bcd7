package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/httpx"
	"shop-backend/internal/user"
)

// sessionStore is the slice of *session.Store the auth handlers need.
type sessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, token string) error
}

// registerHandler godoc
// @Summary      Register a new account
// @Description  Self-registration always creates a "user" role account; any client-supplied role is ignored.
// @Tags         auth
// @Accept       json
// @Param        body body user.RegisterRequest true "registration payload"
// @Success      201 {object} map[string]string
// @Failure      400 {object} httpx.ErrorBody
// @Failure      409 {object} httpx.ErrorBody
// @Router       /register [post]
func registerHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.RegisterRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		u, err := svc.Register(c.Request.Context(), in)
		switch {
		case errors.Is(err, user.ErrMissingFields) || errors.Is(err, user.ErrPasswordMismatch):
			httpx.Validation(c, err.Error())
		case errors.Is(err, user.ErrAlreadyExist):
			httpx.Conflict(c, err.Error())
		case err != nil:
			httpx.Internal(c, "registration failed")
		default:
			c.JSON(http.StatusCreated, gin.H{
				"message": "user registered",
				"user_id": u.ID,
			})
		}
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginHandler godoc
// @Summary  Log in and receive a bearer token
// @Tags     auth
// @Accept   json
// @Param    body body loginRequest true "credentials"
// @Success  200 {object} map[string]any
// @Failure  401 {object} httpx.ErrorBody
// @Router   /login [post]
func loginHandler(svc *user.Service, sessions sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		u, err := svc.Login(c.Request.Context(), in.Username, in.Password)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				httpx.Unauthorized(c, err.Error())
				return
			}
			httpx.Internal(c, "login failed")
			return
		}
		token, err := sessions.Create(c.Request.Context(), u.ID)
		if err != nil {
			httpx.Internal(c, "session creation failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
	}
}

// logoutHandler godoc
// @Summary   Invalidate the current token
// @Tags      auth
// @Security  BearerAuth
// @Success   204
// @Router    /logout [post]
func logoutHandler(sessions sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token != "" {
			_ = sessions.Delete(c.Request.Context(), token)
		}
		c.Status(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary   Current user
// @Tags      users
// @Security  BearerAuth
// @Success   200 {object} user.User
// @Router    /users/me [get]
func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, httpx.CurrentUser(c))
	}
}
