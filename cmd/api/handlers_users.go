package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/httpx"
	"shop-backend/internal/policy"
	"shop-backend/internal/user"
)

// selfOrAdmin gates user item routes: admins reach any account, everyone
// else only their own.
func selfOrAdmin(c *gin.Context) bool {
	u := httpx.CurrentUser(c)
	if u == nil {
		return false
	}
	return u.Role == policy.RoleAdmin || u.ID == c.Param("id")
}

// getUserHandler godoc
// @Summary   Get a user by id (self or admin)
// @Tags      users
// @Security  BearerAuth
// @Success   200 {object} user.User
// @Failure   403 {object} httpx.ErrorBody
// @Failure   404 {object} httpx.ErrorBody
// @Router    /users/{id} [get]
func getUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !selfOrAdmin(c) {
			httpx.Forbidden(c, "not allowed")
			return
		}
		u, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.NotFound(c, "user not found")
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
	Password string `json:"password"`
	// Role is honored only when the requester is an admin.
	Role policy.Role `json:"role"`
}

// updateUserHandler godoc
// @Summary   Partially update a user (self or admin)
// @Tags      users
// @Security  BearerAuth
// @Param     body body updateUserRequest true "fields to update; empty keeps current"
// @Success   200 {object} user.User
// @Failure   400 {object} httpx.ErrorBody
// @Failure   403 {object} httpx.ErrorBody
// @Router    /users/{id} [patch]
func updateUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !selfOrAdmin(c) {
			httpx.Forbidden(c, "not allowed")
			return
		}
		var in updateUserRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Validation(c, "invalid json payload")
			return
		}
		requester := httpx.CurrentUser(c)
		if requester.Role != policy.RoleAdmin {
			in.Role = "" // role changes are an admin-only path
		} else if in.Role != "" && !in.Role.Valid() {
			httpx.Validation(c, "invalid role")
			return
		}

		u := &user.User{
			ID:       c.Param("id"),
			Username: in.Username,
			Email:    in.Email,
			Role:     in.Role,
			Phone:    in.Phone,
			Avatar:   in.Avatar,
		}
		updatePassword := false
		if in.Password != "" {
			hash, err := user.HashPassword(in.Password)
			if err != nil {
				httpx.Internal(c, "hash error")
				return
			}
			u.PasswordHash = hash
			updatePassword = true
		}
		if err := repo.Update(c.Request.Context(), u, updatePassword); err != nil {
			httpx.Internal(c, "update failed")
			return
		}
		out, err := repo.GetByID(c.Request.Context(), u.ID)
		if err != nil {
			httpx.NotFound(c, "user not found")
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// deleteUserHandler godoc
// @Summary   Delete a user (self or admin); their orders and reviews cascade
// @Tags      users
// @Security  BearerAuth
// @Success   204
// @Failure   403 {object} httpx.ErrorBody
// @Failure   404 {object} httpx.ErrorBody
// @Router    /users/{id} [delete]
func deleteUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !selfOrAdmin(c) {
			httpx.Forbidden(c, "not allowed")
			return
		}
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Internal(c, "delete failed")
			return
		}
		if !ok {
			httpx.NotFound(c, "user not found")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
