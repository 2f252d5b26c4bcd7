package user

import (
	"time"

	"shop-backend/internal/policy"
)

type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         policy.Role `json:"role"`
	Phone        string      `json:"phone,omitempty"`
	Avatar       string      `json:"avatar,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
