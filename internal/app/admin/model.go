package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a dashboard user. Permissions are flattened "module.action"
// strings derived from the assigned roles.
type Admin struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	SuperAdmin  bool      `json:"is_super_admin"`
	Active      bool      `json:"is_active"`
	Roles       []Role    `json:"roles"`
	Permissions []string  `json:"permissions"`
	LastLoginAt time.Time `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type CreateReq struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	RoleIDs  []int64 `json:"role_ids"`
}

type UpdateReq struct {
	Email  *string `json:"email,omitempty"`
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"is_active,omitempty"`
}

type RoleReq struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
