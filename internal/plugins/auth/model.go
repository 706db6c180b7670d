// Package auth handles credential verification, access-token issuance, and
// bearer-token identity resolution for the MyBlog API. The site has a single
// admin user in practice; tokens are stateless JWTs so no session store is
// needed, at the cost of no server-side revocation.
//
// This is a CORE plugin -- every protected route in the application goes
// through its middleware.
package auth

import (
	"time"
)

// RoleAdmin is the role assigned to provisioned admin users. Role is an
// explicit column so a real role model can be added without a schema change;
// see CanAdmin for the current (provisional) capability rule.
const RoleAdmin = "admin"

// User represents a registered user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// --- Request DTOs (bound from HTTP requests) ---

// LoginRequest holds login credentials, submitted either as a form
// (POST /api/auth/login) or as JSON (POST /api/auth/login/json).
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=50"`
	Password string `json:"password" form:"password" validate:"required,max=128"`
}

// TokenResponse is the successful login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
