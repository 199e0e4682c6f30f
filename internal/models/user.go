package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the roles used by the loan management frontend.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleHelper   UserRole = "HELPER"
	RoleHomeroom UserRole = "HOMEROOM"
	RoleStudent  UserRole = "STUDENT"
)

// JWTClaims represents the payload of access tokens issued by the external
// identity provider. This service validates them but never mints them.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
