package model

import "time"

// RoleAdmin grants access to access code management.
const RoleAdmin = "admin"

// Admin is an operator allowed to manage access codes.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// IsAdmin reports whether the operator holds the administrator role.
func (a Admin) IsAdmin() bool {
	return a.Role == RoleAdmin
}
