package model

import "time"

// AccessCodeStatus describes whether an access code can still unlock the order form.
type AccessCodeStatus string

const (
	AccessCodeStatusActive   AccessCodeStatus = "active"
	AccessCodeStatusUsed     AccessCodeStatus = "used"
	AccessCodeStatusInactive AccessCodeStatus = "inactive"
	AccessCodeStatusExpired  AccessCodeStatus = "expired"
)

// AccessCodeLength is the length of every access code.
const AccessCodeLength = 8

// AccessCode is a single-use credential gating the order form.
type AccessCode struct {
	ID        string
	Code      string
	CreatedAt time.Time
	ExpiresAt *time.Time
	IsUsed    bool
	UsedAt    *time.Time
	IsActive  bool
}

// Status reports the lifecycle state of the code at the given instant.
func (c AccessCode) Status(now time.Time) AccessCodeStatus {
	switch {
	case c.IsUsed:
		return AccessCodeStatusUsed
	case !c.IsActive:
		return AccessCodeStatusInactive
	case c.ExpiresAt != nil && !now.Before(*c.ExpiresAt):
		return AccessCodeStatusExpired
	default:
		return AccessCodeStatusActive
	}
}

// Usable reports whether the code may still be consumed.
func (c AccessCode) Usable(now time.Time) bool {
	return c.Status(now) == AccessCodeStatusActive
}

// AccessClaims is the content of a signed access token. It is never persisted.
type AccessClaims struct {
	CodeID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
