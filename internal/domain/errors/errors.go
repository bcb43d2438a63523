package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAccessCode  = errors.New("invalid or already used access code")
	ErrInvalidCodeFormat  = errors.New("access code must be 8 uppercase letters or digits")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// Violation describes a single rejected field of an inbound payload.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every violation found in a payload.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// DeliveryError reports a notification transport failure.
// Delivered lists recipients that already received their message.
type DeliveryError struct {
	Delivered []string
	Failed    string
	Err       error
}

func (e *DeliveryError) Error() string {
	if e.Partial() {
		return fmt.Sprintf("partial delivery: sent to %s, failed for %s: %v", strings.Join(e.Delivered, ", "), e.Failed, e.Err)
	}
	return fmt.Sprintf("delivery to %s failed: %v", e.Failed, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Partial reports whether some recipients were already notified.
func (e *DeliveryError) Partial() bool {
	return len(e.Delivered) > 0
}

// RateLimitError is returned when a client exhausted its submission window.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%v, retry after %s", ErrRateLimited, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}
