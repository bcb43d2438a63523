package dto

import domainErrors "github.com/polkiloo/orderform/internal/domain/errors"

// OrderResponse is the body of every POST /send-order reply.
type OrderResponse struct {
	Success    bool                     `json:"success"`
	Message    string                   `json:"message,omitempty"`
	Error      string                   `json:"error,omitempty"`
	Violations []domainErrors.Violation `json:"violations,omitempty"`
}
