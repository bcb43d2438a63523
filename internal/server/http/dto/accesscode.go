package dto

import "time"

// ValidateCodeRequest is the body of POST /validate-access-code.
type ValidateCodeRequest struct {
	Code string `json:"code"`
}

// ValidateCodeResponse reports the outcome of a code validation.
type ValidateCodeResponse struct {
	Valid       bool   `json:"valid"`
	Message     string `json:"message"`
	AccessToken string `json:"accessToken,omitempty"`
}

// CreateCodeRequest creates an access code. Empty Code means random.
// CustomCode and ExpiresIn are the names the admin dashboard sends.
type CreateCodeRequest struct {
	Code           string `json:"code"`
	CustomCode     string `json:"customCode"`
	ExpiresInHours *int   `json:"expiresInHours"`
	ExpiresIn      *int   `json:"expiresIn"`
}

// CustomValue returns the requested code, empty for a random one.
func (r CreateCodeRequest) CustomValue() string {
	if r.Code != "" {
		return r.Code
	}
	return r.CustomCode
}

// Hours returns the requested lifetime in hours, zero for no expiry.
func (r CreateCodeRequest) Hours() int {
	switch {
	case r.ExpiresInHours != nil:
		return *r.ExpiresInHours
	case r.ExpiresIn != nil:
		return *r.ExpiresIn
	}
	return 0
}

// AccessCodeResponse is the admin view of an access code.
type AccessCodeResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	IsUsed    bool       `json:"isUsed"`
	IsActive  bool       `json:"isActive"`
}

// GenerateCodeResponse is returned by the generate endpoint.
// Error is set when the code was stored but the announcement mail failed.
type GenerateCodeResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Error   string             `json:"error,omitempty"`
	Code    AccessCodeResponse `json:"code"`
}
