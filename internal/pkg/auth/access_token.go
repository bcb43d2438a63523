package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/orderform/internal/domain/model"
)

// AccessTokenTTL is the fixed lifetime of an order form access token.
const AccessTokenTTL = time.Hour

const accessTokenIssuer = "orderform"

// ErrInvalidAccessToken covers bad signatures, malformed tokens and expiry alike.
var ErrInvalidAccessToken = errors.New("invalid access token")

// AccessTokenIssuer signs bearer tokens proving an access code was consumed.
type AccessTokenIssuer interface {
	Issue(codeID string) (string, *model.AccessClaims, error)
}

// AccessTokenVerifier checks bearer tokens without consulting the code store.
type AccessTokenVerifier interface {
	Verify(token string) (*model.AccessClaims, error)
}

// AccessTokenManager issues and verifies HS256 JWT access tokens.
type AccessTokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewAccessTokenManager creates a manager. A zero TTL means AccessTokenTTL.
func NewAccessTokenManager(secret string, opts Options) *AccessTokenManager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = AccessTokenTTL
	}
	now := opts.clock()
	return &AccessTokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(accessTokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(now),
		),
	}
}

// Issue signs a token for the consumed access code.
func (m *AccessTokenManager) Issue(codeID string) (string, *model.AccessClaims, error) {
	if codeID == "" {
		return "", nil, fmt.Errorf("issue access token: empty code id")
	}
	issuedAt := m.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    accessTokenIssuer,
		Subject:   codeID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}
	return signed, &model.AccessClaims{CodeID: codeID, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Verify checks signature and expiry of the token.
func (m *AccessTokenManager) Verify(token string) (*model.AccessClaims, error) {
	if token == "" {
		return nil, ErrInvalidAccessToken
	}
	var claims jwt.RegisteredClaims
	_, err := m.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrInvalidAccessToken
	}
	return &model.AccessClaims{
		CodeID:    claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
