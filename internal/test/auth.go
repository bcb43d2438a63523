package test

import (
	"errors"

	"github.com/polkiloo/orderform/internal/domain/model"
	pkgAuth "github.com/polkiloo/orderform/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses session tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(adminID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(adminID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// AccessTokenStub issues "token:<codeID>" and verifies the same shape.
type AccessTokenStub struct {
	IssueFn  func(string) (string, *model.AccessClaims, error)
	VerifyFn func(string) (*model.AccessClaims, error)
}

func (s AccessTokenStub) Issue(codeID string) (string, *model.AccessClaims, error) {
	if s.IssueFn != nil {
		return s.IssueFn(codeID)
	}
	return "token:" + codeID, &model.AccessClaims{CodeID: codeID}, nil
}

func (s AccessTokenStub) Verify(token string) (*model.AccessClaims, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(token)
	}
	const prefix = "token:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, pkgAuth.ErrInvalidAccessToken
	}
	return &model.AccessClaims{CodeID: token[len(prefix):]}, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
var _ pkgAuth.AccessTokenIssuer = AccessTokenStub{}
var _ pkgAuth.AccessTokenVerifier = AccessTokenStub{}
