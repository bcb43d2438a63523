package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/domain/repository"
	pkgAuth "github.com/polkiloo/orderform/internal/pkg/auth"
)

const minAdminPasswordLength = 8

// AdminUseCase handles operator login, authorization and bootstrap.
type AdminUseCase struct {
	admins repository.AdminRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	log    *slog.Logger
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(admins repository.AdminRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, log *slog.Logger) *AdminUseCase {
	return &AdminUseCase{admins: admins, hasher: hasher, tokens: strategy, log: log}
}

// Login validates credentials and returns a session token.
func (u *AdminUseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	admin, err := u.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := u.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}

	return u.tokens.IssueToken(admin.ID)
}

// Authorize resolves a session token to an operator holding the admin role.
func (u *AdminUseCase) Authorize(ctx context.Context, token string) (*model.Admin, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	id, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthorized
	}

	admin, err := u.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}
	if !admin.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	return admin, nil
}

// Bootstrap creates the operator or resets its password and role.
func (u *AdminUseCase) Bootstrap(ctx context.Context, email, password string) (*model.Admin, error) {
	email = normalizeEmail(email)

	var violations []domainErrors.Violation
	if !validEmail(email) {
		violations = append(violations, domainErrors.Violation{Field: "email", Reason: "must be a valid email address"})
	}
	if len(password) < minAdminPasswordLength {
		violations = append(violations, domainErrors.Violation{Field: "password", Reason: "must be at least 8 characters"})
	}
	if len(violations) > 0 {
		return nil, &domainErrors.ValidationError{Violations: violations}
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	admin, err := u.admins.Upsert(ctx, email, hash, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "admin account ready", slog.String("email", email), slog.Int64("id", admin.ID))
	return admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
