package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/domain/repository"
	"github.com/polkiloo/orderform/internal/metrics"
	pkgAuth "github.com/polkiloo/orderform/internal/pkg/auth"
	"github.com/polkiloo/orderform/internal/report"
)

// codeAlphabet excludes I, O, 0 and 1.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const maxGenerateAttempts = 5

// CodeAnnouncer mails newly generated codes to the company.
type CodeAnnouncer interface {
	AnnounceAccessCode(ctx context.Context, code *model.AccessCode) error
}

// CodeListing is an access code with its status at listing time.
type CodeListing struct {
	model.AccessCode
	Status model.AccessCodeStatus
}

// AccessCodeUseCase manages the access code lifecycle.
type AccessCodeUseCase struct {
	codes     repository.AccessCodeRepository
	tokens    pkgAuth.AccessTokenIssuer
	announcer CodeAnnouncer
	metrics   *metrics.Metrics
	log       *slog.Logger

	now    func() time.Time
	random io.Reader
}

// NewAccessCodeUseCase constructs AccessCodeUseCase.
func NewAccessCodeUseCase(
	codes repository.AccessCodeRepository,
	tokens pkgAuth.AccessTokenIssuer,
	announcer CodeAnnouncer,
	m *metrics.Metrics,
	log *slog.Logger,
) *AccessCodeUseCase {
	return &AccessCodeUseCase{
		codes:     codes,
		tokens:    tokens,
		announcer: announcer,
		metrics:   m,
		log:       log,
		now:       time.Now,
		random:    rand.Reader,
	}
}

// Validate consumes the code and returns a bearer token bound to it.
// Every way a code can be unusable yields ErrInvalidAccessCode.
func (u *AccessCodeUseCase) Validate(ctx context.Context, raw string) (string, *model.AccessClaims, error) {
	code := NormalizeCode(raw)
	if !ValidCodeFormat(code) {
		u.metrics.CodeValidations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return "", nil, domainErrors.ErrInvalidAccessCode
	}

	var (
		token  string
		claims *model.AccessClaims
	)
	_, err := u.codes.Consume(ctx, code, u.now(), func(c *model.AccessCode) error {
		var err error
		token, claims, err = u.tokens.Issue(c.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidAccessCode) {
			u.metrics.CodeValidations.WithLabelValues(metrics.OutcomeInvalid).Inc()
			return "", nil, domainErrors.ErrInvalidAccessCode
		}
		u.metrics.CodeValidations.WithLabelValues(metrics.OutcomeError).Inc()
		return "", nil, fmt.Errorf("consume access code: %w", err)
	}

	u.metrics.CodeValidations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	u.log.InfoContext(ctx, "access code consumed", slog.String("code_id", claims.CodeID))
	return token, claims, nil
}

// MaxCodeLifetime bounds the expiry accepted by Create.
const MaxCodeLifetime = 87600 * time.Hour

// Create stores a new active code. An empty custom value generates a random one;
// a zero expiresIn means the code never expires.
func (u *AccessCodeUseCase) Create(ctx context.Context, custom string, expiresIn time.Duration) (*model.AccessCode, error) {
	if expiresIn < 0 {
		return nil, &domainErrors.ValidationError{Violations: []domainErrors.Violation{{Field: "expiresIn", Reason: "must not be negative"}}}
	}
	if expiresIn > MaxCodeLifetime {
		return nil, &domainErrors.ValidationError{Violations: []domainErrors.Violation{{Field: "expiresIn", Reason: "must be at most 87600 hours"}}}
	}

	if custom != "" {
		code := NormalizeCode(custom)
		if !ValidCodeFormat(code) {
			return nil, domainErrors.ErrInvalidCodeFormat
		}
		return u.codes.Create(ctx, u.newCode(code, expiresIn))
	}

	for attempt := 1; ; attempt++ {
		code, err := GenerateCode(u.random)
		if err != nil {
			return nil, err
		}
		created, err := u.codes.Create(ctx, u.newCode(code, expiresIn))
		if errors.Is(err, domainErrors.ErrAlreadyExists) && attempt < maxGenerateAttempts {
			continue
		}
		return created, err
	}
}

// Generate creates a random code and mails it to the company.
// The code is kept even when the mail fails; the error is returned alongside it.
func (u *AccessCodeUseCase) Generate(ctx context.Context) (*model.AccessCode, error) {
	code, err := u.Create(ctx, "", 0)
	if err != nil {
		return nil, err
	}
	if err := u.announcer.AnnounceAccessCode(ctx, code); err != nil {
		u.metrics.NotificationFailures.WithLabelValues(metrics.KindAccessCode, metrics.OutcomeFailed).Inc()
		u.log.ErrorContext(ctx, "access code announcement failed", slog.String("code_id", code.ID), slog.Any("error", err))
		return code, err
	}
	return code, nil
}

// List returns all codes newest first.
func (u *AccessCodeUseCase) List(ctx context.Context) ([]CodeListing, error) {
	codes, err := u.codes.List(ctx)
	if err != nil {
		return nil, err
	}
	now := u.now()
	listings := make([]CodeListing, 0, len(codes))
	for _, c := range codes {
		listings = append(listings, CodeListing{AccessCode: c, Status: c.Status(now)})
	}
	return listings, nil
}

func (u *AccessCodeUseCase) Deactivate(ctx context.Context, code string) error {
	return u.codes.Deactivate(ctx, NormalizeCode(code))
}

func (u *AccessCodeUseCase) Delete(ctx context.Context, code string) error {
	return u.codes.Delete(ctx, NormalizeCode(code))
}

// Export writes every code as an xlsx workbook.
func (u *AccessCodeUseCase) Export(ctx context.Context, w io.Writer) error {
	codes, err := u.codes.List(ctx)
	if err != nil {
		return err
	}
	return report.WriteAccessCodes(w, codes, u.now())
}

func (u *AccessCodeUseCase) newCode(code string, expiresIn time.Duration) *model.AccessCode {
	now := u.now()
	c := &model.AccessCode{
		ID:        uuid.NewString(),
		Code:      code,
		CreatedAt: now,
		IsActive:  true,
	}
	if expiresIn > 0 {
		expires := now.Add(expiresIn)
		c.ExpiresAt = &expires
	}
	return c
}

// GenerateCode draws an access code from r. len(codeAlphabet) divides 256, so the modulo draw is uniform.
func GenerateCode(r io.Reader) (string, error) {
	buf := make([]byte, model.AccessCodeLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
