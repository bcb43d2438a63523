package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
)

const accessCodeColumns = `id::text, code, created_at, expires_at, is_used, used_at, is_active`

type accessCodeRepository struct {
	storage *Storage
}

func scanAccessCode(row pgx.Row) (*model.AccessCode, error) {
	var c model.AccessCode
	if err := row.Scan(&c.ID, &c.Code, &c.CreatedAt, &c.ExpiresAt, &c.IsUsed, &c.UsedAt, &c.IsActive); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *accessCodeRepository) Create(ctx context.Context, code *model.AccessCode) (*model.AccessCode, error) {
	const query = `INSERT INTO access_codes (id, code, created_at, expires_at, is_used, used_at, is_active)
                   VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)`
	_, err := r.storage.pool.Exec(ctx, query, code.ID, code.Code, code.CreatedAt, code.ExpiresAt, code.IsUsed, code.UsedAt, code.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	created := *code
	return &created, nil
}

func (r *accessCodeRepository) List(ctx context.Context) ([]model.AccessCode, error) {
	const query = `SELECT ` + accessCodeColumns + ` FROM access_codes ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.AccessCode, 0)
	for rows.Next() {
		c, err := scanAccessCode(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *accessCodeRepository) GetByCode(ctx context.Context, code string) (*model.AccessCode, error) {
	const query = `SELECT ` + accessCodeColumns + ` FROM access_codes WHERE code=$1`
	c, err := scanAccessCode(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Consume flips is_used with a single conditional update, so of several
// concurrent callers at most one gets a row back.
func (r *accessCodeRepository) Consume(ctx context.Context, code string, at time.Time, onConsumed func(*model.AccessCode) error) (*model.AccessCode, error) {
	const query = `UPDATE access_codes SET is_used=TRUE, used_at=$2
                   WHERE code=$1 AND is_used=FALSE AND is_active=TRUE AND (expires_at IS NULL OR expires_at > $2)
                   RETURNING ` + accessCodeColumns

	var consumed *model.AccessCode
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		c, err := scanAccessCode(tx.QueryRow(ctx, query, code, at))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInvalidAccessCode
			}
			return err
		}
		if onConsumed != nil {
			if err := onConsumed(c); err != nil {
				return err
			}
		}
		consumed = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

func (r *accessCodeRepository) Deactivate(ctx context.Context, code string) error {
	const query = `UPDATE access_codes SET is_active=FALSE WHERE code=$1`
	tag, err := r.storage.pool.Exec(ctx, query, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *accessCodeRepository) Delete(ctx context.Context, code string) error {
	const query = `DELETE FROM access_codes WHERE code=$1`
	tag, err := r.storage.pool.Exec(ctx, query, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
