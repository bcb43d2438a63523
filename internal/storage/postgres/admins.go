package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
)

type adminRepository struct {
	storage *Storage
}

func (r *adminRepository) Upsert(ctx context.Context, email, passwordHash, role string) (*model.Admin, error) {
	const query = `INSERT INTO admins (email, password_hash, role) VALUES ($1, $2, $3)
                   ON CONFLICT (email) DO UPDATE SET password_hash=EXCLUDED.password_hash, role=EXCLUDED.role
                   RETURNING id, created_at`
	a := model.Admin{Email: email, PasswordHash: passwordHash, Role: role}
	if err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, role).Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM admins WHERE email=$1`
	return r.get(ctx, query, email)
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	const query = `SELECT id, email, password_hash, role, created_at FROM admins WHERE id=$1`
	return r.get(ctx, query, id)
}

func (r *adminRepository) get(ctx context.Context, query string, arg any) (*model.Admin, error) {
	var a model.Admin
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
