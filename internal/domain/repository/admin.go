package repository

import (
	"context"

	"github.com/polkiloo/orderform/internal/domain/model"
)

// AdminRepository describes persistence operations for operators.
type AdminRepository interface {
	Upsert(ctx context.Context, email, passwordHash, role string) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
}
