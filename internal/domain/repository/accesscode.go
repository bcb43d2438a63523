package repository

import (
	"context"
	"time"

	"github.com/polkiloo/orderform/internal/domain/model"
)

// AccessCodeRepository describes persistence operations for access codes.
type AccessCodeRepository interface {
	Create(ctx context.Context, code *model.AccessCode) (*model.AccessCode, error)
	List(ctx context.Context) ([]model.AccessCode, error)
	GetByCode(ctx context.Context, code string) (*model.AccessCode, error)
	// Consume marks a usable code as used at the given instant. onConsumed runs before the
	// change is committed; an error from it rolls the consumption back.
	Consume(ctx context.Context, code string, at time.Time, onConsumed func(*model.AccessCode) error) (*model.AccessCode, error)
	Deactivate(ctx context.Context, code string) error
	Delete(ctx context.Context, code string) error
}
