package handlers

import (
	"context"
	"io"

	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/usecase"
)

// AccessCodeFacade validates client access codes.
type AccessCodeFacade interface {
	ValidateAccessCode(ctx context.Context, code string) (string, *model.AccessClaims, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, order *model.OrderSubmission, remoteAddr string) (*model.OrderSummary, error)
	Products() []model.Product
}

// AdminFacade provides operator login and access code management.
type AdminFacade interface {
	Login(ctx context.Context, email, password string) (string, error)
	AuthorizeAdmin(ctx context.Context, token string) (*model.Admin, error)
	CreateAccessCode(ctx context.Context, custom string, expiresInHours int) (*model.AccessCode, error)
	GenerateAccessCode(ctx context.Context) (*model.AccessCode, error)
	AccessCodes(ctx context.Context) ([]usecase.CodeListing, error)
	DeactivateAccessCode(ctx context.Context, code string) error
	DeleteAccessCode(ctx context.Context, code string) error
	ExportAccessCodes(ctx context.Context, w io.Writer) error
}

// HealthFacade reports backing store health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// OrderFormFacade aggregates the full set of operations used across handlers.
type OrderFormFacade interface {
	AccessCodeFacade
	OrderFacade
	AdminFacade
	HealthFacade
}
