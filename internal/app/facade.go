package app

import (
	"context"
	"io"
	"time"

	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// OrderFormFacade exposes the use cases to transports.
type OrderFormFacade struct {
	codes  *usecase.AccessCodeUseCase
	orders *usecase.OrderUseCase
	admins *usecase.AdminUseCase
	health HealthChecker
}

func NewOrderFormFacade(codes *usecase.AccessCodeUseCase, orders *usecase.OrderUseCase, admins *usecase.AdminUseCase, health HealthChecker) *OrderFormFacade {
	return &OrderFormFacade{codes: codes, orders: orders, admins: admins, health: health}
}

func (f *OrderFormFacade) ValidateAccessCode(ctx context.Context, code string) (string, *model.AccessClaims, error) {
	return f.codes.Validate(ctx, code)
}

func (f *OrderFormFacade) SubmitOrder(ctx context.Context, order *model.OrderSubmission, remoteAddr string) (*model.OrderSummary, error) {
	return f.orders.Submit(ctx, order, remoteAddr)
}

func (f *OrderFormFacade) Products() []model.Product {
	return model.Catalog
}

func (f *OrderFormFacade) Login(ctx context.Context, email, password string) (string, error) {
	return f.admins.Login(ctx, email, password)
}

func (f *OrderFormFacade) AuthorizeAdmin(ctx context.Context, token string) (*model.Admin, error) {
	return f.admins.Authorize(ctx, token)
}

func (f *OrderFormFacade) BootstrapAdmin(ctx context.Context, email, password string) (*model.Admin, error) {
	return f.admins.Bootstrap(ctx, email, password)
}

func (f *OrderFormFacade) CreateAccessCode(ctx context.Context, custom string, expiresInHours int) (*model.AccessCode, error) {
	return f.codes.Create(ctx, custom, hours(expiresInHours))
}

func (f *OrderFormFacade) GenerateAccessCode(ctx context.Context) (*model.AccessCode, error) {
	return f.codes.Generate(ctx)
}

func (f *OrderFormFacade) AccessCodes(ctx context.Context) ([]usecase.CodeListing, error) {
	return f.codes.List(ctx)
}

func (f *OrderFormFacade) DeactivateAccessCode(ctx context.Context, code string) error {
	return f.codes.Deactivate(ctx, code)
}

func (f *OrderFormFacade) DeleteAccessCode(ctx context.Context, code string) error {
	return f.codes.Delete(ctx, code)
}

func (f *OrderFormFacade) ExportAccessCodes(ctx context.Context, w io.Writer) error {
	return f.codes.Export(ctx, w)
}

func (f *OrderFormFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

// hours saturates just outside the accepted range so Create rejects the value instead of an overflowed one.
func hours(n int) time.Duration {
	limit := int(usecase.MaxCodeLifetime / time.Hour)
	return time.Duration(min(max(n, -1), limit+1)) * time.Hour
}
