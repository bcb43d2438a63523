package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/config"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/notify"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewOrderValidator,
		NewAccessCodeUseCase,
		NewAdminUseCase,
		NewOrderUseCase,
		newSupplier,
		newPricing,
	),
	fx.Provide(
		func(n *notify.Notifier) OrderNotifier { return n },
		func(n *notify.Notifier) CodeAnnouncer { return n },
	),
)

func newSupplier(cfg *config.Config) model.CompanyInfo {
	c := cfg.Company
	return model.CompanyInfo{
		Name:       c.Name,
		Director:   c.Director,
		Address:    c.Address,
		PostalCode: c.PostalCode,
		Phone:      c.Phone,
		Email:      c.Email,
		VATNumber:  c.VATNumber,
	}
}

func newPricing(cfg *config.Config) Pricing {
	return Pricing{VATRate: cfg.VATRate, FreeDeliveryThreshold: cfg.FreeDeliveryThreshold}
}
