package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/metrics"
	pkgAuth "github.com/polkiloo/orderform/internal/pkg/auth"
	"github.com/polkiloo/orderform/internal/pkg/ratelimit"
)

// OrderNotifier delivers the client confirmation and the company notification.
type OrderNotifier interface {
	Send(ctx context.Context, summary *model.OrderSummary) error
}

// Pricing holds the tax and delivery rules applied to every order.
type Pricing struct {
	VATRate               float64
	FreeDeliveryThreshold float64
}

// OrderUseCase runs the order submission sequence.
type OrderUseCase struct {
	tokens    pkgAuth.AccessTokenVerifier
	limiter   ratelimit.Limiter
	validator *OrderValidator
	notifier  OrderNotifier
	supplier  model.CompanyInfo
	pricing   Pricing
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase. supplier overrides the company block sent by clients.
func NewOrderUseCase(
	tokens pkgAuth.AccessTokenVerifier,
	limiter ratelimit.Limiter,
	validator *OrderValidator,
	notifier OrderNotifier,
	supplier model.CompanyInfo,
	pricing Pricing,
	m *metrics.Metrics,
	log *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		tokens:    tokens,
		limiter:   limiter,
		validator: validator,
		notifier:  notifier,
		supplier:  supplier,
		pricing:   pricing,
		metrics:   m,
		log:       log,
	}
}

// Submit verifies the bearer token, applies the rate limit, validates the payload
// and sends both e-mails. Any failure before the notifier means nothing was sent.
func (u *OrderUseCase) Submit(ctx context.Context, order *model.OrderSubmission, remoteAddr string) (*model.OrderSummary, error) {
	if order == nil {
		return nil, u.validator.Validate(nil)
	}

	claims, err := u.tokens.Verify(order.AccessToken)
	if err != nil {
		u.metrics.OrderSubmissions.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
		return nil, domainErrors.ErrUnauthorized
	}

	key := ratelimit.NormalizeKey(order.Client.Email)
	if key == "" {
		key = remoteAddr
	}
	decision, err := u.limiter.Allow(ctx, key)
	if err != nil {
		u.metrics.OrderSubmissions.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if !decision.Allowed {
		u.metrics.OrderSubmissions.WithLabelValues(metrics.OutcomeRateLimited).Inc()
		u.metrics.RateLimitRejections.Inc()
		u.log.WarnContext(ctx, "order submission rate limited", slog.String("key", key), slog.Duration("retry_after", decision.RetryAfter))
		return nil, &domainErrors.RateLimitError{RetryAfter: decision.RetryAfter}
	}

	if err := u.validator.Validate(order); err != nil {
		u.metrics.OrderSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	summary := u.Summarize(order)
	if err := u.notifier.Send(ctx, summary); err != nil {
		outcome := metrics.OutcomeFailed
		var delivery *domainErrors.DeliveryError
		if errors.As(err, &delivery) && delivery.Partial() {
			outcome = metrics.OutcomePartial
		}
		u.metrics.NotificationFailures.WithLabelValues(metrics.KindOrder, outcome).Inc()
		u.metrics.OrderSubmissions.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("notify order: %w", err)
	}

	u.metrics.OrderSubmissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	u.log.InfoContext(ctx, "order sent",
		slog.String("code_id", claims.CodeID),
		slog.Int("lines", len(summary.Lines)),
		slog.Float64("total", summary.Total),
	)
	return summary, nil
}

// Summarize recomputes every amount from quantities and unit prices.
// Lines without a positive quantity are dropped.
func (u *OrderUseCase) Summarize(order *model.OrderSubmission) *model.OrderSummary {
	summary := &model.OrderSummary{
		Date:    order.Date,
		Company: mergeCompany(u.supplier, order.Company),
		Client:  order.Client,
		VATRate: u.pricing.VATRate,
	}

	for _, item := range order.Items {
		if item.Quantity <= 0 {
			continue
		}
		total := roundCents(float64(item.Quantity) * item.UnitPrice)
		summary.Lines = append(summary.Lines, model.OrderLine{
			ProductName: item.ProductName,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       total,
		})
		summary.Subtotal += total
	}

	summary.Subtotal = roundCents(summary.Subtotal)
	summary.VAT = roundCents(summary.Subtotal * u.pricing.VATRate)
	summary.Total = roundCents(summary.Subtotal + summary.VAT)
	summary.FreeDelivery = u.pricing.FreeDeliveryThreshold > 0 && summary.Subtotal > u.pricing.FreeDeliveryThreshold
	return summary
}

// mergeCompany prefers the configured supplier identity and falls back to the client copy field by field.
func mergeCompany(supplier, submitted model.CompanyInfo) model.CompanyInfo {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return model.CompanyInfo{
		Name:       pick(supplier.Name, submitted.Name),
		Director:   pick(supplier.Director, submitted.Director),
		Address:    pick(supplier.Address, submitted.Address),
		PostalCode: pick(supplier.PostalCode, submitted.PostalCode),
		Phone:      pick(supplier.Phone, submitted.Phone),
		Email:      pick(supplier.Email, submitted.Email),
		VATNumber:  pick(supplier.VATNumber, submitted.VATNumber),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
