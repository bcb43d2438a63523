package app

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/metrics"
	testhelpers "github.com/polkiloo/orderform/internal/test"
	"github.com/polkiloo/orderform/internal/usecase"
)

type facadeDeps struct {
	codes    *testhelpers.AccessCodeRepositoryStub
	admins   *testhelpers.AdminRepositoryStub
	notifier *testhelpers.NotifierStub
	health   *testhelpers.HealthCheckerStub
}

func newFacade() (*OrderFormFacade, *facadeDeps) {
	deps := &facadeDeps{
		codes:    testhelpers.NewAccessCodeRepositoryStub(),
		admins:   testhelpers.NewAdminRepositoryStub(),
		notifier: &testhelpers.NotifierStub{},
		health:   &testhelpers.HealthCheckerStub{},
	}
	m := metrics.New()
	log := testhelpers.DiscardLogger()
	tokens := testhelpers.AccessTokenStub{}

	codes := usecase.NewAccessCodeUseCase(deps.codes, tokens, deps.notifier, m, log)
	orders := usecase.NewOrderUseCase(tokens, testhelpers.AllowAll(), usecase.NewOrderValidator(), deps.notifier,
		model.CompanyInfo{Name: "BO Company SRL"}, usecase.Pricing{VATRate: 0.21, FreeDeliveryThreshold: 500}, m, log)
	admins := usecase.NewAdminUseCase(deps.admins, testhelpers.HasherStub{}, testhelpers.StrategyStub{}, log)

	return NewOrderFormFacade(codes, orders, admins, deps.health), deps
}

func TestFacadeAccessCodeFlow(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()

	code, err := facade.CreateAccessCode(ctx, "ABCD1234", 24)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if code.ExpiresAt == nil || code.ExpiresAt.Sub(code.CreatedAt) != 24*time.Hour {
		t.Fatalf("expected a 24h expiry, got %+v", code)
	}

	token, claims, err := facade.ValidateAccessCode(ctx, "abcd1234")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if token == "" || claims.CodeID != code.ID {
		t.Fatalf("unexpected token %q claims %+v", token, claims)
	}

	order := &model.OrderSubmission{
		Date:    "10/03/2025",
		Company: model.CompanyInfo{Name: "Sent by client"},
		Client:  model.ClientInfo{Name: "Alice", Address: "Rue 1", PostalCode: "1000", Phone: "0470", Email: "alice@example.com"},
		Items: []model.OrderItem{
			{ProductName: "Câble de Connexion", Size: "30cm", Quantity: 3, UnitPrice: 2, Total: 6},
		},
		Subtotal:    6,
		VAT:         1.26,
		Total:       7.26,
		AccessToken: token,
	}
	summary, err := facade.SubmitOrder(ctx, order, "10.0.0.1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if summary.Company.Name != "BO Company SRL" || len(deps.notifier.Sent) != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	listed, err := facade.AccessCodes(ctx)
	if err != nil || len(listed) != 1 || listed[0].Status != model.AccessCodeStatusUsed {
		t.Fatalf("unexpected listing %+v err=%v", listed, err)
	}
}

func TestFacadeCodeAdministration(t *testing.T) {
	facade, deps := newFacade()
	ctx := context.Background()

	generated, err := facade.GenerateAccessCode(ctx)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(deps.notifier.Announced) != 1 {
		t.Fatal("expected generated code to be announced")
	}

	if err := facade.DeactivateAccessCode(ctx, generated.Code); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	var buf bytes.Buffer
	if err := facade.ExportAccessCodes(ctx, &buf); err != nil || buf.Len() == 0 {
		t.Fatalf("export: len=%d err=%v", buf.Len(), err)
	}

	if err := facade.DeleteAccessCode(ctx, generated.Code); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := facade.DeleteAccessCode(ctx, generated.Code); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFacadeCreateAccessCodeLifetime(t *testing.T) {
	facade, _ := newFacade()
	ctx := context.Background()

	code, err := facade.CreateAccessCode(ctx, "", 87600)
	if err != nil {
		t.Fatalf("create with the longest lifetime: %v", err)
	}
	if code.ExpiresAt == nil || code.ExpiresAt.Before(time.Now().Add(87599*time.Hour)) {
		t.Fatalf("expected expiry ten years out, got %v", code.ExpiresAt)
	}

	for _, n := range []int{87601, 3000000, 5124096, math.MaxInt, -1, math.MinInt} {
		_, err := facade.CreateAccessCode(ctx, "", n)
		var vErr *domainErrors.ValidationError
		if !errors.As(err, &vErr) || vErr.Violations[0].Field != "expiresIn" {
			t.Errorf("%d hours: expected expiresIn violation, got %v", n, err)
		}
	}
}

func TestFacadeAdmin(t *testing.T) {
	facade, _ := newFacade()
	ctx := context.Background()

	if _, err := facade.BootstrapAdmin(ctx, "owner@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	token, err := facade.Login(ctx, "owner@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	admin, err := facade.AuthorizeAdmin(ctx, token)
	if err != nil || admin.Email != "owner@example.com" {
		t.Fatalf("authorize: admin=%+v err=%v", admin, err)
	}
}

func TestFacadeProductsAndHealth(t *testing.T) {
	facade, deps := newFacade()

	if len(facade.Products()) != len(model.Catalog) {
		t.Fatal("expected the full catalog")
	}
	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected health error: %v", err)
	}
	deps.health.Err = errors.New("db down")
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
