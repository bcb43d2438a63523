package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/pkg/mailer"
)

type senderStub struct {
	sent   []mailer.Message
	failOn map[string]error
}

func (s *senderStub) Send(_ context.Context, msg mailer.Message) error {
	if err, ok := s.failOn[msg.To]; ok {
		return err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cableSummary() *model.OrderSummary {
	return &model.OrderSummary{
		Date:    "10/03/2025",
		Company: model.CompanyInfo{Name: "BO Company SRL", Email: "orders@bo.example", VATNumber: "BE0123456789"},
		Client: model.ClientInfo{
			Name:       "Alice",
			Company:    "Shop",
			Address:    "Rue 1",
			PostalCode: "1000",
			Phone:      "0470000000",
			Email:      "alice@example.com",
		},
		Lines:    []model.OrderLine{{ProductName: "Câble USB-C", Size: "1m", Quantity: 2, UnitPrice: 3.5, Total: 7}},
		Subtotal: 7,
		VATRate:  0.21,
		VAT:      1.47,
		Total:    8.47,
	}
}

func TestNotifier_SendsClientThenCompany(t *testing.T) {
	sender := &senderStub{}
	n := NewNotifier(sender, "orders@bo.example", 350, discardLogger())

	require.NoError(t, n.Send(context.Background(), cableSummary()))
	require.Len(t, sender.sent, 2)

	client, company := sender.sent[0], sender.sent[1]
	assert.Equal(t, "alice@example.com", client.To)
	assert.Equal(t, "Formulaire de commande - Alice", client.Subject)
	assert.Equal(t, "orders@bo.example", company.To)
	assert.Equal(t, "Nouvelle commande - Alice", company.Subject)

	for _, msg := range sender.sent {
		assert.Contains(t, msg.HTML, "Câble USB-C")
		assert.Contains(t, msg.HTML, "€3.50")
		assert.Contains(t, msg.HTML, "€7.00")
		assert.Contains(t, msg.HTML, "€1.47")
		assert.Contains(t, msg.HTML, "€8.47")
		assert.Contains(t, msg.HTML, "TVA (21%)")
		assert.Contains(t, msg.HTML, "€350.00")
	}
}

func TestNotifier_EscapesUntrustedText(t *testing.T) {
	sender := &senderStub{}
	n := NewNotifier(sender, "orders@bo.example", 350, discardLogger())

	summary := cableSummary()
	summary.Client.Name = `<script>alert("x")</script>`
	summary.Lines[0].ProductName = `<img src=x onerror=alert(1)>`

	require.NoError(t, n.Send(context.Background(), summary))
	for _, msg := range sender.sent {
		assert.NotContains(t, msg.HTML, "<script>")
		assert.NotContains(t, msg.HTML, "<img")
		assert.Contains(t, msg.HTML, "&lt;script&gt;")
	}
}

func TestNotifier_ClientFailureIsFullFailure(t *testing.T) {
	boom := errors.New("smtp down")
	sender := &senderStub{failOn: map[string]error{"alice@example.com": boom}}
	n := NewNotifier(sender, "orders@bo.example", 350, discardLogger())

	err := n.Send(context.Background(), cableSummary())

	var delivery *domainErrors.DeliveryError
	require.ErrorAs(t, err, &delivery)
	assert.False(t, delivery.Partial())
	assert.Equal(t, "alice@example.com", delivery.Failed)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sender.sent, "company must not be notified when the client mail failed")
}

func TestNotifier_CompanyFailureIsPartial(t *testing.T) {
	boom := errors.New("mailbox full")
	sender := &senderStub{failOn: map[string]error{"orders@bo.example": boom}}
	n := NewNotifier(sender, "orders@bo.example", 350, discardLogger())

	err := n.Send(context.Background(), cableSummary())

	var delivery *domainErrors.DeliveryError
	require.ErrorAs(t, err, &delivery)
	assert.True(t, delivery.Partial())
	assert.Equal(t, []string{"alice@example.com"}, delivery.Delivered)
	assert.Equal(t, "orders@bo.example", delivery.Failed)
	require.Len(t, sender.sent, 1)
}

func TestNotifier_FreeDeliveryLine(t *testing.T) {
	sender := &senderStub{}
	n := NewNotifier(sender, "orders@bo.example", 350, discardLogger())

	summary := cableSummary()
	summary.FreeDelivery = true
	require.NoError(t, n.Send(context.Background(), summary))
	assert.Contains(t, sender.sent[0].HTML, "Offerts pour cette commande")
}

func TestNotifier_AnnounceAccessCode(t *testing.T) {
	sender := &senderStub{}
	n := NewNotifier(sender, "orders@bo.example", 350, discardLogger())

	expires := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	require.NoError(t, n.AnnounceAccessCode(context.Background(), &model.AccessCode{Code: "ABCD2345", ExpiresAt: &expires}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "orders@bo.example", sender.sent[0].To)
	assert.Equal(t, accessCodeSubject, sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "ABCD2345")
	assert.Contains(t, sender.sent[0].HTML, "12/03/2025 18:00")

	failing := NewNotifier(&senderStub{failOn: map[string]error{"orders@bo.example": errors.New("down")}}, "orders@bo.example", 350, discardLogger())
	var delivery *domainErrors.DeliveryError
	assert.ErrorAs(t, failing.AnnounceAccessCode(context.Background(), &model.AccessCode{Code: "ABCD2345"}), &delivery)
}
