// Package notify renders and sends order and access code e-mails.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"strconv"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/pkg/mailer"
)

//go:embed templates/*.html
var templateFS embed.FS

const accessCodeSubject = "Nouveau code d'accès au formulaire de commande"

var funcs = template.FuncMap{
	"money": func(v float64) string {
		return "€" + strconv.FormatFloat(v, 'f', 2, 64)
	},
	"percent": func(rate float64) string {
		return strconv.FormatFloat(math.Round(rate*10000)/100, 'f', -1, 64) + "%"
	},
}

var (
	clientTmpl     = template.Must(template.New("client.html").Funcs(funcs).ParseFS(templateFS, "templates/client.html", "templates/order.html"))
	companyTmpl    = template.Must(template.New("company.html").Funcs(funcs).ParseFS(templateFS, "templates/company.html", "templates/order.html"))
	accessCodeTmpl = template.Must(template.New("access_code.html").Funcs(funcs).ParseFS(templateFS, "templates/access_code.html"))
)

type orderView struct {
	model.OrderSummary
	FreeDeliveryThreshold float64
}

// Notifier sends the client confirmation and the company notification.
type Notifier struct {
	sender                mailer.Sender
	companyEmail          string
	freeDeliveryThreshold float64
	log                   *slog.Logger
}

// NewNotifier creates a Notifier. companyEmail receives order notifications and new access codes.
func NewNotifier(sender mailer.Sender, companyEmail string, freeDeliveryThreshold float64, log *slog.Logger) *Notifier {
	return &Notifier{
		sender:                sender,
		companyEmail:          companyEmail,
		freeDeliveryThreshold: freeDeliveryThreshold,
		log:                   log,
	}
}

// Send mails the client first and the company second.
// A failure returns *errors.DeliveryError; Partial() is true when the client was already notified.
func (n *Notifier) Send(ctx context.Context, summary *model.OrderSummary) error {
	view := orderView{OrderSummary: *summary, FreeDeliveryThreshold: n.freeDeliveryThreshold}

	clientHTML, err := render(clientTmpl, view)
	if err != nil {
		return err
	}
	companyHTML, err := render(companyTmpl, view)
	if err != nil {
		return err
	}

	clientMsg := mailer.Message{
		To:      summary.Client.Email,
		Subject: "Formulaire de commande - " + summary.Client.Name,
		HTML:    clientHTML,
	}
	if err := n.sender.Send(ctx, clientMsg); err != nil {
		n.log.ErrorContext(ctx, "client confirmation not sent", slog.String("to", clientMsg.To), slog.Any("error", err))
		return &domainErrors.DeliveryError{Failed: clientMsg.To, Err: err}
	}

	companyMsg := mailer.Message{
		To:      n.companyEmail,
		Subject: "Nouvelle commande - " + summary.Client.Name,
		HTML:    companyHTML,
	}
	if err := n.sender.Send(ctx, companyMsg); err != nil {
		n.log.ErrorContext(ctx, "company notification not sent after client confirmation",
			slog.String("client", clientMsg.To),
			slog.String("to", companyMsg.To),
			slog.Any("error", err),
		)
		return &domainErrors.DeliveryError{Delivered: []string{clientMsg.To}, Failed: companyMsg.To, Err: err}
	}

	return nil
}

// AnnounceAccessCode mails a freshly created access code to the company.
func (n *Notifier) AnnounceAccessCode(ctx context.Context, code *model.AccessCode) error {
	html, err := render(accessCodeTmpl, code)
	if err != nil {
		return err
	}
	if err := n.sender.Send(ctx, mailer.Message{To: n.companyEmail, Subject: accessCodeSubject, HTML: html}); err != nil {
		return &domainErrors.DeliveryError{Failed: n.companyEmail, Err: err}
	}
	return nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
