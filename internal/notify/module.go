package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/config"
	"github.com/polkiloo/orderform/internal/pkg/mailer"
)

// Module provides the Notifier.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Sender mailer.Sender
	Logger *slog.Logger
}

func newNotifier(p notifierParams) *Notifier {
	recipient := p.Config.Company.Email
	if recipient == "" {
		recipient = p.Config.SMTP.From
	}
	return NewNotifier(p.Sender, recipient, p.Config.FreeDeliveryThreshold, p.Logger)
}
