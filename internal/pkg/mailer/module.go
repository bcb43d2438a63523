package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderform/internal/config"
)

// Module provides the mail Sender.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	smtp := p.Config.SMTP
	if smtp.Host == "" {
		p.Logger.Warn("SMTP_HOST not set, e-mails will only be logged")
		return NewLogSender(p.Logger), nil
	}
	if smtp.Username == "" {
		p.Logger.Info("SMTP_USERNAME not set, relaying without authentication", slog.String("host", smtp.Host))
	}
	return NewSMTPSender(SMTPConfig{
		Host:     smtp.Host,
		Port:     smtp.Port,
		Username: smtp.Username,
		Password: smtp.Password,
		From:     smtp.From,
		FromName: p.Config.Company.Name,
	})
}
