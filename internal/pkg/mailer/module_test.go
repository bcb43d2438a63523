package mailer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/orderform/internal/config"
)

func TestNewSender(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("log sender without host", func(t *testing.T) {
		sender, err := newSender(senderParams{Config: &config.Config{}, Logger: log})
		require.NoError(t, err)
		_, ok := sender.(*LogSender)
		assert.True(t, ok, "got %T", sender)
	})

	t.Run("smtp sender with credentials", func(t *testing.T) {
		cfg := &config.Config{SMTP: config.SMTPConfig{Host: "smtp.example.com", Port: 465, Username: "u", Password: "p", From: "u@example.com"}}
		sender, err := newSender(senderParams{Config: cfg, Logger: log})
		require.NoError(t, err)
		_, ok := sender.(*SMTPSender)
		assert.True(t, ok, "got %T", sender)
	})

	t.Run("smtp sender for relay without credentials", func(t *testing.T) {
		cfg := &config.Config{SMTP: config.SMTPConfig{Host: "relay.internal", Port: 25, From: "orders@example.com"}}
		sender, err := newSender(senderParams{Config: cfg, Logger: log})
		require.NoError(t, err)
		_, ok := sender.(*SMTPSender)
		assert.True(t, ok, "got %T", sender)
	})
}
