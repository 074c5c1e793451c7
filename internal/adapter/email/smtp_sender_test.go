package email

import (
	"context"
	"testing"

	"github.com/ferreteria-nea/cart-widget/internal/app/config"
	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "user",
		Password:    "fakepassword",
		SenderEmail: "pedidos@ferreteria.test",
		Encryption:  "tls",
	}
}

func TestNewSMTPSender_IncompleteConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.SMTPConfig
	}{
		{
			name: "Missing Host",
			cfg: config.SMTPConfig{
				Port:        587,
				SenderEmail: "pedidos@ferreteria.test",
			},
		},
		{
			name: "Missing Port",
			cfg: config.SMTPConfig{
				Host:        "smtp.example.com",
				SenderEmail: "pedidos@ferreteria.test",
			},
		},
		{
			name: "Missing SenderEmail",
			cfg: config.SMTPConfig{
				Host: "smtp.example.com",
				Port: 587,
			},
		},
		{
			name: "All Missing",
			cfg:  config.SMTPConfig{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sender, err := NewSMTPSender(tc.cfg, logger.NoOp{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "must be configured")
			assert.Nil(t, sender)
		})
	}
}

func TestNewSMTPSender_EncryptionModes(t *testing.T) {
	for _, mode := range []string{"ssl", "tls", "starttls", ""} {
		cfg := validSMTPConfig()
		cfg.Encryption = mode

		sender, err := NewSMTPSender(cfg, logger.NoOp{})

		require.NoError(t, err)
		assert.NotNil(t, sender)
	}
}

func TestSMTPSender_Send_NoRecipients(t *testing.T) {
	sender, err := NewSMTPSender(validSMTPConfig(), logger.NoOp{})
	require.NoError(t, err)

	err = sender.Send(context.Background(), nil, "Nuevo pedido", "1. Widget x 1 uds. ($10.00 c/u)")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipients")
}

func TestSMTPSender_Send_EmptyBody(t *testing.T) {
	sender, err := NewSMTPSender(validSMTPConfig(), logger.NoOp{})
	require.NoError(t, err)

	err = sender.Send(context.Background(), []string{"pedidos@ferreteria.test"}, "Nuevo pedido", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "body must be provided")
}
