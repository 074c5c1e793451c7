package redis

import (
	"context"
	"testing"

	"github.com/ferreteria-nea/cart-widget/internal/app/config"
	"github.com/ferreteria-nea/cart-widget/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_UnreachableServer(t *testing.T) {
	// Port 1 is never bound; the ping fails with a refused connection.
	client, err := NewClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConnectionFailed)
	assert.Nil(t, client)
}
