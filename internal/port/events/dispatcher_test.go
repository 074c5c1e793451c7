package events

import (
	"context"
	"testing"

	"github.com/ferreteria-nea/cart-widget/internal/app/config"
	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/ferreteria-nea/cart-widget/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCartStore struct {
	data []byte
}

func (s *memoryCartStore) Load(_ context.Context) (*entity.Cart, error) {
	return entity.DecodeSlot(s.data), nil
}

func (s *memoryCartStore) Save(_ context.Context, cart *entity.Cart) error {
	data, err := entity.EncodeSlot(cart)
	if err != nil {
		return err
	}
	s.data = data
	return nil
}

func newTestDispatcher() *Dispatcher {
	log := logger.NoOp{}
	carts := service.NewCartService(&memoryCartStore{}, service.NewViewService(), log)
	orders := service.NewOrderService(config.MessagingConfig{
		BaseURL:     "https://wa.me",
		Destination: "5493704000000",
	}, nil, "", log)
	return NewDispatcher(carts, orders, log)
}

func TestDispatcher_OnAdd_ReturnsFreshViewState(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()

	state := d.OnAdd(ctx, "A", "Widget", 10.00, 1)
	require.Len(t, state.Rows, 1)
	assert.Equal(t, 1, state.Badge)

	state = d.OnAdd(ctx, "A", "Widget", 10.00, 1)
	assert.Equal(t, 2, state.Badge)
	assert.Equal(t, 20.00, state.Total)
	assert.Len(t, state.Rows, 1)
}

func TestDispatcher_OnAdd_QuantityBelowOneDefaultsToSingleUnit(t *testing.T) {
	d := newTestDispatcher()

	state := d.OnAdd(context.Background(), "A", "Widget", 10.00, 0)

	assert.Equal(t, 1, state.Badge)
}

func TestDispatcher_OnRemove_FiltersItem(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()

	d.OnAdd(ctx, "A", "Tornillos", 5.00, 2)
	d.OnAdd(ctx, "B", "Cinta", 3.50, 1)

	state := d.OnRemove(ctx, "A")

	assert.Equal(t, 1, state.Badge)
	require.Len(t, state.Rows, 1)
	assert.Equal(t, "B", state.Rows[0].ID)
	assert.Equal(t, 3.50, state.Total)
}

func TestDispatcher_OnClear_YieldsPlaceholderRow(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()

	d.OnAdd(ctx, "A", "Widget", 10.00, 1)
	state := d.OnClear(ctx)

	assert.Equal(t, 0, state.Badge)
	require.Len(t, state.Rows, 1)
	assert.True(t, state.Rows[0].Placeholder)
}

func TestDispatcher_OnOpenCart_ProjectsCurrentState(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()

	d.OnAdd(ctx, "A", "Widget", 10.00, 3)

	state := d.OnOpenCart(ctx)
	assert.Equal(t, 3, state.Badge)
	assert.Equal(t, 30.00, state.Total)
}

func TestDispatcher_OnOrder_EmptyCartSignalsError(t *testing.T) {
	d := newTestDispatcher()

	_, err := d.OnOrder(context.Background())

	assert.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestDispatcher_OnOrder_BuildsMessageAndLink(t *testing.T) {
	d := newTestDispatcher()
	ctx := context.Background()

	d.OnAdd(ctx, "A", "Tornillos", 5.00, 2)
	d.OnAdd(ctx, "B", "Cinta", 3.50, 1)

	order, err := d.OnOrder(ctx)

	require.NoError(t, err)
	assert.Contains(t, order.Summary, "Total del pedido: $13.50")
	assert.Contains(t, order.Link, "https://wa.me/5493704000000?text=")
}
