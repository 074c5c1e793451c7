package nats

import (
	"context"
	"testing"

	"github.com/ferreteria-nea/cart-widget/internal/app/config"
	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/ferreteria-nea/cart-widget/internal/port/events"
	"github.com/ferreteria-nea/cart-widget/internal/service"
	"github.com/nats-io/nats.go"
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

// newTestSubscriber wires a subscriber straight onto a dispatcher; the
// message handlers never touch the connection, so none is needed.
func newTestSubscriber() (*Subscriber, *events.Dispatcher) {
	log := logger.NoOp{}
	carts := service.NewCartService(&memoryCartStore{}, service.NewViewService(), log)
	orders := service.NewOrderService(config.MessagingConfig{
		BaseURL:     "https://wa.me",
		Destination: "5493704000000",
	}, nil, "", log)
	dispatcher := events.NewDispatcher(carts, orders, log)
	return &Subscriber{
		dispatcher: dispatcher,
		log:        log,
		prefix:     "cart",
	}, dispatcher
}

func msg(subject, payload string) *nats.Msg {
	return &nats.Msg{Subject: subject, Data: []byte(payload)}
}

func TestNewSubscriber_NilConnectionRejected(t *testing.T) {
	_, err := NewSubscriber(nil, nil, "cart", logger.NoOp{})

	assert.Error(t, err)
}

func TestSubscriber_HandleAdd_AppliesCommand(t *testing.T) {
	sub, dispatcher := newTestSubscriber()

	sub.handleAdd(msg("cart.add", `{"id":"A","name":"Tornillos","unitPrice":5.0,"quantity":2}`))

	state := dispatcher.OnOpenCart(context.Background())
	assert.Equal(t, 2, state.Badge)
	assert.Equal(t, 10.00, state.Total)
}

func TestSubscriber_HandleAdd_MalformedPayloadDropped(t *testing.T) {
	sub, dispatcher := newTestSubscriber()

	sub.handleAdd(msg("cart.add", `{not json`))
	sub.handleAdd(msg("cart.add", `{"name":"sin id","unitPrice":5.0}`))

	state := dispatcher.OnOpenCart(context.Background())
	assert.Equal(t, 0, state.Badge)
	require.Len(t, state.Rows, 1)
	assert.True(t, state.Rows[0].Placeholder)
}

func TestSubscriber_HandleRemove_FiltersItem(t *testing.T) {
	sub, dispatcher := newTestSubscriber()
	sub.handleAdd(msg("cart.add", `{"id":"A","name":"Tornillos","unitPrice":5.0}`))
	sub.handleAdd(msg("cart.add", `{"id":"B","name":"Cinta","unitPrice":3.5}`))

	sub.handleRemove(msg("cart.remove", `{"id":"A"}`))

	state := dispatcher.OnOpenCart(context.Background())
	assert.Equal(t, 1, state.Badge)
	assert.Equal(t, "B", state.Rows[0].ID)
}

func TestSubscriber_HandleRemove_MalformedPayloadDropped(t *testing.T) {
	sub, dispatcher := newTestSubscriber()
	sub.handleAdd(msg("cart.add", `{"id":"A","name":"Tornillos","unitPrice":5.0}`))

	sub.handleRemove(msg("cart.remove", `garbage`))
	sub.handleRemove(msg("cart.remove", `{"quantity":1}`))

	state := dispatcher.OnOpenCart(context.Background())
	assert.Equal(t, 1, state.Badge)
}

func TestSubscriber_HandleClear_EmptiesCart(t *testing.T) {
	sub, dispatcher := newTestSubscriber()
	sub.handleAdd(msg("cart.add", `{"id":"A","name":"Tornillos","unitPrice":5.0}`))

	sub.handleClear(msg("cart.clear", ``))

	state := dispatcher.OnOpenCart(context.Background())
	assert.Equal(t, 0, state.Badge)
}

func TestSubscriber_HandleOrder_EmptyCartDropped(t *testing.T) {
	sub, dispatcher := newTestSubscriber()

	sub.handleOrder(msg("cart.order", ``))

	state := dispatcher.OnOpenCart(context.Background())
	assert.Equal(t, 0, state.Badge)
}

func TestSubscriber_HandleOrder_LeavesCartIntact(t *testing.T) {
	sub, dispatcher := newTestSubscriber()
	sub.handleAdd(msg("cart.add", `{"id":"A","name":"Tornillos","unitPrice":5.0,"quantity":2}`))

	sub.handleOrder(msg("cart.order", ``))

	state := dispatcher.OnOpenCart(context.Background())
	assert.Equal(t, 2, state.Badge)
	assert.Equal(t, 10.00, state.Total)
}
