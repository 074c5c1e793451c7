// Package events is the semantic event surface of the widget: every UI
// technology (HTTP storefront, NATS kiosk feed) translates its interactions
// into the command handlers below and never touches the services directly.
package events

import (
	"context"
	"sync"

	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/ferreteria-nea/cart-widget/internal/service"
)

// Dispatcher owns the cart state manager and the order formatter and runs
// one command at a time. The mutex reproduces the original widget's
// non-preemptive handler model: a mutation's load/save pair can never
// interleave with another handler's.
type Dispatcher struct {
	mu     sync.Mutex
	carts  service.CartService
	orders service.OrderService
	log    logger.Logger
}

func NewDispatcher(carts service.CartService, orders service.OrderService, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		carts:  carts,
		orders: orders,
		log:    log,
	}
}

// OnAdd handles add(id, name, price). Quantity below one defaults to a
// single unit, matching the one-unit-per-click original.
func (d *Dispatcher) OnAdd(ctx context.Context, id, name string, unitPrice float64, quantity int) service.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.carts.AddItem(ctx, id, name, unitPrice, quantity)
	return d.carts.View(ctx)
}

func (d *Dispatcher) OnRemove(ctx context.Context, id string) service.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.carts.RemoveAllOfID(ctx, id)
	return d.carts.View(ctx)
}

func (d *Dispatcher) OnClear(ctx context.Context) service.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.carts.Clear(ctx)
	return d.carts.View(ctx)
}

// OnOpenCart re-projects current state for the modal.
func (d *Dispatcher) OnOpenCart(ctx context.Context) service.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.carts.SyncViews(ctx)
	return d.carts.View(ctx)
}

// OnCloseCart exists for surface completeness; closing the modal changes
// no state.
func (d *Dispatcher) OnCloseCart(ctx context.Context) {
	d.log.Debug("Cart closed")
}

// OnOrder builds the order message for the current cart. Returns
// service.ErrEmptyCart when there is nothing to order.
func (d *Dispatcher) OnOrder(ctx context.Context) (service.Order, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.orders.PrepareOrder(ctx, d.carts.Snapshot(ctx))
}
