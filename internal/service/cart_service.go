package service

import (
	"context"

	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/ferreteria-nea/cart-widget/internal/repository"
)

// CartService is the cart state manager. Every mutation loads the current
// slot, applies the change, persists it and pushes a fresh projection to
// the registered view listeners, so visible state never diverges from
// persisted state.
//
// Operations never return errors: a failing Load degrades to an empty cart
// and a failing Save is logged while the in-memory result still reaches
// the views. The worst-case failure mode is a cart that silently resets.
type CartService interface {
	AddItem(ctx context.Context, id, name string, unitPrice float64, quantity int)
	RemoveAllOfID(ctx context.Context, id string)
	Clear(ctx context.Context)
	Items(ctx context.Context) []entity.LineItem
	TotalQuantity(ctx context.Context) int
	TotalPrice(ctx context.Context) float64
	Snapshot(ctx context.Context) *entity.Cart
	View(ctx context.Context) ViewState
	RegisterListener(l ViewListener)
	SyncViews(ctx context.Context)
}

type cartService struct {
	store     repository.CartStore
	views     ViewService
	log       logger.Logger
	listeners []ViewListener
}

func NewCartService(store repository.CartStore, views ViewService, log logger.Logger) CartService {
	return &cartService{
		store: store,
		views: views,
		log:   log,
	}
}

// RegisterListener attaches a view surface. Wiring-time only; listeners
// are not safe to add once commands are flowing.
func (s *cartService) RegisterListener(l ViewListener) {
	if l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

func (s *cartService) AddItem(ctx context.Context, id, name string, unitPrice float64, quantity int) {
	if id == "" {
		s.log.Warn("AddItem called with empty id, ignoring")
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	cart := s.load(ctx)
	if err := cart.AddItem(id, name, unitPrice, quantity); err != nil {
		s.log.Warnf("Could not add item %s to cart: %v", id, err)
		return
	}
	s.persist(ctx, cart)
	s.notify(cart)
	s.log.Debugf("Item %s added to cart, badge is now %d", id, cart.TotalQuantity())
}

func (s *cartService) RemoveAllOfID(ctx context.Context, id string) {
	cart := s.load(ctx)
	cart.RemoveAllOfID(id)
	s.persist(ctx, cart)
	s.notify(cart)
	s.log.Debugf("Item %s removed from cart, badge is now %d", id, cart.TotalQuantity())
}

func (s *cartService) Clear(ctx context.Context) {
	cart := s.load(ctx)
	cart.Clear()
	s.persist(ctx, cart)
	s.notify(cart)
	s.log.Debug("Cart cleared")
}

func (s *cartService) Items(ctx context.Context) []entity.LineItem {
	return s.load(ctx).Clone().Items
}

func (s *cartService) TotalQuantity(ctx context.Context) int {
	return s.load(ctx).TotalQuantity()
}

func (s *cartService) TotalPrice(ctx context.Context) float64 {
	return s.load(ctx).TotalPrice()
}

// Snapshot returns a read-only copy of the current cart.
func (s *cartService) Snapshot(ctx context.Context) *entity.Cart {
	return s.load(ctx).Clone()
}

func (s *cartService) View(ctx context.Context) ViewState {
	return s.views.Project(s.load(ctx))
}

// SyncViews re-pushes the current projection without mutating anything.
// Called once at startup so the badge is right before any event arrives.
func (s *cartService) SyncViews(ctx context.Context) {
	s.notify(s.load(ctx))
}

func (s *cartService) load(ctx context.Context) *entity.Cart {
	cart, err := s.store.Load(ctx)
	if err != nil {
		s.log.Errorf("Failed to load cart slot, starting from an empty cart: %v", err)
		return entity.NewCart()
	}
	return cart
}

func (s *cartService) persist(ctx context.Context, cart *entity.Cart) {
	if err := s.store.Save(ctx, cart); err != nil {
		s.log.Errorf("Failed to save cart slot: %v", err)
	}
}

func (s *cartService) notify(cart *entity.Cart) {
	state := s.views.Project(cart.Clone())
	for _, l := range s.listeners {
		if l != nil {
			l.SyncView(state)
		}
	}
}
