package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ferreteria-nea/cart-widget/internal/app/config"
	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
)

// ErrEmptyCart signals that an order message was requested for a cart with
// no items. Callers surface a user-facing warning and abort instead of
// sending an empty order.
var ErrEmptyCart = errors.New("cart is empty: nothing to order")

const emailSendTimeout = 15 * time.Second

// Order is a prepared order message: the human-readable summary and the
// deep link that opens the messaging conversation pre-filled with it.
type Order struct {
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// SummarySender delivers a copy of the order text out of band. Optional;
// the SMTP adapter implements it.
type SummarySender interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// OrderService formats the current cart into an order message and a
// shareable deep link. It reads cart state but never mutates it.
type OrderService interface {
	BuildOrderSummary(cart *entity.Cart) (string, error)
	BuildShareableLink(summary string) string
	PrepareOrder(ctx context.Context, cart *entity.Cart) (Order, error)
}

type orderService struct {
	cfg       config.MessagingConfig
	sender    SummarySender
	shopEmail string
	log       logger.Logger
}

// NewOrderService builds the formatter. sender may be nil; shopEmail is
// only used when a sender is present.
func NewOrderService(cfg config.MessagingConfig, sender SummarySender, shopEmail string, log logger.Logger) OrderService {
	return &orderService{
		cfg:       cfg,
		sender:    sender,
		shopEmail: shopEmail,
		log:       log,
	}
}

// BuildOrderSummary renders the numbered order list in cart order followed
// by the grand total line. Returns ErrEmptyCart for a zero-item cart.
func (s *orderService) BuildOrderSummary(cart *entity.Cart) (string, error) {
	if cart == nil || len(cart.Items) == 0 {
		return "", ErrEmptyCart
	}

	var b strings.Builder
	b.WriteString("Hola! Quiero hacer el siguiente pedido:\n\n")
	for i, item := range cart.Items {
		fmt.Fprintf(&b, "%d. %s x %d uds. ($%.2f c/u)\n", i+1, item.Name, item.Quantity, item.UnitPrice)
	}
	fmt.Fprintf(&b, "\nTotal del pedido: $%.2f", round2(cart.TotalPrice()))
	return b.String(), nil
}

// BuildShareableLink percent-encodes the summary into the deep-link
// template: <base>/<destination>?text=<encoded summary>. Spaces must be
// %20, not +: messaging clients decode the text with percent rules.
func (s *orderService) BuildShareableLink(summary string) string {
	base := strings.TrimRight(s.cfg.BaseURL, "/")
	encoded := strings.ReplaceAll(url.QueryEscape(summary), "+", "%20")
	return fmt.Sprintf("%s/%s?text=%s", base, s.cfg.Destination, encoded)
}

// PrepareOrder builds the summary and link, and when an out-of-band sender
// is configured ships a copy to the shop fire-and-forget.
func (s *orderService) PrepareOrder(ctx context.Context, cart *entity.Cart) (Order, error) {
	summary, err := s.BuildOrderSummary(cart)
	if err != nil {
		return Order{}, err
	}

	order := Order{
		Summary: summary,
		Link:    s.BuildShareableLink(summary),
	}

	if s.sender != nil && s.shopEmail != "" {
		go func(body string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
			defer cancel()
			if err := s.sender.Send(sendCtx, []string{s.shopEmail}, "Nuevo pedido", body); err != nil {
				s.log.Warnf("Failed to email order copy to %s: %v", s.shopEmail, err)
				return
			}
			s.log.Infof("Order copy emailed to %s", s.shopEmail)
		}(summary)
	}

	s.log.Infof("Order prepared: %d line items, total %.2f", len(cart.Items), cart.TotalPrice())
	return order, nil
}
