package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ferreteria-nea/cart-widget/internal/platform/logger"
	"github.com/ferreteria-nea/cart-widget/internal/port/events"
	"github.com/nats-io/nats.go"
)

// cartCommand is the JSON envelope remote surfaces publish. Remove only
// needs the id; clear needs nothing.
type cartCommand struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Subscriber turns NATS messages into dispatcher commands, so a remote UI
// (kiosk, signage) can drive the same cart slot. Malformed payloads are
// logged and dropped, never fatal.
type Subscriber struct {
	conn       *nats.Conn
	dispatcher *events.Dispatcher
	log        logger.Logger
	prefix     string
	subs       []*nats.Subscription
}

func NewSubscriber(conn *nats.Conn, dispatcher *events.Dispatcher, prefix string, log logger.Logger) (*Subscriber, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	return &Subscriber{
		conn:       conn,
		dispatcher: dispatcher,
		log:        log,
		prefix:     prefix,
	}, nil
}

func (s *Subscriber) Start() error {
	handlers := map[string]nats.MsgHandler{
		s.prefix + ".add":    s.handleAdd,
		s.prefix + ".remove": s.handleRemove,
		s.prefix + ".clear":  s.handleClear,
		s.prefix + ".order":  s.handleOrder,
	}

	for subject, handler := range handlers {
		sub, err := s.conn.Subscribe(subject, handler)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
	}

	s.log.Infof("NATS event source subscribed to %s.{add,remove,clear,order}", s.prefix)
	return nil
}

func (s *Subscriber) Stop() {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.log.Warnf("Failed to unsubscribe from %s: %v", sub.Subject, err)
		}
	}
	s.subs = nil
}

func (s *Subscriber) handleAdd(msg *nats.Msg) {
	var cmd cartCommand
	if err := json.Unmarshal(msg.Data, &cmd); err != nil {
		s.log.Warnf("Dropping malformed add command on %s: %v", msg.Subject, err)
		return
	}
	if cmd.ID == "" {
		s.log.Warnf("Dropping add command without id on %s", msg.Subject)
		return
	}
	s.dispatcher.OnAdd(context.Background(), cmd.ID, cmd.Name, cmd.UnitPrice, cmd.Quantity)
}

func (s *Subscriber) handleRemove(msg *nats.Msg) {
	var cmd cartCommand
	if err := json.Unmarshal(msg.Data, &cmd); err != nil {
		s.log.Warnf("Dropping malformed remove command on %s: %v", msg.Subject, err)
		return
	}
	if cmd.ID == "" {
		s.log.Warnf("Dropping remove command without id on %s", msg.Subject)
		return
	}
	s.dispatcher.OnRemove(context.Background(), cmd.ID)
}

func (s *Subscriber) handleClear(msg *nats.Msg) {
	s.dispatcher.OnClear(context.Background())
}

func (s *Subscriber) handleOrder(msg *nats.Msg) {
	order, err := s.dispatcher.OnOrder(context.Background())
	if err != nil {
		s.log.Warnf("Dropping order command on %s: %v", msg.Subject, err)
		return
	}
	s.log.Infof("Order prepared via %s: %s", msg.Subject, order.Link)
}
