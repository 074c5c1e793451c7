package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/ferreteria-nea/cart-widget/internal/repository"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// cartStore keeps the cart slot as one JSON value under a fixed key, for
// deployments where several kiosks share a slot. TTL of zero means the
// slot never expires.
type cartStore struct {
	client *redis.Client
	slot   string
	ttl    time.Duration
}

func NewCartStore(client *redis.Client, slot string, ttl time.Duration) repository.CartStore {
	return &cartStore{
		client: client,
		slot:   slot,
		ttl:    ttl,
	}
}

func (s *cartStore) key() string {
	return cartKeyPrefix + s.slot
}

func (s *cartStore) Load(ctx context.Context) (*entity.Cart, error) {
	val, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to get cart slot %s from redis: %w", s.slot, err)
	}
	return entity.DecodeSlot(val), nil
}

func (s *cartStore) Save(ctx context.Context, cart *entity.Cart) error {
	if cart == nil {
		return repository.ErrNilCart
	}

	data, err := entity.EncodeSlot(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart slot %s: %w", s.slot, err)
	}

	if err := s.client.Set(ctx, s.key(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart slot %s to redis: %w", s.slot, err)
	}
	return nil
}
