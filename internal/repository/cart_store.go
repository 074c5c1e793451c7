package repository

import (
	"context"

	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
)

// CartStore owns the single persisted cart slot.
//
// Load applies the tolerant-read policy: a missing slot or a malformed
// payload yields an empty cart with a nil error. Only real I/O faults
// (unreachable backend, unreadable file) return an error.
//
// Save overwrites the whole slot; last-writer-wins, no merging.
type CartStore interface {
	Load(ctx context.Context) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
}
