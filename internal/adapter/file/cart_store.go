package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/ferreteria-nea/cart-widget/internal/repository"
)

const slotFileMode = 0o644

// cartStore keeps the cart slot in one JSON file. It is the default
// backend and the durable-local-storage analog of the original widget.
type cartStore struct {
	path string
}

func NewCartStore(path string) repository.CartStore {
	return &cartStore{path: path}
}

func (s *cartStore) Load(_ context.Context) (*entity.Cart, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to read cart slot %s: %w", s.path, err)
	}
	return entity.DecodeSlot(data), nil
}

// Save writes to a sibling temp file and renames it over the slot, so a
// reader never observes a half-written payload.
func (s *cartStore) Save(_ context.Context, cart *entity.Cart) error {
	if cart == nil {
		return repository.ErrNilCart
	}

	data, err := entity.EncodeSlot(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart slot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cart slot directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cart slot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp cart slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp cart slot: %w", err)
	}
	if err := os.Chmod(tmpName, slotFileMode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod temp cart slot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cart slot %s: %w", s.path, err)
	}
	return nil
}
