package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/ferreteria-nea/cart-widget/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slotDocument wraps the slot payload so every backend persists the same
// JSON layout. The slot name is the document id.
type slotDocument struct {
	Slot      string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type cartStore struct {
	collection *mongo.Collection
	slot       string
}

func NewCartStore(client *mongo.Client, database, collection, slot string) repository.CartStore {
	return &cartStore{
		collection: client.Database(database).Collection(collection),
		slot:       slot,
	}
}

func (s *cartStore) Load(ctx context.Context) (*entity.Cart, error) {
	var doc slotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": s.slot}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to get cart slot %s from mongodb: %w", s.slot, err)
	}
	return entity.DecodeSlot(doc.Payload), nil
}

func (s *cartStore) Save(ctx context.Context, cart *entity.Cart) error {
	if cart == nil {
		return repository.ErrNilCart
	}

	data, err := entity.EncodeSlot(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart slot %s: %w", s.slot, err)
	}

	doc := slotDocument{
		Slot:      s.slot,
		Payload:   data,
		UpdatedAt: time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": s.slot}, doc, opts); err != nil {
		return fmt.Errorf("failed to save cart slot %s to mongodb: %w", s.slot, err)
	}
	return nil
}
