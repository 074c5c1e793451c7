package entity

import (
	"encoding/json"
	"errors"
	"math"
	"time"
)

// LineItem is one product's presence in the cart. ID is the uniqueness key.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

func (i LineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the ordered, id-unique collection of LineItems for the current
// slot. Insertion order is the display order.
type Cart struct {
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart() *Cart {
	return &Cart{
		Items:     make([]LineItem, 0),
		UpdatedAt: time.Now().UTC(),
	}
}

func (c *Cart) GetItem(id string) (*LineItem, int) {
	for i, item := range c.Items {
		if item.ID == id {
			return &c.Items[i], i
		}
	}
	return nil, -1
}

// AddItem merges quantity into an existing line or appends a new one.
// Name and unit price of an existing line are not updated on repeat-add:
// first-seen wins.
func (c *Cart) AddItem(id, name string, unitPrice float64, quantity int) error {
	if id == "" {
		return errors.New("line item id cannot be empty")
	}
	if quantity <= 0 {
		return errors.New("quantity to add must be positive")
	}

	item, _ := c.GetItem(id)
	if item != nil {
		item.Quantity += quantity
	} else {
		c.Items = append(c.Items, LineItem{
			ID:        id,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  quantity,
		})
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveAllOfID drops every line whose id matches. Defined as a filter
// rather than a single delete so a slot corrupted with duplicate ids still
// empties out. Absent ids are a no-op.
func (c *Cart) RemoveAllOfID(id string) {
	kept := make([]LineItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.UpdatedAt = time.Now().UTC()
}

func (c *Cart) Clear() {
	c.Items = make([]LineItem, 0)
	c.UpdatedAt = time.Now().UTC()
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Clone returns a snapshot safe to hand to projections and listeners.
func (c *Cart) Clone() *Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items, UpdatedAt: c.UpdatedAt}
}

// slotItem is the persisted shape of one line. Pointers let the decoder
// tell a missing field from a zero one.
type slotItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	UnitPrice *float64 `json:"unitPrice"`
	Quantity  *int     `json:"quantity"`
}

// EncodeSlot serializes the cart as the single-slot layout: a JSON array of
// line item objects. All store backends share this representation.
func EncodeSlot(c *Cart) ([]byte, error) {
	items := c.Items
	if items == nil {
		items = make([]LineItem, 0)
	}
	return json.Marshal(items)
}

// DecodeSlot deserializes a slot payload with the tolerant-read policy:
// missing or non-positive quantity becomes 1, missing or negative unit
// price becomes 0, unknown fields are ignored, and an unparseable payload
// degrades to an empty cart. DecodeSlot never fails.
func DecodeSlot(data []byte) *Cart {
	cart := NewCart()
	if len(data) == 0 {
		return cart
	}

	var raw []slotItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return cart
	}

	for _, ri := range raw {
		if ri.ID == "" {
			continue
		}
		quantity := 1
		if ri.Quantity != nil && *ri.Quantity >= 1 {
			quantity = *ri.Quantity
		}
		var price float64
		if ri.UnitPrice != nil && !math.IsNaN(*ri.UnitPrice) && !math.IsInf(*ri.UnitPrice, 0) && *ri.UnitPrice >= 0 {
			price = *ri.UnitPrice
		}
		cart.Items = append(cart.Items, LineItem{
			ID:        ri.ID,
			Name:      ri.Name,
			UnitPrice: price,
			Quantity:  quantity,
		})
	}
	return cart
}
