package service

import (
	"math"

	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
)

// EmptyCartLabel is the placeholder row shown instead of zero rows.
const EmptyCartLabel = "Tu carrito está vacío"

// LineRow is one displayable cart row. Subtotal is rounded to two decimals
// for display only; the stored values stay unrounded.
type LineRow struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
	Placeholder bool    `json:"placeholder,omitempty"`
}

// ViewState is everything the UI surfaces need after a mutation: the badge
// count, the itemized rows and the display total.
type ViewState struct {
	Badge int       `json:"badge"`
	Rows  []LineRow `json:"rows"`
	Total float64   `json:"total"`
}

// ViewListener receives a fresh ViewState after every cart mutation and on
// the cold-start sync. Nil listeners are skipped.
type ViewListener interface {
	SyncView(state ViewState)
}

// ViewService projects a cart snapshot into derived UI state. Purely a
// projection, no state of its own.
type ViewService interface {
	Badge(cart *entity.Cart) int
	LineRows(cart *entity.Cart) []LineRow
	Total(cart *entity.Cart) float64
	Project(cart *entity.Cart) ViewState
}

type viewService struct{}

func NewViewService() ViewService {
	return &viewService{}
}

func (v *viewService) Badge(cart *entity.Cart) int {
	if cart == nil {
		return 0
	}
	return cart.TotalQuantity()
}

func (v *viewService) LineRows(cart *entity.Cart) []LineRow {
	if cart == nil || len(cart.Items) == 0 {
		return []LineRow{{Name: EmptyCartLabel, Placeholder: true}}
	}

	rows := make([]LineRow, 0, len(cart.Items))
	for _, item := range cart.Items {
		rows = append(rows, LineRow{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  round2(item.Subtotal()),
		})
	}
	return rows
}

func (v *viewService) Total(cart *entity.Cart) float64 {
	if cart == nil {
		return 0
	}
	return round2(cart.TotalPrice())
}

func (v *viewService) Project(cart *entity.Cart) ViewState {
	return ViewState{
		Badge: v.Badge(cart),
		Rows:  v.LineRows(cart),
		Total: v.Total(cart),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
