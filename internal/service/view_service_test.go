package service

import (
	"testing"

	"github.com/ferreteria-nea/cart-widget/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewService_Badge_IsTotalQuantity(t *testing.T) {
	views := NewViewService()
	cart := entity.NewCart()
	require.NoError(t, cart.AddItem("A", "Tornillos", 5.00, 2))
	require.NoError(t, cart.AddItem("B", "Cinta", 3.50, 1))

	assert.Equal(t, 3, views.Badge(cart))
	assert.Equal(t, 0, views.Badge(entity.NewCart()))
	assert.Equal(t, 0, views.Badge(nil))
}

func TestViewService_LineRows_ComputesSubtotals(t *testing.T) {
	views := NewViewService()
	cart := entity.NewCart()
	require.NoError(t, cart.AddItem("A", "Tornillos", 5.00, 2))
	require.NoError(t, cart.AddItem("B", "Cinta", 3.50, 1))

	rows := views.LineRows(cart)

	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].ID)
	assert.Equal(t, 10.00, rows[0].Subtotal)
	assert.Equal(t, 3.50, rows[1].Subtotal)
	assert.False(t, rows[0].Placeholder)
}

func TestViewService_LineRows_SubtotalRoundedForDisplayOnly(t *testing.T) {
	views := NewViewService()
	cart := entity.NewCart()
	// 0.1*3 is not representable exactly; the row shows 0.30 while the
	// stored value stays unrounded.
	require.NoError(t, cart.AddItem("A", "Arandelas", 0.1, 3))

	rows := views.LineRows(cart)

	require.Len(t, rows, 1)
	assert.Equal(t, 0.30, rows[0].Subtotal)
	assert.Equal(t, 0.1, cart.Items[0].UnitPrice)
}

func TestViewService_LineRows_EmptyCartYieldsPlaceholderRow(t *testing.T) {
	views := NewViewService()

	rows := views.LineRows(entity.NewCart())

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Placeholder)
	assert.Equal(t, EmptyCartLabel, rows[0].Name)
}

func TestViewService_Total_RoundedToTwoDecimals(t *testing.T) {
	views := NewViewService()
	cart := entity.NewCart()
	require.NoError(t, cart.AddItem("A", "Arandelas", 0.1, 3))
	require.NoError(t, cart.AddItem("B", "Cinta", 3.50, 1))

	assert.Equal(t, 3.80, views.Total(cart))
	assert.Equal(t, 0.0, views.Total(entity.NewCart()))
}

func TestViewService_Project_BundlesAllSurfaces(t *testing.T) {
	views := NewViewService()
	cart := entity.NewCart()
	require.NoError(t, cart.AddItem("A", "Tornillos", 5.00, 2))

	state := views.Project(cart)

	assert.Equal(t, 2, state.Badge)
	require.Len(t, state.Rows, 1)
	assert.Equal(t, 10.00, state.Total)
}
