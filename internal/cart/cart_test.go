package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesIdenticalIDAndOptions(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{
		ID:       "stickers",
		Name:     "Stickers",
		Options:  map[string]any{"size": "medium"},
		Quantity: 2,
	}})
	items = Apply(items, AddItem{Item: Item{
		ID:       "stickers",
		Name:     "Stickers",
		Options:  map[string]any{"size": "medium"},
		Quantity: 2,
	}})

	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	assert.NotEmpty(t, items[0].CartID)
}

func TestAddMergeIsOptionOrderIndependent(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{
		ID:       "visiting-cards",
		Name:     "Visiting Cards",
		Options:  map[string]any{"size": "standard", "finish": "matte"},
		Quantity: 1,
	}})
	items = Apply(items, AddItem{Item: Item{
		ID:       "visiting-cards",
		Name:     "Visiting Cards",
		Options:  map[string]any{"finish": "matte", "size": "standard"},
		Quantity: 1,
	}})

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddKeepsDistinctOptionsOnSeparateLines(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{
		ID:       "stickers",
		Name:     "Stickers",
		Options:  map[string]any{"size": "medium"},
		Quantity: 1,
	}})
	items = Apply(items, AddItem{Item: Item{
		ID:       "stickers",
		Name:     "Stickers",
		Options:  map[string]any{"size": "large"},
		Quantity: 1,
	}})

	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].CartID, items[1].CartID)

	// each line removable independently by its handle
	remaining := Apply(items, RemoveItem{CartID: items[0].CartID})
	require.Len(t, remaining, 1)
	assert.Equal(t, items[1].CartID, remaining[0].CartID)
}

func TestAddCoercesNonPositiveQuantityToOne(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{ID: "files", Name: "Files", Quantity: 0}})
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestSetQuantityRemovesAtZeroOrBelow(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{ID: "files", Name: "Files", Quantity: 2}})
	cartID := items[0].CartID

	assert.Empty(t, Apply(items, SetQuantity{CartID: cartID, Quantity: 0}))
	assert.Empty(t, Apply(items, SetQuantity{CartID: cartID, Quantity: -1}))

	updated := Apply(items, SetQuantity{CartID: cartID, Quantity: 3})
	require.Len(t, updated, 1)
	assert.Equal(t, 3, updated[0].Quantity)
}

func TestTotalItems(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{ID: "a", Name: "A", Quantity: 2}})
	items = Apply(items, AddItem{Item: Item{ID: "b", Name: "B", Quantity: 1}})
	items = Apply(items, AddItem{Item: Item{ID: "c", Name: "C", Quantity: 5}})

	// dropping a line to zero removes it from the total
	items = Apply(items, SetQuantity{CartID: items[1].CartID, Quantity: 0})
	assert.Equal(t, 7, TotalItems(items))
}

func TestClearEmptiesCart(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{ID: "a", Name: "A", Quantity: 2}})
	cleared := Apply(items, Clear{})
	assert.Empty(t, cleared)
	assert.Equal(t, 0, TotalItems(cleared))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := Apply(nil, AddItem{Item: Item{ID: "a", Name: "A", Quantity: 2}})
	_ = Apply(items, AddItem{Item: Item{ID: "a", Name: "A", Quantity: 3}})
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCoerceQuantity(t *testing.T) {
	assert.Equal(t, 3, CoerceQuantity(3))
	assert.Equal(t, 4, CoerceQuantity(float64(4)))
	assert.Equal(t, 5, CoerceQuantity("5"))
	assert.Equal(t, 1, CoerceQuantity("a lot"))
	assert.Equal(t, 1, CoerceQuantity(nil))
	assert.Equal(t, 1, CoerceQuantity([]string{"2"}))
}

func TestOptionsRoundTrip(t *testing.T) {
	original := map[string]any{"paperType": "Premium Paper", "quantity": float64(500)}

	encoded := EncodeOptions(original)
	decoded := DecodeOptions(encoded)
	assert.Equal(t, original, decoded)

	// canonical form survives a second round trip unchanged
	assert.Equal(t, encoded, EncodeOptions(decoded))
}

func TestDecodeOptionsCorruptInput(t *testing.T) {
	assert.Empty(t, DecodeOptions(""))
	assert.Empty(t, DecodeOptions("{not json"))
	assert.Empty(t, DecodeOptions("null"))
}
