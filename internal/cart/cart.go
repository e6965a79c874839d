// Package cart implements the server-side shopping cart: a pure reducer
// over cart lines plus a Redis-backed store persisting one collection per
// owner.
package cart

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Item is one cart line. CartID is the synthetic line handle; two adds with
// the same product ID and structurally equal Options collapse onto one line.
type Item struct {
	ID          string         `json:"id"`
	CartID      string         `json:"cartId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
	Quantity    int            `json:"quantity"`
}

// Action is a cart mutation handled by Apply.
type Action interface {
	isCartAction()
}

// AddItem merges the item into the collection.
type AddItem struct {
	Item Item
}

// RemoveItem deletes the line with the given CartID.
type RemoveItem struct {
	CartID string
}

// SetQuantity replaces the quantity of the line with the given CartID.
// Quantities at or below zero remove the line.
type SetQuantity struct {
	CartID   string
	Quantity int
}

// Clear empties the collection.
type Clear struct{}

func (AddItem) isCartAction()     {}
func (RemoveItem) isCartAction()  {}
func (SetQuantity) isCartAction() {}
func (Clear) isCartAction()       {}

// Apply is the pure cart reducer. The input slice is never mutated.
func Apply(items []Item, action Action) []Item {
	switch act := action.(type) {
	case AddItem:
		return applyAdd(items, act.Item)
	case RemoveItem:
		return applyRemove(items, act.CartID)
	case SetQuantity:
		return applySetQuantity(items, act.CartID, act.Quantity)
	case Clear:
		return []Item{}
	default:
		return items
	}
}

func applyAdd(items []Item, incoming Item) []Item {
	quantity := incoming.Quantity
	if quantity < 1 {
		quantity = 1
	}

	key := EncodeOptions(incoming.Options)
	next := make([]Item, len(items))
	copy(next, items)

	for i, existing := range next {
		if existing.ID == incoming.ID && EncodeOptions(existing.Options) == key {
			next[i].Quantity += quantity
			return next
		}
	}

	incoming.Quantity = quantity
	if strings.TrimSpace(incoming.CartID) == "" {
		incoming.CartID = uuid.NewString()
	}
	return append(next, incoming)
}

func applyRemove(items []Item, cartID string) []Item {
	next := make([]Item, 0, len(items))
	for _, item := range items {
		if item.CartID != cartID {
			next = append(next, item)
		}
	}
	return next
}

func applySetQuantity(items []Item, cartID string, quantity int) []Item {
	if quantity <= 0 {
		return applyRemove(items, cartID)
	}
	next := make([]Item, len(items))
	copy(next, items)
	for i := range next {
		if next[i].CartID == cartID {
			next[i].Quantity = quantity
		}
	}
	return next
}

// TotalItems sums line quantities. Lines whose quantity fails to parse count
// as zero rather than erroring.
func TotalItems(items []Item) int {
	total := 0
	for _, item := range items {
		if item.Quantity > 0 {
			total += item.Quantity
		}
	}
	return total
}

// CoerceQuantity normalizes loosely-typed quantity input (JSON numbers and
// numeric strings) for adds and updates. Unparsable input coerces to 1.
func CoerceQuantity(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
		return 1
	case nil:
		return 1
	default:
		return 1
	}
}
