// Package cart implements the process-wide shopping cart state machine.
// Each product id is either absent from the cart or present with a
// quantity of at least 1; an entry never reaches zero, it is removed.
package cart

import (
	"errors"
	"sync"

	"github.com/packlane/storefront/internal/catalog"
)

var ErrNotInCart = errors.New("product not in cart")

// Entry is a cart line: a product and how many units of it are held.
type Entry struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// State is the cart as seen after an operation: entries in insertion
// order plus totals recomputed under the same lock. ItemCount counts
// distinct entries, not total units.
type State struct {
	Items     []Entry `json:"items"`
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
}

// Cart is the shared mutable product → quantity mapping. All methods are
// safe for concurrent use; quantity transitions are atomic under the
// internal mutex so read-modify-write never interleaves.
type Cart struct {
	mu      sync.Mutex
	entries map[string]*Entry
	order   []string // product ids in insertion order
}

func New() *Cart {
	return &Cart{entries: make(map[string]*Entry)}
}

// Add puts quantity units of product into the cart. An existing entry is
// merged, not replaced. Returns the updated entry and the resulting state.
func (c *Cart) Add(product catalog.Product, quantity int) (Entry, State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[product.ID]
	if ok {
		e.Quantity += quantity
	} else {
		e = &Entry{Product: product, Quantity: quantity}
		c.entries[product.ID] = e
		c.order = append(c.order, product.ID)
	}
	return *e, c.stateLocked()
}

// Remove takes quantity units of the given product out of the cart. A nil
// quantity, or one at or above the current quantity, deletes the entry
// entirely. Returns the entry as it was before the mutation, for
// reporting what was removed. Returns ErrNotInCart if the product has no
// entry.
func (c *Cart) Remove(productID string, quantity *int) (Entry, State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[productID]
	if !ok {
		return Entry{}, State{}, ErrNotInCart
	}
	before := *e
	if quantity != nil && *quantity < e.Quantity {
		e.Quantity -= *quantity
	} else {
		delete(c.entries, productID)
		for i, id := range c.order {
			if id == productID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return before, c.stateLocked(), nil
}

// Clear unconditionally empties the cart. Returns how many distinct
// entries it held, and the (empty) resulting state.
func (c *Cart) Clear() (int, State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*Entry)
	c.order = nil
	return n, c.stateLocked()
}

// Snapshot returns the current cart state. The subtotal is recomputed on
// every call, never cached.
func (c *Cart) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Cart) stateLocked() State {
	s := State{
		Items:     make([]Entry, 0, len(c.entries)),
		ItemCount: len(c.entries),
	}
	for _, id := range c.order {
		e := c.entries[id]
		s.Items = append(s.Items, *e)
		s.Subtotal += e.Product.Price * float64(e.Quantity)
	}
	return s
}
