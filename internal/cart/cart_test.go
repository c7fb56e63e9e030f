package cart

import (
	"sync"
	"testing"

	"github.com/packlane/storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	productX = catalog.Product{ID: "x", Name: "Pack X", Price: 10}
	productY = catalog.Product{ID: "y", Name: "Pack Y", Price: 25.5}
	productZ = catalog.Product{ID: "z", Name: "Pack Z", Price: 0.99}
)

func intPtr(v int) *int {
	return &v
}

func Test_Add_MergesQuantities(t *testing.T) {
	c := New()

	// first add inserts
	entry, state := c.Add(productX, 2)
	assert.Equal(t, 2, entry.Quantity)
	assert.Equal(t, 1, state.ItemCount)
	assert.InDelta(t, 20, state.Subtotal, 1e-9)

	// second add merges, not replaces
	entry, state = c.Add(productX, 3)
	assert.Equal(t, 5, entry.Quantity)
	assert.Equal(t, 1, state.ItemCount)
	assert.InDelta(t, 50, state.Subtotal, 1e-9)
}

func Test_Remove_DecrementsOrDeletes(t *testing.T) {
	testCases := []struct {
		name           string
		removeQuantity *int
		expectPresent  bool
		expectQuantity int
	}{
		{
			name:           "partial removal decrements",
			removeQuantity: intPtr(2),
			expectPresent:  true,
			expectQuantity: 3,
		},
		{
			name:           "removal of exact quantity deletes",
			removeQuantity: intPtr(5),
			expectPresent:  false,
		},
		{
			name:           "removal above quantity deletes",
			removeQuantity: intPtr(99),
			expectPresent:  false,
		},
		{
			name:           "omitted quantity deletes",
			removeQuantity: nil,
			expectPresent:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := New()
			c.Add(productX, 5)
			// when
			removed, state, err := c.Remove(productX.ID, tc.removeQuantity)
			// then
			require.NoError(t, err)
			assert.Equal(t, 5, removed.Quantity, "removed entry reports pre-mutation state")
			if tc.expectPresent {
				require.Len(t, state.Items, 1)
				assert.Equal(t, tc.expectQuantity, state.Items[0].Quantity)
			} else {
				assert.Empty(t, state.Items)
				assert.Zero(t, state.ItemCount)
				assert.Zero(t, state.Subtotal)
			}
		})
	}
}

func Test_Remove_NotInCart(t *testing.T) {
	c := New()
	c.Add(productX, 1)

	_, _, err := c.Remove("ghost", nil)
	assert.ErrorIs(t, err, ErrNotInCart)

	// the cart is untouched after the error
	state := c.Snapshot()
	assert.Equal(t, 1, state.ItemCount)
}

func Test_Clear_ReportsPriorCount(t *testing.T) {
	c := New()
	c.Add(productX, 1)
	c.Add(productY, 2)
	c.Add(productZ, 3)

	cleared, state := c.Clear()
	assert.Equal(t, 3, cleared)
	assert.Zero(t, state.ItemCount)
	assert.Zero(t, state.Subtotal)
	assert.Empty(t, state.Items)

	// clearing an empty cart is not an error
	cleared, _ = c.Clear()
	assert.Zero(t, cleared)
}

func Test_Snapshot_InsertionOrderAndTotals(t *testing.T) {
	c := New()
	c.Add(productY, 2)
	c.Add(productX, 1)
	c.Add(productZ, 4)

	state := c.Snapshot()
	require.Len(t, state.Items, 3)
	assert.Equal(t, "y", state.Items[0].Product.ID)
	assert.Equal(t, "x", state.Items[1].Product.ID)
	assert.Equal(t, "z", state.Items[2].Product.ID)

	// subtotal matches an independent recomputation
	var want float64
	for _, e := range state.Items {
		want += e.Product.Price * float64(e.Quantity)
	}
	assert.InDelta(t, want, state.Subtotal, 1e-9)
	assert.Equal(t, 3, state.ItemCount)
}

func Test_Snapshot_IsIdempotent(t *testing.T) {
	c := New()
	c.Add(productX, 2)
	c.Add(productY, 1)

	first := c.Snapshot()
	second := c.Snapshot()
	assert.Equal(t, first, second)
}

func Test_Add_ConcurrentMergesAreAtomic(t *testing.T) {
	c := New()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			c.Add(productX, 1)
		}()
	}
	wg.Wait()

	state := c.Snapshot()
	require.Len(t, state.Items, 1)
	assert.Equal(t, workers, state.Items[0].Quantity)
	assert.InDelta(t, float64(workers)*productX.Price, state.Subtotal, 1e-9)
}
