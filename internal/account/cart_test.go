package account

import (
	"testing"

	"storefront/internal/catalog"
	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func setupCatalog(t testing.TB) *catalog.Catalog {
	c, err := catalog.New([]models.Product{
		{ID: 1, Name: "Smartphone", Price: decimal.NewFromInt(5999), Stock: 50},
		{ID: 2, Name: "Laptop", Price: decimal.NewFromInt(8999), Stock: 30},
		{ID: 3, Name: "Wireless Earbuds", Price: decimal.NewFromInt(999), Stock: 100},
	})
	require.NoError(t, err)
	return c
}

func mustFind(t testing.TB, c *catalog.Catalog, id int64) *models.Product {
	p, err := c.Find(id)
	require.NoError(t, err)
	return p
}

func TestCart_AddItem_NewEntry(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)

	entry, err := cart.AddItem(mustFind(t, c, 1), 1, c)
	require.NoError(t, err)

	assert.Equal(t, 1, entry.Quantity)
	assert.Equal(t, 1, cart.Len())
	assert.True(t, decimal.NewFromInt(5999).Equal(cart.Total()))
}

func TestCart_AddItem_MergesSameProduct(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)
	earbuds := mustFind(t, c, 3)

	_, err := cart.AddItem(earbuds, 2, c)
	require.NoError(t, err)
	entry, err := cart.AddItem(earbuds, 2, c)
	require.NoError(t, err)

	assert.Equal(t, 4, entry.Quantity)
	entries := cart.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(3), entries[0].Product.ID)
	assert.Equal(t, 4, entries[0].Quantity)
}

func TestCart_AddItem_KeepsInsertionOrder(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)

	for _, id := range []int64{3, 1, 2, 1} {
		_, err := cart.AddItem(mustFind(t, c, id), 1, c)
		require.NoError(t, err)
	}

	entries := cart.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, int64(3), entries[0].Product.ID)
	assert.Equal(t, int64(1), entries[1].Product.ID)
	assert.Equal(t, 2, entries[1].Quantity)
	assert.Equal(t, int64(2), entries[2].Product.ID)
	assert.Equal(t, 4, cart.Quantity())
}

func TestCart_AddItem_InvalidQuantity(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)

	for _, qty := range []int{0, -1} {
		_, err := cart.AddItem(mustFind(t, c, 1), qty, c)
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	}
	assert.Equal(t, 0, cart.Len())
}

func TestCart_AddItem_InsufficientStock(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)

	_, err := cart.AddItem(mustFind(t, c, 2), 31, c)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.Equal(t, 0, cart.Len())
}

func TestCart_AddItem_MergeSkipsCombinedCheck(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)
	laptop := mustFind(t, c, 2)

	_, err := cart.AddItem(laptop, 20, c)
	require.NoError(t, err)
	entry, err := cart.AddItem(laptop, 20, c)
	require.NoError(t, err)

	// 40 queued against 30 in stock: each addition was checked on its own
	assert.Equal(t, 40, entry.Quantity)
}

func TestCart_AddItem_StrictMergeChecksCombined(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(true)
	laptop := mustFind(t, c, 2)

	_, err := cart.AddItem(laptop, 20, c)
	require.NoError(t, err)
	_, err = cart.AddItem(laptop, 20, c)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	entries := cart.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 20, entries[0].Quantity)
}

func TestCart_AddItem_DoesNotTouchStock(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)

	_, err := cart.AddItem(mustFind(t, c, 1), 10, c)
	require.NoError(t, err)

	stock, _ := c.Stock(1)
	assert.Equal(t, 50, stock)
}

func TestCart_EntriesIsACopy(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)
	_, _ = cart.AddItem(mustFind(t, c, 1), 1, c)

	entries := cart.Entries()
	entries[0].Quantity = 99

	assert.Equal(t, 1, cart.Entries()[0].Quantity)
}

func TestCart_Clear(t *testing.T) {
	c := setupCatalog(t)
	cart := NewCart(false)
	_, _ = cart.AddItem(mustFind(t, c, 1), 1, c)

	cart.Clear()

	assert.Equal(t, 0, cart.Len())
	assert.True(t, cart.Total().IsZero())
}

func TestCart_MergeProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := setupCatalog(t)
		cart := NewCart(false)
		earbuds := mustFind(t, c, 3)

		q1 := rapid.IntRange(1, 100).Draw(rt, "q1")
		q2 := rapid.IntRange(1, 100).Draw(rt, "q2")

		_, err := cart.AddItem(earbuds, q1, c)
		require.NoError(rt, err)
		_, err = cart.AddItem(earbuds, q2, c)
		require.NoError(rt, err)

		entries := cart.Entries()
		require.Len(rt, entries, 1)
		assert.Equal(rt, q1+q2, entries[0].Quantity)
		assert.True(rt, decimal.NewFromInt(int64(999*(q1+q2))).Equal(cart.Total()))
	})
}
