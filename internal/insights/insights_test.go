package insights

import (
	"math"
	"testing"

	"github.com/packlane/storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func Test_Compare_SelectsWinners(t *testing.T) {
	// A: ratio 4.5/100 = 0.045, B: ratio 4.0/50 = 0.08
	a := catalog.Product{ID: "A", Name: "Pack A", Price: 100, Rating: ratingPtr(4.5)}
	b := catalog.Product{ID: "B", Name: "Pack B", Price: 50, Rating: ratingPtr(4.0)}

	insight, err := Compare([]catalog.Product{a, b})
	require.NoError(t, err)

	assert.Equal(t, "B", insight.BestValue.ID)
	assert.Equal(t, "A", insight.HighestRated.ID)
	require.NotNil(t, insight.HighestRated.Rating)
	assert.InDelta(t, 4.5, *insight.HighestRated.Rating, 1e-9)
	assert.Equal(t, "B", insight.LowestPrice.ID)
	require.NotNil(t, insight.LowestPrice.Price)
	assert.InDelta(t, 50, *insight.LowestPrice.Price, 1e-9)
	assert.InDelta(t, 50, insight.PriceRange.Min, 1e-9)
	assert.InDelta(t, 100, insight.PriceRange.Max, 1e-9)
}

func Test_Compare_FirstWinsOnTies(t *testing.T) {
	// identical ratio, rating and price: the first product wins every slot
	first := catalog.Product{ID: "first", Name: "First", Price: 80, Rating: ratingPtr(4.0)}
	second := catalog.Product{ID: "second", Name: "Second", Price: 80, Rating: ratingPtr(4.0)}

	insight, err := Compare([]catalog.Product{first, second})
	require.NoError(t, err)

	assert.Equal(t, "first", insight.BestValue.ID)
	assert.Equal(t, "first", insight.HighestRated.ID)
	assert.Equal(t, "first", insight.LowestPrice.ID)
}

func Test_Compare_MissingRatingCountsAsZero(t *testing.T) {
	rated := catalog.Product{ID: "rated", Name: "Rated", Price: 200, Rating: ratingPtr(1.0)}
	unrated := catalog.Product{ID: "unrated", Name: "Unrated", Price: 10}

	insight, err := Compare([]catalog.Product{unrated, rated})
	require.NoError(t, err)

	// 0/10 = 0 vs 1/200 = 0.005
	assert.Equal(t, "rated", insight.BestValue.ID)
	assert.Equal(t, "rated", insight.HighestRated.ID)
	assert.Equal(t, "unrated", insight.LowestPrice.ID)
}

func Test_Compare_ZeroPriceIsInfiniteValue(t *testing.T) {
	free := catalog.Product{ID: "free", Name: "Free", Price: 0, Rating: ratingPtr(2.0)}
	paid := catalog.Product{ID: "paid", Name: "Paid", Price: 1, Rating: ratingPtr(5.0)}

	insight, err := Compare([]catalog.Product{paid, free})
	require.NoError(t, err)

	assert.Equal(t, "free", insight.BestValue.ID)
	assert.True(t, math.IsInf(valueRatio(free), 1))
}

func Test_Compare_InsufficientProducts(t *testing.T) {
	one := catalog.Product{ID: "solo", Name: "Solo", Price: 10}

	_, err := Compare([]catalog.Product{one})
	assert.ErrorIs(t, err, ErrInsufficientProducts)

	_, err = Compare(nil)
	assert.ErrorIs(t, err, ErrInsufficientProducts)
}

func recommendStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore([]catalog.Product{
		{ID: "t1", Name: "Travel One", Category: "Travel", Price: 40, Rating: ratingPtr(4.1)},
		{ID: "t2", Name: "Travel Two", Category: "Travel", Price: 60, Rating: ratingPtr(4.7)},
		{ID: "o1", Name: "Outdoor One", Category: "Outdoor", Price: 80, Rating: ratingPtr(4.9)},
		{ID: "l1", Name: "Life One", Category: "Lifestyle", Price: 90, Rating: ratingPtr(3.9)},
	})
	require.NoError(t, err)
	return store
}

func Test_Recommend_ByProduct(t *testing.T) {
	store := recommendStore(t)

	// same category first (excluding the seed), backfilled with the
	// remaining top-rated products
	recs, basis := Recommend(store, Query{ProductID: "t1", Limit: 3})
	assert.Equal(t, "product t1", basis)
	require.Len(t, recs, 3)
	assert.Equal(t, "t2", recs[0].ID, "same-category match ranks first")
	assert.Equal(t, "o1", recs[1].ID, "backfill is rating-ordered")
	assert.Equal(t, "l1", recs[2].ID)
}

func Test_Recommend_ByProduct_ExcludesSelf(t *testing.T) {
	store := recommendStore(t)

	recs, _ := Recommend(store, Query{ProductID: "t2", Limit: 5})
	for _, p := range recs {
		assert.NotEqual(t, "t2", p.ID)
	}
}

func Test_Recommend_UnknownProductYieldsEmptyList(t *testing.T) {
	store := recommendStore(t)

	recs, basis := Recommend(store, Query{ProductID: "ghost", Limit: 3})
	assert.Empty(t, recs)
	assert.Equal(t, "product ghost", basis)
}

func Test_Recommend_ByCategory(t *testing.T) {
	store := recommendStore(t)

	recs, basis := Recommend(store, Query{Category: "travel", Limit: 5})
	assert.Equal(t, "category travel", basis)
	require.Len(t, recs, 2)
	assert.Equal(t, "t2", recs[0].ID, "ranked by rating descending")
	assert.Equal(t, "t1", recs[1].ID)
}

func Test_Recommend_TopRatedDefault(t *testing.T) {
	store := recommendStore(t)

	recs, basis := Recommend(store, Query{Limit: 2})
	assert.Equal(t, "top rated", basis)
	require.Len(t, recs, 2)
	assert.Equal(t, "o1", recs[0].ID)
	assert.Equal(t, "t2", recs[1].ID)
}

func Test_Recommend_ProductIDTakesPrecedence(t *testing.T) {
	store := recommendStore(t)

	_, basis := Recommend(store, Query{ProductID: "t1", Category: "Outdoor", Limit: 1})
	assert.Equal(t, "product t1", basis)
}
