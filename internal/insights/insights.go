// Package insights computes comparison analytics and recommendations over
// resolved catalog products. Results are derived fresh per request and
// never cached.
package insights

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/packlane/storefront/internal/catalog"
)

var ErrInsufficientProducts = errors.New("insufficient products to compare")

// ProductRef points at a product inside an insight, carrying only the
// fields relevant to that slot.
type ProductRef struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Rating *float64 `json:"rating,omitempty"`
	Price  *float64 `json:"price,omitempty"`
}

// PriceRange is the inclusive price bounds over a compared set.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Insight summarizes a comparison: which product wins on value, rating
// and price, plus the price bounds of the set.
type Insight struct {
	BestValue    ProductRef `json:"bestValue"`
	HighestRated ProductRef `json:"highestRated"`
	LowestPrice  ProductRef `json:"lowestPrice"`
	PriceRange   PriceRange `json:"priceRange"`
}

// Compare computes the insight over at least two resolved products.
// Winners are selected by a left-to-right fold with strict comparison, so
// the first product to reach the maximal (or minimal) value wins ties.
// Returns ErrInsufficientProducts when fewer than two products are given.
func Compare(products []catalog.Product) (Insight, error) {
	if len(products) < 2 {
		return Insight{}, ErrInsufficientProducts
	}

	bestValue := products[0]
	bestRatio := valueRatio(products[0])
	highestRated := products[0]
	lowestPrice := products[0]
	bounds := PriceRange{Min: products[0].Price, Max: products[0].Price}

	for _, p := range products[1:] {
		if r := valueRatio(p); r > bestRatio {
			bestValue, bestRatio = p, r
		}
		if p.RatingOrZero() > highestRated.RatingOrZero() {
			highestRated = p
		}
		if p.Price < lowestPrice.Price {
			lowestPrice = p
		}
		bounds.Min = math.Min(bounds.Min, p.Price)
		bounds.Max = math.Max(bounds.Max, p.Price)
	}

	lowest := lowestPrice.Price
	return Insight{
		BestValue:    ProductRef{ID: bestValue.ID, Name: bestValue.Name},
		HighestRated: ProductRef{ID: highestRated.ID, Name: highestRated.Name, Rating: highestRated.Rating},
		LowestPrice:  ProductRef{ID: lowestPrice.ID, Name: lowestPrice.Name, Price: &lowest},
		PriceRange:   bounds,
	}, nil
}

// valueRatio is rating per unit of price. A free product is treated as
// infinitely good value; prices are expected to be positive.
func valueRatio(p catalog.Product) float64 {
	if p.Price == 0 {
		return math.Inf(1)
	}
	return p.RatingOrZero() / p.Price
}

// Query configures a recommendation request. ProductID takes precedence
// over Category when both are set.
type Query struct {
	ProductID string
	Category  string
	Limit     int
}

// Recommend returns up to Limit products ranked by rating, plus a label
// describing what the ranking was based on. An unknown ProductID yields
// an empty list, not an error.
func Recommend(store *catalog.Store, q Query) ([]catalog.Product, string) {
	switch {
	case q.ProductID != "":
		basis := "product " + q.ProductID
		seed, err := store.FindByID(q.ProductID)
		if err != nil {
			return []catalog.Product{}, basis
		}
		recs := topRated(store.All(), q.Limit, func(p catalog.Product) bool {
			return p.Category == seed.Category && p.ID != seed.ID
		})
		if len(recs) < q.Limit {
			chosen := make(map[string]bool, len(recs))
			for _, p := range recs {
				chosen[p.ID] = true
			}
			backfill := topRated(store.All(), q.Limit-len(recs), func(p catalog.Product) bool {
				return p.ID != seed.ID && !chosen[p.ID]
			})
			recs = append(recs, backfill...)
		}
		return recs, basis
	case q.Category != "":
		recs := topRated(store.All(), q.Limit, func(p catalog.Product) bool {
			return strings.EqualFold(p.Category, q.Category)
		})
		return recs, "category " + q.Category
	default:
		return topRated(store.All(), q.Limit, nil), "top rated"
	}
}

// topRated filters products with keep (nil keeps everything), orders them
// by rating descending and truncates to limit.
func topRated(products []catalog.Product, limit int, keep func(catalog.Product) bool) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if keep == nil || keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RatingOrZero() > out[j].RatingOrZero()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
