package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders accepted by Filter.SortBy.
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortNameAsc    = "name_asc"
)

// Filter narrows and orders a catalog listing. All criteria apply
// conjunctively; the zero value matches every product.
type Filter struct {
	Category string   // exact match, case-insensitive
	MinPrice *float64 // inclusive lower bound
	MaxPrice *float64 // inclusive upper bound
	SortBy   string
	Limit    int // applied after sorting; <= 0 means unlimited
}

// List returns the products matching f, sorted and truncated per f. The
// result is always a fresh slice; an empty result is valid.
func (s *Store) List(f Filter) []Product {
	out := make([]Product, 0, len(s.order))
	for _, p := range s.order {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, f.SortBy)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func sortProducts(products []Product, sortBy string) {
	switch sortBy {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingOrZero() > products[j].RatingOrZero()
		})
	case SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}
