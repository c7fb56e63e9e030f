package dispatch

import (
	"github.com/packlane/storefront/internal/cart"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/insights"
)

// Structured payloads, one per operation. Shapes are part of the contract
// consumed by the rendering layer.

type listProductsPayload struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
	Filters  ListProductsInput `json:"filters"`
}

type productDetailsPayload struct {
	Product catalog.Product `json:"product"`
}

type compareInsights struct {
	BestValue    insights.ProductRef `json:"bestValue"`
	HighestRated insights.ProductRef `json:"highestRated"`
	LowestPrice  insights.ProductRef `json:"lowestPrice"`
}

type comparePayload struct {
	Products   []catalog.Product   `json:"products"`
	Insights   compareInsights     `json:"insights"`
	PriceRange insights.PriceRange `json:"priceRange"`
}

type addToCartPayload struct {
	AddedProduct catalog.Product `json:"addedProduct"`
	Quantity     int             `json:"quantity"`
	Cart         cart.State      `json:"cart"`
}

type removeFromCartPayload struct {
	RemovedProduct catalog.Product `json:"removedProduct"`
	Cart           cart.State      `json:"cart"`
}

type clearCartPayload struct {
	ClearedCount int        `json:"clearedCount"`
	Cart         cart.State `json:"cart"`
}

type recommendationsPayload struct {
	Recommendations []catalog.Product `json:"recommendations"`
	BasedOn         string            `json:"basedOn"`
}

// productErrorPayload reports a failure tied to a single product id.
type productErrorPayload struct {
	Error     string `json:"error"`
	ProductID string `json:"productId"`
}

type comparisonErrorPayload struct {
	Error        string   `json:"error"`
	RequestedIDs []string `json:"requestedIds"`
	FoundCount   int      `json:"foundCount"`
}

type validationErrorPayload struct {
	Error            string            `json:"error"`
	ValidationErrors map[string]string `json:"validation_errors,omitempty"`
}
