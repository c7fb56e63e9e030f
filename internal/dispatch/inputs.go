package dispatch

// Per-operation input contracts. Pointer fields distinguish "absent" from
// the zero value; validation runs before any state is touched.

// ListProductsInput filters and orders the catalog listing. Limit at or
// below zero means unlimited.
type ListProductsInput struct {
	Category *string  `json:"category,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty" validate:"omitempty,gte=0"`
	MaxPrice *float64 `json:"maxPrice,omitempty" validate:"omitempty,gte=0"`
	SortBy   *string  `json:"sortBy,omitempty"   validate:"omitempty,oneof=price_asc price_desc rating_desc name_asc"`
	Limit    *int     `json:"limit,omitempty"`
}

type GetProductDetailsInput struct {
	ProductID string `json:"productId" validate:"required"`
}

type CompareProductsInput struct {
	ProductIDs []string `json:"productIds" validate:"required,min=2,max=4,dive,required"`
}

type AddToCartInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,gte=1"` // default 1
}

type RemoveFromCartInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,gte=1"` // omit to remove all
}

type GetRecommendationsInput struct {
	ProductID *string `json:"productId,omitempty"`
	Category  *string `json:"category,omitempty"`
	Limit     *int    `json:"limit,omitempty" validate:"omitempty,gte=1,lte=5"` // default 3
}
