package dispatch

// Operation names accepted by Dispatch.
const (
	OpListProducts       = "list_products"
	OpGetProductDetails  = "get_product_details"
	OpCompareProducts    = "compare_products"
	OpGetCart            = "get_cart"
	OpAddToCart          = "add_to_cart"
	OpRemoveFromCart     = "remove_from_cart"
	OpClearCart          = "clear_cart"
	OpGetRecommendations = "get_recommendations"
)

// OperationInfo describes one dispatchable operation for discovery by
// callers and the rendering layer.
type OperationInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Binding     string `json:"binding"`
}

var operations = []OperationInfo{
	{
		Name:        OpListProducts,
		Title:       "Product Catalog",
		Description: "List all products in the catalog with optional filtering by category, price range, and sorting",
		Binding:     BindingProducts,
	},
	{
		Name:        OpGetProductDetails,
		Title:       "Product Details",
		Description: "Get detailed information about a specific product including description, specs, pros, and cons",
		Binding:     BindingProductDetail,
	},
	{
		Name:        OpCompareProducts,
		Title:       "Product Comparison",
		Description: "Compare 2-4 products side by side with detailed specs, pros, cons, and pricing analysis",
		Binding:     BindingCompare,
	},
	{
		Name:        OpGetCart,
		Title:       "Shopping Cart",
		Description: "Get the current shopping cart contents and total",
		Binding:     BindingCart,
	},
	{
		Name:        OpAddToCart,
		Title:       "Add to Cart",
		Description: "Add a product to the shopping cart",
		Binding:     BindingCart,
	},
	{
		Name:        OpRemoveFromCart,
		Title:       "Remove from Cart",
		Description: "Remove a product from the shopping cart",
		Binding:     BindingCart,
	},
	{
		Name:        OpClearCart,
		Title:       "Clear Cart",
		Description: "Remove all items from the shopping cart",
		Binding:     BindingCart,
	},
	{
		Name:        OpGetRecommendations,
		Title:       "Product Recommendations",
		Description: "Get product recommendations based on a product ID or category preference",
		Binding:     BindingProducts,
	},
}

// Operations lists every operation the dispatcher accepts, in a stable
// order. The result is a fresh slice on every call.
func (d *Dispatcher) Operations() []OperationInfo {
	out := make([]OperationInfo, len(operations))
	copy(out, operations)
	return out
}
