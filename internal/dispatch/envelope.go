package dispatch

// Error kinds carried in Envelope.Error. An empty kind means success.
const (
	KindValidationError      = "validation_error"
	KindNotFound             = "not_found"
	KindNotInCart            = "not_in_cart"
	KindInsufficientProducts = "insufficient_products"
)

// Presentation bindings: opaque template references the rendering layer
// keys on. The core never interprets them.
const (
	BindingProducts      = "ui://widgets/products"
	BindingProductDetail = "ui://widgets/product-detail"
	BindingCompare       = "ui://widgets/compare"
	BindingCart          = "ui://widgets/cart"
)

// Envelope is the uniform response wrapper for every operation: a
// deterministic one-line summary, the machine-structured payload, and the
// presentation binding. Error holds the taxonomy kind on failure.
type Envelope struct {
	Summary string `json:"summary"`
	Payload any    `json:"payload"`
	Binding string `json:"binding,omitempty"`
	Error   string `json:"error,omitempty"`
}
