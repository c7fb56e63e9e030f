// Package dispatch exposes the catalog, cart and insight components as
// named operations with validated inputs and a uniform response envelope.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/packlane/storefront/internal/cart"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/insights"
)

// ErrUnknownOperation is returned by Dispatch for an unrecognized
// operation name. Every other outcome is reported inside the envelope.
var ErrUnknownOperation = errors.New("unknown operation")

// Dispatcher routes named operations to the catalog store, the shared
// cart and the insight computations, and wraps every result in an
// Envelope.
type Dispatcher struct {
	store    *catalog.Store
	cart     *cart.Cart
	validate *validator.Validate
	logger   *slog.Logger
}

func NewDispatcher(store *catalog.Store, c *cart.Cart, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		cart:     c,
		validate: validator.New(),
		logger:   logger.With("component", "dispatch"),
	}
}

// Dispatch validates the input against the named operation's contract,
// runs the operation to completion, and returns the envelope. The error
// is non-nil only for an unknown operation name; every known operation
// always yields a well-formed envelope, success or failure. Mutations are
// applied before the envelope is built, and a rejected input causes no
// state change at all.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, input json.RawMessage) (*Envelope, error) {
	switch name {
	case OpListProducts:
		return d.listProducts(ctx, input), nil
	case OpGetProductDetails:
		return d.getProductDetails(ctx, input), nil
	case OpCompareProducts:
		return d.compareProducts(ctx, input), nil
	case OpGetCart:
		return d.getCart(ctx, input), nil
	case OpAddToCart:
		return d.addToCart(ctx, input), nil
	case OpRemoveFromCart:
		return d.removeFromCart(ctx, input), nil
	case OpClearCart:
		return d.clearCart(ctx, input), nil
	case OpGetRecommendations:
		return d.getRecommendations(ctx, input), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
}

// decodeInput unmarshals and validates an operation input into in. A nil
// result means the input is good; otherwise the returned envelope is the
// validation_error response and no state has been touched.
func (d *Dispatcher) decodeInput(ctx context.Context, name, binding string, raw json.RawMessage, in any) *Envelope {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, in); err != nil {
			d.logger.WarnContext(ctx, "malformed operation input", "operation", name, "error", err)
			return &Envelope{
				Summary: fmt.Sprintf("Invalid input for %s", name),
				Payload: validationErrorPayload{Error: "Malformed input: " + err.Error()},
				Binding: binding,
				Error:   KindValidationError,
			}
		}
	}
	if err := d.validate.Struct(in); err != nil {
		fields := make(map[string]string)
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
		}
		d.logger.WarnContext(ctx, "operation input failed validation", "operation", name, "errors", fields)
		return &Envelope{
			Summary: fmt.Sprintf("Invalid input for %s", name),
			Payload: validationErrorPayload{Error: "Invalid input", ValidationErrors: fields},
			Binding: binding,
			Error:   KindValidationError,
		}
	}
	return nil
}

func (d *Dispatcher) listProducts(ctx context.Context, raw json.RawMessage) *Envelope {
	var in ListProductsInput
	if env := d.decodeInput(ctx, OpListProducts, BindingProducts, raw, &in); env != nil {
		return env
	}

	f := catalog.Filter{MinPrice: in.MinPrice, MaxPrice: in.MaxPrice}
	if in.Category != nil {
		f.Category = *in.Category
	}
	if in.SortBy != nil {
		f.SortBy = *in.SortBy
	}
	if in.Limit != nil {
		f.Limit = *in.Limit
	}
	products := d.store.List(f)
	d.logger.DebugContext(ctx, "listed products", "count", len(products))

	return &Envelope{
		Summary: listSummary(len(products), in),
		Payload: listProductsPayload{Products: products, Total: len(products), Filters: in},
		Binding: BindingProducts,
	}
}

func (d *Dispatcher) getProductDetails(ctx context.Context, raw json.RawMessage) *Envelope {
	var in GetProductDetailsInput
	if env := d.decodeInput(ctx, OpGetProductDetails, BindingProductDetail, raw, &in); env != nil {
		return env
	}

	p, err := d.store.FindByID(in.ProductID)
	if err != nil {
		d.logger.WarnContext(ctx, "product not found", "product_id", in.ProductID)
		return &Envelope{
			Summary: fmt.Sprintf("Product with ID %q not found", in.ProductID),
			Payload: productErrorPayload{Error: "Product not found", ProductID: in.ProductID},
			Binding: BindingProductDetail,
			Error:   KindNotFound,
		}
	}

	rating := "N/A"
	if p.Rating != nil {
		rating = trimFloat(*p.Rating)
	}
	return &Envelope{
		Summary: fmt.Sprintf("%s - $%.2f (%s) - Rating: %s/5", p.Name, p.Price, p.Category, rating),
		Payload: productDetailsPayload{Product: p},
		Binding: BindingProductDetail,
	}
}

func (d *Dispatcher) compareProducts(ctx context.Context, raw json.RawMessage) *Envelope {
	var in CompareProductsInput
	if env := d.decodeInput(ctx, OpCompareProducts, BindingCompare, raw, &in); env != nil {
		return env
	}

	// Unresolvable ids are discarded, not fatal; the comparison fails
	// only when fewer than two remain.
	resolved := make([]catalog.Product, 0, len(in.ProductIDs))
	for _, id := range in.ProductIDs {
		if p, err := d.store.FindByID(id); err == nil {
			resolved = append(resolved, p)
		}
	}

	insight, err := insights.Compare(resolved)
	if err != nil {
		d.logger.WarnContext(ctx, "comparison rejected",
			"requested", len(in.ProductIDs), "resolved", len(resolved))
		return &Envelope{
			Summary: "Not enough valid products found. Please provide at least 2 valid product IDs.",
			Payload: comparisonErrorPayload{
				Error:        "Insufficient valid products",
				RequestedIDs: in.ProductIDs,
				FoundCount:   len(resolved),
			},
			Binding: BindingCompare,
			Error:   KindInsufficientProducts,
		}
	}

	names := make([]string, len(resolved))
	for i, p := range resolved {
		names[i] = p.Name
	}
	summary := fmt.Sprintf("Comparing %d products: %s. Best Value: %s, Highest Rated: %s, Lowest Price: %s",
		len(resolved), strings.Join(names, ", "),
		insight.BestValue.Name, insight.HighestRated.Name, insight.LowestPrice.Name)

	return &Envelope{
		Summary: summary,
		Payload: comparePayload{
			Products: resolved,
			Insights: compareInsights{
				BestValue:    insight.BestValue,
				HighestRated: insight.HighestRated,
				LowestPrice:  insight.LowestPrice,
			},
			PriceRange: insight.PriceRange,
		},
		Binding: BindingCompare,
	}
}

func (d *Dispatcher) getCart(ctx context.Context, raw json.RawMessage) *Envelope {
	if env := d.decodeInput(ctx, OpGetCart, BindingCart, raw, &struct{}{}); env != nil {
		return env
	}

	state := d.cart.Snapshot()
	summary := "Cart is empty"
	if state.ItemCount > 0 {
		summary = fmt.Sprintf("Cart has %d item(s) totaling $%.2f", state.ItemCount, state.Subtotal)
	}
	return &Envelope{
		Summary: summary,
		Payload: state,
		Binding: BindingCart,
	}
}

func (d *Dispatcher) addToCart(ctx context.Context, raw json.RawMessage) *Envelope {
	var in AddToCartInput
	if env := d.decodeInput(ctx, OpAddToCart, BindingCart, raw, &in); env != nil {
		return env
	}

	// Resolve before mutating so an unknown product leaves the cart
	// untouched.
	p, err := d.store.FindByID(in.ProductID)
	if err != nil {
		d.logger.WarnContext(ctx, "add_to_cart target not found", "product_id", in.ProductID)
		return &Envelope{
			Summary: fmt.Sprintf("Product with ID %q not found", in.ProductID),
			Payload: productErrorPayload{Error: "Product not found", ProductID: in.ProductID},
			Binding: BindingCart,
			Error:   KindNotFound,
		}
	}

	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	_, state := d.cart.Add(p, quantity)
	d.logger.InfoContext(ctx, "product added to cart",
		"product_id", p.ID, "quantity", quantity, "subtotal", state.Subtotal)

	return &Envelope{
		Summary: fmt.Sprintf("Added %dx %q to cart. Cart total: $%.2f", quantity, p.Name, state.Subtotal),
		Payload: addToCartPayload{AddedProduct: p, Quantity: quantity, Cart: state},
		Binding: BindingCart,
	}
}

func (d *Dispatcher) removeFromCart(ctx context.Context, raw json.RawMessage) *Envelope {
	var in RemoveFromCartInput
	if env := d.decodeInput(ctx, OpRemoveFromCart, BindingCart, raw, &in); env != nil {
		return env
	}

	removed, state, err := d.cart.Remove(in.ProductID, in.Quantity)
	if err != nil {
		d.logger.WarnContext(ctx, "remove_from_cart target absent", "product_id", in.ProductID)
		return &Envelope{
			Summary: fmt.Sprintf("Product with ID %q is not in the cart", in.ProductID),
			Payload: productErrorPayload{Error: "Product not in cart", ProductID: in.ProductID},
			Binding: BindingCart,
			Error:   KindNotInCart,
		}
	}
	d.logger.InfoContext(ctx, "product removed from cart",
		"product_id", in.ProductID, "subtotal", state.Subtotal)

	return &Envelope{
		Summary: fmt.Sprintf("Removed %q from cart. Cart total: $%.2f", removed.Product.Name, state.Subtotal),
		Payload: removeFromCartPayload{RemovedProduct: removed.Product, Cart: state},
		Binding: BindingCart,
	}
}

func (d *Dispatcher) clearCart(ctx context.Context, raw json.RawMessage) *Envelope {
	if env := d.decodeInput(ctx, OpClearCart, BindingCart, raw, &struct{}{}); env != nil {
		return env
	}

	cleared, state := d.cart.Clear()
	d.logger.InfoContext(ctx, "cart cleared", "cleared_count", cleared)

	summary := "Cart was already empty"
	if cleared > 0 {
		summary = fmt.Sprintf("Cleared %d item(s) from cart", cleared)
	}
	return &Envelope{
		Summary: summary,
		Payload: clearCartPayload{ClearedCount: cleared, Cart: state},
		Binding: BindingCart,
	}
}

func (d *Dispatcher) getRecommendations(ctx context.Context, raw json.RawMessage) *Envelope {
	var in GetRecommendationsInput
	if env := d.decodeInput(ctx, OpGetRecommendations, BindingProducts, raw, &in); env != nil {
		return env
	}

	q := insights.Query{Limit: 3}
	if in.ProductID != nil {
		q.ProductID = *in.ProductID
	}
	if in.Category != nil {
		q.Category = *in.Category
	}
	if in.Limit != nil {
		q.Limit = *in.Limit
	}
	recs, basis := insights.Recommend(d.store, q)
	d.logger.DebugContext(ctx, "computed recommendations", "count", len(recs), "based_on", basis)

	names := make([]string, len(recs))
	for i, p := range recs {
		names[i] = p.Name
	}
	return &Envelope{
		Summary: "Recommended products: " + strings.Join(names, ", "),
		Payload: recommendationsPayload{Recommendations: recs, BasedOn: basis},
		Binding: BindingProducts,
	}
}

func listSummary(count int, in ListProductsInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d products", count)
	if in.Category != nil {
		fmt.Fprintf(&b, " in category %q", *in.Category)
	}
	if in.MinPrice != nil || in.MaxPrice != nil {
		lower := "0"
		if in.MinPrice != nil {
			lower = trimFloat(*in.MinPrice)
		}
		upper := "∞"
		if in.MaxPrice != nil {
			upper = trimFloat(*in.MaxPrice)
		}
		fmt.Fprintf(&b, " within price range $%s - $%s", lower, upper)
	}
	return b.String()
}

// trimFloat formats a float without trailing zeros (50 rather than 50.00).
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
