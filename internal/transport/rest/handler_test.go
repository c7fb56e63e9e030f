package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/packlane/storefront/internal/cart"
	"github.com/packlane/storefront/internal/catalog"
	"github.com/packlane/storefront/internal/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratingPtr(v float64) *float64 {
	return &v
}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store, err := catalog.NewStore([]catalog.Product{
		{ID: "1", Name: "Trail Pack", Category: "Outdoor", Price: 120, Rating: ratingPtr(4.5)},
		{ID: "2", Name: "City Pack", Category: "Commuter", Price: 60, Rating: ratingPtr(4.0)},
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := dispatch.NewDispatcher(store, cart.New(), logger)

	router := chi.NewRouter()
	NewHandler(dispatcher, logger).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func Test_ListOperations(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, http.MethodGet, "/api/v1/tools", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var ops []dispatch.OperationInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ops))
	assert.Len(t, ops, 8)

	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	assert.Contains(t, names, dispatch.OpListProducts)
	assert.Contains(t, names, dispatch.OpClearCart)
}

func Test_Invoke_StatusMapping(t *testing.T) {
	testCases := []struct {
		name           string
		operation      string
		body           string
		expectedStatus int
		expectedKind   string
	}{
		{
			name:           "success",
			operation:      dispatch.OpListProducts,
			body:           "",
			expectedStatus: http.StatusOK,
			expectedKind:   "",
		},
		{
			name:           "validation error",
			operation:      dispatch.OpListProducts,
			body:           `{"minPrice": -1}`,
			expectedStatus: http.StatusBadRequest,
			expectedKind:   dispatch.KindValidationError,
		},
		{
			name:           "product not found",
			operation:      dispatch.OpGetProductDetails,
			body:           `{"productId": "99"}`,
			expectedStatus: http.StatusNotFound,
			expectedKind:   dispatch.KindNotFound,
		},
		{
			name:           "product not in cart",
			operation:      dispatch.OpRemoveFromCart,
			body:           `{"productId": "1"}`,
			expectedStatus: http.StatusNotFound,
			expectedKind:   dispatch.KindNotInCart,
		},
		{
			name:           "insufficient comparable products",
			operation:      dispatch.OpCompareProducts,
			body:           `{"productIds": ["1", "nope"]}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedKind:   dispatch.KindInsufficientProducts,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t)

			rr := doRequest(t, router, http.MethodPost, "/api/v1/tools/"+tc.operation, tc.body)

			require.Equal(t, tc.expectedStatus, rr.Code)

			var envelope struct {
				Summary string `json:"summary"`
				Error   string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
			assert.Equal(t, tc.expectedKind, envelope.Error)
			assert.NotEmpty(t, envelope.Summary)
		})
	}
}

func Test_Invoke_UnknownOperation(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, http.MethodPost, "/api/v1/tools/launch_rocket", "{}")

	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, `Unknown operation "launch_rocket"`, body["error"])
}

func Test_Invoke_EnvelopeShape(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, http.MethodPost, "/api/v1/tools/"+dispatch.OpGetProductDetails, `{"productId": "1"}`)

	require.Equal(t, http.StatusOK, rr.Code)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Contains(t, envelope, "summary")
	assert.Contains(t, envelope, "payload")
	assert.Contains(t, envelope, "binding")
	// error is omitted on success
	assert.NotContains(t, envelope, "error")

	var binding string
	require.NoError(t, json.Unmarshal(envelope["binding"], &binding))
	assert.Equal(t, dispatch.BindingProductDetail, binding)
}

func Test_Invoke_CartFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, http.MethodPost, "/api/v1/tools/"+dispatch.OpAddToCart, `{"productId": "2", "quantity": 3}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodPost, "/api/v1/tools/"+dispatch.OpGetCart, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Summary string `json:"summary"`
		Payload struct {
			ItemCount int     `json:"itemCount"`
			Subtotal  float64 `json:"subtotal"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	assert.Equal(t, "Cart has 1 item(s) totaling $180.00", envelope.Summary)
	assert.Equal(t, 1, envelope.Payload.ItemCount)
	assert.InDelta(t, 180, envelope.Payload.Subtotal, 1e-9)
}

func Test_HealthCheck(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
