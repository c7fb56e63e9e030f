// Package rest exposes the operation dispatcher over HTTP.
package rest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/packlane/storefront/internal/dispatch"
	"github.com/packlane/storefront/pkg/web"
)

type Handler struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewHandler creates a new instance of the tool API handler.
func NewHandler(dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the tool server.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/tools", func(r chi.Router) {
		r.Get("/", h.ListOperations)
		r.Post("/{name}", h.Invoke)
	})

	r.Get("/healthz", h.HealthCheck)
}

// ListOperations returns the operation catalog for discovery.
func (h *Handler) ListOperations(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	web.RespondJSON(w, mLogger, http.StatusOK, h.dispatcher.Operations())
}

// Invoke runs a named operation with the JSON body as its input. An empty
// body invokes the operation with no arguments.
func (h *Handler) Invoke(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error reading request body", "operation", name, "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Failed to read request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received operation invocation", "operation", name)
	envelope, err := h.dispatcher.Dispatch(r.Context(), name, body)
	if err != nil {
		if errors.Is(err, dispatch.ErrUnknownOperation) {
			mLogger.WarnContext(r.Context(), "Unknown operation requested", "operation", name)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Unknown operation %q", name))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error dispatching operation", "operation", name, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to dispatch operation %q", name))
		return
	}

	web.RespondJSON(w, mLogger, statusFor(envelope), envelope)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// statusFor maps an envelope's error kind to an HTTP status. The envelope
// itself is status-agnostic and returned as the body either way.
func statusFor(envelope *dispatch.Envelope) int {
	switch envelope.Error {
	case "":
		return http.StatusOK
	case dispatch.KindValidationError:
		return http.StatusBadRequest
	case dispatch.KindNotFound, dispatch.KindNotInCart:
		return http.StatusNotFound
	case dispatch.KindInsufficientProducts:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
