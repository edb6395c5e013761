package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// Handler serves placed orders to the admin side and to the confirmation
// worker, which advances orders once the customer has been notified.
type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	order, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

type statusChange struct {
	Status domain.OrderStatus `json:"status"`
}

// HandleUpdateStatus moves an order along its lifecycle. Changes the
// lifecycle forbids are answered with 409.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var change statusChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !change.Status.Valid() {
		h.writeError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	order, err := h.store.UpdateStatus(r.Context(), id, change.Status)
	var transition *TransitionError
	switch {
	case errors.As(err, &transition):
		h.writeError(w, http.StatusConflict, transition.Error())
		return
	case err != nil:
		h.logger.Error("failed to update order status", "error", err, "order_id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	case order == nil:
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.logger.Info("order status updated", "order_id", order.ID, "status", order.Status)
	h.writeJSON(w, http.StatusOK, order)
}

// HandleList returns orders newest first, optionally narrowed by
// ?status= and a case-insensitive ?email=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := domain.OrderStatus(q.Get("status"))
	if status != "" && !status.Valid() {
		h.writeError(w, http.StatusBadRequest, "invalid order status")
		return
	}
	email := strings.TrimSpace(q.Get("email"))

	all, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	matched := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if status != "" && o.Status != status {
			continue
		}
		if email != "" && !strings.EqualFold(o.Email, email) {
			continue
		}
		matched = append(matched, o)
	}

	h.writeJSON(w, http.StatusOK, matched)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
