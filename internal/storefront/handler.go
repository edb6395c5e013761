package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/backend"
	"github.com/joao-fontenele/modestwear-storefront/internal/cart"
	"github.com/joao-fontenele/modestwear-storefront/internal/catalog"
	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// CheckoutRecorder observes checkout outcomes.
type CheckoutRecorder interface {
	RecordCheckout(ctx context.Context, outcome string, total float64)
}

type Handler struct {
	session  *Session
	recorder CheckoutRecorder
	logger   *slog.Logger
}

func NewHandler(session *Session, recorder CheckoutRecorder, logger *slog.Logger) *Handler {
	return &Handler{
		session:  session,
		recorder: recorder,
		logger:   logger,
	}
}

// Register mounts every storefront route on mux. wrap is applied to each
// handler, e.g. to tag spans with the route.
func (h *Handler) Register(mux *http.ServeMux, wrap func(http.HandlerFunc) http.HandlerFunc) {
	if wrap == nil {
		wrap = func(f http.HandlerFunc) http.HandlerFunc { return f }
	}

	mux.HandleFunc("GET /products", wrap(h.HandleListProducts))
	mux.HandleFunc("GET /products/{id}", wrap(h.HandleGetProduct))
	mux.HandleFunc("GET /search", wrap(h.HandleSearch))
	mux.HandleFunc("GET /categories", wrap(h.HandleCategories))
	mux.HandleFunc("GET /filters", wrap(h.HandleFilters))
	mux.HandleFunc("GET /cart", wrap(h.HandleGetCart))
	mux.HandleFunc("POST /cart/items", wrap(h.HandleAddToCart))
	mux.HandleFunc("PATCH /cart/items", wrap(h.HandleUpdateCartItem))
	mux.HandleFunc("DELETE /cart/items", wrap(h.HandleRemoveCartItem))
	mux.HandleFunc("POST /cart/promo", wrap(h.HandleApplyPromo))
	mux.HandleFunc("DELETE /cart", wrap(h.HandleClearCart))
	mux.HandleFunc("GET /wishlist", wrap(h.HandleGetWishlist))
	mux.HandleFunc("POST /wishlist", wrap(h.HandleAddToWishlist))
	mux.HandleFunc("POST /wishlist/{id}/toggle", wrap(h.HandleToggleWishlist))
	mux.HandleFunc("GET /outfit", wrap(h.HandleGetOutfit))
	mux.HandleFunc("POST /outfit/items", wrap(h.HandleAddOutfitItem))
	mux.HandleFunc("PATCH /outfit/items/{id}", wrap(h.HandleUpdateOutfitItem))
	mux.HandleFunc("DELETE /outfit/items/{id}", wrap(h.HandleRemoveOutfitItem))
	mux.HandleFunc("DELETE /outfit", wrap(h.HandleClearOutfit))
	mux.HandleFunc("GET /outfits", wrap(h.HandleListOutfits))
	mux.HandleFunc("POST /outfits", wrap(h.HandleSaveOutfit))
	mux.HandleFunc("POST /outfits/{id}/load", wrap(h.HandleLoadOutfit))
	mux.HandleFunc("DELETE /outfits/{id}", wrap(h.HandleDeleteOutfit))
	mux.HandleFunc("POST /checkout", wrap(h.HandleCheckout))
	mux.HandleFunc("POST /auth/login", wrap(h.HandleLogin))
	mux.HandleFunc("POST /auth/register", wrap(h.HandleRegister))
	mux.HandleFunc("POST /auth/google", wrap(h.HandleGoogleLogin))
	mux.HandleFunc("GET /auth/profile", wrap(h.HandleProfile))
	mux.HandleFunc("POST /auth/logout", wrap(h.HandleLogout))
	mux.HandleFunc("GET /auth/orders", wrap(h.HandleOrderHistory))
	mux.HandleFunc("GET /auth/outfits", wrap(h.HandleRemoteOutfits))
	mux.HandleFunc("GET /recommendations/{kind}", wrap(h.HandleRecommendations))
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.session.Products(criteria)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

// criteriaFromQuery reads filters from the query string. Sizes and colors
// accept repeated or comma-separated values.
func criteriaFromQuery(r *http.Request) (catalog.Criteria, error) {
	q := r.URL.Query()

	c := catalog.Criteria{
		CategoryID: q.Get("category"),
		Search:     q.Get("search"),
		Sizes:      listParam(q["size"]),
		Colors:     listParam(q["color"]),
		Sort:       catalog.ParseSortKey(q.Get("sort")),
	}

	if v := q.Get("new"); v != "" {
		isNew, err := strconv.ParseBool(v)
		if err != nil {
			return catalog.Criteria{}, errors.New("invalid new parameter")
		}
		c.NewOnly = isNew
	}

	var err error
	if c.MinPrice, err = priceParam(q.Get("min_price")); err != nil {
		return catalog.Criteria{}, errors.New("invalid min_price parameter")
	}
	if c.MaxPrice, err = priceParam(q.Get("max_price")); err != nil {
		return catalog.Criteria{}, errors.New("invalid max_price parameter")
	}

	return c, nil
}

func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func priceParam(v string) (decimal.NullDecimal, error) {
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.session.Product(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "search query is required")
		return
	}

	products, err := h.session.SearchProducts(r.Context(), query)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Catalog().Categories())
}

func (h *Handler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Catalog().Filters())
}

func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Cart())
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  *int   `json:"quantity"`
}

func (req cartItemRequest) key() domain.LineKey {
	return domain.LineKey{ProductID: req.ProductID, Color: req.Color, Size: req.Size}
}

func (h *Handler) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	view, err := h.session.AddToCart(req.ProductID, quantity, req.Color, req.Size)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) HandleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		h.writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	view, found, err := h.session.UpdateCartQuantity(req.key(), *req.Quantity)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	if !found {
		h.writeError(w, http.StatusNotFound, "cart item not found")
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.writeJSON(w, http.StatusOK, h.session.RemoveFromCart(req.key()))
}

type promoRequest struct {
	Code string `json:"code"`
}

func (h *Handler) HandleApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.session.ApplyPromoCode(req.Code)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.ClearCart())
}

func (h *Handler) HandleGetWishlist(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Wishlist())
}

type productRequest struct {
	ProductID string `json:"product_id"`
}

func (h *Handler) HandleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	added, err := h.session.AddToWishlist(req.ProductID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, h.session.Wishlist())
}

type toggleResponse struct {
	InWishlist bool             `json:"in_wishlist"`
	Items      []domain.Product `json:"items"`
}

func (h *Handler) HandleToggleWishlist(w http.ResponseWriter, r *http.Request) {
	in, err := h.session.ToggleWishlist(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toggleResponse{InWishlist: in, Items: h.session.Wishlist()})
}

func (h *Handler) HandleGetOutfit(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Outfit())
}

func (h *Handler) HandleAddOutfitItem(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.session.AddToOutfit(req.ProductID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) HandleUpdateOutfitItem(w http.ResponseWriter, r *http.Request) {
	var patch OutfitItemPatch
	if !h.decode(w, r, &patch) {
		return
	}

	view, err := h.session.UpdateOutfitItem(r.PathValue("id"), patch)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleRemoveOutfitItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.RemoveFromOutfit(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleClearOutfit(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.ClearOutfit())
}

func (h *Handler) HandleListOutfits(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.SavedOutfits())
}

type saveOutfitRequest struct {
	Name string `json:"name"`
}

func (h *Handler) HandleSaveOutfit(w http.ResponseWriter, r *http.Request) {
	var req saveOutfitRequest
	if !h.decode(w, r, &req) {
		return
	}

	saved, err := h.session.SaveOutfit(r.Context(), req.Name)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) HandleLoadOutfit(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.LoadOutfit(r.PathValue("id"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleDeleteOutfit(w http.ResponseWriter, r *http.Request) {
	if err := h.session.DeleteOutfit(r.Context(), r.PathValue("id")); err != nil {
		h.writeSessionError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var form CheckoutForm
	if !h.decode(w, r, &form) {
		return
	}

	order, err := h.session.Checkout(r.Context(), form)
	if err != nil {
		h.record(r, checkoutOutcome(err), 0)
		h.writeSessionError(w, err)
		return
	}

	h.record(r, "placed", order.Total.InexactFloat64())
	h.writeJSON(w, http.StatusCreated, order)
}

func checkoutOutcome(err error) string {
	var fieldErr *FieldError
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &fieldErr):
		return "invalid"
	case errors.Is(err, ErrEmptyCart):
		return "empty"
	case errors.As(err, &apiErr):
		return "rejected"
	default:
		return "failed"
	}
}

func (h *Handler) record(r *http.Request, outcome string, total float64) {
	if h.recorder != nil {
		h.recorder.RecordCheckout(r.Context(), outcome, total)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
}

type userResponse struct {
	User json.RawMessage `json:"user"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var form RegisterForm
	if !h.decode(w, r, &form) {
		return
	}

	user, err := h.session.Register(r.Context(), form)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.session.GoogleLogin(r.Context(), req.Credential)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.session.Profile(r.Context())
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandleOrderHistory(w http.ResponseWriter, r *http.Request) {
	out, err := h.session.OrderHistory(r.Context())
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleRemoteOutfits(w http.ResponseWriter, r *http.Request) {
	out, err := h.session.RemoteOutfits(r.Context())
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	out, err := h.session.Recommendations(r.Context(), r.PathValue("kind"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeSessionError maps session errors to HTTP statuses. Backend failures
// surface with the server-provided message.
func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	var fieldErr *FieldError
	var apiErr *backend.APIError

	switch {
	case errors.As(err, &fieldErr),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrColorRequired),
		errors.Is(err, cart.ErrSizeRequired),
		errors.Is(err, cart.ErrUnknownPromoCode),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrOutfitNameRequired),
		errors.Is(err, ErrOutfitCanvasEmpty),
		errors.Is(err, ErrCredentialsRequired),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrTermsNotAccepted):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrOutfitItemNotFound),
		errors.Is(err, ErrSavedOutfitNotFound),
		errors.Is(err, backend.ErrUnknownRecommendation):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, backend.ErrNotSignedIn):
		h.writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrBackendUnavailable):
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, backend.ErrUnavailable):
		h.logger.Error("backend unreachable", "error", err)
		h.writeError(w, http.StatusBadGateway, backend.ErrUnavailable.Error())
	case errors.As(err, &apiErr):
		h.logger.Warn("backend request failed", "status", apiErr.StatusCode, "message", apiErr.Message)
		h.writeError(w, http.StatusBadGateway, apiErr.Message)
	default:
		h.logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
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
