package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// Recommendation kinds served by the catalog API.
const (
	RecommendPopular  = "popular"
	RecommendTrending = "trending"
	RecommendForMe    = "for-me"
)

var (
	ErrUnknownRecommendation = errors.New("unknown recommendation kind")
	ErrNotSignedIn           = errors.New("sign in required")
	ErrUnavailable           = errors.New("backend unavailable")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: baseURL,
		client:  client,
	}
}

type Tokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

type AuthResult struct {
	Tokens Tokens          `json:"tokens"`
	User   json.RawMessage `json:"user"`
}

type authEnvelope struct {
	Data AuthResult `json:"data"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/login/", body, "Login failed")
}

func (c *Client) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password, "full_name": fullName}
	return c.authenticate(ctx, "/api/auth/register/", body, "Registration failed")
}

// GoogleLogin exchanges a Google credential for storefront tokens.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*AuthResult, error) {
	body := map[string]string{"token": credential}
	return c.authenticate(ctx, "/api/auth/social/google/", body, "Google login failed")
}

func (c *Client) authenticate(ctx context.Context, path string, body any, failure string) (*AuthResult, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, path, "", body, failure, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *Client) Profile(ctx context.Context, token string) (json.RawMessage, error) {
	var profile json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile/", token, nil, "Failed to fetch profile", &profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *Client) Logout(ctx context.Context, token, refresh string) error {
	body := map[string]string{"refresh": refresh}
	return c.do(ctx, http.MethodPost, "/api/auth/logout/", token, body, "Logout failed", nil)
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/catalog/products/", "", nil, "Failed to fetch products", &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	var raw json.RawMessage
	body := map[string]string{"query": query}
	if err := c.do(ctx, http.MethodPost, "/api/catalog/products/search/", "", body, "Search failed", &raw); err != nil {
		return nil, err
	}
	return decodeProducts(raw)
}

// Recommendations returns the raw recommendation payload. The for-me kind
// needs a token.
func (c *Client) Recommendations(ctx context.Context, kind, token string) (json.RawMessage, error) {
	var failure string
	switch kind {
	case RecommendPopular:
		failure = "Failed to fetch popular products"
		token = ""
	case RecommendTrending:
		failure = "Failed to fetch trending products"
		token = ""
	case RecommendForMe:
		if token == "" {
			return nil, ErrNotSignedIn
		}
		failure = "Failed to fetch recommendations"
	default:
		return nil, ErrUnknownRecommendation
	}

	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/catalog/recommendations/"+kind+"/", token, nil, failure, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Orders(ctx context.Context, token string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/orders/", token, nil, "Failed to fetch orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Checkout(ctx context.Context, token string, order *domain.Order) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/orders/checkout/", token, order, "Checkout failed", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Outfits(ctx context.Context, token string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/outfits/", token, nil, "Failed to fetch outfits", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOutfit(ctx context.Context, token string, outfit domain.SavedOutfit) error {
	return c.do(ctx, http.MethodPost, "/api/outfits/create/", token, outfit, "Failed to create outfit", nil)
}

func (c *Client) DeleteOutfit(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/outfits/"+id+"/", token, nil, "Failed to delete outfit", nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, failure string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", failure, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, failure)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(data []byte, failure string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return failure
}

// decodeProducts accepts a bare array or a paginated {"results": [...]} or
// {"data": [...]} object.
func decodeProducts(raw json.RawMessage) ([]domain.Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []domain.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		return products, nil
	}

	var page struct {
		Results []domain.Product `json:"results"`
		Data    []domain.Product `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if page.Results != nil {
		return page.Results, nil
	}
	if page.Data != nil {
		return page.Data, nil
	}
	return []domain.Product{}, nil
}
