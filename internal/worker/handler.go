package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joao-fontenele/modestwear-storefront/internal/domain"
)

// ConfirmationHandler mails a confirmation for each placed order and moves
// the order to processing.
type ConfirmationHandler struct {
	emailServiceURL string
	storefrontURL   string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewConfirmationHandler(emailServiceURL, storefrontURL string, client *http.Client, logger *slog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{
		emailServiceURL: emailServiceURL,
		storefrontURL:   storefrontURL,
		httpClient:      client,
		logger:          logger,
	}
}

func (h *ConfirmationHandler) Handle(ctx context.Context, event domain.OrderPlacedEvent) error {
	h.logger.Info("processing order placed event", "order_id", event.OrderID, "items", len(event.Items))

	if err := h.sendConfirmationEmail(ctx, event); err != nil {
		h.logger.Error("failed to send confirmation email", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	if err := h.updateOrderStatus(ctx, event.OrderID, domain.OrderStatusProcessing); err != nil {
		h.logger.Error("failed to update order status", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("update order status: %w", err)
	}

	h.logger.Info("order confirmation complete", "order_id", event.OrderID)
	return nil
}

func (h *ConfirmationHandler) sendConfirmationEmail(ctx context.Context, event domain.OrderPlacedEvent) error {
	body := map[string]string{
		"to":      event.Email,
		"subject": "Order Confirmation: " + event.OrderID,
		"body":    confirmationBody(event),
	}

	return h.post(ctx, http.MethodPost, h.emailServiceURL+"/send", body, "email service")
}

func confirmationBody(event domain.OrderPlacedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for shopping with ModestWear. Your order %s has been placed.\n\n", event.OrderID)
	for _, item := range event.Items {
		fmt.Fprintf(&b, "%d x %s (%s, %s) R%s\n", item.Quantity, item.ProductName, item.Color, item.Size, item.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: R%s\n", event.Total.StringFixed(2))
	return b.String()
}

func (h *ConfirmationHandler) updateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	body := map[string]string{
		"status": string(status),
	}

	url := fmt.Sprintf("%s/orders/%s/status", h.storefrontURL, orderID)
	return h.post(ctx, http.MethodPatch, url, body, "storefront")
}

func (h *ConfirmationHandler) post(ctx context.Context, method, url string, body any, service string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", service, resp.StatusCode)
	}

	return nil
}
