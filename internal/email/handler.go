package email

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Message is one mail accepted by the sink.
type Message struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// Handler is a mail sink standing in for a real delivery provider. Accepted
// messages are kept in memory for inspection.
type Handler struct {
	mu     sync.RWMutex
	outbox []Message
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type sendResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !strings.Contains(req.To, "@") {
		h.writeError(w, http.StatusBadRequest, "invalid recipient")
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		h.writeError(w, http.StatusBadRequest, "subject is required")
		return
	}

	h.mu.Lock()
	h.outbox = append(h.outbox, Message{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
		SentAt:  time.Now().UTC(),
	})
	h.mu.Unlock()

	h.logger.Info("email sent", "to", req.To, "subject", req.Subject)

	h.writeJSON(w, http.StatusOK, sendResponse{Status: "sent"})
}

// HandleList returns accepted messages, optionally filtered by ?to=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")

	h.mu.RLock()
	messages := make([]Message, 0, len(h.outbox))
	for _, m := range h.outbox {
		if to == "" || strings.EqualFold(m.To, to) {
			messages = append(messages, m)
		}
	}
	h.mu.RUnlock()

	h.writeJSON(w, http.StatusOK, messages)
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
