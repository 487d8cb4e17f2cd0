package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
	"github.com/Ramsu24/D-Solar-sub001/internal/conversation"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

// Responder answers a customer message.
type Responder interface {
	Route(ctx context.Context, message string, history []domain.ChatTurn) (chat.Response, error)
}

// ChatHandler serves the web chat and messenger endpoints.
type ChatHandler struct {
	log       *observability.Logger
	responder Responder
	history   *conversation.History
}

// NewChatHandler creates a chat handler. history backs the messenger endpoint.
func NewChatHandler(log *observability.Logger, responder Responder, history *conversation.History) *ChatHandler {
	return &ChatHandler{log: log, responder: responder, history: history}
}

// ChatRequestDTO is the body of POST /api/chat.
type ChatRequestDTO struct {
	Message string            `json:"message"`
	History []domain.ChatTurn `json:"history,omitempty"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required", "")
		return
	}

	resp, err := h.responder.Route(r.Context(), req.Message, req.History)
	if err != nil {
		writeDomainError(w, h.log.WithContext(r.Context()), "chat failed", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// MessengerRequestDTO is the body of POST /api/messenger.
type MessengerRequestDTO struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

// MessengerResponseDTO is the reply relayed back to the messaging platform.
type MessengerResponseDTO struct {
	MessageID   string      `json:"messageId"`
	RecipientID string      `json:"recipientId"`
	Message     string      `json:"message"`
	Source      chat.Source `json:"source"`
}

// Messenger handles POST /api/messenger. The conversation is remembered per sender.
func (h *ChatHandler) Messenger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log.WithContext(ctx)

	var req MessengerRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.SenderID) == "" {
		writeError(w, http.StatusBadRequest, "senderId is required", "")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required", "")
		return
	}

	history, err := h.history.Load(ctx, req.SenderID)
	if err != nil {
		log.Warn().Err(err).Str("sender_id", req.SenderID).Msg("Conversation history unavailable")
	}

	resp, err := h.responder.Route(ctx, req.Message, history)
	if err != nil {
		writeDomainError(w, log, "chat failed", err)
		return
	}

	if err := h.history.Append(ctx, req.SenderID,
		domain.ChatTurn{Role: domain.RoleUser, Content: req.Message},
		domain.ChatTurn{Role: domain.RoleAssistant, Content: resp.Text},
	); err != nil {
		log.Warn().Err(err).Str("sender_id", req.SenderID).Msg("Failed to save conversation history")
	}

	writeJSON(w, http.StatusOK, MessengerResponseDTO{
		MessageID:   uuid.NewString(),
		RecipientID: req.SenderID,
		Message:     resp.Text,
		Source:      resp.Source,
	})
}
