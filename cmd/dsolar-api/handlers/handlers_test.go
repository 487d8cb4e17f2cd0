package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsu24/D-Solar-sub001/internal/cache"
	"github.com/Ramsu24/D-Solar-sub001/internal/chat"
	"github.com/Ramsu24/D-Solar-sub001/internal/conversation"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

type recordingResponder struct {
	histories [][]domain.ChatTurn
	err       error
}

func (r *recordingResponder) Route(ctx context.Context, message string, history []domain.ChatTurn) (chat.Response, error) {
	r.histories = append(r.histories, history)
	if r.err != nil {
		return chat.Response{}, r.err
	}
	return chat.Response{Text: "echo: " + message, Source: chat.SourceLLM}, nil
}

func post(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func newHistory(t *testing.T) *conversation.History {
	c := cache.NewMemoryClient(100)
	t.Cleanup(func() { c.Close() })
	return conversation.NewHistory(c, time.Minute, 10)
}

func TestChat_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.ValidationError("message is required", nil), http.StatusBadRequest},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"storage", domain.StorageError("list faqs", errors.New("connection refused")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChatHandler(observability.NopLogger(), &recordingResponder{err: tt.err}, newHistory(t))
			rec := post(t, h.Chat, `{"message":"hello"}`)
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, body["error"], body["message"])
			if tt.status == http.StatusInternalServerError {
				assert.Contains(t, body["detail"], "connection refused")
			}
		})
	}
}

func TestChat_PassesHistory(t *testing.T) {
	responder := &recordingResponder{}
	h := NewChatHandler(observability.NopLogger(), responder, newHistory(t))

	rec := post(t, h.Chat, `{"message":"and the price?","history":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, responder.histories, 1)
	assert.Len(t, responder.histories[0], 2)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestMessenger_RemembersConversation(t *testing.T) {
	responder := &recordingResponder{}
	h := NewChatHandler(observability.NopLogger(), responder, newHistory(t))

	require.Equal(t, http.StatusOK, post(t, h.Messenger, `{"senderId":"psid-1","message":"first"}`).Code)
	require.Equal(t, http.StatusOK, post(t, h.Messenger, `{"senderId":"psid-1","message":"second"}`).Code)
	require.Equal(t, http.StatusOK, post(t, h.Messenger, `{"senderId":"psid-2","message":"other"}`).Code)

	require.Len(t, responder.histories, 3)
	assert.Empty(t, responder.histories[0])
	assert.Equal(t, []domain.ChatTurn{
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleAssistant, Content: "echo: first"},
	}, responder.histories[1])
	assert.Empty(t, responder.histories[2])
}

func TestMessenger_Validation(t *testing.T) {
	h := NewChatHandler(observability.NopLogger(), &recordingResponder{}, newHistory(t))

	assert.Equal(t, http.StatusBadRequest, post(t, h.Messenger, `{"message":"hi"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h.Messenger, `{"senderId":"psid-1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(t, h.Messenger, `not json`).Code)
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("dial tcp: refused") }

func TestReady_DatabaseDown(t *testing.T) {
	h := NewHealthHandler("dsolar-assistant", downDB{})
	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
