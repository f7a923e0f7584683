package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appconv "github.com/omnicrm/backend/internal/application/conversation"
	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockMessageHandler is a mock implementation of MessageHandler
type MockMessageHandler struct {
	mock.Mock
}

func (m *MockMessageHandler) HandleMessage(ctx context.Context, msg conversation.InboundMessage, intent conversation.Intent) (*appconv.Result, error) {
	args := m.Called(ctx, msg, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appconv.Result), args.Error(1)
}

func newWebhookRouter(messages MessageHandler) *gin.Engine {
	engine := gin.New()
	handler := NewWebhookHandler(messages, "verify-secret", zap.NewNop())
	handler.RegisterRoutes(engine.Group(""))
	return engine
}

func TestWebhookHandler_Verify(t *testing.T) {
	router := newWebhookRouter(new(MockMessageHandler))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid challenge",
			query:      "hub.mode=subscribe&hub.verify_token=verify-secret&hub.challenge=424242",
			wantStatus: http.StatusOK,
			wantBody:   "424242",
		},
		{
			name:       "wrong token",
			query:      "hub.mode=subscribe&hub.verify_token=guess&hub.challenge=424242",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "wrong mode",
			query:      "hub.mode=unsubscribe&hub.verify_token=verify-secret&hub.challenge=424242",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no params",
			query:      "",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/webhooks/whatsapp", "/webhooks/messenger"} {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path+"?"+tt.query, nil))
				assert.Equal(t, tt.wantStatus, w.Code, path)
				if tt.wantBody != "" {
					assert.Equal(t, tt.wantBody, w.Body.String(), path)
				}
			}
		})
	}
}

func TestWebhookHandler_Verify_EmptyConfiguredToken(t *testing.T) {
	engine := gin.New()
	NewWebhookHandler(new(MockMessageHandler), "", zap.NewNop()).RegisterRoutes(engine.Group(""))

	// An unset token must never verify, not even against an empty query value
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/webhooks/whatsapp?hub.mode=subscribe&hub.verify_token=&hub.challenge=1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func postEvent(t *testing.T, router *gin.Engine, path string, event WebhookEvent) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(event)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_Receive(t *testing.T) {
	messages := new(MockMessageHandler)
	router := newWebhookRouter(messages)

	contactID := uuid.New()
	messages.On("HandleMessage", mock.Anything,
		mock.MatchedBy(func(msg conversation.InboundMessage) bool {
			return msg.Channel == crm.ChannelWhatsApp &&
				msg.ExternalID == "+221770000000" &&
				msg.MessageID == "wamid.A1" &&
				msg.Text == "vos produits svp" &&
				msg.Seed.FirstName == "Awa"
		}),
		mock.MatchedBy(func(intent conversation.Intent) bool {
			return intent.Action == conversation.ActionPresentProducts
		}),
	).Return(&appconv.Result{
		ContactID: contactID,
		Reply:     "Clavier: 15000",
		Delivered: true,
	}, nil)

	w := postEvent(t, router, "/webhooks/whatsapp", WebhookEvent{
		Message: WebhookMessage{ID: "wamid.A1", From: "+221770000000", Text: "vos produits svp"},
		Contact: WebhookContact{FirstName: "Awa"},
		Intent:  WebhookIntent{Action: "present_products"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                  `json:"success"`
		Data    HandleMessageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, contactID.String(), resp.Data.ContactID)
	assert.Equal(t, "Clavier: 15000", resp.Data.Reply)
	assert.True(t, resp.Data.Delivered)
	assert.False(t, resp.Data.Duplicate)
}

func TestWebhookHandler_Receive_MessengerChannel(t *testing.T) {
	messages := new(MockMessageHandler)
	router := newWebhookRouter(messages)

	messages.On("HandleMessage", mock.Anything,
		mock.MatchedBy(func(msg conversation.InboundMessage) bool {
			return msg.Channel == crm.ChannelMessenger && msg.ExternalID == "24080000000000000"
		}),
		mock.Anything,
	).Return(&appconv.Result{Duplicate: true}, nil)

	w := postEvent(t, router, "/webhooks/messenger", WebhookEvent{
		Message: WebhookMessage{ID: "m_1", From: "24080000000000000"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data HandleMessageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Duplicate)
	assert.Empty(t, resp.Data.ContactID)
}

func TestWebhookHandler_Receive_InvalidJSON(t *testing.T) {
	messages := new(MockMessageHandler)
	router := newWebhookRouter(messages)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/whatsapp", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INVALID_JSON")
	messages.AssertNotCalled(t, "HandleMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookHandler_Receive_MissingSender(t *testing.T) {
	messages := new(MockMessageHandler)
	router := newWebhookRouter(messages)

	w := postEvent(t, router, "/webhooks/whatsapp", WebhookEvent{
		Message: WebhookMessage{ID: "wamid.A1"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	messages.AssertNotCalled(t, "HandleMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookHandler_Receive_StoreFailure(t *testing.T) {
	messages := new(MockMessageHandler)
	router := newWebhookRouter(messages)

	messages.On("HandleMessage", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, shared.NewStoreError("find contact", errors.New("connection refused")))

	w := postEvent(t, router, "/webhooks/whatsapp", WebhookEvent{
		Message: WebhookMessage{ID: "wamid.A1", From: "+221770000000"},
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_STORE_UNAVAILABLE")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestWebhookHandler_Receive_DeliveryFailure(t *testing.T) {
	messages := new(MockMessageHandler)
	router := newWebhookRouter(messages)

	messages.On("HandleMessage", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, conversation.NewDeliveryError(crm.ChannelWhatsApp, 401, "bad token"))

	w := postEvent(t, router, "/webhooks/whatsapp", WebhookEvent{
		Message: WebhookMessage{ID: "wamid.A1", From: "+221770000000"},
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_DELIVERY_FAILED")
}
