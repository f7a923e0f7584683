package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appconv "github.com/omnicrm/backend/internal/application/conversation"
	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/interfaces/http/dto"
	"github.com/omnicrm/backend/internal/interfaces/http/middleware"
)

// MessageHandler handles one classified inbound message end to end
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg conversation.InboundMessage, intent conversation.Intent) (*appconv.Result, error)
}

// WebhookHandler receives Meta webhook traffic: hub-challenge
// verification on GET and classifier callbacks on POST, one route pair
// per channel.
type WebhookHandler struct {
	BaseHandler
	messages    MessageHandler
	verifyToken string
	logger      *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(messages MessageHandler, verifyToken string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		messages:    messages,
		verifyToken: verifyToken,
		logger:      logger.Named("webhook_handler"),
	}
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhooks := rg.Group("/webhooks")
	webhooks.GET("/whatsapp", h.Verify)
	webhooks.POST("/whatsapp", h.receive(crm.ChannelWhatsApp))
	webhooks.GET("/messenger", h.Verify)
	webhooks.POST("/messenger", h.receive(crm.ChannelMessenger))
}

// Verify answers the Meta hub challenge. Both channels share one verify
// token.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || h.verifyToken == "" || token != h.verifyToken {
		h.logger.Warn("webhook verification rejected",
			zap.String("mode", mode),
			zap.String("request_id", middleware.GetRequestID(c)))
		h.Error(c, dto.ErrCodeForbidden, "Webhook verification failed")
		return
	}

	c.String(http.StatusOK, challenge)
}

func (h *WebhookHandler) receive(channel crm.Channel) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event WebhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			h.Error(c, dto.ErrCodeInvalidJSON, "Invalid webhook payload")
			return
		}

		msg := event.ToInboundMessage(channel)
		result, err := h.messages.HandleMessage(c.Request.Context(), msg, event.ToIntent())
		if err != nil {
			h.logger.Error("message handling failed",
				zap.String("channel", string(channel)),
				zap.String("message_id", msg.MessageID),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err))
			h.DomainError(c, err)
			return
		}

		resp := HandleMessageResponse{
			Reply:     result.Reply,
			Delivered: result.Delivered,
			Duplicate: result.Duplicate,
		}
		if result.ContactID != uuid.Nil {
			resp.ContactID = result.ContactID.String()
		}
		h.Success(c, resp)
	}
}
