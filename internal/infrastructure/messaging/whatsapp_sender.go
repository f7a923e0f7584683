package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
)

// DefaultGraphAPIBaseURL is the Meta Graph API endpoint both channel
// senders default to.
const DefaultGraphAPIBaseURL = "https://graph.facebook.com/v19.0"

const defaultSendTimeout = 10 * time.Second

// maxErrorBodyBytes caps how much of an upstream error body is carried
// into a DeliveryError.
const maxErrorBodyBytes = 2048

// Errors for configuration validation
var (
	ErrWhatsAppMissingPhoneNumberID = errors.New("whatsapp: missing phone number id")
	ErrWhatsAppMissingAccessToken   = errors.New("whatsapp: missing access token")
)

// WhatsAppConfig contains credentials for the WhatsApp Cloud API
type WhatsAppConfig struct {
	// APIBaseURL overrides the Graph API endpoint, mainly for tests
	APIBaseURL string
	// PhoneNumberID is the business phone number id messages are sent from
	PhoneNumberID string
	// AccessToken is the system-user bearer token
	AccessToken string
	// Timeout bounds each outbound API call
	Timeout time.Duration
}

// Validate validates the configuration
func (c *WhatsAppConfig) Validate() error {
	if c.PhoneNumberID == "" {
		return ErrWhatsAppMissingPhoneNumberID
	}
	if c.AccessToken == "" {
		return ErrWhatsAppMissingAccessToken
	}
	return nil
}

// whatsappTextMessage is the Cloud API send-message request body
type whatsappTextMessage struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             whatsappTextBody `json:"text"`
}

type whatsappTextBody struct {
	Body string `json:"body"`
}

// WhatsAppSender implements conversation.ReplySender against the
// WhatsApp Cloud API.
type WhatsAppSender struct {
	config     WhatsAppConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewWhatsAppSender creates a new WhatsApp Cloud API sender
func NewWhatsAppSender(config WhatsAppConfig, logger *zap.Logger) (*WhatsAppSender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultGraphAPIBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultSendTimeout
	}

	return &WhatsAppSender{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("whatsapp_sender"),
	}, nil
}

// Channel returns the channel this sender serves
func (s *WhatsAppSender) Channel() crm.Channel {
	return crm.ChannelWhatsApp
}

// Send posts a text message to the recipient's phone number
func (s *WhatsAppSender) Send(ctx context.Context, channel crm.Channel, recipientKey, text string) error {
	payload := whatsappTextMessage{
		MessagingProduct: "whatsapp",
		To:               recipientKey,
		Type:             "text",
		Text:             whatsappTextBody{Body: text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("whatsapp: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.config.APIBaseURL, s.config.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("whatsapp: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.AccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return conversation.NewTransportDeliveryError(channel, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return conversation.NewDeliveryError(channel, resp.StatusCode, string(respBody))
	}

	s.logger.Debug("reply delivered",
		zap.String("to", recipientKey),
		zap.Int("status", resp.StatusCode))
	return nil
}
