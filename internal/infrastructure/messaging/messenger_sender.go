package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
)

// ErrMessengerMissingPageAccessToken means the page token is not configured
var ErrMessengerMissingPageAccessToken = errors.New("messenger: missing page access token")

// MessengerConfig contains credentials for the Messenger Send API
type MessengerConfig struct {
	// APIBaseURL overrides the Graph API endpoint, mainly for tests
	APIBaseURL string
	// PageAccessToken authenticates as the Facebook page
	PageAccessToken string
	// Timeout bounds each outbound API call
	Timeout time.Duration
}

// Validate validates the configuration
func (c *MessengerConfig) Validate() error {
	if c.PageAccessToken == "" {
		return ErrMessengerMissingPageAccessToken
	}
	return nil
}

// messengerMessage is the Send API request body
type messengerMessage struct {
	Recipient messengerRecipient `json:"recipient"`
	Message   messengerText      `json:"message"`
}

type messengerRecipient struct {
	ID string `json:"id"`
}

type messengerText struct {
	Text string `json:"text"`
}

// MessengerSender implements conversation.ReplySender against the
// Messenger Send API.
type MessengerSender struct {
	config     MessengerConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMessengerSender creates a new Messenger Send API sender
func NewMessengerSender(config MessengerConfig, logger *zap.Logger) (*MessengerSender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultGraphAPIBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultSendTimeout
	}

	return &MessengerSender{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger.Named("messenger_sender"),
	}, nil
}

// Channel returns the channel this sender serves
func (s *MessengerSender) Channel() crm.Channel {
	return crm.ChannelMessenger
}

// Send posts a text message to the recipient's page-scoped sender id
func (s *MessengerSender) Send(ctx context.Context, channel crm.Channel, recipientKey, text string) error {
	payload := messengerMessage{
		Recipient: messengerRecipient{ID: recipientKey},
		Message:   messengerText{Text: text},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("messenger: failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/me/messages?access_token=%s",
		s.config.APIBaseURL, url.QueryEscape(s.config.PageAccessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("messenger: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
