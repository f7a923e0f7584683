package handler

import (
	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
)

// WebhookEvent is the classifier callback payload: the inbound message
// already enriched with the classified intent. The channel comes from
// the route, not the body.
type WebhookEvent struct {
	Message WebhookMessage `json:"message" binding:"required"`
	Contact WebhookContact `json:"contact"`
	Intent  WebhookIntent  `json:"intent"`
}

// WebhookMessage identifies the inbound platform message
type WebhookMessage struct {
	ID   string `json:"id"`
	From string `json:"from" binding:"required"`
	Text string `json:"text"`
}

// WebhookContact is the optional profile seed supplied by the platform
type WebhookContact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// WebhookIntent mirrors conversation.Intent on the wire
type WebhookIntent struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// ToInboundMessage converts the payload into a domain inbound message
func (e WebhookEvent) ToInboundMessage(channel crm.Channel) conversation.InboundMessage {
	return conversation.InboundMessage{
		Channel:    channel,
		ExternalID: e.Message.From,
		MessageID:  e.Message.ID,
		Text:       e.Message.Text,
		Seed: crm.SeedProfile{
			FirstName: e.Contact.FirstName,
			LastName:  e.Contact.LastName,
			Email:     e.Contact.Email,
		},
	}
}

// ToIntent converts the payload's intent into the domain contract
func (e WebhookEvent) ToIntent() conversation.Intent {
	return conversation.Intent{
		Action: e.Intent.Action,
		Data:   e.Intent.Data,
	}
}

// HandleMessageResponse reports the handling outcome to the caller
type HandleMessageResponse struct {
	ContactID string `json:"contact_id,omitempty"`
	Reply     string `json:"reply,omitempty"`
	Delivered bool   `json:"delivered"`
	Duplicate bool   `json:"duplicate"`
}
