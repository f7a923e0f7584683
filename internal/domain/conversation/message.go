package conversation

import (
	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
)

// InboundMessage is one inbound chat event, already parsed by the
// surrounding webhook handler and classified by the external AI
// service. The bridge handles each message as an independent,
// short-lived unit of work.
type InboundMessage struct {
	Channel    crm.Channel
	ExternalID string // phone number for whatsapp, sender id for messenger
	MessageID  string // platform message id, used for redelivery dedupe
	Text       string
	Seed       crm.SeedProfile
}

// Validate checks the message is routable
func (m InboundMessage) Validate() error {
	if !m.Channel.IsValid() {
		return shared.ErrUnsupportedChannel
	}
	if m.ExternalID == "" {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "External identifier cannot be empty")
	}
	return nil
}

// Identity returns the channel identity key for contact resolution
func (m InboundMessage) Identity() (crm.ChannelIdentity, error) {
	return crm.NewChannelIdentity(m.Channel, m.ExternalID)
}
