package crm

import "github.com/omnicrm/backend/internal/domain/shared"

// Channel identifies the external messaging surface a contact
// communicates through.
type Channel string

const (
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelMessenger Channel = "messenger"
)

// ParseChannel validates a raw channel tag
func ParseChannel(raw string) (Channel, error) {
	switch Channel(raw) {
	case ChannelWhatsApp:
		return ChannelWhatsApp, nil
	case ChannelMessenger:
		return ChannelMessenger, nil
	default:
		return "", shared.ErrUnsupportedChannel
	}
}

// IsValid reports whether the channel is a recognized value
func (c Channel) IsValid() bool {
	return c == ChannelWhatsApp || c == ChannelMessenger
}

// String returns the channel tag
func (c Channel) String() string {
	return string(c)
}

// DisplayName returns the human-readable channel name used when a
// first-contact profile carries no name of its own.
func (c Channel) DisplayName() string {
	switch c {
	case ChannelWhatsApp:
		return "WhatsApp"
	case ChannelMessenger:
		return "Messenger"
	default:
		return string(c)
	}
}

// ChannelIdentity is the lookup key into Contact: a channel plus the
// channel's natural key (phone for WhatsApp, account id for Messenger).
// An identity is never rebound to a different contact.
type ChannelIdentity struct {
	Channel    Channel
	ExternalID string
}

// NewChannelIdentity builds a validated channel identity
func NewChannelIdentity(channel Channel, externalID string) (ChannelIdentity, error) {
	if !channel.IsValid() {
		return ChannelIdentity{}, shared.ErrUnsupportedChannel
	}
	if externalID == "" {
		return ChannelIdentity{}, shared.NewDomainError("INVALID_EXTERNAL_ID", "External identifier cannot be empty")
	}
	return ChannelIdentity{Channel: channel, ExternalID: externalID}, nil
}
