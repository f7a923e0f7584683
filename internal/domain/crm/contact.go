package crm

import (
	"strings"

	"github.com/google/uuid"

	"github.com/omnicrm/backend/internal/domain/shared"
)

// ContactType represents the lifecycle stage of a contact
type ContactType string

const (
	ContactTypeProspect ContactType = "prospect"
	ContactTypeClient   ContactType = "client"
)

// Contact represents a CRM party reachable through one or more
// messaging channels. It is the aggregate root for contact operations.
//
// For a given channel, at most one contact row is addressable by the
// channel's natural key: Phone for WhatsApp, Account for Messenger.
// Once created, a contact is looked up, never duplicated, for the same
// external identity.
type Contact struct {
	shared.BaseAggregateRoot
	FirstName string
	LastName  string
	Phone     string // WhatsApp natural key, empty when unknown
	Email     string
	Account   string // Messenger account/sender id, empty when unknown
	Type      ContactType
	OwnerID   uuid.UUID // default parent/owner the contact is filed under
}

// SeedProfile carries the optional partial profile supplied by the
// channel on first contact. It is only consulted at creation time.
type SeedProfile struct {
	FirstName string
	LastName  string
	Email     string
}

// NewContactFromChannel creates a contact for a first-time channel
// identity. The channel's natural key column is populated from the
// external id; the display name falls back to "<Channel> User" when the
// seed profile omits one.
func NewContactFromChannel(identity ChannelIdentity, seed SeedProfile, ownerID uuid.UUID) (*Contact, error) {
	if !identity.Channel.IsValid() {
		return nil, shared.ErrUnsupportedChannel
	}
	if identity.ExternalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External identifier cannot be empty")
	}

	contact := &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         strings.TrimSpace(seed.FirstName),
		LastName:          strings.TrimSpace(seed.LastName),
		Email:             strings.ToLower(strings.TrimSpace(seed.Email)),
		Type:              ContactTypeProspect,
		OwnerID:           ownerID,
	}

	switch identity.Channel {
	case ChannelWhatsApp:
		contact.Phone = identity.ExternalID
	case ChannelMessenger:
		contact.Account = identity.ExternalID
	}

	if contact.FirstName == "" && contact.LastName == "" {
		contact.FirstName = identity.Channel.DisplayName()
		contact.LastName = "User"
	}

	contact.AddDomainEvent(NewContactCreatedEvent(contact, identity.Channel))

	return contact, nil
}

// DisplayName returns the name shown in replies and logs
func (c *Contact) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return "Unknown"
	}
	return name
}

// NaturalKey returns the contact's key for the given channel, or empty
// when the contact is not linked on that channel.
func (c *Contact) NaturalKey(channel Channel) string {
	switch channel {
	case ChannelWhatsApp:
		return c.Phone
	case ChannelMessenger:
		return c.Account
	default:
		return ""
	}
}

// ContactUpdate describes a partial update. Nil fields are left
// unchanged so a shallow, partially-filled intent never clobbers
// existing data.
type ContactUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

// IsEmpty reports whether the update carries no fields at all
func (u ContactUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil
}

// Apply merges the supplied fields into the contact
func (c *Contact) Apply(update ContactUpdate) {
	if update.IsEmpty() {
		return
	}
	if update.FirstName != nil {
		c.FirstName = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		c.LastName = strings.TrimSpace(*update.LastName)
	}
	if update.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Phone != nil {
		c.Phone = strings.TrimSpace(*update.Phone)
	}
	c.Touch()

	c.AddDomainEvent(NewContactUpdatedEvent(c))
}

// Promote upgrades a prospect to a client
func (c *Contact) Promote() {
	if c.Type == ContactTypeClient {
		return
	}
	c.Type = ContactTypeClient
	c.Touch()
}
