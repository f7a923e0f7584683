package crm

import (
	"github.com/google/uuid"

	"github.com/omnicrm/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeContact = "Contact"

// Event type constants
const (
	EventTypeContactCreated = "ContactCreated"
	EventTypeContactUpdated = "ContactUpdated"
)

// ContactCreatedEvent is published when a first-contact identity
// creates a new contact row
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	Channel   Channel   `json:"channel"`
	Name      string    `json:"name"`
}

// NewContactCreatedEvent creates a new ContactCreatedEvent
func NewContactCreatedEvent(contact *Contact, channel Channel) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactCreated, AggregateTypeContact, contact.ID),
		ContactID:       contact.ID,
		Channel:         channel,
		Name:            contact.DisplayName(),
	}
}

// ContactUpdatedEvent is published when a contact's profile fields change
type ContactUpdatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

// NewContactUpdatedEvent creates a new ContactUpdatedEvent
func NewContactUpdatedEvent(contact *Contact) *ContactUpdatedEvent {
	return &ContactUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactUpdated, AggregateTypeContact, contact.ID),
		ContactID:       contact.ID,
		Name:            contact.DisplayName(),
		Email:           contact.Email,
		Phone:           contact.Phone,
	}
}
