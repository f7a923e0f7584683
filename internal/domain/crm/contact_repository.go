package crm

import (
	"context"

	"github.com/google/uuid"
)

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)

	// FindByPhone finds a contact by phone number (WhatsApp natural key)
	FindByPhone(ctx context.Context, phone string) (*Contact, error)

	// FindByAccount finds a contact by messaging account id (Messenger natural key)
	FindByAccount(ctx context.Context, account string) (*Contact, error)

	// FindByIdentity finds a contact by a channel identity's natural key
	FindByIdentity(ctx context.Context, identity ChannelIdentity) (*Contact, error)

	// CreateIfAbsent inserts the contact unless a row with the same
	// natural key already exists. On a unique-key conflict it re-fetches
	// and returns the existing contact, so concurrent first-contact
	// messages resolve to a single row. The returned contact is the
	// authoritative row either way.
	CreateIfAbsent(ctx context.Context, contact *Contact, identity ChannelIdentity) (*Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// UpdateFields applies a partial update to the contact, touching
	// only the non-nil fields (COALESCE semantics)
	UpdateFields(ctx context.Context, id uuid.UUID, update ContactUpdate) error

	// Count counts all contacts
	Count(ctx context.Context) (int64, error)
}
