package conversation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
)

// IdentityResolver maps a (channel, external identifier) pair onto a
// durable contact record, creating the contact on first contact.
type IdentityResolver struct {
	contacts       crm.ContactRepository
	events         shared.EventPublisher
	defaultOwnerID uuid.UUID
	logger         *zap.Logger
}

// NewIdentityResolver creates a new IdentityResolver. New contacts are
// filed under defaultOwnerID, the configured default parent.
func NewIdentityResolver(contacts crm.ContactRepository, events shared.EventPublisher, defaultOwnerID uuid.UUID, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{
		contacts:       contacts,
		events:         events,
		defaultOwnerID: defaultOwnerID,
		logger:         logger.Named("resolver"),
	}
}

// Resolve looks up the contact addressed by the channel's natural key.
// A repeat contact is returned unchanged, no field is overwritten. A
// first contact creates a row seeded from the optional profile; the
// conflict-aware insert collapses a concurrent identical first contact
// onto a single row.
func (r *IdentityResolver) Resolve(ctx context.Context, channel crm.Channel, externalID string, seed crm.SeedProfile) (*crm.Contact, error) {
	identity, err := crm.NewChannelIdentity(channel, externalID)
	if err != nil {
		return nil, err
	}

	existing, err := r.contacts.FindByIdentity(ctx, identity)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	contact, err := crm.NewContactFromChannel(identity, seed, r.defaultOwnerID)
	if err != nil {
		return nil, err
	}

	saved, err := r.contacts.CreateIfAbsent(ctx, contact, identity)
	if err != nil {
		return nil, err
	}

	if saved.ID == contact.ID {
		r.logger.Info("contact created",
			zap.String("contact_id", saved.ID.String()),
			zap.String("channel", channel.String()),
		)
		if r.events != nil {
			if err := r.events.Publish(ctx, contact.GetDomainEvents()...); err != nil {
				r.logger.Warn("failed to publish contact events", zap.Error(err))
			}
			contact.ClearDomainEvents()
		}
	} else {
		// Lost the first-contact race; the winner's row is authoritative.
		r.logger.Debug("contact already created concurrently",
			zap.String("contact_id", saved.ID.String()),
		)
	}

	return saved, nil
}
