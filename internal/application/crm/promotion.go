package crm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
	"github.com/omnicrm/backend/internal/domain/trade"
)

// ContactPromotionHandler promotes a prospect to a client once their
// first order is recorded. It subscribes to OrderCreated events.
type ContactPromotionHandler struct {
	contacts crm.ContactRepository
	logger   *zap.Logger
}

// NewContactPromotionHandler creates a new ContactPromotionHandler
func NewContactPromotionHandler(contacts crm.ContactRepository, logger *zap.Logger) *ContactPromotionHandler {
	return &ContactPromotionHandler{
		contacts: contacts,
		logger:   logger.Named("contact_promotion"),
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *ContactPromotionHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderCreated}
}

// Handle promotes the ordering contact to a client. Promotion is
// idempotent, so replayed events are harmless.
func (h *ContactPromotionHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*trade.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	contact, err := h.contacts.FindByID(ctx, created.ContactID)
	if err != nil {
		return fmt.Errorf("find contact %s: %w", created.ContactID, err)
	}

	if contact.Type == crm.ContactTypeClient {
		return nil
	}

	contact.Promote()
	if err := h.contacts.Save(ctx, contact); err != nil {
		return fmt.Errorf("save contact %s: %w", contact.ID, err)
	}

	h.logger.Info("contact promoted to client",
		zap.String("contact_id", contact.ID.String()),
		zap.String("order_id", created.OrderID.String()))
	return nil
}
