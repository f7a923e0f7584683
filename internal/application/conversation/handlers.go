package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/omnicrm/backend/internal/domain/catalog"
	"github.com/omnicrm/backend/internal/domain/conversation"
	"github.com/omnicrm/backend/internal/domain/crm"
	"github.com/omnicrm/backend/internal/domain/shared"
	"github.com/omnicrm/backend/internal/domain/trade"
)

// DefaultProductListLimit caps how many products a quote reply lists
const DefaultProductListLimit = 5

// PresentProductsHandler answers present_products with a price list
type PresentProductsHandler struct {
	products catalog.ProductRepository
	limit    int
}

// NewPresentProductsHandler creates the present_products handler.
// A non-positive limit falls back to DefaultProductListLimit.
func NewPresentProductsHandler(products catalog.ProductRepository, limit int) *PresentProductsHandler {
	if limit <= 0 {
		limit = DefaultProductListLimit
	}
	return &PresentProductsHandler{products: products, limit: limit}
}

// Action returns the handled verb
func (h *PresentProductsHandler) Action() string {
	return conversation.ActionPresentProducts
}

// Execute reads up to limit products and renders "name: price" lines
func (h *PresentProductsHandler) Execute(ctx context.Context, _ uuid.UUID, _ conversation.Intent) (string, error) {
	products, err := h.products.FindTop(ctx, h.limit)
	if err != nil {
		return "", err
	}
	if len(products) == 0 {
		return ReplyNoProducts, nil
	}

	lines := make([]string, len(products))
	for i, p := range products {
		lines[i] = fmt.Sprintf(ProductLineFormat, p.Name, p.PriceString())
	}
	return strings.Join(lines, "\n"), nil
}

// CreateContactHandler answers create_contact with a partial profile update
type CreateContactHandler struct {
	contacts crm.ContactRepository
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewCreateContactHandler creates the create_contact handler
func NewCreateContactHandler(contacts crm.ContactRepository, events shared.EventPublisher, logger *zap.Logger) *CreateContactHandler {
	return &CreateContactHandler{
		contacts: contacts,
		events:   events,
		logger:   logger.Named("create_contact"),
	}
}

// Action returns the handled verb
func (h *CreateContactHandler) Action() string {
	return conversation.ActionCreateContact
}

// Execute updates only the fields the intent supplies; omitted fields
// are left unchanged.
func (h *CreateContactHandler) Execute(ctx context.Context, contactID uuid.UUID, intent conversation.Intent) (string, error) {
	update := crm.ContactUpdate{
		FirstName: intent.GetStringPtr(conversation.DataKeyFirstName),
		LastName:  intent.GetStringPtr(conversation.DataKeyLastName),
		Email:     intent.GetStringPtr(conversation.DataKeyEmail),
		Phone:     intent.GetStringPtr(conversation.DataKeyPhone),
	}

	if update.IsEmpty() {
		return ReplyContactUpdated, nil
	}

	if err := h.contacts.UpdateFields(ctx, contactID, update); err != nil {
		return "", err
	}

	if h.events != nil {
		contact, err := h.contacts.FindByID(ctx, contactID)
		if err != nil {
			h.logger.Warn("failed to reload contact for update event", zap.Error(err))
		} else {
			event := crm.NewContactUpdatedEvent(contact)
			if err := h.events.Publish(ctx, event); err != nil {
				h.logger.Warn("failed to publish contact update event", zap.Error(err))
			}
		}
	}

	return ReplyContactUpdated, nil
}

// CreateOrderHandler answers create_order by creating an order for an
// exactly-named product
type CreateOrderHandler struct {
	products catalog.ProductRepository
	orders   trade.OrderRepository
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewCreateOrderHandler creates the create_order handler
func NewCreateOrderHandler(products catalog.ProductRepository, orders trade.OrderRepository, events shared.EventPublisher, logger *zap.Logger) *CreateOrderHandler {
	return &CreateOrderHandler{
		products: products,
		orders:   orders,
		events:   events,
		logger:   logger.Named("create_order"),
	}
}

// Action returns the handled verb
func (h *CreateOrderHandler) Action() string {
	return conversation.ActionCreateOrder
}

// Execute looks the product up by exact name. An absent product is a
// handled outcome: it short-circuits with the not-found reply and
// performs no mutation.
func (h *CreateOrderHandler) Execute(ctx context.Context, contactID uuid.UUID, intent conversation.Intent) (string, error) {
	name, ok := intent.GetString(conversation.DataKeyProduct)
	if !ok {
		return ReplyAskProduct, nil
	}

	product, err := h.products.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Sprintf(ProductNotFoundFormat, name), nil
		}
		return "", err
	}

	quantity, _ := intent.GetInt(conversation.DataKeyQuantity)
	order, err := trade.NewOrder(contactID, product, quantity)
	if err != nil {
		return "", err
	}

	if err := h.orders.Save(ctx, order); err != nil {
		return "", err
	}

	h.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("contact_id", contactID.String()),
		zap.String("product", product.Name),
	)

	if h.events != nil {
		if err := h.events.Publish(ctx, order.GetDomainEvents()...); err != nil {
			h.logger.Warn("failed to publish order events", zap.Error(err))
		}
		order.ClearDomainEvents()
	}

	return fmt.Sprintf(OrderConfirmedFormat, product.Name, product.PriceString()), nil
}
