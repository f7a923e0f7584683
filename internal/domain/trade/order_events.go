package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnicrm/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated = "OrderCreated"
)

// OrderCreatedEvent is published when a conversation creates an order
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	ContactID   uuid.UUID       `json:"contact_id"`
	ProductName string          `json:"product_name"`
	Total       decimal.Decimal `json:"total"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		ContactID:       order.ContactID,
		ProductName:     order.ProductName,
		Total:           order.Total,
	}
}
