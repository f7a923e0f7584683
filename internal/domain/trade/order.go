package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnicrm/backend/internal/domain/catalog"
	"github.com/omnicrm/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents an order issued from a conversation. This core's
// responsibility ends at creating the order; its later lifecycle is
// owned by the wider ERP.
type Order struct {
	shared.BaseAggregateRoot
	ContactID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Total       decimal.Decimal
	Status      OrderStatus
}

// NewOrder creates a pending order for a contact and product
func NewOrder(contactID uuid.UUID, product *catalog.Product, quantity int) (*Order, error) {
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Order requires a contact")
	}
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Order requires a product")
	}
	if quantity <= 0 {
		quantity = 1
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ContactID:         contactID,
		ProductID:         product.ID,
		ProductName:       product.Name,
		UnitPrice:         product.Price,
		Quantity:          quantity,
		Total:             product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:            OrderStatusPending,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}
