package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save persists a newly placed order
	Save(ctx context.Context, order *Order) error

	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByContact finds the orders placed by a contact, newest first
	FindByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]Order, error)
}
