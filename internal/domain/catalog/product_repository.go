package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the read-only interface the bridge consumes
// against the product catalog
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds an active product by exact name match.
	// No fuzzy matching: an absent match is shared.ErrNotFound.
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindTop returns up to limit active products, oldest first
	FindTop(ctx context.Context, limit int) ([]Product, error)
}
