package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/omnicrm/backend/internal/domain/shared"
)

// Product represents a sellable item in the catalog. The conversational
// bridge only reads products: it quotes them and references them from
// orders, it never mutates the catalog.
type Product struct {
	shared.BaseAggregateRoot
	Name   string
	Price  decimal.Decimal
	Active bool
}

// NewProduct creates a new product with required fields
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price,
		Active:            true,
	}, nil
}

// PriceString returns the price as a plain decimal string for replies
func (p *Product) PriceString() string {
	return p.Price.String()
}
