package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnicrm/backend/internal/domain/shared"
	"github.com/omnicrm/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order domain entity.
// Product name and unit price are denormalized so a later catalog edit
// never rewrites history.
type OrderModel struct {
	BaseModel
	ContactID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductName string            `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Quantity    int               `gorm:"not null;default:1"`
	Total       decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Status      trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
		},
		ContactID:   m.ContactID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		Total:       m.Total,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.ContactID = o.ContactID
	m.ProductID = o.ProductID
	m.ProductName = o.ProductName
	m.UnitPrice = o.UnitPrice
	m.Quantity = o.Quantity
	m.Total = o.Total
	m.Status = o.Status
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
