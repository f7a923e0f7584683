package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omnicrm/backend/internal/domain/shared"
	"github.com/omnicrm/backend/internal/domain/trade"
	"github.com/omnicrm/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save inserts a new order. Orders are immutable once placed, so this is
// always a plain insert.
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return shared.NewStoreError("save order", err)
	}
	return nil
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStoreError("find order by id", err)
	}
	return model.ToDomain(), nil
}

// FindByContact finds the orders placed by a contact, newest first
func (r *GormOrderRepository) FindByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]trade.Order, error) {
	query := r.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, shared.NewStoreError("list orders by contact", err)
	}

	orders := make([]trade.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}
