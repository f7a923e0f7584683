package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnicrm/backend/internal/domain/catalog"
)

func TestNewOrder(t *testing.T) {
	product, err := catalog.NewProduct("Clavier sans fil", decimal.NewFromInt(15000))
	require.NoError(t, err)
	contactID := uuid.New()

	t.Run("creates pending order with defaults", func(t *testing.T) {
		order, err := NewOrder(contactID, product, 0)
		require.NoError(t, err)

		assert.Equal(t, contactID, order.ContactID)
		assert.Equal(t, product.ID, order.ProductID)
		assert.Equal(t, "Clavier sans fil", order.ProductName)
		assert.Equal(t, 1, order.Quantity)
		assert.True(t, order.Total.Equal(decimal.NewFromInt(15000)))
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("computes total from quantity", func(t *testing.T) {
		order, err := NewOrder(contactID, product, 3)
		require.NoError(t, err)
		assert.True(t, order.Total.Equal(decimal.NewFromInt(45000)))
	})

	t.Run("emits OrderCreated event", func(t *testing.T) {
		order, err := NewOrder(contactID, product, 1)
		require.NoError(t, err)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
	})

	t.Run("rejects nil contact", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, product, 1)
		assert.Error(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewOrder(contactID, nil, 1)
		assert.Error(t, err)
	})
}
