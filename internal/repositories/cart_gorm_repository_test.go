package repositories_test

import (
	"testing"

	"kiyim/internal/models"
	"kiyim/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestCartRepository(t *testing.T) {
	db := setupDB(t)
	cartRepo := repositories.NewGORMCartRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	product := &models.Product{Name: "Futbolka", Category: "ustki", Price: 1000, IsActive: true}
	assert.NoError(t, productRepo.Create(product))

	item := &models.Cart{UserID: "user-1", ProductID: product.ID, Size: "M", Quantity: 1}
	assert.NoError(t, cartRepo.Create(item))

	got, err := cartRepo.GetByUserProductSize("user-1", product.ID, "M")
	assert.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	// Same product, different size: no row yet.
	_, err = cartRepo.GetByUserProductSize("user-1", product.ID, "L")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	got.Quantity = 3
	assert.NoError(t, cartRepo.Update(got))

	items, err := cartRepo.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	// The product comes preloaded so totals can be computed.
	assert.NotNil(t, items[0].Product)
	assert.Equal(t, 3000.0, items[0].Total())

	count, err := cartRepo.CountByUser("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Deleting someone else's row must not touch it.
	err = cartRepo.DeleteForUser(item.ID, "user-2")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.NoError(t, cartRepo.DeleteForUser(item.ID, "user-1"))
	count, err = cartRepo.CountByUser("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
