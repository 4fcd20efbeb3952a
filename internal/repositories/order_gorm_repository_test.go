package repositories_test

import (
	"testing"

	"kiyim/internal/models"
	"kiyim/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// seedCheckout creates a seller, a buyer, one product with stock and a
// cart row for the buyer, returning the ids the checkout tests need.
func seedCheckout(t *testing.T, db *gorm.DB, stock, cartQty int) (userID, productID string) {
	t.Helper()

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	seller := &models.User{Username: "seller", Password: "x", Role: models.RoleSeller}
	buyer := &models.User{Username: "buyer", Password: "x", Role: models.RoleClient}
	assert.NoError(t, userRepo.Create(seller))
	assert.NoError(t, userRepo.Create(buyer))

	product := &models.Product{
		SellerID: seller.ID,
		Name:     "Futbolka",
		Category: "ustki",
		Price:    1000,
		IsActive: true,
		Sizes:    []models.ProductSize{{Size: "M", Quantity: stock}},
	}
	assert.NoError(t, productRepo.Create(product))

	assert.NoError(t, cartRepo.Create(&models.Cart{
		UserID:    buyer.ID,
		ProductID: product.ID,
		Size:      "M",
		Quantity:  cartQty,
	}))

	return buyer.ID, product.ID
}

func stockFor(t *testing.T, db *gorm.DB, productID, size string) int {
	t.Helper()
	var ps models.ProductSize
	err := db.Where("product_id = ? AND size = ?", productID, size).First(&ps).Error
	assert.NoError(t, err)
	return ps.Quantity
}

func TestOrderRepository_Checkout(t *testing.T) {
	db := setupDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	userID, productID := seedCheckout(t, db, 5, 1)

	order := &models.Order{
		UserID:     userID,
		Status:     models.OrderPending,
		TotalPrice: 1000,
		Address:    "Tashkent",
		Items: []models.OrderItem{
			{ProductID: productID, Size: "M", Quantity: 1, Price: 1000},
		},
	}
	assert.NoError(t, orderRepo.Checkout(order, false))
	assert.NotEmpty(t, order.ID)

	// Stock decremented, cart cleared, order readable with its items.
	assert.Equal(t, 4, stockFor(t, db, productID, "M"))
	count, err := cartRepo.CountByUser(userID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	got, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)
	assert.Equal(t, 1000.0, got.TotalPrice)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, 1000.0, got.Items[0].Price)
}

func TestOrderRepository_Checkout_InsufficientStockLenient(t *testing.T) {
	db := setupDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)

	userID, productID := seedCheckout(t, db, 2, 3)

	order := &models.Order{
		UserID:     userID,
		Status:     models.OrderPending,
		TotalPrice: 3000,
		Address:    "Tashkent",
		Items: []models.OrderItem{
			{ProductID: productID, Size: "M", Quantity: 3, Price: 1000},
		},
	}
	// Lenient mode records the order but skips the short decrement, so
	// stock never goes negative.
	assert.NoError(t, orderRepo.Checkout(order, false))
	assert.Equal(t, 2, stockFor(t, db, productID, "M"))

	got, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestOrderRepository_Checkout_InsufficientStockStrict(t *testing.T) {
	db := setupDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	userID, productID := seedCheckout(t, db, 2, 3)

	order := &models.Order{
		UserID:     userID,
		Status:     models.OrderPending,
		TotalPrice: 3000,
		Address:    "Tashkent",
		Items: []models.OrderItem{
			{ProductID: productID, Size: "M", Quantity: 3, Price: 1000},
		},
	}
	// Strict mode rejects the checkout and rolls everything back: no
	// order row, stock untouched, cart intact.
	err := orderRepo.Checkout(order, true)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	assert.Equal(t, 2, stockFor(t, db, productID, "M"))
	_, err = orderRepo.GetByID(order.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	count, err := cartRepo.CountByUser(userID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOrderRepository_SellerQueries(t *testing.T) {
	db := setupDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)

	userID, productID := seedCheckout(t, db, 5, 1)

	var product models.Product
	assert.NoError(t, db.First(&product, "id = ?", productID).Error)
	sellerID := product.SellerID

	order := &models.Order{
		UserID:     userID,
		Status:     models.OrderPending,
		TotalPrice: 2000,
		Address:    "Tashkent",
		Items: []models.OrderItem{
			{ProductID: productID, Size: "M", Quantity: 2, Price: 2000},
		},
	}
	assert.NoError(t, orderRepo.Checkout(order, false))

	owns, err := orderRepo.SellerOwnsOrder(order.ID, sellerID)
	assert.NoError(t, err)
	assert.True(t, owns)

	owns, err = orderRepo.SellerOwnsOrder(order.ID, "someone-else")
	assert.NoError(t, err)
	assert.False(t, owns)

	items, err := orderRepo.ListItemsBySeller(sellerID, 10)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)

	revenue, err := orderRepo.RevenueBySeller(sellerID)
	assert.NoError(t, err)
	assert.Equal(t, 2000.0, revenue)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := setupDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)

	userID, productID := seedCheckout(t, db, 5, 1)
	order := &models.Order{
		UserID: userID, Status: models.OrderPending, TotalPrice: 1000, Address: "T",
		Items: []models.OrderItem{{ProductID: productID, Size: "M", Quantity: 1, Price: 1000}},
	}
	assert.NoError(t, orderRepo.Checkout(order, false))

	assert.NoError(t, orderRepo.UpdateStatus(order.ID, models.OrderAccepted))
	got, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, got.Status)

	err = orderRepo.UpdateStatus("no-such-order", models.OrderAccepted)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
