package services_test

import (
	"kiyim/internal/models"
	"kiyim/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) ListBySeller(sellerID string) ([]models.Product, error) {
	args := m.Called(sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) IncrementViews(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) ReplaceSizes(productID string, sizes []models.ProductSize) error {
	args := m.Called(productID, sizes)
	return args.Error(0)
}

func (m *MockProductRepository) AddImages(productID string, images []models.ProductImage) error {
	args := m.Called(productID, images)
	return args.Error(0)
}

func (m *MockProductRepository) CountImages(productID string) (int64, error) {
	args := m.Called(productID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetByUserProductSize(userID, productID, size string) (*models.Cart, error) {
	args := m.Called(userID, productID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) Create(item *models.Cart) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) Update(item *models.Cart) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) ListByUser(userID string) ([]models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Cart), args.Error(1)
}

func (m *MockCartRepository) DeleteForUser(id, userID string) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockCartRepository) CountByUser(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Checkout(order *models.Order, strictStock bool) error {
	args := m.Called(order, strictStock)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) SellerOwnsOrder(orderID, sellerID string) (bool, error) {
	args := m.Called(orderID, sellerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListItemsBySeller(sellerID string, limit int) ([]models.OrderItem, error) {
	args := m.Called(sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderItem), args.Error(1)
}

func (m *MockOrderRepository) RevenueBySeller(sellerID string) (float64, error) {
	args := m.Called(sellerID)
	return args.Get(0).(float64), args.Error(1)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) Stats(productID string) (int64, float64, error) {
	args := m.Called(productID)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}
