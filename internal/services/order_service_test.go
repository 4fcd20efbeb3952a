package services_test

import (
	"testing"

	"kiyim/internal/models"
	"kiyim/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderService_Checkout(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	orderService := services.NewOrderService(mockOrderRepo, mockCartRepo, nil, false)

	cartItems := []models.Cart{
		{ID: "c1", ProductID: "prod-1", Size: "M", Quantity: 2, Product: &models.Product{ID: "prod-1", Price: 1000}},
		{ID: "c2", ProductID: "prod-2", Size: "L", Quantity: 1, Product: &models.Product{ID: "prod-2", Price: 2500}},
	}

	mockCartRepo.On("ListByUser", "user-1").Return(cartItems, nil).Once()
	mockOrderRepo.On("Checkout", mock.MatchedBy(func(o *models.Order) bool {
		return o.UserID == "user-1" &&
			o.Status == models.OrderPending &&
			o.TotalPrice == 4500 &&
			o.Address == "Tashkent, Chilonzor 5" &&
			len(o.Items) == 2 &&
			o.Items[0].Price == 1000 && o.Items[0].Quantity == 2 &&
			o.Items[1].Price == 2500 && o.Items[1].Quantity == 1
	}), false).Return(nil).Once()

	order, err := orderService.Checkout("user-1", "Tashkent, Chilonzor 5")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 4500.0, order.TotalPrice)
	mockOrderRepo.AssertExpectations(t)
	mockCartRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	orderService := services.NewOrderService(mockOrderRepo, mockCartRepo, nil, false)

	mockCartRepo.On("ListByUser", "user-1").Return([]models.Cart{}, nil).Once()

	_, err := orderService.Checkout("user-1", "somewhere")
	assert.ErrorIs(t, err, services.ErrEmptyCart)
	mockOrderRepo.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
	mockCartRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_StrictStock(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	orderService := services.NewOrderService(mockOrderRepo, mockCartRepo, nil, true)

	cartItems := []models.Cart{
		{ID: "c1", ProductID: "prod-1", Size: "M", Quantity: 1, Product: &models.Product{ID: "prod-1", Price: 1000}},
	}
	mockCartRepo.On("ListByUser", "user-1").Return(cartItems, nil).Once()
	// The strict flag travels down to the repository.
	mockOrderRepo.On("Checkout", mock.AnythingOfType("*models.Order"), true).Return(nil).Once()

	_, err := orderService.Checkout("user-1", "somewhere")
	assert.NoError(t, err)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	orderService := services.NewOrderService(mockOrderRepo, mockCartRepo, nil, false)

	// Unknown status is rejected up front.
	err := orderService.UpdateStatus("seller-1", "order-1", models.OrderStatus("returned"))
	assert.ErrorIs(t, err, services.ErrValidation)

	// Sellers not owning any item in the order may not touch it.
	mockOrderRepo.On("SellerOwnsOrder", "order-1", "seller-1").Return(false, nil).Once()
	err = orderService.UpdateStatus("seller-1", "order-1", models.OrderAccepted)
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockOrderRepo.AssertExpectations(t)

	// pending -> shipped skips a step and is refused.
	pending := &models.Order{ID: "order-1", Status: models.OrderPending}
	mockOrderRepo.On("SellerOwnsOrder", "order-1", "seller-1").Return(true, nil).Once()
	mockOrderRepo.On("GetByID", "order-1").Return(pending, nil).Once()
	err = orderService.UpdateStatus("seller-1", "order-1", models.OrderShipped)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	mockOrderRepo.AssertExpectations(t)

	// pending -> accepted is allowed.
	mockOrderRepo.On("SellerOwnsOrder", "order-1", "seller-1").Return(true, nil).Once()
	mockOrderRepo.On("GetByID", "order-1").Return(pending, nil).Once()
	mockOrderRepo.On("UpdateStatus", "order-1", models.OrderAccepted).Return(nil).Once()
	err = orderService.UpdateStatus("seller-1", "order-1", models.OrderAccepted)
	assert.NoError(t, err)
	mockOrderRepo.AssertExpectations(t)

	// Terminal states accept nothing.
	delivered := &models.Order{ID: "order-2", Status: models.OrderDelivered}
	mockOrderRepo.On("SellerOwnsOrder", "order-2", "seller-1").Return(true, nil).Once()
	mockOrderRepo.On("GetByID", "order-2").Return(delivered, nil).Once()
	err = orderService.UpdateStatus("seller-1", "order-2", models.OrderCancelled)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_GetForUser(t *testing.T) {
	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	orderService := services.NewOrderService(mockOrderRepo, mockCartRepo, nil, false)

	order := &models.Order{ID: "order-1", UserID: "user-1"}
	mockOrderRepo.On("GetByID", "order-1").Return(order, nil).Twice()

	got, err := orderService.GetForUser("user-1", "order-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", got.ID)

	// Another user's order is forbidden, not hidden as 404.
	_, err = orderService.GetForUser("user-2", "order-1")
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockOrderRepo.AssertExpectations(t)
}

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.OrderPending, models.OrderAccepted, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPending, models.OrderShipped, false},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderAccepted, models.OrderShipped, true},
		{models.OrderAccepted, models.OrderCancelled, true},
		{models.OrderAccepted, models.OrderPending, false},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderShipped, models.OrderCancelled, false},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCancelled, models.OrderPending, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}
