package services

import (
	"errors"
	"fmt"

	"kiyim/internal/models"
	"kiyim/internal/repositories"
)

// CartService handles the shopping cart: one row per (user, product,
// size), quantities merged on repeat adds.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add puts one unit of (product, size) into the user's cart. Adding the
// same combination again bumps the existing row's quantity. Stock is not
// checked here; that happens at checkout.
func (s *CartService) Add(userID, productID, size string) (*models.Cart, error) {
	if size == "" {
		return nil, fmt.Errorf("%w: size is required", ErrValidation)
	}

	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetByUserProductSize(userID, productID, size)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		item := &models.Cart{
			UserID:    userID,
			ProductID: productID,
			Size:      size,
			Quantity:  1,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
		return item, nil
	}

	existing.Quantity++
	if err := s.cartRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// CartContents is the user's cart with the live running total.
type CartContents struct {
	Items []models.Cart `json:"items"`
	Total float64       `json:"total"`
}

// Contents returns the user's cart rows and their total at current
// product prices.
func (s *CartService) Contents(userID string) (*CartContents, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	var total float64
	for i := range items {
		total += items[i].Total()
	}
	return &CartContents{Items: items, Total: total}, nil
}

// Remove deletes one cart row, provided it belongs to the user.
func (s *CartService) Remove(userID, itemID string) error {
	return s.cartRepo.DeleteForUser(itemID, userID)
}

// Count returns how many rows the user's cart holds.
func (s *CartService) Count(userID string) (int64, error) {
	return s.cartRepo.CountByUser(userID)
}
