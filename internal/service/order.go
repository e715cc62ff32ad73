package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/sirupsen/logrus"

	"foodhood/internal/model"
	"foodhood/internal/repository"
)

// OrderService defines the claim protocol between users and food listings.
type OrderService interface {
	// Claim returns the caller's order on the food, creating it on first call.
	// Concurrent claims by the same user resolve to a single order.
	Claim(ctx context.Context, foodID, userID snowflake.ID) (*model.Order, error)

	ListMine(ctx context.Context, userID snowflake.ID) ([]model.Order, error)

	// ListForFood returns ErrFoodNotFound if the listing does not exist.
	ListForFood(ctx context.Context, foodID snowflake.ID) ([]model.Order, error)

	// Update applies only the fields present in u. Returns ErrOrderNotFound unless
	// the order exists and belongs to userID.
	Update(ctx context.Context, orderID, userID snowflake.ID, u model.OrderUpdate) (*model.Order, error)

	// Cancel deletes the order. Returns ErrOrderNotFound unless it belongs to userID.
	Cancel(ctx context.Context, orderID, userID snowflake.ID) error
}

type orderService struct {
	ids    IDGenerator
	foods  repository.FoodRepository
	orders repository.OrderRepository
	log    logrus.FieldLogger
}

// NewOrderService constructs a new OrderService.
func NewOrderService(ids IDGenerator, foods repository.FoodRepository, orders repository.OrderRepository, log logrus.FieldLogger) OrderService {
	return &orderService{
		ids:    ids,
		foods:  foods,
		orders: orders,
		log:    log.WithField("component", "order_service"),
	}
}

func (s *orderService) ensureFood(ctx context.Context, foodID snowflake.ID) error {
	if _, err := s.foods.FindByID(ctx, foodID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFoodNotFound
		}
		return err
	}
	return nil
}

func (s *orderService) Claim(ctx context.Context, foodID, userID snowflake.ID) (*model.Order, error) {
	if err := s.ensureFood(ctx, foodID); err != nil {
		return nil, err
	}

	existing, err := s.orders.FindByFoodAndUser(ctx, foodID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err := s.ids.NextID()
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	created, err := s.orders.Create(ctx, &model.Order{ID: id, FoodID: foodID, UserID: userID})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, repository.ErrConflict) {
		return nil, fmt.Errorf("save order: %w", err)
	}

	// Lost the race against a concurrent claim by the same user.
	s.log.WithFields(logrus.Fields{
		"food_id": foodID.String(),
		"user_id": userID.String(),
	}).Debug("claim conflict, re-reading")

	winner, err := s.orders.FindByFoodAndUser(ctx, foodID, userID)
	if err != nil {
		return nil, fmt.Errorf("re-read order after conflict: %w", err)
	}
	return winner, nil
}

func (s *orderService) ListMine(ctx context.Context, userID snowflake.ID) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *orderService) ListForFood(ctx context.Context, foodID snowflake.ID) ([]model.Order, error) {
	if err := s.ensureFood(ctx, foodID); err != nil {
		return nil, err
	}
	return s.orders.ListByFood(ctx, foodID)
}

func (s *orderService) Update(ctx context.Context, orderID, userID snowflake.ID, u model.OrderUpdate) (*model.Order, error) {
	order, err := s.orders.Update(ctx, orderID, userID, u)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID, userID snowflake.ID) error {
	if err := s.orders.Delete(ctx, orderID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}
