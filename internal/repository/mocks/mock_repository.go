package mocks

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/mock"

	"foodhood/internal/model"
)

type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) Create(ctx context.Context, food *model.Food) (*model.Food, error) {
	args := m.Called(ctx, food)
	if f, ok := args.Get(0).(func(context.Context, *model.Food) *model.Food); ok {
		return f(ctx, food), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodRepository) FindByID(ctx context.Context, id snowflake.ID) (*model.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodRepository) List(ctx context.Context) ([]model.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Food), args.Error(1)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Append(ctx context.Context, img *model.FoodImage) (int, error) {
	args := m.Called(ctx, img)
	return args.Int(0), args.Error(1)
}

func (m *MockImageRepository) Find(ctx context.Context, foodID snowflake.ID, index int) (*model.FoodImage, error) {
	args := m.Called(ctx, foodID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FoodImage), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	args := m.Called(ctx, order)
	if f, ok := args.Get(0).(func(context.Context, *model.Order) *model.Order); ok {
		return f(ctx, order), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByFoodAndUser(ctx context.Context, foodID, userID snowflake.ID) (*model.Order, error) {
	args := m.Called(ctx, foodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID snowflake.ID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByFood(ctx context.Context, foodID snowflake.ID) ([]model.Order, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, id, userID snowflake.ID, u model.OrderUpdate) (*model.Order, error) {
	args := m.Called(ctx, id, userID, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id, userID snowflake.ID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockAvatarRepository struct {
	mock.Mock
}

func (m *MockAvatarRepository) Upsert(ctx context.Context, a *model.Avatar) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAvatarRepository) FindByUser(ctx context.Context, userID snowflake.ID) (*model.Avatar, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Avatar), args.Error(1)
}

func (m *MockAvatarRepository) Delete(ctx context.Context, userID snowflake.ID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
