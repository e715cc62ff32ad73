package mocks

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/mock"

	"foodhood/internal/media"
	"foodhood/internal/model"
	"foodhood/internal/service"
)

type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) Create(ctx context.Context, authorID snowflake.ID, in model.FoodCreate) (*model.Food, error) {
	args := m.Called(ctx, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodService) Get(ctx context.Context, id snowflake.ID) (*model.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodService) List(ctx context.Context) ([]model.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Food), args.Error(1)
}

func (m *MockFoodService) AddPhotos(ctx context.Context, foodID snowflake.ID, uploads []media.Upload) (*service.PhotoBatchResult, error) {
	args := m.Called(ctx, foodID, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PhotoBatchResult), args.Error(1)
}

func (m *MockFoodService) GetPhoto(ctx context.Context, foodID snowflake.ID, index int) (*model.Blob, error) {
	args := m.Called(ctx, foodID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blob), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Claim(ctx context.Context, foodID, userID snowflake.ID) (*model.Order, error) {
	args := m.Called(ctx, foodID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListMine(ctx context.Context, userID snowflake.ID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) ListForFood(ctx context.Context, foodID snowflake.ID) ([]model.Order, error) {
	args := m.Called(ctx, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, orderID, userID snowflake.ID, u model.OrderUpdate) (*model.Order, error) {
	args := m.Called(ctx, orderID, userID, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, orderID, userID snowflake.ID) error {
	args := m.Called(ctx, orderID, userID)
	return args.Error(0)
}

type MockAvatarService struct {
	mock.Mock
}

func (m *MockAvatarService) Get(ctx context.Context, userID snowflake.ID) (*model.Blob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blob), args.Error(1)
}

func (m *MockAvatarService) Put(ctx context.Context, userID snowflake.ID, u media.Upload) error {
	args := m.Called(ctx, userID, u)
	return args.Error(0)
}

func (m *MockAvatarService) Delete(ctx context.Context, userID snowflake.ID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
