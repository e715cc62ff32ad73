package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"

	"foodhood/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record already exists")
)

// FoodRepository defines data access for food listings.
type FoodRepository interface {
	Create(ctx context.Context, food *model.Food) (*model.Food, error)

	// FindByID returns ErrNotFound if the food does not exist.
	FindByID(ctx context.Context, id snowflake.ID) (*model.Food, error)

	// List returns every listing, newest first.
	List(ctx context.Context) ([]model.Food, error)
}

// ImageRepository defines data access for food gallery images.
type ImageRepository interface {
	// Append reserves the next gallery index of the food and records img at it in one
	// transaction. img.Index is ignored; the assigned index is returned.
	// Returns ErrNotFound if the food does not exist.
	Append(ctx context.Context, img *model.FoodImage) (int, error)

	// Find returns ErrNotFound if there is no image at index.
	Find(ctx context.Context, foodID snowflake.ID, index int) (*model.FoodImage, error)
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// Create returns ErrConflict if the user already holds an order on the food.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)

	FindByFoodAndUser(ctx context.Context, foodID, userID snowflake.ID) (*model.Order, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]model.Order, error)
	ListByFood(ctx context.Context, foodID snowflake.ID) ([]model.Order, error)

	// Update applies the non-nil fields of u to the order owned by userID.
	// Returns ErrNotFound if there is no such order.
	Update(ctx context.Context, id, userID snowflake.ID, u model.OrderUpdate) (*model.Order, error)

	// Delete removes the order owned by userID. Returns ErrNotFound if there is no such order.
	Delete(ctx context.Context, id, userID snowflake.ID) error
}

// AvatarRepository defines data access for profile images.
type AvatarRepository interface {
	// Upsert inserts or replaces the avatar of a.UserID.
	Upsert(ctx context.Context, a *model.Avatar) error

	FindByUser(ctx context.Context, userID snowflake.ID) (*model.Avatar, error)

	// Delete removes the avatar of userID. It returns nil if there was none.
	Delete(ctx context.Context, userID snowflake.ID) error
}
