package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/bwmarrin/snowflake"
	"github.com/georgysavva/scany/v2/sqlscan"

	"foodhood/internal/model"
	"foodhood/internal/repository"
)

const orderTable = "orders"

var orderColumns = []string{"id", "food_id", "user_id", "received", "complete"}

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

// Create inserts a new order. The uq_orders_food_user constraint turns a second
// order on the same (food, user) into repository.ErrConflict.
func (r *OrderPostgres) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	query, args, err := psql().
		Insert(orderTable).
		Columns(orderColumns...).
		Values(order.ID, order.FoodID, order.UserID, order.Received, order.Complete).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	var out model.Order
	if err := sqlscan.Get(ctx, r.db, &out, query, args...); err != nil {
		return nil, mapWriteError(err)
	}
	return &out, nil
}

// FindByFoodAndUser fetches the order userID placed on foodID.
func (r *OrderPostgres) FindByFoodAndUser(ctx context.Context, foodID, userID snowflake.ID) (*model.Order, error) {
	query, args, err := psql().
		Select(orderColumns...).
		From(orderTable).
		Where(squirrel.Eq{"food_id": foodID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var out model.Order
	if err := sqlscan.Get(ctx, r.db, &out, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *OrderPostgres) ListByUser(ctx context.Context, userID snowflake.ID) ([]model.Order, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

func (r *OrderPostgres) ListByFood(ctx context.Context, foodID snowflake.ID) ([]model.Order, error) {
	return r.list(ctx, squirrel.Eq{"food_id": foodID})
}

func (r *OrderPostgres) list(ctx context.Context, where squirrel.Eq) ([]model.Order, error) {
	query, args, err := psql().
		Select(orderColumns...).
		From(orderTable).
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []model.Order
	if err := sqlscan.Select(ctx, r.db, &items, query, args...); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Order{}
	}
	return items, nil
}

// Update applies the non-nil fields of u in a single statement. Nil fields keep
// their stored value through COALESCE.
func (r *OrderPostgres) Update(ctx context.Context, id, userID snowflake.ID, u model.OrderUpdate) (*model.Order, error) {
	query, args, err := psql().
		Update(orderTable).
		Set("received", squirrel.Expr("COALESCE(?, received)", u.Received)).
		Set("complete", squirrel.Expr("COALESCE(?, complete)", u.Complete)).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	var out model.Order
	if err := sqlscan.Get(ctx, r.db, &out, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Delete removes the order only when it belongs to userID.
func (r *OrderPostgres) Delete(ctx context.Context, id, userID snowflake.ID) error {
	query, args, err := psql().
		Delete(orderTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
