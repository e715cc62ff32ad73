package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/bwmarrin/snowflake"
	"github.com/georgysavva/scany/v2/sqlscan"

	"foodhood/internal/model"
	"foodhood/internal/repository"
)

const imageTable = "food_images"

var imageColumns = []string{"food_id", "idx", "storage_key", "content_type"}

type imageRow struct {
	FoodID      snowflake.ID `db:"food_id"`
	Index       int          `db:"idx"`
	StorageKey  string       `db:"storage_key"`
	ContentType string       `db:"content_type"`
}

// ImagePostgres is a PostgreSQL implementation of repository.ImageRepository.
type ImagePostgres struct {
	db *sql.DB
}

// NewImagePostgres creates a new ImagePostgres repository.
func NewImagePostgres(db *sql.DB) *ImagePostgres {
	return &ImagePostgres{db: db}
}

var _ repository.ImageRepository = (*ImagePostgres)(nil)

// Append bumps the food's image count and records img at the pre-increment index.
// Both statements share a transaction so a failed insert never consumes an index.
func (r *ImagePostgres) Append(ctx context.Context, img *model.FoodImage) (int, error) {
	bump, bumpArgs, err := psql().
		Update(foodTable).
		Set("image_count", squirrel.Expr("image_count + 1")).
		Where(squirrel.Eq{"id": img.FoodID}).
		Suffix("RETURNING image_count - 1").
		ToSql()
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var index int
	if err := tx.QueryRowContext(ctx, bump, bumpArgs...).Scan(&index); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}

	insert, insertArgs, err := psql().
		Insert(imageTable).
		Columns(imageColumns...).
		Values(img.FoodID, index, img.StorageKey, img.ContentType).
		ToSql()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, insert, insertArgs...); err != nil {
		return 0, mapWriteError(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return index, nil
}

// Find fetches the image stored at index of the food's gallery.
func (r *ImagePostgres) Find(ctx context.Context, foodID snowflake.ID, index int) (*model.FoodImage, error) {
	query, args, err := psql().
		Select(imageColumns...).
		From(imageTable).
		Where(squirrel.Eq{"food_id": foodID, "idx": index}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row imageRow
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &model.FoodImage{
		FoodID:      row.FoodID,
		Index:       row.Index,
		StorageKey:  row.StorageKey,
		ContentType: row.ContentType,
	}, nil
}
