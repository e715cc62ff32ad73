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

const foodTable = "foods"

var foodColumns = []string{
	"id",
	"author_id",
	"title",
	"description",
	"includes_vegetarian",
	"need_tableware",
	"tags",
	"latitude",
	"longitude",
	"location_description",
	"validity_period",
	"image_count",
	"created_at",
}

type foodRow struct {
	ID                  snowflake.ID `db:"id"`
	AuthorID            snowflake.ID `db:"author_id"`
	Title               string       `db:"title"`
	Description         string       `db:"description"`
	IncludesVegetarian  bool         `db:"includes_vegetarian"`
	NeedTableware       bool         `db:"need_tableware"`
	Tags                int64Array   `db:"tags"`
	Latitude            float64      `db:"latitude"`
	Longitude           float64      `db:"longitude"`
	LocationDescription string       `db:"location_description"`
	ValidityPeriod      float64      `db:"validity_period"`
	ImageCount          int          `db:"image_count"`
	CreatedAt           int64        `db:"created_at"`
}

func (r foodRow) toModel() model.Food {
	tags := []int64(r.Tags)
	if tags == nil {
		tags = []int64{}
	}
	return model.Food{
		ID:                  r.ID,
		AuthorID:            r.AuthorID,
		Title:               r.Title,
		Description:         r.Description,
		IncludesVegetarian:  r.IncludesVegetarian,
		NeedTableware:       r.NeedTableware,
		Tags:                tags,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		LocationDescription: r.LocationDescription,
		ValidityPeriod:      r.ValidityPeriod,
		ImageCount:          r.ImageCount,
		CreatedAt:           r.CreatedAt,
	}
}

// FoodPostgres is a PostgreSQL implementation of repository.FoodRepository.
type FoodPostgres struct {
	db *sql.DB
}

// NewFoodPostgres creates a new FoodPostgres repository.
func NewFoodPostgres(db *sql.DB) *FoodPostgres {
	return &FoodPostgres{db: db}
}

var _ repository.FoodRepository = (*FoodPostgres)(nil)

// Create inserts a new food row and returns the stored record.
func (r *FoodPostgres) Create(ctx context.Context, food *model.Food) (*model.Food, error) {
	query, args, err := psql().
		Insert(foodTable).
		Columns(foodColumns...).
		Values(
			food.ID,
			food.AuthorID,
			food.Title,
			food.Description,
			food.IncludesVegetarian,
			food.NeedTableware,
			int64Array(food.Tags),
			food.Latitude,
			food.Longitude,
			food.LocationDescription,
			food.ValidityPeriod,
			food.ImageCount,
			food.CreatedAt,
		).
		Suffix("RETURNING " + strings.Join(foodColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row foodRow
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		return nil, mapWriteError(err)
	}
	out := row.toModel()
	return &out, nil
}

// FindByID fetches a single food by its ID.
func (r *FoodPostgres) FindByID(ctx context.Context, id snowflake.ID) (*model.Food, error) {
	query, args, err := psql().
		Select(foodColumns...).
		From(foodTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row foodRow
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	out := row.toModel()
	return &out, nil
}

// List returns all foods, newest first.
func (r *FoodPostgres) List(ctx context.Context) ([]model.Food, error) {
	query, args, err := psql().
		Select(foodColumns...).
		From(foodTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []foodRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}

	items := make([]model.Food, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}
