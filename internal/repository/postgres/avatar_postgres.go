package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/bwmarrin/snowflake"
	"github.com/georgysavva/scany/v2/sqlscan"

	"foodhood/internal/model"
	"foodhood/internal/repository"
)

const avatarTable = "avatars"

var avatarColumns = []string{"user_id", "content_type", "storage_key", "updated_at"}

type avatarRow struct {
	UserID      snowflake.ID `db:"user_id"`
	ContentType string       `db:"content_type"`
	StorageKey  string       `db:"storage_key"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

// AvatarPostgres is a PostgreSQL implementation of repository.AvatarRepository.
type AvatarPostgres struct {
	db *sql.DB
}

// NewAvatarPostgres creates a new AvatarPostgres repository.
func NewAvatarPostgres(db *sql.DB) *AvatarPostgres {
	return &AvatarPostgres{db: db}
}

var _ repository.AvatarRepository = (*AvatarPostgres)(nil)

func (r *AvatarPostgres) Upsert(ctx context.Context, a *model.Avatar) error {
	query, args, err := psql().
		Insert(avatarTable).
		Columns(avatarColumns...).
		Values(a.UserID, a.ContentType, a.StorageKey, a.UpdatedAt).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET content_type = EXCLUDED.content_type, storage_key = EXCLUDED.storage_key, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *AvatarPostgres) FindByUser(ctx context.Context, userID snowflake.ID) (*model.Avatar, error) {
	query, args, err := psql().
		Select(avatarColumns...).
		From(avatarTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var row avatarRow
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &model.Avatar{
		UserID:      row.UserID,
		ContentType: row.ContentType,
		StorageKey:  row.StorageKey,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Delete removes the avatar row. Missing rows are not an error.
func (r *AvatarPostgres) Delete(ctx context.Context, userID snowflake.ID) error {
	query, args, err := psql().
		Delete(avatarTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
