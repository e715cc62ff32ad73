package postgres

import (
	"database/sql/driver"
	"errors"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"foodhood/internal/repository"
)

const uniqueViolation = "23505"

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// mapWriteError translates driver errors into repository errors.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrConflict
	}
	return err
}

var typeMap = pgtype.NewMap()

// int64Array is a BIGINT[] column.
type int64Array []int64

func (a *int64Array) Scan(src any) error {
	return typeMap.SQLScanner((*[]int64)(a)).Scan(src)
}

func (a int64Array) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteByte('}')
	return b.String(), nil
}
