package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"foodhood/internal/config"
)

var execModes = map[string]pgx.QueryExecMode{
	"cache_statement": pgx.QueryExecModeCacheStatement,
	"cache_describe":  pgx.QueryExecModeCacheDescribe,
	"describe_exec":   pgx.QueryExecModeDescribeExec,
	"exec":            pgx.QueryExecModeExec,
	"simple_protocol": pgx.QueryExecModeSimpleProtocol,
}

// openDB wraps the pgx connector with tracing. Tests swap it for sqlmock.
var openDB = func(cc *pgx.ConnConfig) *sql.DB {
	return otelsql.OpenDB(stdlib.GetConnector(*cc),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
}

// ConnConfig builds the pgx connection settings for c.
// DB_QUERY_EXEC_MODE must be one of the pgx exec mode names in snake case;
// poolers in transaction mode generally need "exec" or "simple_protocol".
func ConnConfig(c config.DatabaseConfig) (*pgx.ConnConfig, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return nil, fmt.Errorf("invalid database config: host, port, user, and name are required")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}

	cc, err := pgx.ParseConfig(u.String())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	if c.QueryExecMode != "" {
		mode, ok := execModes[c.QueryExecMode]
		if !ok {
			return nil, fmt.Errorf("unknown DB_QUERY_EXEC_MODE %q", c.QueryExecMode)
		}
		cc.DefaultQueryExecMode = mode
	}
	if c.StatementCacheCapacity > 0 {
		cc.StatementCacheCapacity = c.StatementCacheCapacity
	}
	if c.ApplicationName != "" {
		cc.RuntimeParams["application_name"] = c.ApplicationName
	}
	if c.ConnectTimeoutSec > 0 {
		cc.ConnectTimeout = time.Duration(c.ConnectTimeoutSec) * time.Second
	}
	return cc, nil
}

// NewPostgres opens a traced database/sql handle backed by the pgx connector,
// applies pooling settings and pings the server before returning.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	cc, err := ConnConfig(c)
	if err != nil {
		return nil, err
	}

	db := openDB(cc)
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
