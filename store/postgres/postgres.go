// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Sonu99kr/Assignment/db"
	"github.com/Sonu99kr/Assignment/store/sqlstore"
)

const uniqueViolation = "23505"

// Open connects to databaseURL, verifies the connection and creates the schema.
func Open(ctx context.Context, databaseURL string) (*sqlstore.Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return sqlstore.New(conn, sqlstore.Postgres, IsUniqueViolation), nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
