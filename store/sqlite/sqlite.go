// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/Sonu99kr/Assignment/db"
	"github.com/Sonu99kr/Assignment/store/sqlstore"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const maxFileConns = 8

// Open opens the database at path (or MemoryPath) and creates the schema.
//
// An in-memory database exists only on the connection that created it, so it
// gets a single connection. File databases run in WAL mode with a pool:
// readers never wait on the writer, and writers queue on SQLite's own
// database lock for up to five seconds.
func Open(ctx context.Context, path string) (*sqlstore.Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	memory := path == MemoryPath
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if !memory {
		path = filepath.Clean(path)
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if memory {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
		conn.SetConnMaxIdleTime(0)
	} else {
		conn.SetMaxOpenConns(maxFileConns)
		conn.SetMaxIdleConns(maxFileConns)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return sqlstore.New(conn, sqlstore.SQLite, IsUniqueViolation), nil
}

// IsUniqueViolation reports whether err is a SQLite primary key or unique constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
