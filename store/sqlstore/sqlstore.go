// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

// Dialect selects placeholder syntax.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// Store persists polls in a SQL database.
type Store struct {
	db         *sql.DB
	dialect    Dialect
	isConflict func(error) bool
}

// New wraps an open, migrated database. isConflict classifies driver
// unique-violation errors and may be nil.
func New(db *sql.DB, dialect Dialect, isConflict func(error) bool) *Store {
	if isConflict == nil {
		isConflict = func(error) bool { return false }
	}
	return &Store{db: db, dialect: dialect, isConflict: isConflict}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// q rewrites ? placeholders to $n for PostgreSQL.
func (s *Store) q(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Create inserts a poll with its options.
func (s *Store) Create(ctx context.Context, p models.Poll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.q(`
		INSERT INTO poll (id, question, expires_at, created_at)
		VALUES (?, ?, ?, ?)
	`), p.ID, p.Question, toMillis(p.ExpiresAt), toMillis(p.CreatedAt))
	if err != nil {
		if s.isConflict(err) {
			return poll.ErrConflict
		}
		return fmt.Errorf("insert poll: %w", err)
	}

	for i, opt := range p.Options {
		_, err = tx.ExecContext(ctx, s.q(`
			INSERT INTO poll_option (poll_id, position, text, votes)
			VALUES (?, ?, ?, ?)
		`), p.ID, i, opt.Text, opt.Votes)
		if err != nil {
			return fmt.Errorf("insert option %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit poll: %w", err)
	}
	return nil
}

// Get loads a poll with its options and voter set.
func (s *Store) Get(ctx context.Context, pollID string) (models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: s.dialect == Postgres})
	if err != nil {
		return models.Poll{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := s.load(ctx, tx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("commit read: %w", err)
	}
	return p, nil
}

// TryApplyVote records voterToken and increments the option counter in one
// transaction. The voter insert is conditional on the poll being open and
// the token being absent (the voter row's primary key); a rejected counter
// update rolls back the whole unit.
//
// The transaction starts with the write so SQLite takes its write lock up
// front instead of upgrading from a read.
func (s *Store) TryApplyVote(ctx context.Context, pollID string, optionIndex int, voterToken string, now time.Time) (models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Poll{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	at := toMillis(now)
	res, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO poll_voter (poll_id, voter_token, position, voted_at)
		SELECT CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS INTEGER), CAST(? AS BIGINT)
		WHERE EXISTS (SELECT 1 FROM poll WHERE id = ? AND expires_at > ?)
		ON CONFLICT (poll_id, voter_token) DO NOTHING
	`), pollID, voterToken, optionIndex, at, pollID, at)
	if err != nil {
		return models.Poll{}, fmt.Errorf("insert voter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, fmt.Errorf("insert voter: %w", err)
	}
	if n == 0 {
		return models.Poll{}, s.rejection(ctx, tx, pollID, at)
	}

	res, err = tx.ExecContext(ctx, s.q(`
		UPDATE poll_option SET votes = votes + 1
		WHERE poll_id = ? AND position = ?
	`), pollID, optionIndex)
	if err != nil {
		return models.Poll{}, fmt.Errorf("increment votes: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Poll{}, fmt.Errorf("increment votes: %w", err)
	} else if n == 0 {
		return models.Poll{}, poll.ErrInvalidOption
	}

	p, err := s.load(ctx, tx, pollID)
	if err != nil {
		return models.Poll{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, fmt.Errorf("commit vote: %w", err)
	}
	return p, nil
}

// DeleteExpiredBefore removes polls whose expiry is earlier than cutoff and
// returns how many were removed.
func (s *Store) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	limit := toMillis(cutoff)
	// Children first; SQLite only cascades with foreign_keys enabled
	for _, table := range []string{"poll_voter", "poll_option"} {
		_, err := tx.ExecContext(ctx, s.q(`
			DELETE FROM `+table+` WHERE poll_id IN (SELECT id FROM poll WHERE expires_at < ?)
		`), limit)
		if err != nil {
			return 0, fmt.Errorf("delete expired %s: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, s.q(`DELETE FROM poll WHERE expires_at < ?`), limit)
	if err != nil {
		return 0, fmt.Errorf("delete expired polls: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired polls: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete: %w", err)
	}
	return int(n), nil
}

// rejection explains why the conditional voter insert wrote nothing.
func (s *Store) rejection(ctx context.Context, tx *sql.Tx, pollID string, at int64) error {
	var expiresAt int64
	err := tx.QueryRowContext(ctx, s.q(`SELECT expires_at FROM poll WHERE id = ?`), pollID).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return poll.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query poll: %w", err)
	}
	if at >= expiresAt {
		return poll.ErrPollClosed
	}
	return poll.ErrAlreadyVoted
}

func (s *Store) load(ctx context.Context, tx *sql.Tx, pollID string) (models.Poll, error) {
	var (
		p         models.Poll
		expiresAt int64
		createdAt int64
	)
	err := tx.QueryRowContext(ctx, s.q(`
		SELECT id, question, expires_at, created_at FROM poll WHERE id = ?
	`), pollID).Scan(&p.ID, &p.Question, &expiresAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, poll.ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("query poll: %w", err)
	}
	p.ExpiresAt = fromMillis(expiresAt)
	p.CreatedAt = fromMillis(createdAt)

	rows, err := tx.QueryContext(ctx, s.q(`
		SELECT text, votes FROM poll_option WHERE poll_id = ? ORDER BY position
	`), pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("query options: %w", err)
	}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Text, &opt.Votes); err != nil {
			rows.Close()
			return models.Poll{}, fmt.Errorf("scan option: %w", err)
		}
		p.Options = append(p.Options, opt)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return models.Poll{}, fmt.Errorf("iterate options: %w", err)
	}
	rows.Close()

	rows, err = tx.QueryContext(ctx, s.q(`SELECT voter_token FROM poll_voter WHERE poll_id = ?`), pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("query voters: %w", err)
	}
	defer rows.Close()

	p.VotersSeen = make(map[string]struct{})
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return models.Poll{}, fmt.Errorf("scan voter: %w", err)
		}
		p.VotersSeen[token] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, fmt.Errorf("iterate voters: %w", err)
	}
	return p, nil
}

var _ poll.Store = (*Store)(nil)
