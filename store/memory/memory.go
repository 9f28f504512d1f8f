// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	memdb "github.com/hashicorp/go-memdb"

	"github.com/Sonu99kr/Assignment/models"
	"github.com/Sonu99kr/Assignment/poll"
)

const (
	memdbTable = "polls"
)

// Store keeps polls in a go-memdb table keyed by ID.
type Store struct {
	db *memdb.MemDB
}

// New creates an empty store.
func New() (*Store, error) {
	db, err := memdb.NewMemDB(&memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			memdbTable: {
				Name: memdbTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:         "id",
						Unique:       true,
						AllowMissing: false,
						Indexer:      &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}
	return &Store{db: db}, nil
}

// Close is a no-op; it exists so the memory store can stand in for SQL stores.
func (s *Store) Close() error {
	return nil
}

// Stored polls are never mutated; writes insert a fresh clone.
func (s *Store) first(tx *memdb.Txn, pollID string) (*models.Poll, error) {
	raw, err := tx.First(memdbTable, "id", pollID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, poll.ErrNotFound
	}
	return raw.(*models.Poll), nil
}

// Create inserts p, or returns poll.ErrConflict if its ID is taken.
func (s *Store) Create(ctx context.Context, p models.Poll) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.db.Txn(true)
	defer tx.Abort()

	if _, err := s.first(tx, p.ID); err == nil {
		return poll.ErrConflict
	} else if !errors.Is(err, poll.ErrNotFound) {
		return err
	}

	stored := p.Clone()
	if err := tx.Insert(memdbTable, &stored); err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}
	tx.Commit()
	return nil
}

// Get returns a copy of the poll with pollID.
func (s *Store) Get(ctx context.Context, pollID string) (models.Poll, error) {
	if err := ctx.Err(); err != nil {
		return models.Poll{}, err
	}
	tx := s.db.Txn(false)
	defer tx.Abort()

	p, err := s.first(tx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	return p.Clone(), nil
}

// TryApplyVote runs inside a memdb write transaction, which admits one writer
// at a time, so the check and the update cannot interleave with another vote.
func (s *Store) TryApplyVote(ctx context.Context, pollID string, optionIndex int, voterToken string, now time.Time) (models.Poll, error) {
	if err := ctx.Err(); err != nil {
		return models.Poll{}, err
	}
	tx := s.db.Txn(true)
	defer tx.Abort()

	current, err := s.first(tx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if !poll.IsOpen(*current, now) {
		return models.Poll{}, poll.ErrPollClosed
	}

	next, err := poll.AdmitVote(*current, optionIndex, voterToken)
	if errors.Is(err, poll.ErrDuplicateVote) {
		return models.Poll{}, poll.ErrAlreadyVoted
	}
	if err != nil {
		return models.Poll{}, err
	}

	if err := tx.Insert(memdbTable, &next); err != nil {
		return models.Poll{}, fmt.Errorf("update poll: %w", err)
	}
	tx.Commit()
	return next.Clone(), nil
}

// DeleteExpiredBefore removes polls whose expiry is earlier than cutoff and
// returns how many were removed.
func (s *Store) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	tx := s.db.Txn(true)
	defer tx.Abort()

	iterator, err := tx.Get(memdbTable, "id")
	if err != nil {
		return 0, fmt.Errorf("list polls: %w", err)
	}
	var expired []*models.Poll
	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		p := raw.(*models.Poll)
		if p.ExpiresAt.Before(cutoff) {
			expired = append(expired, p)
		}
	}
	for _, p := range expired {
		if err := tx.Delete(memdbTable, p); err != nil {
			return 0, fmt.Errorf("delete poll %s: %w", p.ID, err)
		}
	}
	tx.Commit()
	return len(expired), nil
}

var _ poll.Store = (*Store)(nil)
