// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/lib/pq"

	"github.com/Sonu99kr/Assignment/poll"
	"github.com/Sonu99kr/Assignment/store/postgres"
	"github.com/Sonu99kr/Assignment/store/storetest"
)

// Set TEST_DATABASE_URL to a disposable database to run these tests.
// The poll tables are truncated before each subtest.
func TestStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) poll.Store {
		ctx := context.Background()
		s, err := postgres.Open(ctx, url)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		_, err = s.DB().ExecContext(ctx, `TRUNCATE poll_voter, poll_option, poll`)
		if err != nil {
			s.Close()
			t.Fatalf("truncate: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestOpenRequiresURL(t *testing.T) {
	if _, err := postgres.Open(context.Background(), ""); err == nil {
		t.Error("expected an error for an empty URL")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped unique violation", errors.Join(errors.New("insert"), &pq.Error{Code: "23505"}), true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := postgres.IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
