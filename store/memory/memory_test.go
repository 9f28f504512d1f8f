// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memory_test

import (
	"testing"

	"github.com/Sonu99kr/Assignment/poll"
	"github.com/Sonu99kr/Assignment/store/memory"
	"github.com/Sonu99kr/Assignment/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) poll.Store {
		s, err := memory.New()
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}
