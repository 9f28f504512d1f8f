// Copyright (c) 2026 Sonu99kr.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storetest holds behaviour tests shared by every poll.Store implementation.

	func TestStore(t *testing.T) {
		storetest.Run(t, func(t *testing.T) poll.Store {
			return newEmptyStore(t)
		})
	}
*/
package storetest
