// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
)

// StorageConnQueryer is a StorageQueryer which runs on a Conn.
type StorageConnQueryer interface {
	StorageQueryer
}

// StorageTxQueryer is a StorageQueryer which runs in a Tx.
type StorageTxQueryer interface {
	StorageQueryer
}

// StorageQueryer manages a string-to-string key-value storage which
// is partitioned by client identifiers. It is the server side
// counterpart of the browsers local storage: each client can only see
// its own keys.
type StorageQueryer interface {
	// GetItem returns the value of the `key` item of the `client`.
	// The `found` flag is false if no such item exists.
	GetItem(ctx context.Context, client uuid.UUID, key string) (
		value string, found bool, err error,
	)
	// SetItem creates or overwrites the `key` item of the `client`.
	SetItem(ctx context.Context, client uuid.UUID, key, value string) error
	// RemoveItem deletes the `key` item of the `client` (if any).
	RemoveItem(ctx context.Context, client uuid.UUID, key string) error
}

// Storage is the key-value storage repository.
type Storage interface {
	Conn(Conn) StorageConnQueryer
	Tx(Tx) StorageTxQueryer
}
