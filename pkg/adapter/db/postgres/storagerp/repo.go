// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package storagerp implements the repo.Storage interface on top of
// the mapty1.storage table. Each browser client has its own namespace
// of string keys and values, similar to the local storage of a browser.
package storagerp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/adapter/db/postgres"
	"github.com/momeni/mapty/pkg/core/repo"
)

// Repo is the key-value storage repository.
type Repo struct {
}

// New instantiates a storage repository.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

// Conn returns a storage queryer which runs on the `c` connection.
func (s *Repo) Conn(c repo.Conn) repo.StorageConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

func (cq connQueryer) GetItem(
	ctx context.Context, client uuid.UUID, key string,
) (string, bool, error) {
	return GetItem(ctx, cq.Conn, client, key)
}

func (cq connQueryer) SetItem(
	ctx context.Context, client uuid.UUID, key, value string,
) error {
	return SetItem(ctx, cq.Conn, client, key, value)
}

func (cq connQueryer) RemoveItem(
	ctx context.Context, client uuid.UUID, key string,
) error {
	return RemoveItem(ctx, cq.Conn, client, key)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx returns a storage queryer which runs in the `tx` transaction.
func (s *Repo) Tx(tx repo.Tx) repo.StorageTxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

func (tq txQueryer) GetItem(
	ctx context.Context, client uuid.UUID, key string,
) (string, bool, error) {
	return GetItem(ctx, tq.Tx, client, key)
}

func (tq txQueryer) SetItem(
	ctx context.Context, client uuid.UUID, key, value string,
) error {
	return SetItem(ctx, tq.Tx, client, key, value)
}

func (tq txQueryer) RemoveItem(
	ctx context.Context, client uuid.UUID, key string,
) error {
	return RemoveItem(ctx, tq.Tx, client, key)
}
