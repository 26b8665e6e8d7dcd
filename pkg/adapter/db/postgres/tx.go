// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/mapty/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx is a READ-COMMITTED transaction which implements the repo.Tx
// interface. It must not be used concurrently.
type Tx struct {
	*gorm.DB
}

// Exec runs the `sql` statement(s) within the transaction.
// In absence of `args`, `sql` may hold multiple statements.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(ctx, tx.DB, sql, args...)
}

// Query runs the `sql` statement within the transaction.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(ctx, tx.DB, sql, args...)
}

// IsTx marks Tx as a repo.Tx implementation.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB, bound to the `ctx` context.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
