// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/mapty/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn is a database connection which implements the repo.Conn
// interface. It embeds the *gorm.DB, so repository packages may use
// it like GORM.
type Conn struct {
	*gorm.DB
}

type TxHandler = repo.TxHandler

// Tx begins a transaction and passes it to `f`. The transaction is
// committed if `f` returns nil. It is rolled back if `f` fails or
// panics, and the panic is reported as an error.
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	gtx := c.DB.WithContext(ctx).Begin()
	if err = gtx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
		}
		if err != nil {
			if rbErr := gtx.Rollback().Error; rbErr != nil {
				err = fmt.Errorf("handler: %w, rollback: %w", err, rbErr)
			}
			return
		}
		if err = gtx.Commit().Error; err != nil {
			err = fmt.Errorf("commit: %w", err)
		}
	}()
	return f(ctx, &Tx{DB: gtx})
}

// Exec runs the `sql` statement(s) and returns the affected rows count.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(ctx, c.DB, sql, args...)
}

// Query runs the `sql` statement and returns its result set.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(ctx, c.DB, sql, args...)
}

// IsConn marks Conn as a repo.Conn implementation.
func (c *Conn) IsConn() {
}

// GORM returns the embedded *gorm.DB, bound to the `ctx` context.
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
