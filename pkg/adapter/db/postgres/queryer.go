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

// Queryer is the type constraint of generic repository functions which
// may run either on a Conn or on a Tx. Both types provide the GORM
// method which returns a context-aware *gorm.DB instance.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}

// exec runs `sql` with `args` on `gdb` and returns the number of
// affected rows. Parameters may be written as $1, ?, or @name.
func exec(
	ctx context.Context, gdb *gorm.DB, sql string, args ...any,
) (int64, error) {
	res := gdb.WithContext(ctx).Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// query runs `sql` with `args` on `gdb` and adapts its result set to
// the repo.Rows interface. Only one result set may be open on each
// connection, so it must be closed before the next statement.
func query(
	ctx context.Context, gdb *gorm.DB, sql string, args ...any,
) (repo.Rows, error) {
	rows, err := gdb.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return rowsAdapter{Rows: rows}, nil
}
