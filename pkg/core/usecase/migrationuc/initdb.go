// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database initialization use case.
// The InitDBUseCase creates the storage tables of the latest supported
// schema version, optionally dropping the existing tables, and all of
// its statements run in a single transaction.
package migrationuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/mapty/pkg/core/cerr"
	"github.com/momeni/mapty/pkg/core/log"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

// InitializerFactory creates a schema initializer which runs its
// statements in the given transaction.
type InitializerFactory func(tx repo.Tx) (repo.SchemaInitializer, error)

// InitDBUseCase represents the database initialization use case.
type InitDBUseCase struct {
	pool           repo.Pool
	newInitializer InitializerFactory
	version        model.SemVer // expected schema version
}

// NewInitDB creates an InitDBUseCase instance which uses the `p`
// connections pool and creates schema initializers by the `f` factory.
// The `v` version is the database schema version which is declared by
// the configuration file and must match the initializer version.
func NewInitDB(
	p repo.Pool, f InitializerFactory, v model.SemVer,
) *InitDBUseCase {
	return &InitDBUseCase{pool: p, newInitializer: f, version: v}
}

// InitDB creates the storage tables. Existing tables are kept (along
// with their stored histories) unless `dropExisting` is true.
func (iduc *InitDBUseCase) InitDB(
	ctx context.Context, dropExisting bool,
) error {
	err := iduc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := iduc.newInitializer(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			if v := si.Version(); v != iduc.version {
				return &cerr.MismatchingSemVerError{iduc.version, v}
			}
			if err := si.InitSchema(ctx, dropExisting); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	log.Info(
		ctx, "database is initialized",
		slog.String("version", iduc.version.String()),
		slog.Bool("dropped", dropExisting),
	)
	return nil
}
