// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the integration tests
// which need a real PostgreSQL server. It starts a temporary postgres:16
// container (using docker or podman), connects a *postgres.Pool to it,
// and creates the mapty schema.
//
// With podman, the podman.service must be started and DOCKER_HOST must
// be set beforehand, e.g.,
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/mapty/pkg/adapter/db/postgres"
	"github.com/momeni/mapty/pkg/adapter/db/postgres/migration"
	"github.com/momeni/mapty/pkg/core/repo"
	"github.com/stretchr/testify/require"
)

// Start creates a postgres container and returns a connections pool
// with an initialized schema. The `timeout` bounds the start up phase.
// The container and pool are released by `t` cleanup functions.
// The test fails immediately if any step fails.
func Start(ctx context.Context, t *testing.T, timeout time.Duration) *postgres.Pool {
	t.Helper()
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pg, err := sqltestutil.StartPostgresContainer(startCtx, "16")
	require.NoError(t, err, "failed to set up a test database")
	t.Cleanup(func() {
		if err := pg.Shutdown(ctx); err != nil {
			t.Errorf("failed to shutdown test database: %v", err)
		}
	})

	pool, err := connect(startCtx, pg.ConnectionString())
	require.NoError(t, err, "cannot connect to test database")
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("failed to close the connections pool: %v", err)
		}
	})

	err = pool.Conn(startCtx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return migration.New(tx).InitSchema(ctx, false)
		})
	})
	require.NoError(t, err, "cannot create the schema")
	return pool
}

// connect retries connecting to `url` while the server is starting up
// or the network is not ready, until `ctx` expires.
func connect(ctx context.Context, url string) (*postgres.Pool, error) {
	for {
		pool, err := postgres.NewPool(ctx, url)
		if err == nil {
			return pool, nil
		}
		var pgErr *pgconn.PgError
		var netErr net.Error
		switch {
		case ctx.Err() != nil:
			return nil, err
		case errors.As(err, &pgErr) && pgErr.SQLState() == "57P03":
			// the database system is starting up
		case errors.As(err, &netErr):
		default:
			return nil, err
		}
		time.Sleep(100 * time.Millisecond)
	}
}
