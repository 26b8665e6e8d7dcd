// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storagerp_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/mapty/internal/test/dbcontainer"
	"github.com/momeni/mapty/pkg/adapter/db/postgres"
	"github.com/momeni/mapty/pkg/adapter/db/postgres/storagerp"
	"github.com/momeni/mapty/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationStorageTestSuite struct {
	suite.Suite

	Ctx     context.Context
	Pool    *postgres.Pool
	Storage *storagerp.Repo
}

func TestIntegrationStorageTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database container tests in short mode")
	}
	ctx := context.Background()
	pool := dbcontainer.Start(ctx, t, 60*time.Second)
	suite.Run(t, &IntegrationStorageTestSuite{
		Ctx:     ctx,
		Pool:    pool,
		Storage: storagerp.New(),
	})
}

func (ists *IntegrationStorageTestSuite) conn(
	f func(ctx context.Context, q repo.StorageConnQueryer) error,
) error {
	return ists.Pool.Conn(
		ists.Ctx, func(ctx context.Context, c repo.Conn) error {
			return f(ctx, ists.Storage.Conn(c))
		},
	)
}

func (ists *IntegrationStorageTestSuite) TestMissingItem() {
	err := ists.conn(func(ctx context.Context, q repo.StorageConnQueryer) error {
		v, found, err := q.GetItem(ctx, uuid.New(), "workout")
		ists.Require().NoError(err)
		ists.False(found, "item of a new client must be missing")
		ists.Empty(v)
		return nil
	})
	ists.Require().NoError(err)
}

func (ists *IntegrationStorageTestSuite) TestSetOverwritesItem() {
	client := uuid.New()
	err := ists.conn(func(ctx context.Context, q repo.StorageConnQueryer) error {
		ists.Require().NoError(q.SetItem(ctx, client, "workout", "[1]"))
		ists.Require().NoError(q.SetItem(ctx, client, "workout", "[1,2]"))
		v, found, err := q.GetItem(ctx, client, "workout")
		ists.Require().NoError(err)
		ists.True(found, "item must exist after SetItem")
		ists.Equal("[1,2]", v)
		return nil
	})
	ists.Require().NoError(err)
}

func (ists *IntegrationStorageTestSuite) TestClientsAreIsolated() {
	alice, bob := uuid.New(), uuid.New()
	err := ists.conn(func(ctx context.Context, q repo.StorageConnQueryer) error {
		ists.Require().NoError(q.SetItem(ctx, alice, "workout", "a"))
		_, found, err := q.GetItem(ctx, bob, "workout")
		ists.Require().NoError(err)
		ists.False(found, "items must not leak between clients")
		return nil
	})
	ists.Require().NoError(err)
}

func (ists *IntegrationStorageTestSuite) TestRemoveItem() {
	client := uuid.New()
	err := ists.conn(func(ctx context.Context, q repo.StorageConnQueryer) error {
		ists.Require().NoError(q.SetItem(ctx, client, "workout", "x"))
		ists.Require().NoError(q.RemoveItem(ctx, client, "workout"))
		ists.Require().NoError(
			q.RemoveItem(ctx, client, "workout"),
			"removing a missing item must be tolerated",
		)
		_, found, err := q.GetItem(ctx, client, "workout")
		ists.Require().NoError(err)
		ists.False(found)
		return nil
	})
	ists.Require().NoError(err)
}

func (ists *IntegrationStorageTestSuite) TestRollback() {
	client := uuid.New()
	err := ists.Pool.Conn(
		ists.Ctx, func(ctx context.Context, c repo.Conn) error {
			err := c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				err := ists.Storage.Tx(tx).SetItem(ctx, client, "k", "v")
				ists.Require().NoError(err)
				panic("abort")
			})
			ists.ErrorContains(err, "panicked: abort")
			_, found, err := ists.Storage.Conn(c).GetItem(ctx, client, "k")
			ists.Require().NoError(err)
			ists.False(found, "rolled back item must not be visible")
			return nil
		},
	)
	ists.Require().NoError(err)
}
