// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration creates the latest supported database schema.
// All tables live in the mapty1 schema (representing the v1.x schema
// major version), so a future major version may be created side by
// side in its own schema.
package migration

import (
	"context"
	"fmt"

	"github.com/momeni/mapty/pkg/adapter/db/postgres"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

// SchemaName is the name of the database schema which holds the v1.x
// tables.
const SchemaName = "mapty1"

const createStatements = `
CREATE SCHEMA IF NOT EXISTS mapty1;
CREATE TABLE IF NOT EXISTS mapty1.storage (
    client_id UUID NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (client_id, key)
)`

const dropStatements = `DROP SCHEMA IF EXISTS mapty1 CASCADE`

// Initializer implements the repo.SchemaInitializer interface using
// a single transaction. The caller commits that transaction.
type Initializer struct {
	tx repo.Tx
}

// New creates an Initializer which runs its statements in `tx`.
func New(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx}
}

// NewInitializer is a factory of Initializer instances which matches
// the migrationuc.InitializerFactory function type.
func NewInitializer(tx repo.Tx) (repo.SchemaInitializer, error) {
	return New(tx), nil
}

// InitSchema creates the mapty1 schema and its storage table if they
// do not exist. If `dropExisting` is true, the mapty1 schema and all
// stored histories are dropped beforehand.
func (i *Initializer) InitSchema(ctx context.Context, dropExisting bool) error {
	if dropExisting {
		if _, err := i.tx.Exec(ctx, dropStatements); err != nil {
			return fmt.Errorf("dropping %s schema: %w", SchemaName, err)
		}
	}
	if _, err := i.tx.Exec(ctx, createStatements); err != nil {
		return fmt.Errorf("creating %s tables: %w", SchemaName, err)
	}
	return nil
}

// Version returns the schema version which is created by InitSchema.
func (i *Initializer) Version() model.SemVer {
	return postgres.Version
}
