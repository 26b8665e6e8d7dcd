// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/mapty/pkg/core/model"
)

// SchemaInitializer creates the database tables of one schema version
// within a transaction.
type SchemaInitializer interface {
	// InitSchema creates the tables. If `dropExisting` is true, the
	// existing tables (and so all stored histories) are dropped first.
	InitSchema(ctx context.Context, dropExisting bool) error

	// Version returns the schema version which is created.
	Version() model.SemVer
}
