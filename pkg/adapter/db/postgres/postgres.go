// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts a PostgreSQL database, accessed by GORM and
// its pgx based driver, to the connection pool, connection, and
// transaction interfaces of the repo package. Repository packages,
// named like storagerp, run their queries on the Conn and Tx types of
// this package.
package postgres

import (
	"github.com/momeni/mapty/pkg/core/model"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version.
//
// The v1.0.0 schema has one key-value storage table, partitioned by
// client identifiers.
const (
	Major = 1 // latest supported schema major version
	Minor = 0 // latest schema minor version in Major series
	Patch = 0 // latest schema patch version in Minor series
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}
