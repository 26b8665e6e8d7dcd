// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/core/model"
)

// HistoryQueryer persists the ordered workouts list of clients.
type HistoryQueryer interface {
	// Save serializes the whole `workouts` list as one storage entry,
	// overwriting the previous history of the `client`.
	Save(ctx context.Context, client uuid.UUID, workouts []*model.Workout) error

	// Load restores the history of the `client`. A missing or
	// malformed entry is reported as an empty history and a nil error,
	// so only infrastructure failures are returned as errors.
	// Restored workouts are display-only data (see model.Restore).
	Load(ctx context.Context, client uuid.UUID) ([]*model.Workout, error)

	// Clear removes the history of the `client`.
	Clear(ctx context.Context, client uuid.UUID) error
}

// History is the workouts history repository.
type History interface {
	Conn(Conn) HistoryQueryer
	Tx(Tx) HistoryQueryer
}
