// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package historyrp implements the repo.History interface by keeping
// the whole workouts list of each client as one JSON array in a single
// storage item. Every Save overwrites the previous array.
//
// A missing item is an empty history. A malformed item is logged and
// treated as an empty history too, so only the storage failures are
// reported as errors.
package historyrp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/momeni/mapty/pkg/core/log"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

// DefaultKey is the storage key of the workouts history.
const DefaultKey = "workout"

// Repo is the workouts history repository. It is stateless besides
// its storage and key, so one instance may serve all clients.
type Repo struct {
	storage repo.Storage
	key     string
}

// New creates a Repo which keeps histories in the `key` items of the
// `storage` repository. An empty `key` is replaced by DefaultKey.
func New(storage repo.Storage, key string) *Repo {
	if key == "" {
		key = DefaultKey
	}
	return &Repo{storage: storage, key: key}
}

type queryer struct {
	q   repo.StorageQueryer
	key string
}

// Conn returns a history queryer which runs on the `c` connection.
func (h *Repo) Conn(c repo.Conn) repo.HistoryQueryer {
	return queryer{q: h.storage.Conn(c), key: h.key}
}

// Tx returns a history queryer which runs in the `tx` transaction.
func (h *Repo) Tx(tx repo.Tx) repo.HistoryQueryer {
	return queryer{q: h.storage.Tx(tx), key: h.key}
}

func (hq queryer) Save(
	ctx context.Context, client uuid.UUID, workouts []*model.Workout,
) error {
	b, err := encode(workouts)
	if err != nil {
		return fmt.Errorf("encoding %d workouts: %w", len(workouts), err)
	}
	if err := hq.q.SetItem(ctx, client, hq.key, string(b)); err != nil {
		return fmt.Errorf("SetItem(%q): %w", hq.key, err)
	}
	return nil
}

func (hq queryer) Load(
	ctx context.Context, client uuid.UUID,
) ([]*model.Workout, error) {
	data, found, err := hq.q.GetItem(ctx, client, hq.key)
	if err != nil {
		return nil, fmt.Errorf("GetItem(%q): %w", hq.key, err)
	}
	if !found {
		return nil, nil
	}
	workouts, err := decode(data)
	if err != nil {
		log.Warn(
			ctx, "ignoring malformed workouts history",
			log.Client(client), slog.String("key", hq.key),
			log.Err("err", err),
		)
		return nil, nil
	}
	return workouts, nil
}

func (hq queryer) Clear(ctx context.Context, client uuid.UUID) error {
	if err := hq.q.RemoveItem(ctx, client, hq.key); err != nil {
		return fmt.Errorf("RemoveItem(%q): %w", hq.key, err)
	}
	return nil
}
