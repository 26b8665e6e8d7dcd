// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo declares the ports which the use cases layer needs from
// the adapters layer: the database connections pool, its connections
// and transactions, the key-value storage and workout history
// repositories on top of them, and the map view which displays the
// workouts. Implementations live in the pkg/adapter packages.
package repo

import "context"

// ConnHandler is a callback which receives a database connection.
// The connection may only be used until the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool is a database connections pool. Each Conn call acquires one
// connection, passes it to the handler, and releases it afterwards.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
