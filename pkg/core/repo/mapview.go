// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "github.com/momeni/mapty/pkg/core/model"

// MapCommand is an instruction which is produced by a MapView and is
// replayed by the client side map widget. Its concrete type is owned
// by the MapView implementation and it only needs to be serializable.
type MapCommand = any

// MapView wraps a tile-based map widget. A MapView is not safe for
// concurrent use; each client session owns one instance.
type MapView interface {
	// Init centers a fresh map on `center` using the `zoom` level,
	// adds the tile layer, and marks the user position.
	Init(center model.Coordinate, zoom int)

	// Ready reports if Init was called.
	Ready() bool

	// OnMapClick registers the single handler of map clicks,
	// replacing any previously registered handler.
	OnMapClick(handler func(model.Coordinate))

	// Click reports a click at `c` to the registered handler.
	// It returns false if the map is not initialized or no handler
	// is registered.
	Click(c model.Coordinate) bool

	// PlaceMarker adds a pin at `c` with an opened popup which shows
	// the `popup` text and is styled by the `className` class.
	PlaceMarker(c model.Coordinate, popup, className string)

	// PanTo recenters the view on `c` using the `zoom` level.
	PanTo(c model.Coordinate, zoom int, animated bool)

	// Drain returns and forgets the commands which are recorded
	// since the previous Drain call.
	Drain() []MapCommand
}

// MapViewFactory creates a MapView for a new client session.
type MapViewFactory func() MapView
