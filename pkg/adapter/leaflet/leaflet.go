// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package leaflet implements the repo.MapView interface for a Leaflet
// map which lives in the browser. The View type keeps the map state
// which is needed on the server (being initialized and the click
// handler) and records every operation as a JSON serializable command.
// The transport layer drains those commands and the browser script
// replays them on its L.map instance, in the same order.
package leaflet

import (
	"sync"

	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
)

// These constants are the default tile layer settings, using the
// public OpenStreetMap tile servers.
const (
	DefaultTileURL     = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = `&copy; <a href="http://www.openstreetmap.org/copyright">OpenStreetMap</a>`
	DefaultMaxZoom     = 19
)

// Popup options of workout markers.
const (
	PopupMaxWidth = 250
	PopupMinWidth = 100
)

// PanDuration is the animation duration of PanTo in seconds.
const PanDuration = 0.5

// Tiles describes the tile layer of all maps.
type Tiles struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

// DefaultTiles returns the OpenStreetMap tile layer settings.
func DefaultTiles() Tiles {
	return Tiles{
		URL:         DefaultTileURL,
		Attribution: DefaultAttribution,
		MaxZoom:     DefaultMaxZoom,
	}
}

// View is a recording repo.MapView implementation.
// It is safe for concurrent use, although the workouts use case
// serializes all calls of one client.
type View struct {
	tiles Tiles

	mu       sync.Mutex
	ready    bool
	onClick  func(model.Coordinate)
	commands []repo.MapCommand
}

// NewFactory returns a repo.MapViewFactory which creates a View for
// each client session, all sharing the `tiles` settings.
func NewFactory(tiles Tiles) repo.MapViewFactory {
	return func() repo.MapView {
		return New(tiles)
	}
}

// New creates an uninitialized View.
func New(tiles Tiles) *View {
	return &View{tiles: tiles}
}

// Init records the map creation, centered on `center`, along with its
// tile layer and a marker for the user position.
func (v *View) Init(center model.Coordinate, zoom int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ready = true
	v.record(
		InitCmd{Op: OpInit, Center: center.Pair(), Zoom: zoom},
		TileLayerCmd{
			Op: OpTileLayer, URL: v.tiles.URL,
			Attribution: v.tiles.Attribution, MaxZoom: v.tiles.MaxZoom,
		},
		MarkerCmd{Op: OpMarker, At: center.Pair()},
	)
}

// Ready reports if Init was called.
func (v *View) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

// OnMapClick replaces the map click handler.
func (v *View) OnMapClick(handler func(model.Coordinate)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onClick = handler
}

// Click runs the map click handler for `c`. The handler is called
// without holding the View lock, so it may call other View methods.
func (v *View) Click(c model.Coordinate) bool {
	v.mu.Lock()
	h, ready := v.onClick, v.ready
	v.mu.Unlock()
	if !ready || h == nil {
		return false
	}
	h(c)
	return true
}

// PlaceMarker records a marker at `c` with an opened popup.
func (v *View) PlaceMarker(c model.Coordinate, popup, className string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.record(MarkerCmd{
		Op: OpMarker, At: c.Pair(),
		Popup: &PopupOptions{
			Content:      popup,
			ClassName:    className,
			MaxWidth:     PopupMaxWidth,
			MinWidth:     PopupMinWidth,
			AutoClose:    false,
			CloseOnClick: false,
		},
	})
}

// PanTo records a recentering of the map on `c`.
func (v *View) PanTo(c model.Coordinate, zoom int, animated bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	cmd := PanCmd{Op: OpPan, Center: c.Pair(), Zoom: zoom}
	if animated {
		cmd.Animate = true
		cmd.Duration = PanDuration
	}
	v.record(cmd)
}

// Drain returns the recorded commands and forgets them.
// It never returns nil, so an empty list is encoded as [] in JSON.
func (v *View) Drain() []repo.MapCommand {
	v.mu.Lock()
	defer v.mu.Unlock()
	cmds := v.commands
	v.commands = nil
	if cmds == nil {
		cmds = []repo.MapCommand{}
	}
	return cmds
}

func (v *View) record(cmds ...repo.MapCommand) {
	v.commands = append(v.commands, cmds...)
}
