// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package leaflet

// Op names a map command. The browser script switches on it.
type Op string

const (
	OpInit      Op = "init"
	OpTileLayer Op = "tileLayer"
	OpMarker    Op = "marker"
	OpPan       Op = "pan"
)

// InitCmd creates the map, replacing any existing one.
type InitCmd struct {
	Op     Op         `json:"op"`
	Center [2]float64 `json:"center"`
	Zoom   int        `json:"zoom"`
}

// TileLayerCmd adds a tile layer to the map.
type TileLayerCmd struct {
	Op          Op     `json:"op"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

// MarkerCmd adds a marker. If Popup is not nil, a popup is bound to
// the marker and opened.
type MarkerCmd struct {
	Op    Op            `json:"op"`
	At    [2]float64    `json:"at"`
	Popup *PopupOptions `json:"popup,omitempty"`
}

// PopupOptions mirrors the L.popup options, plus its content.
type PopupOptions struct {
	Content      string `json:"content"`
	ClassName    string `json:"className"`
	MaxWidth     int    `json:"maxWidth"`
	MinWidth     int    `json:"minWidth"`
	AutoClose    bool   `json:"autoClose"`
	CloseOnClick bool   `json:"closeOnClick"`
}

// PanCmd calls setView on the map.
type PanCmd struct {
	Op       Op         `json:"op"`
	Center   [2]float64 `json:"center"`
	Zoom     int        `json:"zoom"`
	Animate  bool       `json:"animate"`
	Duration float64    `json:"duration,omitempty"`
}
