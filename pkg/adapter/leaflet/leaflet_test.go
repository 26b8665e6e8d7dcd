// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package leaflet_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/mapty/pkg/adapter/leaflet"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	home = model.Coordinate{Lat: 51.5, Lon: -0.12}
	park = model.Coordinate{Lat: 51.51, Lon: -0.13}
)

func TestClickBeforeInitIsIgnored(t *testing.T) {
	v := leaflet.New(leaflet.DefaultTiles())
	clicked := false
	v.OnMapClick(func(model.Coordinate) { clicked = true })
	assert.False(t, v.Ready())
	assert.False(t, v.Click(park), "click must be ignored before Init")
	assert.False(t, clicked)
	assert.Empty(t, v.Drain())
}

func TestInitRecordsMapTilesAndPosition(t *testing.T) {
	v := leaflet.NewFactory(leaflet.DefaultTiles())()
	v.Init(home, 13)
	require.True(t, v.Ready())
	assert.Equal(t, []repo.MapCommand{
		leaflet.InitCmd{Op: leaflet.OpInit, Center: home.Pair(), Zoom: 13},
		leaflet.TileLayerCmd{
			Op:          leaflet.OpTileLayer,
			URL:         leaflet.DefaultTileURL,
			Attribution: leaflet.DefaultAttribution,
			MaxZoom:     19,
		},
		leaflet.MarkerCmd{Op: leaflet.OpMarker, At: home.Pair()},
	}, v.Drain())
	assert.Empty(t, v.Drain(), "Drain must forget returned commands")
}

func TestClickRunsHandler(t *testing.T) {
	v := leaflet.New(leaflet.DefaultTiles())
	v.Init(home, 13)
	var seen []model.Coordinate
	v.OnMapClick(func(c model.Coordinate) {
		seen = append(seen, c)
		v.PlaceMarker(c, "nested call", "x")
	})
	require.True(t, v.Click(park))
	assert.Equal(t, []model.Coordinate{park}, seen)
}

func TestMarkerAndPanEncoding(t *testing.T) {
	v := leaflet.New(leaflet.DefaultTiles())
	v.PlaceMarker(park, "🏃‍♂️ Running on April 14", "running-popup")
	v.PanTo(park, 13, true)
	v.PanTo(home, 10, false)
	b, err := json.Marshal(v.Drain())
	require.NoError(t, err)
	assert.JSONEq(t, `[
{"op":"marker","at":[51.51,-0.13],"popup":{
 "content":"🏃‍♂️ Running on April 14","className":"running-popup",
 "maxWidth":250,"minWidth":100,"autoClose":false,"closeOnClick":false}},
{"op":"pan","center":[51.51,-0.13],"zoom":13,"animate":true,"duration":0.5},
{"op":"pan","center":[51.5,-0.12],"zoom":10,"animate":false}
]`, string(b))
}
