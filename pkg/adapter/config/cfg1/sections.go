// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/momeni/mapty/pkg/adapter/config/settings"
	"github.com/momeni/mapty/pkg/adapter/leaflet"
	"github.com/momeni/mapty/pkg/adapter/restful/gin"
	"github.com/momeni/mapty/pkg/core/log"
)

// Gin contains the gin-gonic related configuration settings.
type Gin struct {
	Logger   *bool `yaml:",omitempty"` // register gin.Logger(), false by default
	Recovery *bool `yaml:",omitempty"` // register gin.Recovery(), true by default
	Slog     *bool `yaml:",omitempty"` // log requests with slog, true by default
}

func (g *Gin) normalize() {
	settings.Nil2Zero(&g.Logger)
	settings.Default(&g.Recovery, true)
	settings.Default(&g.Slog, true)
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 3)
	if *g.Slog {
		middlewares = append(middlewares, gin.SlogLogger())
	}
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Map contains the tile layer and view settings of the browser maps.
type Map struct {
	TileURL     *string `yaml:"tile-url,omitempty"`
	Attribution *string `yaml:",omitempty"`
	MaxZoom     *int    `yaml:"max-zoom,omitempty"`
	// Zoom is used for centering the map on the user position and for
	// moving to a workout. It must be in the [1, MaxZoom] range.
	Zoom *int `yaml:",omitempty"`
}

// ValidateAndNormalize fills the missing map settings by the public
// OpenStreetMap tiles settings and the zoom level 13.
func (m *Map) ValidateAndNormalize() error {
	def := leaflet.DefaultTiles()
	settings.Default(&m.TileURL, def.URL)
	settings.Default(&m.Attribution, def.Attribution)
	settings.Default(&m.MaxZoom, def.MaxZoom)
	settings.Default(&m.Zoom, 13)
	minZoom := 1
	if err := settings.VerifyRange(&m.MaxZoom, &minZoom, nil); err != nil {
		return fmt.Errorf("max-zoom: %w", err)
	}
	if err := settings.VerifyRange(&m.Zoom, &minZoom, m.MaxZoom); err != nil {
		return fmt.Errorf("zoom: %w", err)
	}
	return nil
}

// Tiles returns the tile layer settings for the leaflet adapter.
func (m Map) Tiles() leaflet.Tiles {
	return leaflet.Tiles{
		URL:         *m.TileURL,
		Attribution: *m.Attribution,
		MaxZoom:     *m.MaxZoom,
	}
}

// Log contains the structured logging settings.
type Log struct {
	Format string `yaml:",omitempty"` // text (default) or json
	Level  string `yaml:",omitempty"` // debug, info (default), warn, or error
}

// ValidateAndNormalize fills the missing log settings and checks them.
func (l *Log) ValidateAndNormalize() error {
	if l.Format == "" {
		l.Format = "text"
	}
	if l.Level == "" {
		l.Level = "info"
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %q", l.Format)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Setup replaces the default logger by a logger which writes to `w`.
func (l Log) Setup(w io.Writer) error {
	return log.Setup(w, l.Format, l.Level)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Workouts Workouts // workouts use case related settings
}

// Workouts contains the configuration settings for the workouts use
// case.
type Workouts struct {
	// IdleTTL indicates how long an idle client session is kept.
	// A nil value lets the use case choose its default.
	IdleTTL *settings.Duration `yaml:"idle-ttl,omitempty"`
	// MinIdleTTL and MaxIdleTTL are the inclusive boundaries of
	// IdleTTL. A missing boundary is not checked.
	MinIdleTTL *settings.Duration `yaml:"idle-ttl-minimum,omitempty"`
	MaxIdleTTL *settings.Duration `yaml:"idle-ttl-maximum,omitempty"`
	// PositiveElevation rejects cycling workouts with non-positive
	// elevation gains. It is false by default.
	PositiveElevation *bool `yaml:"positive-elevation,omitempty"`
	// StorageKey is the storage key of workouts histories.
	StorageKey string `yaml:"storage-key,omitempty"`
}
