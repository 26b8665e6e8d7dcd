// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 loads the configuration settings with version 1.x.y.
// All known minor and patch versions of the major version 1 are loaded
// by this implementation, and missing optional settings take their
// default values.
//
// The Config type also instantiates the adapters and use cases which
// are configured by its settings, so the main package only needs to
// pass the loaded Config around.
package cfg1

import (
	"fmt"
	"os"
	"time"

	"github.com/momeni/mapty/pkg/adapter/config/settings"
	"github.com/momeni/mapty/pkg/adapter/config/vers"
	"github.com/momeni/mapty/pkg/adapter/db/postgres/historyrp"
	"github.com/momeni/mapty/pkg/adapter/db/postgres/migration"
	"github.com/momeni/mapty/pkg/adapter/db/postgres/storagerp"
	"github.com/momeni/mapty/pkg/adapter/leaflet"
	"github.com/momeni/mapty/pkg/core/model"
	"github.com/momeni/mapty/pkg/core/repo"
	"github.com/momeni/mapty/pkg/core/usecase/workoutsuc"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// DatabaseURLEnv names the environment variable which overrides the
// database connection settings when it is not empty.
const DatabaseURLEnv = "DATABASE_URL"

// Config contains all settings of the mapty server and its commands.
// Optional settings are pointers, so missing items can be detected
// and filled by their default values.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Map      Map      // Map tiles and view settings
	Log      Log      // Structured logging settings
	Usecases Usecases // Supported use cases configuration settings

	// Vers contains the configuration file and database schema
	// versions of this Config instance.
	Vers vers.Config `yaml:",inline"`
}

// Load unmarshals the `data` YAML document as a Config instance.
// Extra items are ignored and missing optional items take their
// default values. The DATABASE_URL environment variable, if it is set,
// overrides the database settings which are read from `data`.
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if u := os.Getenv(DatabaseURLEnv); u != "" {
		c.Database.URL = u
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// replaces the missing optional settings by their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	c.Gin.normalize()
	if err := c.Map.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating map settings: %w", err)
	}
	if err := c.Log.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating log settings: %w", err)
	}
	w := &c.Usecases.Workouts
	if err := settings.VerifyRange(
		&w.IdleTTL, w.MinIdleTTL, w.MaxIdleTTL,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(idle ttl=%v, minb=%v, maxb=%v): %w",
			err.Value, w.MinIdleTTL, w.MaxIdleTTL, err,
		)
	}
	settings.Nil2Zero(&w.PositiveElevation)
	if w.StorageKey == "" {
		w.StorageKey = historyrp.DefaultKey
	}
	return nil
}

// SchemaVersion returns the database schema version which is declared
// by the configuration file.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// SchemaInitializer creates a repo.SchemaInitializer which creates the
// tables in the given transaction. It matches the
// migrationuc.InitializerFactory function type.
func (c *Config) SchemaInitializer(tx repo.Tx) (
	repo.SchemaInitializer, error,
) {
	return migration.NewInitializer(tx)
}

// NewHistoryRepo instantiates the workouts history repository, storing
// histories under the configured storage key.
func (c *Config) NewHistoryRepo() repo.History {
	return historyrp.New(storagerp.New(), c.Usecases.Workouts.StorageKey)
}

// NewWorkoutsUseCase instantiates the workouts use case based on the
// settings in the `c` struct. The `opts` are appended to the options
// which are derived from the settings, e.g., in order to pass a
// metrics recorder.
func (c *Config) NewWorkoutsUseCase(
	p repo.Pool, opts ...workoutsuc.Option,
) (*workoutsuc.UseCase, error) {
	w := c.Usecases.Workouts
	all := make([]workoutsuc.Option, 0, 3+len(opts))
	all = append(all, workoutsuc.WithZoom(*c.Map.Zoom))
	if w.IdleTTL != nil {
		all = append(all, workoutsuc.WithIdleTTL(time.Duration(*w.IdleTTL)))
	}
	if *w.PositiveElevation {
		all = append(all, workoutsuc.WithPositiveElevation())
	}
	all = append(all, opts...)
	return workoutsuc.New(
		p, c.NewHistoryRepo(), leaflet.NewFactory(c.Map.Tiles()), all...,
	)
}

// Version returns the configuration file version as it was read.
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}
