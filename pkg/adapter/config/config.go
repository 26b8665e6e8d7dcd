// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows mapty to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// Settings are versioned and each major version is maintained by its
// own sub-package (e.g., cfg1). The parsed settings are passed to their
// components as individual params (for the mandatory items) and as
// functional options (for the optional items).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/mapty/pkg/adapter/config/cfg1"
	"github.com/momeni/mapty/pkg/adapter/config/vers"
	"github.com/momeni/mapty/pkg/adapter/db/postgres"
	"github.com/momeni/mapty/pkg/core/cerr"
)

// Config is the latest supported configuration settings version.
type Config = cfg1.Config

// Load function loads, validates, and normalizes the configuration
// file and returns its settings.
// Given path must belong to a configuration file which conforms with
// the latest known configuration settings format, and it must declare
// the latest known database schema version.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	vc := v.Versions
	if vc.Config[0] != cfg1.Major {
		return nil, fmt.Errorf(
			"unexpected config version: %s", vc.Config.String(),
		)
	}
	if vc.Database != postgres.Version {
		return nil, fmt.Errorf(
			"unexpected database schema version: %w",
			&cerr.MismatchingSemVerError{postgres.Version, vc.Database},
		)
	}
	c, err := cfg1.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	return c, nil
}

// LoadEnv loads the environment variables from the given .env files,
// or from the .env file of the working directory if no file is given.
// Variables which are already set are not overridden.
// Missing files are ignored, so a .env file stays optional.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	present := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("godotenv.Load: %w", err)
	}
	return nil
}
