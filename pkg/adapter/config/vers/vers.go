// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers parses the versions section of configuration files.
// The configuration file format and the database schema versions are
// read before the rest of the file, so the loader can reject a file
// which was written for another format or schema.
package vers

import (
	"fmt"

	"github.com/momeni/mapty/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config may be embedded inline by versioned config structs in order
// to hold their versions section.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions holds the configuration file format and database schema
// versions.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Load reads the versions section of `data`, ignoring other settings.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the config file version is not
// supported by a loader with the `major` and `minor` versions.
// The major versions must match and the file minor version may not be
// newer than `minor`.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}
