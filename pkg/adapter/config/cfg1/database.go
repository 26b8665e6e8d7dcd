// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/mapty/pkg/adapter/db/postgres"
)

// Database contains the database related configuration settings.
// If URL is not empty, other fields are ignored. Otherwise, the
// password of User is read from the .pgpass file in PassDir.
type Database struct {
	Host    string `yaml:",omitempty"` // DBMS server address, 127.0.0.1 by default
	Port    int    `yaml:",omitempty"` // DBMS server port, 5432 by default
	Name    string `yaml:",omitempty"` // database name, mapty by default
	User    string `yaml:",omitempty"` // role name, mapty by default
	PassDir string `yaml:"pass-dir,omitempty"`
	URL     string `yaml:"url,omitempty"`
}

// ValidateAndNormalize fills the missing connection settings by their
// default values.
func (d *Database) ValidateAndNormalize() error {
	if d.URL != "" {
		return nil
	}
	if d.Host == "" {
		d.Host = "127.0.0.1"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.Port < 0 || d.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", d.Port)
	}
	if d.Name == "" {
		d.Name = "mapty"
	}
	if d.User == "" {
		d.User = "mapty"
	}
	if d.PassDir == "" {
		return errors.New("either url or pass-dir must be given")
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	u, err := d.ConnectionURL()
	if err != nil {
		return nil, err
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the URL setting if it is not empty. Otherwise,
// it reads the .pgpass file in PassDir and builds a postgresql URL.
// That file may contain empty or `#`-commented lines and its password
// lines must have this format:
//
//	host:port:dbname:role:password
func (d Database) ConnectionURL() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	path := filepath.Join(d.PassDir, ".pgpass")
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, d.User)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if pw, ok := strings.CutPrefix(line, prfx); ok {
			pass = strings.TrimRight(pw, "\r")
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line in %q", path)
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(d.User, pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}
