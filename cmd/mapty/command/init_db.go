// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/mapty/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

var dropExisting bool

var initDBCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database tables",
	Long: `Create the database tables for the database schema version which
is specified in the configuration file. The database connection
information are also read from the config file.

Tables are created in the maptyX schema, where X is the schema major
version. Existing tables and their histories are kept, unless the
--drop flag is given. In that case, the maptyX schema is dropped and
created again, so all recorded workouts are removed.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	muc := migrationuc.NewInitDB(p, c.SchemaInitializer, c.SchemaVersion())
	if err = muc.InitDB(ctx, dropExisting); err != nil {
		return fmt.Errorf("initializing DB: %w", err)
	}
	return nil
}

func init() {
	initDBCmd.Flags().BoolVar(
		&dropExisting, "drop", false, "drop existing tables and histories",
	)
	dbCmd.AddCommand(initDBCmd)
}
