// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/drivermind/dmweb/pkg/adapter/config"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/drivermind/dmweb/pkg/core/usecase/setupuc"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the database tables and the service role",
	Long: `Provision the database for serving: create all tables and
indexes if they are missing, create the unprivileged service role,
grant it the data manipulation privileges, and set its password from
the ` + config.EnvDBPassword + ` environment variable. The connection
itself is established with the admin role, taking its password from
the ` + config.EnvDBAdminPassword + ` environment variable.

All steps are idempotent, so init may be re-run against a partially
provisioned database.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	servicePass := os.Getenv(config.EnvDBPassword)
	if servicePass == "" {
		return fmt.Errorf("%s is not set", config.EnvDBPassword)
	}
	p, err := c.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating admin DB pool: %w", err)
	}
	defer p.Close()
	setup := setupuc.New(p, c.NewSchemaRepo())
	if err := setup.Provision(ctx, servicePass); err != nil {
		return fmt.Errorf("provisioning database: %w", err)
	}
	fmt.Println("database provisioned")
	return nil
}

func init() {
	dbCmd.AddCommand(initCmd)
}
