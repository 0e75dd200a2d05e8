// Copyright (c) 2025-2026 DriverMind Ltda.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the
// DriverMind web service. Commands are organized using the cobra
// library. The root command starts the web server itself while the
// "db" sub-command can be used for the database provisioning actions.
//
//	./dmweb [-c /path/of/main/config.yaml]           # start web server
//	./dmweb db init [-c /path/of/main/config.yaml]
//
// Secrets are read from the environment; a .env file next to the
// working directory is honored if present.
package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/drivermind/dmweb/pkg/adapter/config"
	"github.com/drivermind/dmweb/pkg/adapter/restful/gin/routes"
	"github.com/drivermind/dmweb/pkg/core/repo"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "dmweb",
	Short: "Work day earnings and expenses tracking for gig drivers",
	Long: `The DriverMind web service tracks the daily work cycle of
gig drivers: starting a work day with a vehicle and an odometer
reading, recording earnings and expenses against the open day, closing
the day with the final reading, and compiling the closed days into
monthly history reports with per-currency totals. Vehicles and their
maintenance records are managed alongside. Identity and payments stay
on their hosted providers; this service resolves bearer tokens, caches
profile preferences on the identity record, and reacts to payment
webhook events.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// loadDotEnv loads a .env file from the working directory, if one
// exists, so deployments can inject the secret environment variables
// without exporting them globally. Existing variables win over the
// file contents.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return
		}
		fmt.Fprintf(os.Stderr, "ignoring .env file: %v\n", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
