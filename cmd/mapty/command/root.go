// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the mapty
// server. Commands are organized using the cobra library.
// The root command starts the web server itself, the "db" sub-command
// initializes the database tables, and the "history" sub-command
// inspects or clears the recorded workouts of a browser client.
//
//	./mapty [-c /path/of/config.yaml] [--listen :8080]  # start server
//	./mapty db init [--drop] [-c /path/of/config.yaml]
//	./mapty history show <client-id> [-c /path/of/config.yaml]
//	./mapty history clear <client-id> [-c /path/of/config.yaml]
//
// Environment variables may be kept in a .env file in the working
// directory. They never override the variables which are already set.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/mapty/pkg/adapter/config"
	"github.com/momeni/mapty/pkg/adapter/restful/gin"
	"github.com/momeni/mapty/pkg/adapter/restful/gin/routes"
	"github.com/momeni/mapty/pkg/core/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	listenAddr string
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "mapty",
	Short: "A map based workouts logger",
	Long: `A map based workouts logger which shows a map centered on the
user position, lets users click on the map in order to record running
or cycling workouts at the clicked locations, lists the recorded
workouts, and moves the map to a workout when it is clicked in the list.
Workouts of each browser are kept in a PostgreSQL database, so they
are restored when the page is opened again.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

// loadConfig loads the environment variables and the configuration
// file and configures the default logger accordingly.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, fmt.Errorf("config.LoadEnv(): %w", err)
	}
	fixConfigPath()
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.Log.Setup(os.Stderr); err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	return c, nil
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		cmd.Context(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c, reg); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		log.Info(ctx, "web server is started", slog.String("addr", listenAddr))
		errs <- srv.ListenAndServe()
	}()
	select {
	case err = <-errs:
		return fmt.Errorf("running web server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down the web server")
	sdCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), shutdownTimeout,
	)
	defer cancel()
	if err = srv.Shutdown(sdCtx); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	if err = <-errs; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running web server: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code is
// zero for success and one for failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.Flags().StringVar(
		&listenAddr, "listen", ":8080", "address of the web server",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// It runs after the .env file is loaded, so CONFIG_FILE may be kept
// in that file too.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
