package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AlexandreFerreir/BD-Project/internal/gateway"
	"github.com/AlexandreFerreir/BD-Project/internal/modules/auth/application"
	"github.com/AlexandreFerreir/BD-Project/internal/shared/clock"
	"github.com/AlexandreFerreir/BD-Project/pkg/migration"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Music streaming catalog and subscription API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Migrations.AutoRun {
		if err := migration.AutoMigrate(cfg.Database.URL(), cfg.Migrations.Path, log); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	mods := newModules(db, cfg, clock.System{}, log)
	server := gateway.NewServer(cfg.Server.Port, mods.handler(cfg, log), cfg.Server.ShutdownGrace, log)
	return server.Start()
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	runner := func() (*migration.Runner, error) {
		cfg, log, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return migration.NewRunner(&migration.Config{
			MigrationsPath: cfg.Migrations.Path,
			DatabaseURL:    cfg.Database.URL(),
			Logger:         &log,
		}), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				r, err := runner()
				if err != nil {
					return err
				}
				return r.Up()
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				r, err := runner()
				if err != nil {
					return err
				}
				return r.Down()
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				r, err := runner()
				if err != nil {
					return err
				}
				version, dirty, err := r.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				r, err := runner()
				if err != nil {
					return err
				}
				return r.Force(version)
			},
		},
	)
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var req application.CreateAdminRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			mods := newModules(db, cfg, clock.System{}, log)
			id, err := mods.auth.Service().CreateAdmin(cmd.Context(), req)
			if err != nil {
				return err
			}
			cmd.Printf("administrator %s created\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	for _, f := range []string{"username", "password", "name"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
