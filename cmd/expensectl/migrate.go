package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/wealthpath/expenses/internal/database"
)

const connectTimeout = 10 * time.Second

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), opts, func(db *sqlx.DB) error {
				if err := database.MigrateUp(db); err != nil {
					return err
				}
				return printVersion(cmd, db)
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be > 0")
			}
			return withDB(cmd.Context(), opts, func(db *sqlx.DB) error {
				if err := database.MigrateDown(db, steps); err != nil {
					return err
				}
				return printVersion(cmd, db)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), opts, func(db *sqlx.DB) error {
				return printVersion(cmd, db)
			})
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func withDB(ctx context.Context, opts *options, run func(*sqlx.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := database.Connect(connectCtx, opts.databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return run(db)
}

func printVersion(cmd *cobra.Command, db *sqlx.DB) error {
	v, dirty, err := database.Version(db)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty)\n", v)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", v)
	return nil
}
