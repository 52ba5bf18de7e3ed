package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthpath/expenses/internal/config"
	"github.com/wealthpath/expenses/internal/logger"
)

type options struct {
	databaseURL string
	cfg         *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "expensectl",
		Short:         "expensectl manages the expenses database and prints reports",
		Long:          "expensectl applies schema migrations and prints category, trend and budget reports for a month.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.cfg = config.Load()
			logger.Setup(opts.cfg.Env, cmd.ErrOrStderr())
			if opts.databaseURL == "" {
				opts.databaseURL = opts.cfg.DatabaseURL
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")

	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newReportCmd(opts))
	return root
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
