package main

import (
	"catering-booking-api/catalog"
	"catering-booking-api/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	catalogPath string
	dbPath      string
	logLevel    string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cateringctl",
		Short:         "Catering booking administration",
		Long:          "Inspect the zone and package catalog, price bookings offline and run data maintenance.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "catalog YAML file (built-in tables when empty)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "catering.db", "SQLite database file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(newCatalogCommand(opts))
	cmd.AddCommand(newQuoteCommand(opts))
	cmd.AddCommand(newBackfillCommand(opts))
	cmd.AddCommand(newUserCommand(opts))

	return cmd
}

func (o *rootOptions) loadCatalog() (*catalog.Catalog, error) {
	return catalog.LoadFile(o.catalogPath)
}

func (o *rootOptions) logger() (*zap.SugaredLogger, error) {
	return config.NewLogger("development", o.logLevel)
}
