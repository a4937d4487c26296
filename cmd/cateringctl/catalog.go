package main

import (
	"fmt"
	"text/tabwriter"

	"catering-booking-api/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the zone and package tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Check a catalog file and report what it holds",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.catalogPath
			if len(args) == 1 {
				path = args[0]
			}
			cat, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d zones, %d packages\n", len(cat.Zones()), len(cat.Packages()))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "zones",
		Short: "List service zones with their fees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDELIVERY\tTRAVEL\tMIN GUESTS")
			for _, z := range cat.Zones() {
				travel := "-"
				switch {
				case z.RequiresQuotation:
					travel = "quotation"
				case z.TravelSurcharge != nil:
					travel = z.TravelSurcharge.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", z.ID, z.DisplayName, z.DeliveryFee, travel, z.MinimumGuestCount)
			}
			return w.Flush()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "packages",
		Short: "List packages with their per-guest tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTYLE\t60+\t50+\t40+\t30+")
			for _, p := range cat.Packages() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.DisplayName, p.Type, p.Style,
					p.Tiers[60], p.Tiers[50], p.Tiers[40], p.Tiers[30])
			}
			return w.Flush()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the loaded catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.loadCatalog()
			if err != nil {
				return err
			}
			out, err := catalog.Marshal(cat)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return cmd
}
