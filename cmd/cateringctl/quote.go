package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"catering-booking-api/booking"
	"catering-booking-api/config"
	"catering-booking-api/models"
	"catering-booking-api/pricing"
	"catering-booking-api/repository"

	"github.com/spf13/cobra"
)

type quoteOptions struct {
	packageID string
	zoneID    string
	guests    int
	kind      string
	addOns    []string
}

func newQuoteCommand(opts *rootOptions) *cobra.Command {
	q := &quoteOptions{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a package for a zone and guest count",
		Long: `Price a package for a zone and guest count.

Add-ons are given as id=quantity and priced from the database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, opts, q)
		},
	}
	cmd.Flags().StringVar(&q.packageID, "package", "", "package id")
	cmd.Flags().StringVar(&q.zoneID, "zone", "", "zone id")
	cmd.Flags().IntVar(&q.guests, "guests", 0, "guest count")
	cmd.Flags().StringVar(&q.kind, "kind", string(models.KindCatering), "catering or delivery")
	cmd.Flags().StringArrayVar(&q.addOns, "addon", nil, "add-on as id=quantity (repeatable)")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("zone")
	_ = cmd.MarkFlagRequired("guests")
	return cmd
}

func parseAddOnLines(values []string) ([]pricing.AddOnLine, error) {
	lines := make([]pricing.AddOnLine, 0, len(values))
	for _, v := range values {
		idPart, qtyPart, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("add-on %q must be id=quantity", v)
		}
		id, err := strconv.ParseUint(idPart, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("add-on %q: bad id", v)
		}
		qty, err := strconv.Atoi(qtyPart)
		if err != nil {
			return nil, fmt.Errorf("add-on %q: bad quantity", v)
		}
		lines = append(lines, pricing.AddOnLine{AddOnID: uint(id), Quantity: qty})
	}
	return lines, nil
}

func runQuote(cmd *cobra.Command, opts *rootOptions, q *quoteOptions) error {
	kind := models.OrderKind(q.kind)
	if kind != models.KindCatering && kind != models.KindDelivery {
		return fmt.Errorf("kind must be catering or delivery")
	}
	lines, err := parseAddOnLines(q.addOns)
	if err != nil {
		return err
	}
	cat, err := opts.loadCatalog()
	if err != nil {
		return err
	}
	zone, ok := cat.Zone(q.zoneID)
	if !ok {
		return fmt.Errorf("%w: %q", pricing.ErrZoneNotFound, q.zoneID)
	}
	pkg, ok := cat.Package(q.packageID)
	if !ok {
		return fmt.Errorf("%w: %q", pricing.ErrPackageNotFound, q.packageID)
	}

	prices := map[uint]pricing.AddOnPrice{}
	if len(lines) > 0 {
		db, err := config.OpenDB(opts.dbPath)
		if err != nil {
			return err
		}
		ids := make([]uint, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.AddOnID)
		}
		found, err := repository.NewAddOns(db).ByIDs(context.Background(), ids)
		if err != nil {
			return err
		}
		for id, a := range found {
			prices[id] = pricing.AddOnPrice{Name: a.Name, UnitPrice: a.UnitPrice}
		}
	}

	b, err := pricing.Quote(pkg, zone, booking.ChargeKindFor(kind), q.guests, lines, prices)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%d guests x %s\t%s\n", pkg.DisplayName, b.GuestCount, b.PricePerGuest, b.PackageSubtotal)
	for _, a := range b.AddOns {
		fmt.Fprintf(w, "%s\t%d x %s\t%s\n", a.Name, a.Quantity, a.UnitPrice, a.LineTotal)
	}
	label := "Travel surcharge"
	if b.Surcharge.Kind == pricing.ChargeDelivery {
		label = "Delivery fee"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", label, zone.DisplayName, b.Surcharge.Amount)
	fmt.Fprintf(w, "Total\t\t%s\n", b.Total)
	if len(b.MissingAddOns) > 0 {
		fmt.Fprintf(w, "skipped unavailable add-ons\t%v\t\n", b.MissingAddOns)
	}
	return w.Flush()
}
