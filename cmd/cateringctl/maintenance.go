package main

import (
	"fmt"
	"strings"

	"catering-booking-api/config"
	"catering-booking-api/migrate"
	"catering-booking-api/models"
	"catering-booking-api/repository"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newBackfillCommand(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "backfill-categories",
		Short: "Tag uncategorised dishes from keywords in their names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := config.OpenDB(opts.dbPath)
			if err != nil {
				return err
			}
			report, err := migrate.BackfillDishCategories(cmd.Context(), repository.NewDishes(db), log, dryRun)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range report.Tagged {
				fmt.Fprintf(out, "%d\t%s\t-> %s\n", t.DishID, t.Name, t.Category)
			}
			for _, d := range report.Unmatched {
				fmt.Fprintf(out, "%d\t%s\t(unmatched)\n", d.ID, d.Name)
			}
			verb := "tagged"
			if dryRun {
				verb = "would tag"
			}
			fmt.Fprintf(out, "%s %d dishes, %d need manual tagging\n", verb, len(report.Tagged), len(report.Unmatched))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without writing")
	return cmd
}

type adminOptions struct {
	email    string
	name     string
	password string
	phone    string
}

func newUserCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	a := &adminOptions{}
	create := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			db, err := config.OpenDB(opts.dbPath)
			if err != nil {
				return err
			}
			user := models.User{
				Name:         strings.TrimSpace(a.name),
				Email:        strings.ToLower(strings.TrimSpace(a.email)),
				PasswordHash: string(hash),
				Role:         models.RoleAdmin,
				Phone:        a.phone,
			}
			if err := repository.NewUsers(db).Create(cmd.Context(), &user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %d <%s>\n", user.ID, user.Email)
			return nil
		},
	}
	create.Flags().StringVar(&a.email, "email", "", "login email")
	create.Flags().StringVar(&a.name, "name", "", "display name")
	create.Flags().StringVar(&a.password, "password", "", "password (8+ characters)")
	create.Flags().StringVar(&a.phone, "phone", "", "contact number")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("password")
	cmd.AddCommand(create)

	return cmd
}
