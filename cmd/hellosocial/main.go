package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/hellosocial/internal/social/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hellosocial",
		Short:         "Sign in with a social network, pick a favorite color, share it",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the web server (default)",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				version, err := app.Migrate(app.LoadConfig())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "database at migration version %d\n", version)
				return nil
			},
		},
		newAdminCmd(),
	)

	return root
}

func runServe(_ *cobra.Command, _ []string) error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage the administrator flag on identities",
	}

	setter := func(grant bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if err := app.SetAdministrator(cmd.Context(), app.LoadConfig(), args[0], grant); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			verb := "revoked from"
			if grant {
				verb = "granted to"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrator %s %s\n", verb, args[0])
			return nil
		}
	}

	admin.AddCommand(
		&cobra.Command{
			Use:     "grant <identity-id>",
			Short:   "Make an identity an administrator",
			Example: "  hellosocial admin grant 12345@twitter",
			Args:    cobra.ExactArgs(1),
			RunE:    setter(true),
		},
		&cobra.Command{
			Use:   "revoke <identity-id>",
			Short: "Remove the administrator flag from an identity",
			Args:  cobra.ExactArgs(1),
			RunE:  setter(false),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List known identities",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				idents, err := app.ListIdentities(cmd.Context(), app.LoadConfig())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tFAVORITE\tADMIN")
				for _, i := range idents {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", i.ID, i.Name, i.FavoriteColor, i.IsAdministrator)
				}
				return tw.Flush()
			},
		},
	)
	return admin
}
