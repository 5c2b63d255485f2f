package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var flags serverOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin account if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, logCloser, err := startApp(ctx, flags.options(cmd))
			if err != nil {
				return err
			}
			defer func() { _ = logCloser.Close() }()
			defer func() { _ = app.Close(context.Background()) }()

			created, err := app.SeedAdmin(ctx)
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			if created {
				out.PrintMessage(fmt.Sprintf("admin %q created", app.Config.Admin.Username))
			} else {
				out.PrintMessage("an admin already exists; nothing to do")
			}
			return nil
		},
	}
	flags.register(cmd.Flags())

	return cmd
}
