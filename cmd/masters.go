package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	masterlistrender "github.com/bnema/confbot/internal/adapters/render/masterlist"
	"github.com/bnema/confbot/internal/domain"
)

func newMastersCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "masters",
		Short: "Inspect and edit the master identity list",
	}

	cmd.AddCommand(newMastersListCmd(app), newMastersAddCmd(app))

	return cmd
}

func newMastersListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the identities authorized to run privileged commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := app.masters.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("load master list: %w", err)
			}

			rendered := app.renderMasters(ids, masterlistrender.RenderOptions{Path: app.config.MasterPath})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newMastersAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <address>",
		Short: "Grant a 64-hex-char identity master access",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.Identity(args[0])
			if !id.Valid() {
				return fmt.Errorf("address must be %d hex characters", domain.AddressHexLength)
			}

			if err := app.masters.Add(cmd.Context(), id); err != nil {
				return fmt.Errorf("append master identity: %w", err)
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", id.Normalized())
			return err
		},
	}
}
