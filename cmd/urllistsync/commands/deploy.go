package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deploy: apply pending URL list changes.
func deployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy pending URL list changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateAPI(); err != nil {
				return err
			}
			w, err := wire()
			if err != nil {
				return err
			}
			if err := w.Deploy(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deployed")
			return nil
		},
	}
	addAPIFlags(cmd)
	return cmd
}
