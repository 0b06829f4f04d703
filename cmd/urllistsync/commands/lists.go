package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// lists: print the tenant's URL list names, one per line.
func listsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print the URL list names on the tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateAPI(); err != nil {
				return err
			}
			w, err := wire()
			if err != nil {
				return err
			}
			names, err := w.ListNames(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "(none)")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
	addAPIFlags(cmd)
	return cmd
}
