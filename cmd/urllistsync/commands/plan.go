package commands

import (
	"github.com/spf13/cobra"

	"urllistsync/internal/report"
)

// plan: dry run of load and chunking.
func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan -s SOURCE [-l LIST]",
		Short: "Show how a source would be chunked, without calling the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateSource(); err != nil {
				return err
			}
			format, err := report.ParseFormat(cfg.Output)
			if err != nil {
				return err
			}
			w, err := wire()
			if err != nil {
				return err
			}
			p, err := w.PlanSource(cmd.Context())
			if err != nil {
				return err
			}
			v := report.NewPlanView(report.Params{
				Source:   p.Source,
				RawCount: p.Raw,
				Unique:   p.Set.Len(),
				Digest:   p.Digest,
			}, cfg.List, p.Payload, p.Chunks)
			return report.WritePlan(cmd.OutOrStdout(), format, v)
		},
	}
	addSourceFlags(cmd)
	return cmd
}
