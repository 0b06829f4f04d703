package commands

import (
	"github.com/spf13/cobra"

	"urllistsync/internal/report"
)

// sync: load the source and push it into the named list.
func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync -s SOURCE -l LIST",
		Short: "Push a domain source into a URL list",
		Long: `Load domains from a CSV/text file or URL, normalize and dedupe them, and
write them to an exact-match URL list in request-sized chunks.

By default the list content is replaced. With --append the domains are
added to what the list already holds. A missing list is an error unless
--create is given. Changes stay pending until deployed (--deploy).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateSync(); err != nil {
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
			s, err := w.Sync(cmd.Context())
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), format, s)
		},
	}
	addSourceFlags(cmd)
	addAPIFlags(cmd)
	cmd.Flags().BoolVarP(&flagCfg.Append, "append", "a", false, "append instead of replacing the list content")
	cmd.Flags().BoolVarP(&flagCfg.Create, "create", "c", false, "create the list if it does not exist")
	cmd.Flags().BoolVarP(&flagCfg.Deploy, "deploy", "d", false, "deploy pending changes after the transfer")
	cmd.Flags().StringVar(&flagCfg.MetricsFile, "metrics-file", "", "write run metrics in Prometheus textfile format")
	return cmd
}
