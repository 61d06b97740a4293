package cli

import (
	"github.com/spf13/cobra"
)

type RunOptions struct {
	URL        string
	Filter     string
	DryRun     bool
	NoReadBack bool
}

func NewRunCmd(global *GlobalOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract, transform and load, then read the table back",
		RunE: func(c *cobra.Command, args []string) error {
			return runPipeline(c, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.URL, "url", "u", "", "Source API URL (env API_URL)")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Case-sensitive name substring (env NAME_FILTER)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Transform and print without writing the table")
	cmd.Flags().BoolVar(&opts.NoReadBack, "no-readback", false, "Skip reading the table back after loading")

	return cmd
}

func NewShowCmd(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the loaded table",
		RunE: func(c *cobra.Command, args []string) error {
			return runShow(c, global)
		},
	}
}

func NewServeCmd(global *GlobalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the loaded table as JSON over HTTP",
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c, global, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (env LISTEN_ADDR)")
	return cmd
}
