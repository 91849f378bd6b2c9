package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theory-cloud/ssrstack/pkg/topology"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func newPlanCmd(o *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the deployment graph for a stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != formatYAML && format != formatJSON {
				return fmt.Errorf("unsupported format %q (want %s or %s)", format, formatYAML, formatJSON)
			}

			cfg, err := o.loadConfig(nil)
			if err != nil {
				return err
			}
			log, done, err := o.startRun(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer done()

			g, err := assemble(cfg, log)
			if err != nil {
				return err
			}
			order, err := g.Order()
			if err != nil {
				return err
			}
			log.Debug("provisioning order", map[string]any{"order": order})

			if format == formatJSON {
				return topology.EncodeJSON(o.stdout, g)
			}
			return topology.EncodeYAML(o.stdout, g)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatYAML, "output format (yaml or json)")
	return cmd
}
