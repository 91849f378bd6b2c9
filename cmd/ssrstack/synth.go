package main

import (
	"github.com/spf13/cobra"

	"github.com/theory-cloud/ssrstack/pkg/synth"
)

func newSynthCmd(o *rootOptions) *cobra.Command {
	var outdir string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the stage's CDK app (cdk.json entry point)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := synth.NewApp(outdir)

			var contextStage *string
			if s, ok := synth.ContextStage(app); ok {
				contextStage = &s
			}
			cfg, err := o.loadConfig(contextStage)
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

			dir, err := synth.Synth(app, g, synth.StackOptions{
				Account: cfg.Account,
				Region:  cfg.Region,
				Logger:  log,
			})
			if err != nil {
				return err
			}
			log.Info("cloud assembly written", map[string]any{"dir": dir})
			return nil
		},
	}
	cmd.Flags().StringVar(&outdir, "outdir", "", "cloud assembly output directory (defaults to CDK_OUTDIR or cdk.out)")
	return cmd
}
