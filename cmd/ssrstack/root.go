package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/theory-cloud/ssrstack/pkg/config"
	"github.com/theory-cloud/ssrstack/pkg/logger"
	"github.com/theory-cloud/ssrstack/pkg/observability"
	obszap "github.com/theory-cloud/ssrstack/pkg/observability/zap"
	"github.com/theory-cloud/ssrstack/pkg/topology"
)

type rootOptions struct {
	configPath string
	stage      string
	appName    string
	logLevel   string

	// stageSet records that --stage was given, even as an empty string.
	stageSet bool

	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

func newRootCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ssrstack",
		Short:         "Resolve a stage into the storage, compute and edge graph of an SSR app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&o.stage, "stage", "", "deployment stage (development, staging, demo, production)")
	flags.StringVar(&o.appName, "app-name", "", "application segment of the stack name")
	flags.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		o.stageSet = cmd.Flags().Changed("stage")
	}

	cmd.AddCommand(
		newPlanCmd(o),
		newSynthCmd(o),
	)
	return cmd
}

// loadConfig layers file, environment, CDK context and flags, lowest precedence
// first. contextStage is nil when the CDK context carries no stage. Only a
// stage no source sets falls back to the default.
func (o *rootOptions) loadConfig(contextStage *string) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err = cfg.WithEnv(o.lookupEnv)
	if err != nil {
		return config.Config{}, err
	}

	if contextStage != nil {
		cfg.Stage = *contextStage
	}
	if o.stageSet {
		cfg.Stage = o.stage
	}
	if s := strings.TrimSpace(o.appName); s != "" {
		cfg.AppName = s
	}
	if s := strings.TrimSpace(o.logLevel); s != "" {
		cfg.Log.Level = s
	}
	return cfg.WithDefaultStage(), nil
}

// startRun installs a run-scoped logger as the global logger. The returned
// func flushes and closes it.
func (o *rootOptions) startRun(ctx context.Context, cfg config.Config) (observability.StructuredLogger, func(), error) {
	notifications := obszap.DefaultEnvironmentErrorNotifications()
	notifications.Lookup = o.lookupEnv
	base, err := obszap.NewZapLogger(cfg.Log,
		obszap.WithOutput(o.stderr),
		obszap.WithEnvironmentErrorNotifications(ctx, notifications),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}

	log := base.WithRunID(ulid.Make().String())
	logger.SetLogger(log)

	return log, func() {
		_ = log.Flush(ctx)
		_ = log.Close()
		logger.SetLogger(nil)
	}, nil
}

func assemble(cfg config.Config, log observability.StructuredLogger) (*topology.DeploymentGraph, error) {
	g, err := topology.Assemble(cfg.Stage, cfg.Artifacts(), cfg.AssembleOptions()...)
	if err != nil {
		log.Error("topology rejected", map[string]any{
			"stage": cfg.Stage,
			"error": err.Error(),
		})
		return nil, err
	}
	log.WithStage(string(g.Stage)).Info("graph assembled", map[string]any{
		"stack":      g.StackName,
		"path_rules": len(g.Distribution.StaticRules()),
	})
	return g, nil
}
