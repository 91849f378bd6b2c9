// Package config gathers the inputs of a topology run from a YAML file, the
// environment and (in cmd/ssrstack) command-line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/theory-cloud/ssrstack/pkg/naming"
	"github.com/theory-cloud/ssrstack/pkg/observability"
	"github.com/theory-cloud/ssrstack/pkg/topology"
)

// DefaultStage is applied when no source names a stage.
const DefaultStage = string(topology.StageDevelopment)

const (
	DefaultServerArtifactPath = "app/.output/server"
	DefaultStaticAssetPath    = "app/.output/public"
)

// Environment variables read by WithEnv. The first non-empty entry of each list wins.
var (
	envStage          = []string{"SSRSTACK_STAGE", "STAGE"}
	envAppName        = []string{"SSRSTACK_APP_NAME"}
	envServerArtifact = []string{"SSRSTACK_SERVER_ARTIFACT"}
	envStaticAssets   = []string{"SSRSTACK_STATIC_ASSETS"}
	envRetainStorage  = []string{"SSRSTACK_RETAIN_STORAGE"}
	envAccount        = []string{"CDK_DEFAULT_ACCOUNT"}
	envRegion         = []string{"CDK_DEFAULT_REGION"}
	envLogLevel       = []string{"SSRSTACK_LOG_LEVEL"}
	envLogFormat      = []string{"SSRSTACK_LOG_FORMAT"}
)

// Config is everything a plan or synth run needs besides the CLI flags.
type Config struct {
	Stage              string                     `yaml:"stage"`
	AppName            string                     `yaml:"appName"`
	ServerArtifactPath string                     `yaml:"serverArtifactPath"`
	StaticAssetPath    string                     `yaml:"staticAssetPath"`
	PathRules          topology.PathRuleTable     `yaml:"pathRules"`
	RetainStorage      bool                       `yaml:"retainStorage"`
	Account            string                     `yaml:"account"`
	Region             string                     `yaml:"region"`
	Log                observability.LoggerConfig `yaml:"log"`
}

// Default returns the configuration used when no file is given. Stage is left
// empty so later sources can tell "unset" from "development".
func Default() Config {
	return Config{
		AppName:            naming.DefaultAppName,
		ServerArtifactPath: DefaultServerArtifactPath,
		StaticAssetPath:    DefaultStaticAssetPath,
		Log: observability.LoggerConfig{
			Format: "console",
			Level:  "info",
		},
	}
}

// Load reads path on top of Default. An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	//nolint:gosec // The config path is supplied by the operator.
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cfg, err = Decode(f, cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays a YAML document onto base. Unknown keys are rejected.
func Decode(r io.Reader, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// WithEnv overlays environment values read through lookup (os.LookupEnv in production).
func (c Config) WithEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	first := func(keys []string) string {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	out := c
	setIf := func(dst *string, keys []string) {
		if v := first(keys); v != "" {
			*dst = v
		}
	}
	for _, k := range envStage {
		if v, ok := lookup(k); ok && v != "" {
			out.Stage = v
			break
		}
	}
	setIf(&out.AppName, envAppName)
	setIf(&out.ServerArtifactPath, envServerArtifact)
	setIf(&out.StaticAssetPath, envStaticAssets)
	setIf(&out.Account, envAccount)
	setIf(&out.Region, envRegion)
	setIf(&out.Log.Level, envLogLevel)
	setIf(&out.Log.Format, envLogFormat)

	if raw := first(envRetainStorage); raw != "" {
		retain, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", envRetainStorage[0], err)
		}
		out.RetainStorage = retain
	}
	return out, nil
}

// WithDefaultStage fills an unset stage with DefaultStage. A stage that is set,
// even to blanks, is kept for topology.Resolve to judge.
func (c Config) WithDefaultStage() Config {
	if c.Stage == "" {
		c.Stage = DefaultStage
	}
	return c
}

func (c Config) Artifacts() topology.Artifacts {
	return topology.Artifacts{
		ServerBundlePath: c.ServerArtifactPath,
		StaticAssetPath:  c.StaticAssetPath,
	}
}

// AssembleOptions translates the config into topology options.
//
// An empty path rule list keeps topology.DefaultPathRuleTable.
func (c Config) AssembleOptions() []topology.Option {
	opts := []topology.Option{topology.WithAppName(c.AppName)}
	if len(c.PathRules) > 0 {
		opts = append(opts, topology.WithPathRules(c.PathRules))
	}
	if c.RetainStorage {
		opts = append(opts, topology.WithStorageOptions(topology.WithRetainOnTeardown()))
	}
	return opts
}
