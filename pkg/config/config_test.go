package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theory-cloud/ssrstack/pkg/topology"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Empty(t, cfg.Stage)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ssrstack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stage: demo
appName: Shop
pathRules:
  - pattern: /static/*
  - pattern: /robots.txt
    cache: optimized
retainStorage: true
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "demo", cfg.Stage)
	require.Equal(t, "Shop", cfg.AppName)
	require.Equal(t, []string{"/static/*", "/robots.txt"}, cfg.PathRules.Patterns())
	require.True(t, cfg.RetainStorage)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, DefaultServerArtifactPath, cfg.ServerArtifactPath)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stgae: demo\n"), 0o600))
	_, err = Load(path)
	require.ErrorContains(t, err, "stgae")
}

func TestDecode_EmptyDocumentKeepsBase(t *testing.T) {
	t.Parallel()

	cfg, err := Decode(strings.NewReader(""), Default())
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestWithEnv_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := Default().WithEnv(envMap(map[string]string{
		"STAGE":                   "staging",
		"SSRSTACK_APP_NAME":       "Shop",
		"SSRSTACK_RETAIN_STORAGE": "true",
		"CDK_DEFAULT_ACCOUNT":     "123456789012",
		"CDK_DEFAULT_REGION":      "us-east-1",
		"SSRSTACK_LOG_FORMAT":     "json",
	}))
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Stage)
	require.Equal(t, "Shop", cfg.AppName)
	require.True(t, cfg.RetainStorage)
	require.Equal(t, "123456789012", cfg.Account)
	require.Equal(t, "us-east-1", cfg.Region)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestWithEnv_PrefixedStageWins(t *testing.T) {
	t.Parallel()

	cfg, err := Default().WithEnv(envMap(map[string]string{
		"SSRSTACK_STAGE": "production",
		"STAGE":          "demo",
	}))
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Stage)
}

func TestWithEnv_BadBool(t *testing.T) {
	t.Parallel()

	_, err := Default().WithEnv(envMap(map[string]string{"SSRSTACK_RETAIN_STORAGE": "maybe"}))
	require.ErrorContains(t, err, "SSRSTACK_RETAIN_STORAGE")
}

func TestWithDefaultStage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "development", Default().WithDefaultStage().Stage)

	cfg := Default()
	cfg.Stage = "demo"
	require.Equal(t, "demo", cfg.WithDefaultStage().Stage)

	cfg.Stage = " "
	require.Equal(t, " ", cfg.WithDefaultStage().Stage)
}

func TestBlankStageIsKeptAndRejected(t *testing.T) {
	t.Parallel()

	cfg, err := Decode(strings.NewReader("stage: \" \"\n"), Default())
	require.NoError(t, err)
	cfg = cfg.WithDefaultStage()
	require.Equal(t, " ", cfg.Stage)

	_, err = topology.Assemble(cfg.Stage, cfg.Artifacts(), cfg.AssembleOptions()...)
	var stageErr *topology.InvalidStageError
	require.ErrorAs(t, err, &stageErr)

	cfg, err = Default().WithEnv(envMap(map[string]string{"SSRSTACK_STAGE": " Staging "}))
	require.NoError(t, err)
	require.Equal(t, " Staging ", cfg.Stage)

	cfg, err = Default().WithEnv(envMap(map[string]string{"SSRSTACK_STAGE": "", "STAGE": "demo"}))
	require.NoError(t, err)
	require.Equal(t, "demo", cfg.Stage)
}

func TestAssembleOptions_DriveTopology(t *testing.T) {
	t.Parallel()

	cfg := Default().WithDefaultStage()
	g, err := topology.Assemble(cfg.Stage, cfg.Artifacts(), cfg.AssembleOptions()...)
	require.NoError(t, err)
	require.Len(t, g.Distribution.PathRules, 6)
	require.Equal(t, topology.RemovalPolicyDestroy, g.Storage.RemovalPolicy)
	require.Equal(t, DefaultStaticAssetPath, g.StaticAssetSyncInstruction.Source)

	cfg.PathRules = topology.PatternTable("/static/*")
	cfg.RetainStorage = true
	g, err = topology.Assemble(cfg.Stage, cfg.Artifacts(), cfg.AssembleOptions()...)
	require.NoError(t, err)
	require.Len(t, g.Distribution.PathRules, 2)
	require.Equal(t, topology.RemovalPolicyRetain, g.Storage.RemovalPolicy)
}
