package topology

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildCompute_DevelopmentTier(t *testing.T) {
	t.Parallel()

	c := BuildCompute(StageDevelopment, "app/.output/server")
	require.Equal(t, 1024, c.MemoryMB)
	require.Equal(t, 30, c.TimeoutSeconds)
	require.Equal(t, "development", c.Environment[EnvExecutionMode])
	require.Equal(t, "development", c.Environment[EnvStage])
}

func TestBuildCompute_NonDevelopmentTier(t *testing.T) {
	t.Parallel()

	for _, s := range []Stage{StageStaging, StageDemo, StageProduction} {
		c := BuildCompute(s, "app/.output/server")
		require.Equal(t, 2048, c.MemoryMB, s)
		require.Equal(t, 60, c.TimeoutSeconds, s)
		require.Equal(t, "production", c.Environment[EnvExecutionMode], s)
		require.Equal(t, string(s), c.Environment[EnvStage], s)
	}
}

func TestBuildCompute_StagingConcreteCase(t *testing.T) {
	t.Parallel()

	c := BuildCompute(StageStaging, "bundle")
	require.Equal(t, Sizing{MemoryMB: 2048, TimeoutSeconds: 60, ExecutionMode: "production"}, Sizing{
		MemoryMB:       c.MemoryMB,
		TimeoutSeconds: c.TimeoutSeconds,
		ExecutionMode:  c.Environment[EnvExecutionMode],
	})
}

func TestBuildCompute_EndpointAndArtifact(t *testing.T) {
	t.Parallel()

	c := BuildCompute(StageDemo, "does/not/exist")
	require.Equal(t, "does/not/exist", c.ArtifactPath)
	require.Equal(t, RuntimeNodeJS20, c.RuntimeIdentifier)
	require.Equal(t, DefaultHandler, c.HandlerEntryPoint)
	require.Equal(t, AuthTypeNone, c.PublicInvocationEndpoint.AuthType)
	require.Equal(t, "${ServerFunction.url}", c.PublicInvocationEndpoint.URL.String())
	require.Len(t, c.Environment, 2)
}

func TestSizingFor_Tiers(t *testing.T) {
	t.Parallel()

	require.Equal(t, TierDevelopment, TierFor(StageDevelopment))
	require.Equal(t, TierNonDevelopment, TierFor(StageProduction))
	require.Equal(t, sizingTable[TierNonDevelopment], SizingFor(StageDemo))
}
