package topology

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolve_KnownStages(t *testing.T) {
	t.Parallel()

	for _, s := range Stages() {
		got, err := Resolve(string(s))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestResolve_IsDevelopmentOnlyForDevelopment(t *testing.T) {
	t.Parallel()

	dev, err := Resolve("development")
	require.NoError(t, err)
	require.True(t, dev.IsDevelopment())

	for _, raw := range []string{"staging", "demo", "production"} {
		s, err := Resolve(raw)
		require.NoError(t, err)
		require.False(t, s.IsDevelopment(), raw)
	}
}

func TestResolve_RejectsEmptyAndAliases(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "dev", "prod", "Staging", " demo", "production\n"} {
		_, err := Resolve(raw)
		var stageErr *InvalidStageError
		require.True(t, errors.As(err, &stageErr), "expected InvalidStageError for %q", raw)
		require.Equal(t, raw, stageErr.Value)
	}
}

func TestInvalidStageError_NamesValueAndAllowedSet(t *testing.T) {
	t.Parallel()

	_, err := Resolve("qa")
	require.EqualError(t, err, `topology.invalid_stage: invalid stage "qa" (allowed: development, staging, demo, production)`)
}

func TestDisplayLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Development", StageDevelopment.DisplayLabel())
	require.Equal(t, "Production", StageProduction.DisplayLabel())
}

func TestProperty_ResolveRejectsUnknownStages(t *testing.T) {
	known := map[string]bool{}
	for _, s := range Stages() {
		known[string(s)] = true
	}

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		if known[raw] {
			t.Skip("drew a recognized stage")
		}

		_, err := Resolve(raw)
		var stageErr *InvalidStageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("Resolve(%q): expected InvalidStageError, got %v", raw, err)
		}
		if stageErr.Value != raw {
			t.Fatalf("error names %q, want %q", stageErr.Value, raw)
		}
		if len(stageErr.Allowed) != 4 {
			t.Fatalf("allowed set has %d entries", len(stageErr.Allowed))
		}
	})
}
