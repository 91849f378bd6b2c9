package topology

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncodeYAML_FieldNames(t *testing.T) {
	t.Parallel()

	g, err := Assemble("demo", testArtifacts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, g))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	for _, key := range []string{"stage", "storage", "compute", "distribution", "staticAssetSyncInstruction", "outputs", "plan"} {
		require.Contains(t, doc, key)
	}

	compute, ok := doc["compute"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 2048, compute["memoryMB"])
	require.Equal(t, "production", compute["environment"].(map[string]any)["NODE_ENV"])

	outputs, ok := doc["outputs"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, outputs, "edgeUrl")
	require.Contains(t, outputs, "computeUrl")
}

func TestEncodeJSON_FieldNames(t *testing.T) {
	t.Parallel()

	g, err := Assemble("development", testArtifacts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, g))

	var doc struct {
		Storage struct {
			PublicAccess string `json:"publicAccess"`
		} `json:"storage"`
		Distribution struct {
			PathRules []map[string]any `json:"pathRules"`
		} `json:"distribution"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "disabled", doc.Storage.PublicAccess)
	require.Len(t, doc.Distribution.PathRules, 6)
	require.Equal(t, "*", doc.Distribution.PathRules[0]["pattern"])
}

func TestEncode_NilGraph(t *testing.T) {
	t.Parallel()

	require.Error(t, EncodeYAML(&bytes.Buffer{}, nil))
	require.Error(t, EncodeJSON(&bytes.Buffer{}, nil))
}
