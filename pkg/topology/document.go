package topology

import (
	"encoding/json"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeYAML writes the graph as a declarative YAML document.
func EncodeYAML(w io.Writer, g *DeploymentGraph) error {
	if g == nil {
		return errors.New("topology: nil graph")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return err
	}
	return enc.Close()
}

// EncodeJSON writes the graph as indented JSON.
func EncodeJSON(w io.Writer, g *DeploymentGraph) error {
	if g == nil {
		return errors.New("topology: nil graph")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}
