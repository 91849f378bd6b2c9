package topology

import (
	"strings"

	"github.com/theory-cloud/ssrstack/pkg/naming"
)

// Artifacts are the build outputs the graph points at. Their contents are opaque here.
type Artifacts struct {
	ServerBundlePath string `json:"serverBundlePath" yaml:"serverBundlePath"`
	StaticAssetPath  string `json:"staticAssetPath" yaml:"staticAssetPath"`
}

// SyncInstruction uploads the static asset tree and then invalidates the edge cache.
//
// Re-running it with unchanged assets uploads nothing and issues a harmless invalidation.
type SyncInstruction struct {
	LogicalID           string   `json:"logicalId" yaml:"logicalId"`
	Source              string   `json:"source" yaml:"source"`
	DestinationResource string   `json:"destinationResource" yaml:"destinationResource"`
	InvalidateResource  string   `json:"invalidateResource" yaml:"invalidateResource"`
	InvalidationPaths   []string `json:"invalidationPaths" yaml:"invalidationPaths"`
}

// Output is an operator-facing value resolved after provisioning.
type Output struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Prefix      string    `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Value       Reference `json:"value" yaml:"value"`
}

// Expression renders the output as prefix + reference, e.g. https://${Distribution.domainName}.
func (o Output) Expression() string {
	return o.Prefix + o.Value.String()
}

// Outputs are the values an operator reads after provisioning.
type Outputs struct {
	EdgeURL    Output `json:"edgeUrl" yaml:"edgeUrl"`
	ComputeURL Output `json:"computeUrl" yaml:"computeUrl"`
}

// DeploymentGraph is the assembled resource graph for one stage.
//
// A graph is never mutated after Assemble returns.
type DeploymentGraph struct {
	Stage                      Stage            `json:"stage" yaml:"stage"`
	StackName                  string           `json:"stackName" yaml:"stackName"`
	Storage                    StorageSpec      `json:"storage" yaml:"storage"`
	Compute                    ComputeSpec      `json:"compute" yaml:"compute"`
	Distribution               DistributionSpec `json:"distribution" yaml:"distribution"`
	StaticAssetSyncInstruction SyncInstruction  `json:"staticAssetSyncInstruction" yaml:"staticAssetSyncInstruction"`
	Outputs                    Outputs          `json:"outputs" yaml:"outputs"`
	Plan                       []Step           `json:"plan" yaml:"plan"`
}

// Option customizes Assemble.
type Option func(*assembleOptions)

type assembleOptions struct {
	appName    string
	table      PathRuleTable
	tableSet   bool
	storageOps []StorageOption
}

// WithAppName sets the application segment used in the stack name and distribution label.
func WithAppName(name string) Option {
	return func(o *assembleOptions) {
		o.appName = strings.TrimSpace(name)
	}
}

// WithPathRules replaces DefaultPathRuleTable. The table is copied.
func WithPathRules(table PathRuleTable) Option {
	return func(o *assembleOptions) {
		o.table = append(PathRuleTable(nil), table...)
		o.tableSet = true
	}
}

// WithStorageOptions forwards options to BuildStorage.
func WithStorageOptions(opts ...StorageOption) Option {
	return func(o *assembleOptions) {
		o.storageOps = append(o.storageOps, opts...)
	}
}

// Assemble resolves rawStage and builds the full graph.
//
// Any error aborts assembly and no graph is returned.
func Assemble(rawStage string, artifacts Artifacts, opts ...Option) (*DeploymentGraph, error) {
	o := assembleOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if !o.tableSet {
		o.table = DefaultPathRuleTable()
	}

	stage, err := Resolve(rawStage)
	if err != nil {
		return nil, err
	}

	storage := BuildStorage(stage, o.storageOps...)
	compute := BuildCompute(stage, artifacts.ServerBundlePath)

	distribution, err := BuildDistribution(stage, ComputeOrigin(compute), StorageOrigin(storage), o.table,
		WithLabel(naming.DistributionComment(o.appName, string(stage))))
	if err != nil {
		return nil, err
	}

	g := &DeploymentGraph{
		Stage:        stage,
		StackName:    naming.StackName(o.appName, string(stage)),
		Storage:      storage,
		Compute:      compute,
		Distribution: distribution,
		StaticAssetSyncInstruction: SyncInstruction{
			LogicalID:           LogicalIDAssetSync,
			Source:              artifacts.StaticAssetPath,
			DestinationResource: storage.LogicalID,
			InvalidateResource:  distribution.LogicalID,
			InvalidationPaths:   []string{InvalidateAllPaths},
		},
		Outputs: Outputs{
			EdgeURL: Output{
				Name:        OutputEdgeURL,
				Description: "URL of the CloudFront distribution",
				Prefix:      "https://",
				Value:       distribution.DomainName,
			},
			ComputeURL: Output{
				Name:        OutputComputeURL,
				Description: "URL of the Lambda function",
				Value:       compute.PublicInvocationEndpoint.URL,
			},
		},
	}
	g.Plan = provisioningPlan(g)

	if _, err := OrderSteps(g.Plan); err != nil {
		return nil, err
	}
	return g, nil
}
