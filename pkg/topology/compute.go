package topology

const (
	RuntimeNodeJS20 = "nodejs20.x"
	DefaultHandler  = "index.handler"

	// EnvExecutionMode and EnvStage are always present in ComputeSpec.Environment.
	EnvExecutionMode = "NODE_ENV"
	EnvStage         = "STAGE"

	SymlinkFollowAlways = "always"
)

// Tier selects a sizing row.
type Tier string

const (
	TierDevelopment    Tier = "development"
	TierNonDevelopment Tier = "non-development"
)

// Sizing is one row of the compute sizing table.
type Sizing struct {
	MemoryMB       int    `json:"memoryMB" yaml:"memoryMB"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	ExecutionMode  string `json:"executionMode" yaml:"executionMode"`
}

var sizingTable = map[Tier]Sizing{
	TierDevelopment:    {MemoryMB: 1024, TimeoutSeconds: 30, ExecutionMode: "development"},
	TierNonDevelopment: {MemoryMB: 2048, TimeoutSeconds: 60, ExecutionMode: "production"},
}

// TierFor maps a stage onto its sizing tier.
func TierFor(stage Stage) Tier {
	if stage.IsDevelopment() {
		return TierDevelopment
	}
	return TierNonDevelopment
}

// SizingFor returns the sizing row for a stage.
func SizingFor(stage Stage) Sizing {
	return sizingTable[TierFor(stage)]
}

// AuthType is the network-level gate on the function URL.
type AuthType string

const AuthTypeNone AuthType = "NONE"

// InvocationEndpoint is the function URL the distribution uses as its default origin.
type InvocationEndpoint struct {
	AuthType AuthType  `json:"authType" yaml:"authType"`
	URL      Reference `json:"url" yaml:"url"`
}

// ComputeSpec describes the server-rendering function.
type ComputeSpec struct {
	LogicalID                string             `json:"logicalId" yaml:"logicalId"`
	RuntimeIdentifier        string             `json:"runtimeIdentifier" yaml:"runtimeIdentifier"`
	HandlerEntryPoint        string             `json:"handlerEntryPoint" yaml:"handlerEntryPoint"`
	ArtifactPath             string             `json:"artifactPath" yaml:"artifactPath"`
	FollowSymlinks           string             `json:"followSymlinks" yaml:"followSymlinks"`
	MemoryMB                 int                `json:"memoryMB" yaml:"memoryMB"`
	TimeoutSeconds           int                `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	Environment              map[string]string  `json:"environment" yaml:"environment"`
	PublicInvocationEndpoint InvocationEndpoint `json:"publicInvocationEndpoint" yaml:"publicInvocationEndpoint"`
}

// BuildCompute describes the server function for a stage.
//
// artifactPath is passed through untouched; a missing or broken bundle is
// reported by whoever provisions the function.
func BuildCompute(stage Stage, artifactPath string) ComputeSpec {
	sizing := SizingFor(stage)
	return ComputeSpec{
		LogicalID:         LogicalIDCompute,
		RuntimeIdentifier: RuntimeNodeJS20,
		HandlerEntryPoint: DefaultHandler,
		ArtifactPath:      artifactPath,
		FollowSymlinks:    SymlinkFollowAlways,
		MemoryMB:          sizing.MemoryMB,
		TimeoutSeconds:    sizing.TimeoutSeconds,
		Environment: map[string]string{
			EnvExecutionMode: sizing.ExecutionMode,
			EnvStage:         string(stage),
		},
		PublicInvocationEndpoint: InvocationEndpoint{
			AuthType: AuthTypeNone,
			URL:      Reference{Resource: LogicalIDCompute, Attribute: AttributeURL},
		},
	}
}
