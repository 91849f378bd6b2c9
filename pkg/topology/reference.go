package topology

// Logical IDs of the resources in a graph. They double as construct IDs when
// the graph is synthesized, so renaming one replaces the deployed resource.
const (
	LogicalIDStorage      = "StaticAssetsBucket"
	LogicalIDCompute      = "ServerFunction"
	LogicalIDDistribution = "Distribution"
	LogicalIDAssetSync    = "DeployStaticAssets"

	OutputEdgeURL    = "CloudFrontUrl"
	OutputComputeURL = "LambdaFunctionUrl"
)

// Attributes a Reference may point at.
const (
	AttributeURL        = "url"
	AttributeDomainName = "domainName"
)

// Reference names an attribute that only exists once a resource is provisioned.
type Reference struct {
	Resource  string `json:"resource" yaml:"resource"`
	Attribute string `json:"attribute" yaml:"attribute"`
}

func (r Reference) String() string {
	return "${" + r.Resource + "." + r.Attribute + "}"
}
