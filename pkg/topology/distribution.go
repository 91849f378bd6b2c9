package topology

import "github.com/theory-cloud/ssrstack/pkg/naming"

const (
	// DefaultPattern is the catch-all behavior routed to the server function.
	DefaultPattern = "*"
	// EntryDocument is served for paths neither origin can resolve.
	EntryDocument = "/index.html"
	// InvalidateAllPaths covers every cached object on the distribution.
	InvalidateAllPaths = "/*"
)

// OriginKind identifies which backing resource a behavior forwards to.
type OriginKind string

const (
	OriginCompute OriginKind = "compute"
	OriginStorage OriginKind = "storage"
)

// OriginAccess is how the distribution reaches an origin.
type OriginAccess string

const (
	OriginAccessFunctionURL   OriginAccess = "function-url"
	OriginAccessOriginControl OriginAccess = "origin-access-control"
)

// CachePolicy selects edge caching for a behavior.
type CachePolicy string

const (
	CachePolicyDisabled  CachePolicy = "disabled"
	CachePolicyOptimized CachePolicy = "optimized"
)

// ViewerProtocolPolicy is how a behavior treats plain-HTTP viewers.
type ViewerProtocolPolicy string

const ViewerProtocolRedirectToHTTPS ViewerProtocolPolicy = "redirect-insecure-to-secure"

// AllowedMethods is the HTTP method set a behavior forwards.
type AllowedMethods string

const (
	AllowedMethodsAll     AllowedMethods = "all"
	AllowedMethodsGetHead AllowedMethods = "get-head"
)

// OriginRequestPolicy controls which viewer data is forwarded to the origin.
type OriginRequestPolicy string

const (
	OriginRequestNone                      OriginRequestPolicy = "none"
	OriginRequestAllViewerExceptHostHeader OriginRequestPolicy = "all-viewer-except-host-header"
)

// OriginSpec binds a behavior to a resource in the graph.
type OriginSpec struct {
	Kind     OriginKind   `json:"kind" yaml:"kind"`
	Resource string       `json:"resource" yaml:"resource"`
	Access   OriginAccess `json:"access" yaml:"access"`
}

// ComputeOrigin returns the origin for a compute spec's function URL.
func ComputeOrigin(c ComputeSpec) OriginSpec {
	return OriginSpec{Kind: OriginCompute, Resource: c.LogicalID, Access: OriginAccessFunctionURL}
}

// StorageOrigin returns the origin for a bucket, reachable only through origin access control.
func StorageOrigin(s StorageSpec) OriginSpec {
	return OriginSpec{Kind: OriginStorage, Resource: s.LogicalID, Access: OriginAccessOriginControl}
}

// PathRule is a single distribution behavior.
type PathRule struct {
	Pattern              string               `json:"pattern" yaml:"pattern"`
	TargetOrigin         OriginKind           `json:"targetOrigin" yaml:"targetOrigin"`
	CachePolicy          CachePolicy          `json:"cachePolicy" yaml:"cachePolicy"`
	ViewerProtocolPolicy ViewerProtocolPolicy `json:"viewerProtocolPolicy" yaml:"viewerProtocolPolicy"`
	AllowedMethods       AllowedMethods       `json:"allowedMethods" yaml:"allowedMethods"`
	OriginRequestPolicy  OriginRequestPolicy  `json:"originRequestPolicy" yaml:"originRequestPolicy"`
}

// ErrorRewriteRule turns an origin error into the SPA shell.
type ErrorRewriteRule struct {
	MatchStatus   int    `json:"matchStatus" yaml:"matchStatus"`
	RewriteStatus int    `json:"rewriteStatus" yaml:"rewriteStatus"`
	RewritePath   string `json:"rewritePath" yaml:"rewritePath"`
}

// DistributionSpec describes the CDN distribution.
//
// PathRules always starts with the default rule; the remaining entries follow
// the order of the table they were built from.
type DistributionSpec struct {
	LogicalID            string             `json:"logicalId" yaml:"logicalId"`
	OriginForDefaultRule OriginSpec         `json:"originForDefaultRule" yaml:"originForDefaultRule"`
	StorageOrigin        OriginSpec         `json:"storageOrigin" yaml:"storageOrigin"`
	PathRules            []PathRule         `json:"pathRules" yaml:"pathRules"`
	ErrorRewriteRules    []ErrorRewriteRule `json:"errorRewriteRules" yaml:"errorRewriteRules"`
	Label                string             `json:"label" yaml:"label"`
	DomainName           Reference          `json:"domainName" yaml:"domainName"`
}

// DefaultRule returns the catch-all behavior.
func (d DistributionSpec) DefaultRule() PathRule {
	for _, r := range d.PathRules {
		if r.Pattern == DefaultPattern {
			return r
		}
	}
	return PathRule{}
}

// StaticRules returns the behaviors routed to the bucket, in order.
func (d DistributionSpec) StaticRules() []PathRule {
	out := make([]PathRule, 0, len(d.PathRules))
	for _, r := range d.PathRules {
		if r.Pattern != DefaultPattern {
			out = append(out, r)
		}
	}
	return out
}

// DistributionOption customizes BuildDistribution.
type DistributionOption func(*distributionOptions)

type distributionOptions struct {
	label string
}

// WithLabel overrides the operator-facing comment on the distribution.
func WithLabel(label string) DistributionOption {
	return func(o *distributionOptions) {
		o.label = label
	}
}

func errorRewriteRules() []ErrorRewriteRule {
	return []ErrorRewriteRule{
		{MatchStatus: 403, RewriteStatus: 200, RewritePath: EntryDocument},
		{MatchStatus: 404, RewriteStatus: 200, RewritePath: EntryDocument},
	}
}

// BuildDistribution describes the distribution that fronts compute and storage.
//
// The table is validated before anything is emitted; on error the returned
// spec is the zero value.
func BuildDistribution(stage Stage, compute OriginSpec, storage OriginSpec, table PathRuleTable, opts ...DistributionOption) (DistributionSpec, error) {
	if err := table.Validate(); err != nil {
		return DistributionSpec{}, err
	}

	o := distributionOptions{label: naming.DistributionComment("", string(stage))}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	rules := make([]PathRule, 0, len(table)+1)
	rules = append(rules, PathRule{
		Pattern:              DefaultPattern,
		TargetOrigin:         OriginCompute,
		CachePolicy:          CachePolicyDisabled,
		ViewerProtocolPolicy: ViewerProtocolRedirectToHTTPS,
		AllowedMethods:       AllowedMethodsAll,
		OriginRequestPolicy:  OriginRequestAllViewerExceptHostHeader,
	})
	for _, e := range table {
		rules = append(rules, PathRule{
			Pattern:              e.Pattern,
			TargetOrigin:         OriginStorage,
			CachePolicy:          CachePolicyOptimized,
			ViewerProtocolPolicy: ViewerProtocolRedirectToHTTPS,
			AllowedMethods:       AllowedMethodsGetHead,
			OriginRequestPolicy:  OriginRequestNone,
		})
	}

	return DistributionSpec{
		LogicalID:            LogicalIDDistribution,
		OriginForDefaultRule: compute,
		StorageOrigin:        storage,
		PathRules:            rules,
		ErrorRewriteRules:    errorRewriteRules(),
		Label:                o.label,
		DomainName:           Reference{Resource: LogicalIDDistribution, Attribute: AttributeDomainName},
	}, nil
}
