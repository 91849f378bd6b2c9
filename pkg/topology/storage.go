package topology

// PublicAccess describes whether objects may be read without going through the distribution.
type PublicAccess string

const PublicAccessDisabled PublicAccess = "disabled"

// BlockPublicAccess mirrors the bucket-level public access block.
type BlockPublicAccess string

const BlockPublicAccessAll BlockPublicAccess = "block-all"

// RemovalPolicy controls what happens to a resource when its stack is torn down.
type RemovalPolicy string

const (
	RemovalPolicyDestroy RemovalPolicy = "destroy"
	RemovalPolicyRetain  RemovalPolicy = "retain"
)

// StorageSpec describes the private static-assets bucket.
type StorageSpec struct {
	LogicalID            string            `json:"logicalId" yaml:"logicalId"`
	PublicAccess         PublicAccess      `json:"publicAccess" yaml:"publicAccess"`
	BlockPublicAccess    BlockPublicAccess `json:"blockPublicAccess" yaml:"blockPublicAccess"`
	RemovalPolicy        RemovalPolicy     `json:"removalPolicy" yaml:"removalPolicy"`
	AutoDeleteOnTeardown bool              `json:"autoDeleteOnTeardown" yaml:"autoDeleteOnTeardown"`
}

// StorageOption customizes BuildStorage.
type StorageOption func(*storageOptions)

type storageOptions struct {
	retain bool
}

// WithRetainOnTeardown keeps the bucket and its objects when the stack is deleted.
func WithRetainOnTeardown() StorageOption {
	return func(o *storageOptions) {
		o.retain = true
	}
}

// BuildStorage describes the static-assets bucket.
//
// Public access is denied for every stage and no option relaxes it. By
// default every stage is disposable (destroy + auto-delete); retention is an
// explicit opt-in and is never derived from the stage.
func BuildStorage(_ Stage, opts ...StorageOption) StorageSpec {
	o := storageOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	spec := StorageSpec{
		LogicalID:            LogicalIDStorage,
		PublicAccess:         PublicAccessDisabled,
		BlockPublicAccess:    BlockPublicAccessAll,
		RemovalPolicy:        RemovalPolicyDestroy,
		AutoDeleteOnTeardown: true,
	}
	if o.retain {
		spec.RemovalPolicy = RemovalPolicyRetain
		spec.AutoDeleteOnTeardown = false
	}
	return spec
}
