// Package synth realizes a topology.DeploymentGraph as an AWS CDK stack.
//
// It is the hand-off point to the provisioning executor: synthesis produces a
// cloud assembly, and `cdk deploy` (not this package) allocates resources,
// rolls back partial failures and reports provisioning errors.
package synth

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3assets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/theory-cloud/ssrstack/pkg/logger"
	"github.com/theory-cloud/ssrstack/pkg/observability"
	"github.com/theory-cloud/ssrstack/pkg/topology"
)

// StackOptions carries the deployment environment. Empty values leave the stack environment-agnostic.
type StackOptions struct {
	Account string
	Region  string
	Logger  observability.StructuredLogger
}

// Stack is the synthesized graph with handles to the constructs it created.
type Stack struct {
	Stack        awscdk.Stack
	Bucket       awss3.Bucket
	Function     awslambda.Function
	FunctionURL  awslambda.FunctionUrl
	Distribution awscloudfront.Distribution
	Deployment   awss3deployment.BucketDeployment
}

// NewStack adds a stack for g to scope.
//
// Constructs are created in provisioning order; CDK derives the same
// dependencies from the references between them.
func NewStack(scope constructs.Construct, g *topology.DeploymentGraph, opts StackOptions) (*Stack, error) {
	if g == nil {
		return nil, fmt.Errorf("synth: nil graph")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Logger()
	}
	log = log.WithStage(string(g.Stage))

	order, err := g.Order()
	if err != nil {
		return nil, err
	}

	stack := awscdk.NewStack(scope, jsii.String(g.StackName), &awscdk.StackProps{
		Env: stackEnvironment(opts.Account, opts.Region),
	})
	out := &Stack{Stack: stack}

	for _, step := range order {
		switch step {
		case g.Storage.LogicalID:
			out.Bucket = newBucket(stack, g.Storage)
		case g.Compute.LogicalID:
			out.Function, out.FunctionURL = newFunction(stack, g.Compute)
		case g.Distribution.LogicalID:
			out.Distribution, err = newDistribution(stack, g.Distribution, out.FunctionURL, out.Bucket)
			if err != nil {
				return nil, err
			}
		case g.StaticAssetSyncInstruction.LogicalID:
			out.Deployment = newAssetSync(stack, g.StaticAssetSyncInstruction, out.Bucket, out.Distribution)
		default:
			return nil, fmt.Errorf("synth: no construct for step %q", step)
		}
		log.Debug("construct added", map[string]any{"logical_id": step})
	}

	newOutputs(stack, g.Outputs, out)

	log.Info("stack defined", map[string]any{
		"stack":          g.StackName,
		"behaviors":      len(g.Distribution.PathRules),
		"memory_mb":      g.Compute.MemoryMB,
		"removal_policy": string(g.Storage.RemovalPolicy),
	})
	return out, nil
}

func stackEnvironment(account, region string) *awscdk.Environment {
	account = strings.TrimSpace(account)
	region = strings.TrimSpace(region)
	if account == "" && region == "" {
		return nil
	}
	env := &awscdk.Environment{}
	if account != "" {
		env.Account = jsii.String(account)
	}
	if region != "" {
		env.Region = jsii.String(region)
	}
	return env
}

func newBucket(scope constructs.Construct, spec topology.StorageSpec) awss3.Bucket {
	return awss3.NewBucket(scope, jsii.String(spec.LogicalID), &awss3.BucketProps{
		PublicReadAccess:  jsii.Bool(spec.PublicAccess != topology.PublicAccessDisabled),
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		RemovalPolicy:     removalPolicy(spec.RemovalPolicy),
		AutoDeleteObjects: jsii.Bool(spec.AutoDeleteOnTeardown),
	})
}

func newFunction(scope constructs.Construct, spec topology.ComputeSpec) (awslambda.Function, awslambda.FunctionUrl) {
	env := make(map[string]*string, len(spec.Environment))
	for k, v := range spec.Environment {
		env[k] = jsii.String(v)
	}

	fn := awslambda.NewFunction(scope, jsii.String(spec.LogicalID), &awslambda.FunctionProps{
		Runtime: lambdaRuntime(spec.RuntimeIdentifier),
		Handler: jsii.String(spec.HandlerEntryPoint),
		Code: awslambda.Code_FromAsset(jsii.String(spec.ArtifactPath), &awss3assets.AssetOptions{
			FollowSymlinks: symlinkFollowMode(spec.FollowSymlinks),
		}),
		MemorySize:  jsii.Number(float64(spec.MemoryMB)),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(float64(spec.TimeoutSeconds))),
		Environment: &env,
	})

	url := fn.AddFunctionUrl(&awslambda.FunctionUrlOptions{
		AuthType: functionURLAuthType(spec.PublicInvocationEndpoint.AuthType),
	})
	return fn, url
}

func newDistribution(scope constructs.Construct, spec topology.DistributionSpec, url awslambda.FunctionUrl, bucket awss3.Bucket) (awscloudfront.Distribution, error) {
	if url == nil || bucket == nil {
		return nil, fmt.Errorf("synth: distribution %q built before its origins", spec.LogicalID)
	}

	computeOrigin := awscloudfrontorigins.NewFunctionUrlOrigin(url, &awscloudfrontorigins.FunctionUrlOriginProps{})
	storageOrigin := awscloudfrontorigins.S3BucketOrigin_WithOriginAccessControl(bucket, &awscloudfrontorigins.S3BucketOriginWithOACProps{})
	originFor := func(rule topology.PathRule) (awscloudfront.IOrigin, error) {
		switch rule.TargetOrigin {
		case topology.OriginCompute:
			return computeOrigin, nil
		case topology.OriginStorage:
			return storageOrigin, nil
		default:
			return nil, fmt.Errorf("synth: rule %q targets unknown origin %q", rule.Pattern, rule.TargetOrigin)
		}
	}

	def := spec.DefaultRule()
	if def.Pattern != topology.DefaultPattern {
		return nil, fmt.Errorf("synth: distribution %q has no default behavior", spec.LogicalID)
	}
	defOrigin, err := originFor(def)
	if err != nil {
		return nil, err
	}
	defOpts := behaviorOptions(def)

	errorResponses := make([]*awscloudfront.ErrorResponse, 0, len(spec.ErrorRewriteRules))
	for _, r := range spec.ErrorRewriteRules {
		errorResponses = append(errorResponses, &awscloudfront.ErrorResponse{
			HttpStatus:         jsii.Number(float64(r.MatchStatus)),
			ResponseHttpStatus: jsii.Number(float64(r.RewriteStatus)),
			ResponsePagePath:   jsii.String(r.RewritePath),
		})
	}

	dist := awscloudfront.NewDistribution(scope, jsii.String(spec.LogicalID), &awscloudfront.DistributionProps{
		Comment: jsii.String(spec.Label),
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               defOrigin,
			ViewerProtocolPolicy: defOpts.ViewerProtocolPolicy,
			CachePolicy:          defOpts.CachePolicy,
			AllowedMethods:       defOpts.AllowedMethods,
			OriginRequestPolicy:  defOpts.OriginRequestPolicy,
		},
		ErrorResponses: &errorResponses,
	})

	// CloudFront evaluates behaviors in the order they are added.
	for _, rule := range spec.StaticRules() {
		origin, err := originFor(rule)
		if err != nil {
			return nil, err
		}
		dist.AddBehavior(jsii.String(rule.Pattern), origin, behaviorOptions(rule))
	}
	return dist, nil
}

func behaviorOptions(rule topology.PathRule) *awscloudfront.AddBehaviorOptions {
	opts := &awscloudfront.AddBehaviorOptions{
		ViewerProtocolPolicy: viewerProtocolPolicy(rule.ViewerProtocolPolicy),
		CachePolicy:          cachePolicy(rule.CachePolicy),
		AllowedMethods:       allowedMethods(rule.AllowedMethods),
	}
	if rule.OriginRequestPolicy == topology.OriginRequestAllViewerExceptHostHeader {
		opts.OriginRequestPolicy = awscloudfront.OriginRequestPolicy_ALL_VIEWER_EXCEPT_HOST_HEADER()
	}
	return opts
}

func newAssetSync(scope constructs.Construct, spec topology.SyncInstruction, bucket awss3.Bucket, dist awscloudfront.Distribution) awss3deployment.BucketDeployment {
	return awss3deployment.NewBucketDeployment(scope, jsii.String(spec.LogicalID), &awss3deployment.BucketDeploymentProps{
		Sources:           &[]awss3deployment.ISource{awss3deployment.Source_Asset(jsii.String(spec.Source), nil)},
		DestinationBucket: bucket,
		Distribution:      dist,
		DistributionPaths: jsii.Strings(spec.InvalidationPaths...),
	})
}

func newOutputs(scope constructs.Construct, outputs topology.Outputs, s *Stack) {
	awscdk.NewCfnOutput(scope, jsii.String(outputs.EdgeURL.Name), &awscdk.CfnOutputProps{
		Value:       jsii.String(outputs.EdgeURL.Prefix + *s.Distribution.DistributionDomainName()),
		Description: jsii.String(outputs.EdgeURL.Description),
	})
	awscdk.NewCfnOutput(scope, jsii.String(outputs.ComputeURL.Name), &awscdk.CfnOutputProps{
		Value:       jsii.String(outputs.ComputeURL.Prefix + *s.FunctionURL.Url()),
		Description: jsii.String(outputs.ComputeURL.Description),
	})
}
