package synth

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/jsii-runtime-go"

	"github.com/theory-cloud/ssrstack/pkg/topology"
)

func removalPolicy(p topology.RemovalPolicy) awscdk.RemovalPolicy {
	if p == topology.RemovalPolicyDestroy {
		return awscdk.RemovalPolicy_DESTROY
	}
	return awscdk.RemovalPolicy_RETAIN
}

func viewerProtocolPolicy(p topology.ViewerProtocolPolicy) awscloudfront.ViewerProtocolPolicy {
	if p == topology.ViewerProtocolRedirectToHTTPS {
		return awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS
	}
	return awscloudfront.ViewerProtocolPolicy_HTTPS_ONLY
}

func functionURLAuthType(a topology.AuthType) awslambda.FunctionUrlAuthType {
	if a == topology.AuthTypeNone {
		return awslambda.FunctionUrlAuthType_NONE
	}
	return awslambda.FunctionUrlAuthType_AWS_IAM
}

func symlinkFollowMode(mode string) awscdk.SymlinkFollowMode {
	if mode == topology.SymlinkFollowAlways {
		return awscdk.SymlinkFollowMode_ALWAYS
	}
	return awscdk.SymlinkFollowMode_NEVER
}

func cachePolicy(p topology.CachePolicy) awscloudfront.ICachePolicy {
	if p == topology.CachePolicyOptimized {
		return awscloudfront.CachePolicy_CACHING_OPTIMIZED()
	}
	return awscloudfront.CachePolicy_CACHING_DISABLED()
}

func allowedMethods(m topology.AllowedMethods) awscloudfront.AllowedMethods {
	if m == topology.AllowedMethodsAll {
		return awscloudfront.AllowedMethods_ALLOW_ALL()
	}
	return awscloudfront.AllowedMethods_ALLOW_GET_HEAD()
}

func lambdaRuntime(id string) awslambda.Runtime {
	if id == topology.RuntimeNodeJS20 {
		return awslambda.Runtime_NODEJS_20_X()
	}
	return awslambda.NewRuntime(jsii.String(id), awslambda.RuntimeFamily_NODEJS, nil)
}
