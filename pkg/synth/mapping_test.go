package synth

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/stretchr/testify/require"

	"github.com/theory-cloud/ssrstack/pkg/topology"
)

// These helpers map onto plain enum constants, so they run without the jsii kernel.

func TestRemovalPolicy(t *testing.T) {
	require.Equal(t, awscdk.RemovalPolicy_DESTROY, removalPolicy(topology.RemovalPolicyDestroy))
	require.Equal(t, awscdk.RemovalPolicy_RETAIN, removalPolicy(topology.RemovalPolicyRetain))
	require.Equal(t, awscdk.RemovalPolicy_RETAIN, removalPolicy(""))
}

func TestViewerProtocolPolicy(t *testing.T) {
	require.Equal(t, awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS, viewerProtocolPolicy(topology.ViewerProtocolRedirectToHTTPS))
	require.Equal(t, awscloudfront.ViewerProtocolPolicy_HTTPS_ONLY, viewerProtocolPolicy(""))
}

func TestFunctionURLAuthType(t *testing.T) {
	require.Equal(t, awslambda.FunctionUrlAuthType_NONE, functionURLAuthType(topology.AuthTypeNone))
	require.Equal(t, awslambda.FunctionUrlAuthType_AWS_IAM, functionURLAuthType("AWS_IAM"))
}

func TestSymlinkFollowMode(t *testing.T) {
	require.Equal(t, awscdk.SymlinkFollowMode_ALWAYS, symlinkFollowMode(topology.SymlinkFollowAlways))
	require.Equal(t, awscdk.SymlinkFollowMode_NEVER, symlinkFollowMode(""))
}

func TestStackEnvironment(t *testing.T) {
	require.Nil(t, stackEnvironment(" ", ""))

	env := stackEnvironment("123456789012", "")
	require.Equal(t, "123456789012", *env.Account)
	require.Nil(t, env.Region)

	env = stackEnvironment("", "eu-west-1")
	require.Nil(t, env.Account)
	require.Equal(t, "eu-west-1", *env.Region)
}

func TestNewStack_NilGraph(t *testing.T) {
	_, err := NewStack(nil, nil, StackOptions{})
	require.Error(t, err)
}
