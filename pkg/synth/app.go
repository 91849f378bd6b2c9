package synth

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/theory-cloud/ssrstack/pkg/topology"
)

// ContextKeyStage is the CDK context key (`cdk synth -c stage=demo`) naming the stage.
const ContextKeyStage = "stage"

// NewApp creates the CDK app. An empty outdir keeps the CDK default (cdk.out or CDK_OUTDIR).
func NewApp(outdir string) awscdk.App {
	props := &awscdk.AppProps{}
	if strings.TrimSpace(outdir) != "" {
		props.Outdir = jsii.String(outdir)
	}
	return awscdk.NewApp(props)
}

// ContextStage returns the stage passed through CDK context. ok is false when
// the key is absent; a present value is returned as given.
func ContextStage(app awscdk.App) (stage string, ok bool) {
	raw := app.Node().TryGetContext(jsii.String(ContextKeyStage))
	if raw == nil {
		return "", false
	}
	if s, isString := raw.(string); isString {
		return s, true
	}
	return fmt.Sprint(raw), true
}

// Synth defines the stack for g on app and writes the cloud assembly. It
// returns the assembly directory.
func Synth(app awscdk.App, g *topology.DeploymentGraph, opts StackOptions) (string, error) {
	if _, err := NewStack(app, g, opts); err != nil {
		return "", err
	}
	assembly := app.Synth(nil)
	return *assembly.Directory(), nil
}
