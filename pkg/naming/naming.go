package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultAppName is the application segment used in stack and distribution labels.
const DefaultAppName = "TanStackStart"

// DisplayLabel capitalizes the first letter of a stage name.
//
// No validation happens here; callers pass an already-resolved stage.
func DisplayLabel(stage string) string {
	if stage == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(stage)
	return string(unicode.ToUpper(r)) + stage[size:]
}

func appSegment(appName string) string {
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return DefaultAppName
	}
	return appName
}

// StackName returns the CDK stack identifier: <Stage><App>RootStack.
func StackName(appName, stage string) string {
	return DisplayLabel(stage) + appSegment(appName) + "RootStack"
}

// DistributionComment returns the operator-facing distribution label: <Stage><App>CDK.
func DistributionComment(appName, stage string) string {
	return DisplayLabel(stage) + appSegment(appName) + "CDK"
}
