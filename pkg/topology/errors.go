package topology

import (
	"fmt"
	"strings"
)

const (
	errorCodeInvalidStage      = "topology.invalid_stage"
	errorCodeAmbiguousPathRule = "topology.ambiguous_path_rule"
	errorCodeInvalidPathRule   = "topology.invalid_path_rule"
	errorCodeInvalidPlan       = "topology.invalid_plan"
)

// InvalidStageError reports a stage name outside the recognized set.
type InvalidStageError struct {
	Value   string
	Allowed []Stage
}

func (e *InvalidStageError) Code() string { return errorCodeInvalidStage }

func (e *InvalidStageError) Error() string {
	names := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		names = append(names, string(s))
	}
	return fmt.Sprintf("%s: invalid stage %q (allowed: %s)", errorCodeInvalidStage, e.Value, strings.Join(names, ", "))
}

// AmbiguousPathRuleError reports a pattern that would route the same literal
// path through more than one behavior.
type AmbiguousPathRuleError struct {
	Pattern string
	// Entries holds the table positions that declare Pattern.
	Entries []int
	// Default is set when Pattern collides with the catch-all behavior.
	Default bool
}

func (e *AmbiguousPathRuleError) Code() string { return errorCodeAmbiguousPathRule }

func (e *AmbiguousPathRuleError) Error() string {
	if e.Default {
		return fmt.Sprintf("%s: pattern %q at entry %v collides with the default behavior", errorCodeAmbiguousPathRule, e.Pattern, e.Entries)
	}
	return fmt.Sprintf("%s: pattern %q is declared by entries %v", errorCodeAmbiguousPathRule, e.Pattern, e.Entries)
}

// InvalidPathRuleError reports a malformed path rule table entry.
type InvalidPathRuleError struct {
	Entry   int
	Pattern string
	Reason  string
}

func (e *InvalidPathRuleError) Code() string { return errorCodeInvalidPathRule }

func (e *InvalidPathRuleError) Error() string {
	return fmt.Sprintf("%s: entry %d (%q): %s", errorCodeInvalidPathRule, e.Entry, e.Pattern, e.Reason)
}

// PlanError reports a provisioning plan that cannot be ordered.
type PlanError struct {
	Step   string
	Reason string
}

func (e *PlanError) Code() string { return errorCodeInvalidPlan }

func (e *PlanError) Error() string {
	return fmt.Sprintf("%s: step %q: %s", errorCodeInvalidPlan, e.Step, e.Reason)
}
