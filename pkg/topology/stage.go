package topology

import "github.com/theory-cloud/ssrstack/pkg/naming"

// Stage is a recognized deployment environment.
type Stage string

const (
	StageDevelopment Stage = "development"
	StageStaging     Stage = "staging"
	StageDemo        Stage = "demo"
	StageProduction  Stage = "production"
)

var allowedStages = []Stage{StageDevelopment, StageStaging, StageDemo, StageProduction}

// Stages returns the recognized stages in declaration order.
func Stages() []Stage {
	return append([]Stage(nil), allowedStages...)
}

// Resolve maps a raw stage name onto a Stage.
//
// Matching is exact. An empty value is rejected like any other unknown name:
// defaulting an absent stage is the caller's decision.
func Resolve(raw string) (Stage, error) {
	for _, s := range allowedStages {
		if raw == string(s) {
			return s, nil
		}
	}
	return "", &InvalidStageError{Value: raw, Allowed: Stages()}
}

func (s Stage) String() string { return string(s) }

// IsDevelopment gates sizing and any other development-only policy.
func (s Stage) IsDevelopment() bool { return s == StageDevelopment }

// DisplayLabel returns the capitalized stage name used in operator labels.
func (s Stage) DisplayLabel() string { return naming.DisplayLabel(string(s)) }
