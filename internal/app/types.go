package app

import (
	"cos-mkimg/internal/core"
	"cos-mkimg/internal/types"
)

type ValidateRequest struct {
	SpecPath    string
	Booter      string
	SourceRoot  string
	CheckLayout bool
}

type ValidateResult struct {
	Description string
	Booter      string
	Components  []string
}

type PlanRequest struct {
	SpecPath    string
	Booter      string
	SourceRoot  string
	CheckLayout bool
	MakeProgram string
	MakeRoot    string
	BuildDir    string
}

// PlanStep is one tool invocation, in the order Build runs them.
type PlanStep struct {
	Component    string
	InitArgsPath string
	Invocation   core.Invocation
}

type PlanResult struct {
	BuildDir string
	TarPath  string
	Steps    []PlanStep
}

type BuildRequest struct {
	SpecPath    string
	Booter      string
	SourceRoot  string
	CheckLayout bool
	MakeProgram string
	MakeRoot    string
	BuildDir    string
}

type BuildResult struct {
	BuildDir     string
	TarPath      string
	BooterObject string
	Components   []types.ComponentOutcome
	Bundle       []types.BundleEntry
}

// Failed lists the components whose tool invocation failed.
func (r BuildResult) Failed() []string {
	var failed []string
	for _, outcome := range r.Components {
		if outcome.Err != nil {
			failed = append(failed, outcome.Name)
		}
	}
	return failed
}

type InspectRequest struct {
	TarPath string
}

type InspectResult struct {
	Entries   []types.BundleEntry
	TotalSize int64
}
