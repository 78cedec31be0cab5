package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"cos-mkimg/internal/core"
)

// Plan validates the system and returns every invocation Build would run,
// booter last, without running anything.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	buildDir, err := s.buildDir(req.BuildDir)
	if err != nil {
		return PlanResult{}, err
	}
	_, bc, err := s.prepare(ctx, systemInput{
		SpecPath:    req.SpecPath,
		Booter:      req.Booter,
		SourceRoot:  req.SourceRoot,
		CheckLayout: req.CheckLayout,
	}, buildDir)
	if err != nil {
		return PlanResult{}, err
	}
	synth := core.NewSynthesizer(req.MakeProgram, req.MakeRoot)
	steps, err := componentSteps(bc, synth)
	if err != nil {
		return PlanResult{}, err
	}
	booter, artifacts, err := booterStep(bc, synth)
	if err != nil {
		return PlanResult{}, err
	}
	return PlanResult{
		BuildDir: bc.BuildDir(),
		TarPath:  artifacts.TarPath,
		Steps:    append(steps, booter),
	}, nil
}

// buildDir returns the requested build directory made absolute, or the
// per-process default. The tool runs from another directory, so every
// output path handed to it must be absolute.
func (s Service) buildDir(requested string) (string, error) {
	dir := strings.TrimSpace(requested)
	if dir == "" {
		return s.BuildDirs.BuildDir()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve build directory " + dir).
			WithCause(err)
	}
	return abs, nil
}

// componentSteps synthesizes the invocation of every component except the
// booter, in name order.
func componentSteps(bc *core.BuildContext, synth core.Synthesizer) ([]PlanStep, error) {
	var steps []PlanStep
	for _, c := range bc.Components() {
		if c.VarName == bc.Booter() {
			continue
		}
		argsPath, err := bc.InitArgsPath(c.VarName)
		if err != nil {
			return nil, err
		}
		steps = append(steps, PlanStep{
			Component:    c.VarName,
			InitArgsPath: argsPath,
			Invocation:   synth.Command(c, bc.BuildDir(), argsPath, ""),
		})
	}
	return steps, nil
}

func booterStep(bc *core.BuildContext, synth core.Synthesizer) (PlanStep, core.BooterArtifacts, error) {
	booter, err := bc.Component(bc.Booter())
	if err != nil {
		return PlanStep{}, core.BooterArtifacts{}, err
	}
	artifacts, err := bc.BooterArtifacts()
	if err != nil {
		return PlanStep{}, core.BooterArtifacts{}, err
	}
	return PlanStep{
		Component:    booter.VarName,
		InitArgsPath: artifacts.InitArgsPath,
		Invocation:   synth.Command(booter, bc.BuildDir(), artifacts.InitArgsPath, artifacts.TarPath),
	}, artifacts, nil
}
