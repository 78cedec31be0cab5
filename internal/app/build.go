package app

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/initargs"
	"cos-mkimg/internal/types"
)

// Build seals every component, bundles the results and finally builds the
// booter around the bundle. Invocations run one at a time in name order. A
// failing component is logged and recorded but does not stop the build; any
// failure while packaging does.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	buildDir, err := s.buildDir(req.BuildDir)
	if err != nil {
		return BuildResult{}, err
	}
	_, bc, err := s.prepare(ctx, systemInput{
		SpecPath:    req.SpecPath,
		Booter:      req.Booter,
		SourceRoot:  req.SourceRoot,
		CheckLayout: req.CheckLayout,
	}, buildDir)
	if err != nil {
		return BuildResult{}, err
	}

	if err := s.BuildDirs.Reset(bc.BuildDir()); err != nil {
		cwd, cwdErr := s.BuildDirs.WorkingDir()
		if cwdErr != nil {
			return BuildResult{}, errors.Join(err, cwdErr)
		}
		log.Ctx(ctx).Warn().Err(err).Str("fallback", cwd).Msg("build directory reset failed, building in working directory")
		bc.SetBuildDir(cwd)
	}

	synth := core.NewSynthesizer(req.MakeProgram, req.MakeRoot)
	result := BuildResult{BuildDir: bc.BuildDir()}

	steps, err := componentSteps(bc, synth)
	if err != nil {
		return result, err
	}
	for _, step := range steps {
		c, err := bc.Component(step.Component)
		if err != nil {
			return result, err
		}
		initArgs := c.InitArgs()
		if err := s.ArgsFiles.Write(step.InitArgsPath, initArgs.Serialize()); err != nil {
			return result, err
		}
		result.Components = append(result.Components, s.run(ctx, step))
	}

	booter, artifacts, err := booterStep(bc, synth)
	if err != nil {
		return result, err
	}
	result.TarPath = artifacts.TarPath
	result.BooterObject = artifacts.ObjectPath

	files, err := bc.BundleContents()
	if err != nil {
		return result, err
	}
	bundle, err := s.Bundler.Create(artifacts.TarPath, types.TarballKey, files)
	if err != nil {
		return result, err
	}
	result.Bundle = bundle
	log.Ctx(ctx).Info().Str("tarball", artifacts.TarPath).Int("entries", len(bundle)).Msg("components bundled")

	description, err := bc.Describe(ctx)
	if err != nil {
		return result, err
	}
	log.Ctx(ctx).Debug().Interface("description", description.Flatten()).Msg("booter description")
	if err := checkDescribedBinaries(description, bundle); err != nil {
		return result, err
	}
	if err := s.ArgsFiles.Write(booter.InitArgsPath, description.Serialize()); err != nil {
		return result, err
	}
	result.Components = append(result.Components, s.run(ctx, booter))

	var failures []error
	for _, outcome := range result.Components {
		if outcome.Err != nil {
			failures = append(failures, outcome.Err)
		}
	}
	return result, errors.Join(failures...)
}

// checkDescribedBinaries verifies that the binaries the booter is told
// about are exactly the ones stored in the bundle, in the same order.
func checkDescribedBinaries(description initargs.KV, bundle []types.BundleEntry) error {
	binaries, ok := description.Lookup("binaries")
	if !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("booter description has no binaries")
	}
	if len(binaries.Children) != len(bundle) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("booter description lists %d binaries, bundle holds %d", len(binaries.Children), len(bundle)))
	}
	for i, binary := range binaries.Children {
		if want := path.Join(types.TarballKey, binary.Value); bundle[i].Name != want {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("booter description expects %s, bundle holds %s", want, bundle[i].Name))
		}
	}
	return nil
}

// run executes one step and logs everything the tool printed.
func (s Service) run(ctx context.Context, step PlanStep) types.ComponentOutcome {
	logger := log.Ctx(ctx).With().Str("component", step.Component).Logger()
	command := step.Invocation.String()
	logger.Info().Str("command", command).Msg("building component")

	res, err := s.Runner.Run(ctx, step.Component, step.Invocation)
	if res.Stdout != "" {
		logger.Info().Msg(res.Stdout)
	}
	if res.Stderr != "" {
		logger.Warn().Msg(res.Stderr)
	}
	if err != nil {
		logger.Error().Err(err).Msg("component build failed")
	}
	return types.ComponentOutcome{
		Name:    step.Component,
		Command: command,
		Output:  res.Stdout,
		Stderr:  res.Stderr,
		Err:     err,
	}
}
