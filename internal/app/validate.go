package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/types"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	spec, bc, err := s.prepare(ctx, systemInput{
		SpecPath:    req.SpecPath,
		Booter:      req.Booter,
		SourceRoot:  req.SourceRoot,
		CheckLayout: req.CheckLayout,
	}, "")
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Description: spec.System.Description,
		Booter:      bc.Booter(),
		Components:  bc.Names(),
	}, nil
}

type systemInput struct {
	SpecPath    string
	Booter      string
	SourceRoot  string
	CheckLayout bool
}

// prepare loads and validates a system and returns its build context.
// Dependency validation happens here so nothing is ever run for a system
// with unsatisfied dependencies.
func (s Service) prepare(ctx context.Context, in systemInput, buildDir string) (types.SystemSpec, *core.BuildContext, error) {
	specPath := strings.TrimSpace(in.SpecPath)
	if specPath == "" {
		return types.SystemSpec{}, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("system spec path is required")
	}
	spec, err := s.SpecLoader.LoadSystem(specPath)
	if err != nil {
		return types.SystemSpec{}, nil, err
	}
	if booter := strings.TrimSpace(in.Booter); booter != "" {
		spec.System.Booter = booter
	}
	if err := core.NewSpecValidator().ValidateSpec(ctx, spec); err != nil {
		return types.SystemSpec{}, nil, err
	}
	bc, err := core.NewBuildContext(ctx, spec.Components, spec.BooterName(), buildDir)
	if err != nil {
		return types.SystemSpec{}, nil, err
	}
	if err := bc.ValidateDeps(); err != nil {
		return types.SystemSpec{}, nil, err
	}
	if in.CheckLayout {
		if err := s.checkLayout(ctx, bc, in.SourceRoot); err != nil {
			return types.SystemSpec{}, nil, err
		}
	}
	log.Ctx(ctx).Debug().
		Str("spec", specPath).
		Str("booter", bc.Booter()).
		Int("components", len(bc.Names())).
		Msg("system validated")
	return spec, bc, nil
}

// checkLayout verifies that every implementation and every interface
// variant a component links against exists in the source tree.
func (s Service) checkLayout(ctx context.Context, bc *core.BuildContext, root string) error {
	if strings.TrimSpace(root) == "" {
		root = core.DefaultMakeRoot
	}
	layout := s.Layout(root)
	var missing []string
	seen := map[string]bool{}
	require := func(what string, dir string) {
		if seen[dir] {
			return
		}
		seen[dir] = true
		if !layout.Exists(dir) {
			missing = append(missing, fmt.Sprintf("%s (%s)", what, dir))
		}
	}
	for _, c := range bc.Components() {
		require("implementation "+c.CompIf+"."+c.CompName, layout.ImplementationDir(c.CompIf, c.CompName))
		for _, exp := range c.Exports {
			if types.IsSentinelInterface(exp.Interface) {
				continue
			}
			require("interface "+exp.Interface+"/"+exp.Variant, layout.InterfaceDir(exp.Interface, exp.Variant))
		}
		for _, dep := range c.Deps {
			require("interface "+dep.Interface+"/"+dep.Variant, layout.InterfaceDir(dep.Interface, dep.Variant))
		}
	}
	if len(missing) > 0 {
		log.Ctx(ctx).Debug().Strs("missing", missing).Msg("source layout check failed")
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("missing from source tree: " + strings.Join(missing, ", "))
	}
	return nil
}
