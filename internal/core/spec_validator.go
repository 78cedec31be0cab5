package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"cos-mkimg/internal/types"
)

type SpecValidator struct{}

func NewSpecValidator() SpecValidator {
	return SpecValidator{}
}

// ValidateSpec checks the shape of a system spec before any resolution:
// unique component names, well-formed imgs and an existing booter. It does
// not check that dependencies are satisfiable.
func (v SpecValidator) ValidateSpec(ctx context.Context, spec types.SystemSpec) error {
	if len(spec.Components) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("system spec has no components")
	}
	seen := map[string]struct{}{}
	for _, comp := range spec.Components {
		if err := validateComponent(comp); err != nil {
			return err
		}
		if _, dup := seen[comp.Name]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("component %s is declared more than once", comp.Name))
		}
		seen[comp.Name] = struct{}{}
	}

	booter := spec.BooterName()
	if booter == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no booter: set system.booter or give one component the kernel constructor")
	}
	if _, ok := seen[booter]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("booter %s is not a component", booter))
	}
	log.Ctx(ctx).Debug().Int("components", len(spec.Components)).Str("booter", booter).Msg("system spec validated")
	return nil
}

func validateComponent(comp types.ComponentSpec) error {
	if strings.TrimSpace(comp.Name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component name must not be empty")
	}
	if _, _, ok := types.SplitImg(comp.Img); !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s has invalid img %q, expected <interface>.<implementation>", comp.Name, comp.Img))
	}
	if comp.BaseAddr != "" && !isHexAddr(comp.BaseAddr) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s has invalid baseaddr %s", comp.Name, comp.BaseAddr))
	}
	for _, exp := range comp.Interfaces {
		if strings.TrimSpace(exp.Interface) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component %s exports an unnamed interface", comp.Name))
		}
	}
	for _, dep := range comp.Deps {
		if strings.TrimSpace(dep.Interface) == "" || strings.TrimSpace(dep.Server) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component %s has a dependency without interface or server", comp.Name))
		}
	}
	for _, param := range comp.Params {
		if strings.TrimSpace(param.Name) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("component %s has a parameter without a name", comp.Name))
		}
	}
	return nil
}

func isHexAddr(value string) bool {
	digits, ok := strings.CutPrefix(strings.ToLower(value), "0x")
	if !ok || digits == "" {
		return false
	}
	for _, r := range digits {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
