package core

import (
	"context"
	"path/filepath"
	"sort"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"cos-mkimg/internal/types"
)

// BuildContext holds the context of every component of a system, keyed and
// iterated by variable name, together with the build directory shared by
// all of their outputs.
type BuildContext struct {
	comps    map[string]*ComponentContext
	names    []string
	booter   string
	buildDir string
}

// NewBuildContext derives every component's context and resolves each
// declared dependency against the exports of the named server. Dependencies
// that cannot be resolved are dropped and recorded as unresolved; ValidateDeps
// reports them.
func NewBuildContext(ctx context.Context, comps []types.ComponentSpec, booter string, buildDir string) (*BuildContext, error) {
	assert.NotEmpty(ctx, booter, "booter must be set")

	bc := &BuildContext{
		comps:    map[string]*ComponentContext{},
		booter:   booter,
		buildDir: buildDir,
	}

	// Names are unique, so the first spec with a name is the only one.
	byName := make(map[string]int, len(comps))
	for i, comp := range comps {
		if _, ok := byName[comp.Name]; !ok {
			byName[comp.Name] = i
		}
	}

	for _, comp := range comps {
		cctx, err := NewComponentContext(comp)
		if err != nil {
			return nil, err
		}
		for _, ref := range cctx.Servers {
			idx, ok := byName[ref.Server]
			if !ok {
				cctx.Unresolved = append(cctx.Unresolved, Unresolved{ServerRef: ref, Reason: ReasonNoSuchServer})
				continue
			}
			triple, ok := resolveDependency(ref, comps[idx])
			if !ok {
				cctx.Unresolved = append(cctx.Unresolved, Unresolved{ServerRef: ref, Reason: ReasonServerLacksInterface})
				continue
			}
			cctx.Deps = append(cctx.Deps, triple)
		}
		if _, exists := bc.comps[comp.Name]; !exists {
			bc.names = append(bc.names, comp.Name)
		}
		bc.comps[comp.Name] = cctx
	}
	sort.Strings(bc.names)

	log.Ctx(ctx).Debug().Int("components", len(bc.names)).Msg("build context resolved")
	return bc, nil
}

// resolveDependency matches ref against srv. The first explicit export of
// the interface wins; otherwise srv's own primary interface matches with the
// default variant.
func resolveDependency(ref ServerRef, srv types.ComponentSpec) (DepTriple, bool) {
	for _, exp := range srv.Interfaces {
		if exp.Interface == ref.Interface {
			return DepTriple{
				Interface: exp.Interface,
				Server:    ref.Server,
				Variant:   types.VariantOrDefault(exp.Variant),
			}, true
		}
	}
	iface, _, ok := types.SplitImg(srv.Img)
	if ok && iface == ref.Interface {
		return DepTriple{Interface: iface, Server: ref.Server, Variant: types.DefaultVariant}, true
	}
	return DepTriple{}, false
}

func (b *BuildContext) Booter() string {
	return b.booter
}

func (b *BuildContext) BuildDir() string {
	return b.buildDir
}

// SetBuildDir replaces the build directory, for instance when resetting the
// configured one failed.
func (b *BuildContext) SetBuildDir(dir string) {
	b.buildDir = dir
}

// Names returns the variable names of every component in build order.
func (b *BuildContext) Names() []string {
	return append([]string(nil), b.names...)
}

// Components returns every component context in build order.
func (b *BuildContext) Components() []*ComponentContext {
	out := make([]*ComponentContext, 0, len(b.names))
	for _, name := range b.names {
		out = append(out, b.comps[name])
	}
	return out
}

func (b *BuildContext) Component(name string) (*ComponentContext, error) {
	c, ok := b.comps[name]
	if !ok {
		return nil, NewUnknownComponentError(name)
	}
	return c, nil
}

func (b *BuildContext) ObjectName(name string) (string, error) {
	c, err := b.Component(name)
	if err != nil {
		return "", err
	}
	return c.ObjectName(), nil
}

// ObjectPath is where the sealed binary of the named component is written.
func (b *BuildContext) ObjectPath(name string) (string, error) {
	c, err := b.Component(name)
	if err != nil {
		return "", err
	}
	return b.objectPath(c), nil
}

func (b *BuildContext) objectPath(c *ComponentContext) string {
	return filepath.Join(b.buildDir, c.ObjectName())
}

// ComponentDeps returns the resolved (server, interface) pairs of a component.
func (b *BuildContext) ComponentDeps(name string) ([]ServerRef, error) {
	c, err := b.Component(name)
	if err != nil {
		return nil, err
	}
	return c.ResolvedDeps(), nil
}

// ValidateDeps checks every component and aggregates all failures into a
// single *ValidationError.
func (b *BuildContext) ValidateDeps() error {
	var failures []*Error
	for _, c := range b.Components() {
		if err := c.ValidateDeps(); err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &ValidationError{Failures: failures}
}
