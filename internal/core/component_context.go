package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"cos-mkimg/internal/initargs"
	"cos-mkimg/internal/types"
)

// Export is an interface a component provides, with the variant it provides.
type Export struct {
	Interface string
	Variant   string
}

// DepTriple is a dependency resolved against the exporting server.
type DepTriple struct {
	Interface string
	Server    string
	Variant   string
}

// ServerRef is a dependency as declared: the interface and the server that
// should provide it.
type ServerRef struct {
	Interface string
	Server    string
}

type UnresolvedReason string

const (
	ReasonNoSuchServer         UnresolvedReason = "no such server"
	ReasonServerLacksInterface UnresolvedReason = "server lacks interface"
)

// Unresolved records a declared dependency that pass two could not match.
type Unresolved struct {
	ServerRef
	Reason UnresolvedReason
}

// ComponentContext is everything needed to seal one component.
type ComponentContext struct {
	CompName string
	CompIf   string
	VarName  string
	BaseAddr string
	Params   *initargs.KV

	Exports    []Export
	Deps       []DepTriple
	Servers    []ServerRef
	Unresolved []Unresolved

	// LibraryDeps is reserved for the library closure of the exported and
	// depended-upon interfaces. It is always empty.
	LibraryDeps []string
}

func newMinimalContext(iface string, impl string, varName string) *ComponentContext {
	return &ComponentContext{
		CompName:    impl,
		CompIf:      iface,
		VarName:     varName,
		BaseAddr:    types.DefaultBaseAddr,
		Exports:     []Export{},
		Deps:        []DepTriple{},
		Servers:     []ServerRef{},
		LibraryDeps: []string{},
	}
}

// NewComponentContext derives the context of comp from its own declaration.
// Dependencies are only recorded here; they are resolved by the system
// build context once every component is known.
func NewComponentContext(comp types.ComponentSpec) (*ComponentContext, error) {
	iface, impl, ok := types.SplitImg(comp.Img)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s: img %q is not of the form <interface>.<implementation>", comp.Name, comp.Img))
	}
	ctx := newMinimalContext(iface, impl, comp.Name)
	if comp.BaseAddr != "" {
		ctx.BaseAddr = comp.BaseAddr
	}

	foundPrimary := false
	for _, exp := range comp.Interfaces {
		if exp.Interface == iface {
			foundPrimary = true
		}
		ctx.Exports = append(ctx.Exports, Export{
			Interface: exp.Interface,
			Variant:   types.VariantOrDefault(exp.Variant),
		})
	}
	if !foundPrimary && !types.IsSentinelInterface(iface) {
		ctx.Exports = append(ctx.Exports, Export{Interface: iface, Variant: types.DefaultVariant})
	}

	for _, dep := range comp.Deps {
		ctx.Servers = append(ctx.Servers, ServerRef{Interface: dep.Interface, Server: dep.Server})
	}

	kvs := make([]initargs.KV, 0, len(comp.Params))
	for _, param := range comp.Params {
		kvs = append(kvs, initargs.NewKey(param.Name, param.Value))
	}
	params := initargs.NewArray("params", kvs)
	ctx.Params = &params

	return ctx, nil
}

// ObjectName is the canonical "<interface>.<implementation>.<variable>" name.
func (c *ComponentContext) ObjectName() string {
	return objectName(c.CompIf, c.CompName, c.VarName)
}

// ValidateDeps fails when some declared dependency did not resolve.
func (c *ComponentContext) ValidateDeps() *Error {
	if len(c.Deps) == len(c.Servers) {
		return nil
	}
	return &Error{
		Kind:      KindUnsatisfiedDependency,
		Component: c.VarName,
		Expected:  len(c.Servers),
		Actual:    len(c.Deps),
		Msg: fmt.Sprintf("Component %s (implementation: %s) has dependencies that are not satisfied by stated dependencies:\n\tDependencies %s\n\tProvided %s\n%s",
			c.VarName, c.CompName, formatServerRefs(c.Servers), formatTriples(c.Deps), formatUnresolved(c.Unresolved)),
	}
}

// ResolvedDeps returns (server, interface) pairs, without variants.
func (c *ComponentContext) ResolvedDeps() []ServerRef {
	out := make([]ServerRef, 0, len(c.Deps))
	for _, dep := range c.Deps {
		out = append(out, ServerRef{Interface: dep.Interface, Server: dep.Server})
	}
	return out
}

func objectName(iface string, impl string, varName string) string {
	return fmt.Sprintf("%s.%s.%s", iface, impl, varName)
}

func formatServerRefs(refs []ServerRef) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, fmt.Sprintf("(%s, %s)", ref.Interface, ref.Server))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatTriples(deps []DepTriple) string {
	parts := make([]string, 0, len(deps))
	for _, dep := range deps {
		parts = append(parts, fmt.Sprintf("(%s, %s, %s)", dep.Interface, dep.Server, dep.Variant))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatUnresolved(unresolved []Unresolved) string {
	var b strings.Builder
	for _, u := range unresolved {
		fmt.Fprintf(&b, "\t%s from %s: %s\n", u.Interface, u.Server, u.Reason)
	}
	return b.String()
}
