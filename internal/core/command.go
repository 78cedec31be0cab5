package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DefaultMakeProgram = "make"
	DefaultMakeRoot    = "../"

	makeTarget = "component"
)

// Invocation is one call of the external build tool.
type Invocation struct {
	Program string
	Args    []string
}

// String renders the invocation as a shell command line. Arguments holding
// a list are quoted, every other argument is emitted verbatim.
func (i Invocation) String() string {
	parts := make([]string, 0, len(i.Args)+1)
	parts = append(parts, i.Program)
	for _, arg := range i.Args {
		key, value, ok := strings.Cut(arg, "=")
		if ok && (key == "COMP_INTERFACES" || key == "COMP_IFDEPS") {
			parts = append(parts, fmt.Sprintf("%s=%q", key, value))
			continue
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Synthesizer turns a resolved component context into a build invocation.
type Synthesizer struct {
	Program string
	Root    string
}

func NewSynthesizer(program string, root string) Synthesizer {
	if strings.TrimSpace(program) == "" {
		program = DefaultMakeProgram
	}
	if strings.TrimSpace(root) == "" {
		root = DefaultMakeRoot
	}
	return Synthesizer{Program: program, Root: root}
}

// Command builds the invocation that seals c into buildDir. initArgsFile and
// tarFile are passed to the tool only when non-empty.
func (s Synthesizer) Command(c *ComponentContext, buildDir string, initArgsFile string, tarFile string) Invocation {
	args := []string{
		"-C", s.Root,
		"COMP_INTERFACES=" + ExportToken(c),
		"COMP_IFDEPS=" + DependencyToken(c),
		"COMP_INTERFACE=" + c.CompIf,
		"COMP_NAME=" + c.CompName,
		"COMP_VARNAME=" + c.VarName,
		"COMP_OUTPUT=" + filepath.Join(buildDir, c.ObjectName()),
		"COMP_BASEADDR=" + c.BaseAddr,
	}
	if initArgsFile != "" {
		args = append(args, "COMP_INITARGS_FILE="+initArgsFile)
	}
	if tarFile != "" {
		args = append(args, "COMP_TAR_FILE="+tarFile)
	}
	args = append(args, makeTarget)
	return Invocation{Program: s.Program, Args: args}
}

// ExportToken renders the exports of c as the tool expects them.
func ExportToken(c *ComponentContext) string {
	pairs := make([]pair, 0, len(c.Exports))
	for _, exp := range c.Exports {
		pairs = append(pairs, pair{exp.Interface, exp.Variant})
	}
	return joinPairs(pairs)
}

// DependencyToken renders the resolved dependencies of c as the tool
// expects them.
func DependencyToken(c *ComponentContext) string {
	pairs := make([]pair, 0, len(c.Deps))
	for _, dep := range c.Deps {
		pairs = append(pairs, pair{dep.Interface, dep.Variant})
	}
	return joinPairs(pairs)
}

type pair struct {
	iface   string
	variant string
}

// joinPairs renders "if/variant" pairs separated by "+".
func joinPairs(pairs []pair) string {
	tokens := make([]string, 0, len(pairs))
	for _, p := range pairs {
		tokens = append(tokens, p.iface+"/"+p.variant)
	}
	return strings.Join(tokens, "+")
}
