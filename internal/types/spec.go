package types

import "strings"

// SystemSpec is the parsed composition of a system image. It is treated as
// read-only once loaded.
type SystemSpec struct {
	System     SystemSection   `yaml:"system" toml:"system"`
	Components []ComponentSpec `yaml:"components" toml:"components"`
}

type SystemSection struct {
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`

	// Booter names the first-stage component. When empty, the component
	// whose constructor is the kernel is used.
	Booter string `yaml:"booter,omitempty" toml:"booter,omitempty"`
}

type InterfaceExport struct {
	Interface string `yaml:"interface" toml:"interface"`
	Variant   string `yaml:"variant,omitempty" toml:"variant,omitempty"`
}

type DependencySpec struct {
	Interface string `yaml:"interface" toml:"interface"`
	Server    string `yaml:"srv" toml:"srv"`

	// Variant is informational only; the variant actually linked is the one
	// the server exports.
	Variant string `yaml:"variant,omitempty" toml:"variant,omitempty"`
}

type Param struct {
	Name  string `yaml:"name" toml:"name"`
	Value string `yaml:"value" toml:"value"`
}

type ComponentSpec struct {
	Name        string            `yaml:"name" toml:"name"`
	Img         string            `yaml:"img" toml:"img"`
	Constructor string            `yaml:"constructor,omitempty" toml:"constructor,omitempty"`
	BaseAddr    string            `yaml:"baseaddr,omitempty" toml:"baseaddr,omitempty"`
	Interfaces  []InterfaceExport `yaml:"implements,omitempty" toml:"implements,omitempty"`
	Deps        []DependencySpec  `yaml:"deps,omitempty" toml:"deps,omitempty"`
	Params      []Param           `yaml:"params,omitempty" toml:"params,omitempty"`
}

// SplitImg splits an img of the form "<interface>.<implementation>". ok is
// false when the value does not have exactly two non-empty parts.
func SplitImg(img string) (iface string, impl string, ok bool) {
	parts := strings.Split(strings.TrimSpace(img), ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// BooterName returns the explicit booter, falling back to the component
// constructed by the kernel.
func (s SystemSpec) BooterName() string {
	if booter := strings.TrimSpace(s.System.Booter); booter != "" {
		return booter
	}
	for _, comp := range s.Components {
		if comp.Constructor == KernelConstructor {
			return comp.Name
		}
	}
	return ""
}
