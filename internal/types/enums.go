package types

const (
	// DefaultVariant is the variant of every interface that does not name one.
	DefaultVariant = "stubs"

	// Primary interfaces that are never exported.
	InterfaceTests = "tests"
	InterfaceNone  = "no_interface"

	DefaultBaseAddr = "0x00400000"

	// TarballKey is the top-level directory of the booter's bundle.
	TarballKey = "binaries"

	KernelConstructor = "kernel"
)

// IsSentinelInterface reports whether iface is a reserved primary interface
// that is never synthesized as an export.
func IsSentinelInterface(iface string) bool {
	return iface == InterfaceTests || iface == InterfaceNone
}

// VariantOrDefault returns variant, or DefaultVariant when it is empty.
func VariantOrDefault(variant string) string {
	if variant == "" {
		return DefaultVariant
	}
	return variant
}

type SpecFormat string

const (
	SpecFormatYAML SpecFormat = "yaml"
	SpecFormatTOML SpecFormat = "toml"
)
