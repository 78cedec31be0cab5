package ports

// BuildDirPort owns the scratch directory of a build run.
type BuildDirPort interface {
	// BuildDir derives the per-process build directory.
	BuildDir() (string, error)
	// WorkingDir is used in place of the build directory when it cannot
	// be reset.
	WorkingDir() (string, error)
	// Reset removes dir and creates it again, empty.
	Reset(dir string) error
}

// LayoutPort checks the component source tree.
type LayoutPort interface {
	ImplementationDir(iface string, impl string) string
	InterfaceDir(iface string, variant string) string
	Exists(path string) bool
}
