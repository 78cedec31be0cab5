package ports

import (
	"cos-mkimg/internal/core"
	"cos-mkimg/internal/types"
)

// BundlePort writes and reads the booter's tarball.
type BundlePort interface {
	Create(tarPath string, key string, files []core.BundleFile) ([]types.BundleEntry, error)
	List(tarPath string) ([]types.BundleEntry, error)
}

// ArgsFilePort writes a generated arguments source file.
type ArgsFilePort interface {
	Write(path string, content string) error
}
