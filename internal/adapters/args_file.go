package adapters

import (
	"os"
	"path/filepath"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/ports"
)

type ArgsFileAdapter struct{}

func NewArgsFileAdapter() ArgsFileAdapter {
	return ArgsFileAdapter{}
}

// Write stores content verbatim at path, creating the parent directory.
func (a ArgsFileAdapter) Write(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return core.NewIoFailure("", "failed to create directory for "+path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return core.NewIoFailure("", "failed to write generated arguments "+path, err)
	}
	return nil
}

var _ ports.ArgsFilePort = ArgsFileAdapter{}
