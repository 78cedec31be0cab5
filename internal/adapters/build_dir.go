package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/ports"
)

const buildDirPrefix = "cos_build_"

// BuildDirAdapter derives the build directory from the working directory
// and the process id, so concurrent runs never share one.
type BuildDirAdapter struct {
	Getwd func() (string, error)
	Pid   func() int
}

func NewBuildDirAdapter() BuildDirAdapter {
	return BuildDirAdapter{Getwd: os.Getwd, Pid: os.Getpid}
}

func (a BuildDirAdapter) BuildDir() (string, error) {
	cwd, err := a.WorkingDir()
	if err != nil {
		return "", err
	}
	return BuildDirFor(cwd, a.Pid()), nil
}

func (a BuildDirAdapter) WorkingDir() (string, error) {
	cwd, err := a.Getwd()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to determine working directory").
			WithCause(err)
	}
	return cwd, nil
}

func (a BuildDirAdapter) Reset(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return core.NewDirectoryResetError(dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return core.NewDirectoryResetError(dir, err)
	}
	return nil
}

// BuildDirFor is the build directory of process pid started in cwd.
func BuildDirFor(cwd string, pid int) string {
	return filepath.Join(cwd, fmt.Sprintf("%s%d", buildDirPrefix, pid))
}

var _ ports.BuildDirPort = BuildDirAdapter{}
