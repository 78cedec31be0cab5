package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/ports"
)

// fakeRunner pretends to be the build tool: it writes a binary at
// COMP_OUTPUT whose content names the component.
type fakeRunner struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (r *fakeRunner) Run(_ context.Context, component string, inv core.Invocation) (ports.ToolResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, component)
	r.mu.Unlock()

	if r.fail[component] {
		return ports.ToolResult{Stderr: "error: " + component}, core.NewToolFailure(component, "error: "+component, errors.New("exit status 2"))
	}
	for _, arg := range inv.Args {
		if out, ok := strings.CutPrefix(arg, "COMP_OUTPUT="); ok {
			if err := os.WriteFile(out, []byte("binary of "+component), 0o644); err != nil {
				return ports.ToolResult{}, err
			}
		}
	}
	return ports.ToolResult{Stdout: "built " + component + "\n"}, nil
}

type fakeBuildDirs struct {
	dir      string
	cwd      string
	resetErr error
	resets   []string
}

func (f *fakeBuildDirs) BuildDir() (string, error)   { return f.dir, nil }
func (f *fakeBuildDirs) WorkingDir() (string, error) { return f.cwd, nil }

func (f *fakeBuildDirs) Reset(dir string) error {
	f.resets = append(f.resets, dir)
	if f.resetErr != nil {
		return f.resetErr
	}
	return os.MkdirAll(dir, 0o755)
}

func testService(t *testing.T, runner *fakeRunner) (Service, *fakeBuildDirs) {
	t.Helper()
	work := t.TempDir()
	dirs := &fakeBuildDirs{dir: filepath.Join(work, "cos_build_1"), cwd: work}
	svc := NewService()
	svc.Runner = runner
	svc.BuildDirs = dirs
	return svc, dirs
}

var _ ports.ToolRunnerPort = (*fakeRunner)(nil)
var _ ports.BuildDirPort = (*fakeBuildDirs)(nil)
